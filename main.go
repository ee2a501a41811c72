package main

import (
	"os"

	"github.com/apiforge/semdiff/internal/cli"
)

func main() {
	code, _ := cli.Run(os.Args, nil)
	os.Exit(code)
}
