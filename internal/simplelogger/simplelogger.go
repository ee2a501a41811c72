package simplelogger

import (
	"bytes"
	"fmt"
	"os"
	"sync"
)

// EnvVar names the environment variable holding the log file path.
const EnvVar = "SEMDIFF_LOG_FILE"

var mu sync.Mutex

// Enabled reports whether Log will write anywhere.
func Enabled() bool {
	return os.Getenv(EnvVar) != ""
}

// Log is a minimal printf-style logger. It appends formatted output to the file named by SEMDIFF_LOG_FILE, one entry per line.
//
// If SEMDIFF_LOG_FILE is unset/empty or the path can't be opened as a file, Log is a no-op. Log never fails and never writes to stdout or stderr, so it is safe to
// call from library code and from wasm builds, where there is no file system.
func Log(format string, args ...any) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return
	}

	// Serialize open/write/close to reduce interleaving within a single process.
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	var b bytes.Buffer
	_, _ = fmt.Fprintf(&b, format, args...)
	if b.Len() == 0 || b.Bytes()[b.Len()-1] != '\n' {
		_ = b.WriteByte('\n')
	}
	_, _ = f.Write(b.Bytes())
}
