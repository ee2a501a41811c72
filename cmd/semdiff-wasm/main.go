//go:build js && wasm

// Command semdiff-wasm exposes semdiff to JavaScript. Built with GOOS=js GOARCH=wasm, it registers computeDiff, computeSemanticDiff, and initPanicHook on globalThis
// and then blocks so the functions stay callable.
package main

import (
	"fmt"
	"syscall/js"

	"github.com/apiforge/semdiff/semdiff"
)

func main() {
	global := js.Global()
	global.Set("computeDiff", export("computeDiff", semdiff.ComputeDiff))
	global.Set("computeSemanticDiff", export("computeSemanticDiff", semdiff.ComputeSemanticDiff))
	global.Set("initPanicHook", js.FuncOf(func(this js.Value, args []js.Value) any {
		semdiff.InitPanicHook(consoleReporter)
		return js.Undefined()
	}))

	select {}
}

// export wraps a two-string entry point as a JS function. A panic is reported through the panic hook and returned to the caller as an Error object.
func export(name string, f func(oldText, newText string) string) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		oldText, newText := stringArg(args, 0), stringArg(args, 1)
		out, err := semdiff.CallSafely(name, func() string {
			return f(oldText, newText)
		})
		if err != nil {
			return js.Global().Get("Error").New(err.Error())
		}
		return out
	})
}

// stringArg returns args[i] as a string, coercing non-strings the way JS String() does. Missing, null, and undefined arguments are "".
func stringArg(args []js.Value, i int) string {
	if i >= len(args) {
		return ""
	}
	v := args[i]
	switch v.Type() {
	case js.TypeString:
		return v.String()
	case js.TypeUndefined, js.TypeNull:
		return ""
	default:
		return js.Global().Call("String", v).String()
	}
}

func consoleReporter(name string, recovered any, stack []byte) {
	js.Global().Get("console").Call("error", fmt.Sprintf("semdiff: panic in %s: %v\n%s", name, recovered, stack))
}
