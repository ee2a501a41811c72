package semdiff

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/apiforge/semdiff/internal/simplelogger"
)

// PanicReporter is told about a panic recovered by CallSafely. name is the entry point that panicked; stack is the goroutine's stack with source paths reduced to
// base file names.
type PanicReporter func(name string, recovered any, stack []byte)

// NewWriterReporter returns a PanicReporter that writes the panic and its stack to w, and also to the SEMDIFF_LOG_FILE log.
func NewWriterReporter(w io.Writer) PanicReporter {
	return func(name string, recovered any, stack []byte) {
		simplelogger.Log("panic in %s: %v\n%s", name, recovered, stack)
		fmt.Fprintf(w, "semdiff: panic in %s: %v\n%s\n", name, recovered, stack)
	}
}

type panicHook struct {
	once     sync.Once
	mu       sync.Mutex
	reporter PanicReporter
}

var hook panicHook

// install sets r as the reporter the first time it is called; later calls do nothing.
func (h *panicHook) install(r PanicReporter) {
	h.once.Do(func() {
		if r == nil {
			r = NewWriterReporter(os.Stderr)
		}
		h.mu.Lock()
		h.reporter = r
		h.mu.Unlock()
	})
}

func (h *panicHook) current() PanicReporter {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reporter
}

func (h *panicHook) call(name string, f func() string) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			// Avoid leaking local absolute paths (usernames) in stack traces.
			stack := sanitizeStack(debug.Stack())
			if r := h.current(); r != nil {
				r(name, rec, stack)
			}
			out = ""
			err = fmt.Errorf("panic in %s: %v", name, rec)
		}
	}()
	return f(), nil
}

// InitPanicHook installs r as the process-wide reporter for panics recovered by CallSafely. Only the first call has any effect. A nil r installs a reporter that
// writes to stderr (see NewWriterReporter).
//
// Until a hook is installed, CallSafely still recovers panics; it just doesn't report them.
func InitPanicHook(r PanicReporter) {
	hook.install(r)
}

// CallSafely calls f and returns its result. If f panics, the panic is reported through the hook installed by InitPanicHook and returned as an error naming name.
func CallSafely(name string, f func() string) (string, error) {
	return hook.call(name, f)
}

// sanitizeStack keeps only the base file name of each .go frame in a runtime/debug stack trace.
func sanitizeStack(stack []byte) []byte {
	lines := strings.Split(string(stack), "\n")
	for i, line := range lines {
		goIdx := strings.Index(line, ".go:")
		if goIdx < 0 {
			continue
		}
		sep := strings.LastIndexAny(line[:goIdx], "/\\")
		if sep < 0 {
			continue
		}
		lines[i] = "\t" + line[sep+1:]
	}
	return []byte(strings.Join(lines, "\n"))
}
