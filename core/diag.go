package core

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	diagMu  sync.Mutex
	diagOut io.Writer = os.Stderr
)

// SetDiagnosticOutput redirects framework diagnostics (rounding
// warnings, sink failures, buffered-write failures, backpressure
// notices) to w. Passing nil restores the default, os.Stderr.
func SetDiagnosticOutput(w io.Writer) {
	diagMu.Lock()
	defer diagMu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	diagOut = w
}

// Diagf reports a framework-level warning. It never returns an error:
// if the configured writer fails, the message falls back to stderr so
// error visibility is not silently lost.
func Diagf(format string, args ...interface{}) {
	msg := fmt.Sprintf("logthis: "+format+"\n", args...)
	diagMu.Lock()
	w := diagOut
	diagMu.Unlock()
	if _, err := io.WriteString(w, msg); err != nil && w != os.Stderr {
		_, _ = os.Stderr.WriteString(msg)
	}
}
