// Package fault provides the process stop and error text stubs that replace
// their platform counterparts.
package fault

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// ExitCode is the status Abort stops the process with, the conventional
// 128 + SIGABRT.
const ExitCode = 134

// maxText is the longest text ErrorText returns.
const maxText = 14

// halt stops the process. Tests swap it out.
var halt = func() {
	os.Exit(ExitCode)
}

// Abort stops the process. It logs the calling stack for postmortem
// inspection, flushes the logger and exits with ExitCode. It never returns.
func Abort() {
	Logger().Error("abort", zap.Stack("stack"))
	_ = Logger().Sync()

	halt()

	select {}
}

// ErrorText returns a short text embedding code, for example "err: 2".
//
// It does not describe the error. The text is cut at 14 bytes, so very large
// codes lose their trailing digits; callers should not rely on more than
// the code being present.
func ErrorText(code int) string {
	s := fmt.Sprintf("err: %d", code)
	if len(s) > maxText {
		s = s[:maxText]
	}

	return s
}

// Errno is a numeric error code.
type Errno int

// Error implements error.
func (e Errno) Error() string {
	return ErrorText(int(e))
}
