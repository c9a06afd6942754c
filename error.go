// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engen

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"code.hybscloud.com/kont"
	goerrors "github.com/go-errors/errors"
	"github.com/hashicorp/go-multierror"
)

// Usage errors. They report programmer misuse of the runtime and are raised
// as a panic carrying a [*UsageError], never delivered to a [Continuation].
var (
	ErrNotTask          = errors.New("first argument to run() must be a task or a task factory")
	ErrUnsupportedYield = errors.New("yielded something other than a task, a collection of tasks, or a suspension token")
	ErrNestedCollection = errors.New("do not nest collections of tasks inside a parallel yield")
	ErrDuplicateKey     = errors.New("duplicate key in keyed parallel yield")
	ErrResumeNotReady   = errors.New("wrapped function returned before its resume handler was ready")
	ErrResumedTwice     = errors.New("resume handler invoked more than once")
	ErrTokenRebound     = errors.New("suspension token yielded more than once")
	ErrTaskStarted      = errors.New("task already started")
	ErrTaskRunning      = errors.New("task resumed while running")
	ErrTaskSettled      = errors.New("task resumed after it settled")
)

// UsageError is the panic value for misuse of the runtime.
// Err is one of the Err* sentinels, possibly wrapped with detail.
type UsageError struct {
	Op  string
	Err error
}

func (e *UsageError) Error() string {
	return "engen: " + e.Op + ": " + e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usage(op string, err error) *UsageError {
	return &UsageError{Op: op, Err: err}
}

func usagef(op string, err error, format string, args ...any) *UsageError {
	return &UsageError{Op: op, Err: fmt.Errorf("%w: "+format, append([]any{err}, args...)...)}
}

// multipleErrorsPrefix heads the message of an aggregated failure.
const multipleErrorsPrefix = "engen: parallel yield got multiple errors:\n"

// Aggregate combines the failures of parallel branches into one error.
//
// No failures yield nil and a single failure is returned unchanged.
// Two or more are wrapped in a [*multierror.Error] whose Errors field keeps
// the input order; its message lists every constituent separated by blank
// lines.
func Aggregate(errs ...error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	return &multierror.Error{
		Errors:      errs,
		ErrorFormat: formatErrors,
	}
}

func formatErrors(errs []error) string {
	var b strings.Builder
	b.WriteString(multipleErrorsPrefix)
	for i, err := range errs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// errorDispatcher is the structural interface of kont error effects
// (kont.Throw and kont.Catch).
type errorDispatcher interface {
	DispatchError(ctx *kont.ErrorContext[error]) (kont.Resumed, bool)
}

// recovered converts a panic raised by task code into a task failure.
// Usage errors are re-raised: they belong to the caller, not to the task.
func recovered(r any) error {
	if u, ok := r.(*UsageError); ok {
		panic(u)
	}
	return goerrors.Wrap(r, 2)
}

// callbackError normalizes the conventional leading error slot of a
// callback. A nil error or a zero value (false, 0, "") means success; any
// other value fails with its formatted text.
func callbackError(v any) error {
	switch e := v.(type) {
	case nil:
		return nil
	case error:
		return e
	default:
		if reflect.ValueOf(e).IsZero() {
			return nil
		}
		return fmt.Errorf("engen: callback error: %v", e)
	}
}
