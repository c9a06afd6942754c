// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engen

import (
	"time"

	"code.hybscloud.com/kont"
)

// Callback is the completion callback handed to a wrapped operation.
// By convention args[0] is an error slot: a non-nil error fails the task, a
// nil or zero value (false, 0, "") means success, and any other value fails
// the task with its formatted text. A [Shaper] may interpret the arguments
// differently. Only the first call is honored; a second call
// panics with a usage error.
type Callback func(args ...any)

// Op is an externally driven operation: it receives the arguments given to
// the task factory and calls done when it completes, on any goroutine.
type Op func(args []any, done Callback)

// Shaper turns the arguments of a [Callback] into the value the task
// resumes with. A returned error, or a panic, fails the task instead.
type Shaper func(args ...any) (any, error)

// Wrap adapts op into a task factory.
//
// A wrapped task yields a suspension token, and once the executor has bound
// its resume capability it starts op with a fresh callback and parks until
// that callback fires. A panic in op fails the task. op must not call done
// before it has been started by the executor.
//
// Without a shaper, a non-nil args[0] fails the task, and otherwise the task
// completes with args[1] (or nil).
func Wrap(op Op, shape Shaper) Factory {
	return func(args ...any) *Task {
		tok := newToken()
		done := tok.callback(shape)
		return New(kont.Bind(kont.Perform(await{tok: tok}), func(Result) kont.Eff[any] {
			op(args, done)
			return kont.Bind(kont.Perform(park{}), settleWrapped)
		}))
	}
}

func settleWrapped(r Result) kont.Eff[any] {
	if r.Err != nil {
		return Fail[any](r.Err)
	}
	return kont.Pure(r.Value)
}

// MultipleReturn is a [Shaper] that honors the error slot and returns every
// following argument as a []any.
func MultipleReturn(args ...any) (any, error) {
	if err := callbackError(first(args)); err != nil {
		return nil, err
	}
	values := []any{}
	if len(args) > 1 {
		values = append(values, args[1:]...)
	}
	return values, nil
}

// NoError is a [Shaper] for callbacks without an error slot that pass a
// single value.
func NoError(args ...any) (any, error) {
	return first(args), nil
}

// MultipleReturnNoError is a [Shaper] for callbacks without an error slot;
// it returns every argument as a []any.
func MultipleReturnNoError(args ...any) (any, error) {
	return append([]any{}, args...), nil
}

var wait = Wrap(func(args []any, done Callback) {
	time.AfterFunc(args[0].(time.Duration), func() {
		done()
	})
}, nil)

// Wait returns a task that completes with nil after d.
func Wait(d time.Duration) *Task {
	return wait(d)
}
