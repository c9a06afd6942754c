// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engen

import (
	"code.hybscloud.com/kont"
)

// Call delegates to t and resumes with its outcome.
// Performs Delegate{Task: t}.
func Call(t *Task) kont.Eff[Result] {
	return kont.Perform(Delegate{Task: t})
}

// Parallel runs the task slots of slots concurrently and resumes with a
// []any of their values, literals copied through.
// Performs All{Slots: slots}.
func Parallel(slots ...any) kont.Eff[Result] {
	return kont.Perform(All{Slots: slots})
}

// Keyed runs the task fields concurrently and resumes with a
// map[string]any of their values, literals copied through.
// Performs Gather{Fields: fields}.
func Keyed(fields ...Field) kont.Eff[Result] {
	return kont.Perform(Gather{Fields: fields})
}

// Then passes the value of m to f. A failed outcome fails the enclosing
// task at this point instead.
func Then[B any](m kont.Eff[Result], f func(v any) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(m, func(r Result) kont.Eff[B] {
		if r.Err != nil {
			return Fail[B](r.Err)
		}
		return f(r.Value)
	})
}

// Try passes the outcome of m to f, failure included, so that the task can
// recover where it yielded.
func Try[B any](m kont.Eff[Result], f func(v any, err error) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(m, func(r Result) kont.Eff[B] {
		return f(r.Value, r.Err)
	})
}

// CallThen delegates to t and passes its value to f.
// Fuses Call + Then.
func CallThen(t *Task, f func(v any) kont.Eff[any]) kont.Eff[any] {
	return Then(Call(t), f)
}

// Fail fails the enclosing task with err.
func Fail[A any](err error) kont.Eff[A] {
	return kont.ThrowError[error, A](err)
}

// Return completes the enclosing task with v.
func Return(v any) kont.Eff[any] {
	return kont.Pure(v)
}
