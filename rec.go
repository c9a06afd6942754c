// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engen

import (
	"code.hybscloud.com/kont"
)

// Loop iterates step inside one task body, starting from initial.
// Each step yields Left with the next state or Right with the result, and
// may perform task effects on the way, so an iteration can wait, delegate
// or fan out before it decides.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if result, done := e.GetRight(); done {
			return kont.Pure(result)
		}
		next, _ := e.GetLeft()
		return Loop(next, step)
	})
}

// ExprLoop is the Expr-world [Loop].
// Steps that decide without performing an effect run in place; the first
// effectful step hands the rest of the iteration to a bind frame.
func ExprLoop[S, A any](initial S, step func(S) kont.Expr[kont.Either[S, A]]) kont.Expr[A] {
	state := initial
	for {
		m := step(state)
		if _, pure := m.Frame.(kont.ReturnFrame); !pure {
			return kont.Expr[A]{Frame: kont.ChainFrames(m.Frame, loopFrame(step))}
		}
		next, again := m.Value.GetLeft()
		if !again {
			result, _ := m.Value.GetRight()
			return kont.ExprReturn(result)
		}
		state = next
	}
}

// loopFrame continues an ExprLoop from the Either an effectful step
// resumed with.
func loopFrame[S, A any](step func(S) kont.Expr[kont.Either[S, A]]) kont.Frame {
	bf := kont.AcquireBindFrame()
	bf.F = func(a kont.Erased) kont.Expr[kont.Erased] {
		e := a.(kont.Either[S, A])
		if result, done := e.GetRight(); done {
			return kont.Expr[kont.Erased]{Value: kont.Erased(result), Frame: kont.ReturnFrame{}}
		}
		next, _ := e.GetLeft()
		rest := ExprLoop(next, step)
		return kont.Expr[kont.Erased]{Value: kont.Erased(rest.Value), Frame: rest.Frame}
	}
	bf.Next = kont.ReturnFrame{}
	return bf
}

// Repeat calls f n times in sequence, delegating to each task it returns,
// and completes with their values in order. The first failure stops the
// loop and fails the repeating task.
func Repeat(n int, f func(i int) *Task) *Task {
	type state struct {
		i      int
		values []any
	}
	return Lazy(func() kont.Eff[any] {
		return Loop(state{values: make([]any, 0, n)}, func(s state) kont.Eff[kont.Either[state, any]] {
			if s.i >= n {
				return kont.Pure(kont.Right[state, any](s.values))
			}
			return Then(Call(f(s.i)), func(v any) kont.Eff[kont.Either[state, any]] {
				return kont.Pure(kont.Left[state, any](state{i: s.i + 1, values: append(s.values, v)}))
			})
		})
	})
}
