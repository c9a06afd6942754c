// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engen

import (
	"code.hybscloud.com/kont"
)

type taskState uint8

const (
	taskIdle taskState = iota
	taskRunning
	taskSuspended
	taskSettled
)

// A Task is a suspendable computation driven by an [Executor].
//
// A Task wraps a kont computation whose effects are the operations of this
// package ([Delegate], [All], [Gather] and the suspension token yielded by
// [Wrap]) plus the kont error effect. Nothing runs until the Task is
// started; a Task can be started at most once and is settled when its
// computation returns, fails or panics.
type Task struct {
	serial Serial
	build  func() kont.Expr[outcome]
	susp   *kont.Suspension[outcome]
	tok    *token
	state  taskState
}

// outcome carries the final value of a task through kont, which reads a nil
// completion as the zero value of the result type. Boxing keeps a task that
// returns nil from being mistaken for one that cannot complete.
type outcome struct {
	v any
}

func boxed(v any) outcome {
	return outcome{v: v}
}

// boxExpr is ExprMap(body, boxed) on the erased frame chain, so the final
// value is never asserted to any.
func boxExpr(body kont.Expr[any]) kont.Expr[outcome] {
	if _, ok := body.Frame.(kont.ReturnFrame); ok {
		return kont.ExprReturn(boxed(body.Value))
	}
	bf := kont.AcquireBindFrame()
	bf.F = func(a kont.Erased) kont.Expr[kont.Erased] {
		return kont.Expr[kont.Erased]{Value: kont.Erased(boxed(a)), Frame: kont.ReturnFrame{}}
	}
	bf.Next = kont.ReturnFrame{}
	return kont.Expr[outcome]{Frame: kont.ChainFrames(body.Frame, bf)}
}

func newTask(build func() kont.Expr[outcome]) *Task {
	return &Task{serial: nextSerial(), build: build}
}

// New creates a task from a Cont-world computation.
// The computation is reified when the task is first stepped.
func New(body kont.Eff[any]) *Task {
	return newTask(func() kont.Expr[outcome] {
		return kont.Reify(kont.Map(body, boxed))
	})
}

// NewExpr creates a task from an Expr-world computation.
func NewExpr(body kont.Expr[any]) *Task {
	return newTask(func() kont.Expr[outcome] {
		return boxExpr(body)
	})
}

// Lazy creates a task whose computation is built by f when the task is
// first stepped. Code in f runs on the executor's goroutine, like the code
// of a task between two yields.
func Lazy(f func() kont.Eff[any]) *Task {
	return newTask(func() kont.Expr[outcome] {
		return kont.Reify(kont.Map(f(), boxed))
	})
}

// Serial returns the identifier of t.
func (t *Task) Serial() Serial {
	return t.serial
}

// Settled reports whether t has completed or failed.
func (t *Task) Settled() bool {
	return t.state == taskSettled
}

// Factory creates a task from arguments, the way calling a generator
// function creates a generator.
type Factory func(args ...any) *Task

// Func returns a [Factory] whose tasks run f with the factory arguments.
func Func(f func(args ...any) kont.Eff[any]) Factory {
	return func(args ...any) *Task {
		return Lazy(func() kont.Eff[any] {
			return f(args...)
		})
	}
}

// TaskFunc is a zero-argument task factory.
type TaskFunc func() *Task

// Source is what an [Executor] can start: a [*Task], a [TaskFunc], or a
// [Factory] called without arguments.
type Source interface {
	source() *Task
}

func (t *Task) source() *Task { return t }

func (f TaskFunc) source() *Task {
	if f == nil {
		return nil
	}
	return f()
}

func (f Factory) source() *Task {
	if f == nil {
		return nil
	}
	return f()
}

// taskOf resolves src to a task, or nil.
func taskOf(src Source) *Task {
	if src == nil {
		return nil
	}
	return src.source()
}
