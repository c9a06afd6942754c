// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engen

import (
	"code.hybscloud.com/kont"
)

// identityResume is the identity resume function for EffectFrame construction.
func identityResume(v kont.Erased) kont.Erased { return v }

func resultBindUnwind[B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(Result) kont.Expr[B])
	next := f(current.(Result))
	return kont.Erased(next.Value), next.Frame
}

// exprPerformBind performs op and passes the Result it resumes with to f.
// Fuses ExprPerform(op) + ExprBind.
func exprPerformBind[B any](op kont.Erased, f func(Result) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = resultBindUnwind[B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = op
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// ExprCallBind delegates to t and passes its outcome to f.
// Fuses ExprPerform(Delegate{Task: t}) + ExprBind.
func ExprCallBind[B any](t *Task, f func(Result) kont.Expr[B]) kont.Expr[B] {
	return exprPerformBind(Delegate{Task: t}, f)
}

// ExprParallelBind runs slots concurrently and passes the outcome to f.
// Fuses ExprPerform(All{Slots: slots}) + ExprBind.
func ExprParallelBind[B any](slots []any, f func(Result) kont.Expr[B]) kont.Expr[B] {
	return exprPerformBind(All{Slots: slots}, f)
}

// ExprKeyedBind runs fields concurrently and passes the outcome to f.
// Fuses ExprPerform(Gather{Fields: fields}) + ExprBind.
func ExprKeyedBind[B any](fields []Field, f func(Result) kont.Expr[B]) kont.Expr[B] {
	return exprPerformBind(Gather{Fields: fields}, f)
}

// ExprFail fails the enclosing Expr-world task with err.
func ExprFail[A any](err error) kont.Expr[A] {
	return kont.ExprThrowError[error, A](err)
}
