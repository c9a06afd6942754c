// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package engen drives suspendable computations on a single-threaded event
// loop, as an alternative to chaining callbacks.
//
// A [Task] is a computation written with [code.hybscloud.com/kont]. It
// pauses by performing one of the task effects and is resumed with a
// [Result] once the effect is satisfied.
//
// # Architecture
//
//   - Driver: each step runs a task to its next effect via kont.StepExpr and
//     classifies the effect. Effects are a closed set of operation types.
//   - Executor: an event loop over a bounded lock-free ring from
//     [code.hybscloud.com/lfq]. Resumptions always run on a later turn of the
//     loop. Idle waiting uses [code.hybscloud.com/iox.Backoff].
//   - Failures: a failure is delivered into the awaiting task at its yield
//     point, where it can be handled, or reaches the final [Continuation].
//     Misuse of the runtime panics with a [*UsageError].
//
// # Effects
//
//   - [Delegate] ([Call]): run another task and resume with its outcome.
//   - [All] ([Parallel]) and [Gather] ([Keyed]): run a collection of tasks
//     concurrently; literal slots are copied through. One failure propagates
//     as itself, several are combined by [Aggregate].
//   - Suspension tokens, produced by [Wrap]: adapt a callback-based
//     operation into a task. [Wait] is the canonical example.
//   - kont.ThrowError ([Fail], [ExprFail]): fail the task.
//
// # Entry Points
//
//   - [Run], [Exec], [ExecEither]: drive a task to settlement, blocking.
//   - [NewExecutor], [Executor.Go], [Executor.Spawn], [Executor.Run]: embed
//     the loop in a host program.
//
// # Example
//
//	b := engen.Func(func(args ...any) kont.Eff[any] {
//		return engen.Then(engen.Call(engen.Wait(20*time.Millisecond)), func(any) kont.Eff[any] {
//			return engen.Return(12)
//		})
//	})
//	a := engen.New(engen.Then(engen.Parallel(b(), 24), func(v any) kont.Eff[any] {
//		return engen.Return(v) // []any{12, 24}
//	}))
//	v, err := engen.Exec(a)
package engen
