// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engen

// Run drives src to settlement on a fresh [Executor] and calls k with the
// outcome. k may be nil, in which case the outcome is discarded.
//
// Run blocks on the calling goroutine, which becomes the loop goroutine,
// until no work is left. Only usage errors panic; task failures go to k.
// Like [Executor.Run], it does not return while a wrapped operation has yet
// to call back; embed an [Executor] and use [Executor.RunContext] when an
// operation may never complete.
func Run(src Source, k Continuation, opts ...Option) {
	e := NewExecutor(opts...)
	e.Go(src, k)
	e.Run()
}
