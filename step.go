// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engen

import (
	"errors"

	"code.hybscloud.com/kont"
)

// Continuation receives the outcome of a driven task.
// It is invoked at most once; v is nil when err is set.
type Continuation func(v any, err error)

var errNilThrow = errors.New("engen: task threw a nil error")

// start drives an idle task for the first time.
func (e *Executor) start(op string, t *Task, k Continuation) {
	if t == nil {
		panic(usage(op, ErrNotTask))
	}
	if t.state != taskIdle {
		panic(usagef(op, ErrTaskStarted, "task %d", t.serial))
	}
	e.drive(t, nil, nil, k)
}

// drive advances t by one step and classifies what it yielded.
//
// A non-nil err is delivered at t's current suspension point instead of v;
// a task that has not started yet fails with err right away. Failures raised
// by t's own code are reported to k. Usage errors panic.
func (e *Executor) drive(t *Task, err error, v any, k Continuation) {
	switch t.state {
	case taskRunning:
		panic(usagef("resume", ErrTaskRunning, "task %d", t.serial))
	case taskSettled:
		panic(usagef("resume", ErrTaskSettled, "task %d", t.serial))
	}

	result, susp, fail := t.step(err, v)
	if susp == nil {
		e.settle(t, result, fail, k)
		return
	}

	d, ok := susp.Op().(dispatcher)
	if !ok {
		susp.Discard()
		t.state = taskSettled
		e.release(t)
		panic(usagef("yield", ErrUnsupportedYield, "%T", susp.Op()))
	}
	t.susp = susp
	t.state = taskSuspended
	d.dispatch(e, t, k)
}

// step evaluates t until its next task effect or settlement.
// Panics in task code become the returned failure.
func (t *Task) step(err error, v any) (result any, susp *kont.Suspension[outcome], fail error) {
	t.state = taskRunning
	defer func() {
		if r := recover(); r != nil {
			t.state = taskSettled
			result, susp, fail = nil, nil, recovered(r)
		}
	}()

	var out outcome
	switch s := t.susp; {
	case s != nil:
		t.susp = nil
		out, susp = s.Resume(Result{Value: v, Err: err})
	case err != nil:
		return nil, nil, err
	default:
		build := t.build
		t.build = nil
		out, susp = kont.StepExpr(build())
	}
	out, susp, fail = dispatchErrors(out, susp)
	return out.v, susp, fail
}

// dispatchErrors runs kont error effects eagerly, as AdvanceError does for
// protocols: a Throw discards the suspension and fails the task, anything
// else is resumed in place.
func dispatchErrors(result outcome, susp *kont.Suspension[outcome]) (outcome, *kont.Suspension[outcome], error) {
	for susp != nil {
		eop, ok := susp.Op().(errorDispatcher)
		if !ok {
			break
		}
		var ctx kont.ErrorContext[error]
		v, _ := eop.DispatchError(&ctx)
		if ctx.HasErr {
			susp.Discard()
			if ctx.Err == nil {
				return outcome{}, nil, errNilThrow
			}
			return outcome{}, nil, ctx.Err
		}
		result, susp = susp.Resume(v)
	}
	return result, susp, nil
}

// settle records t's outcome and hands it to k.
func (e *Executor) settle(t *Task, v any, err error, k Continuation) {
	t.state = taskSettled
	e.release(t)
	if err != nil {
		v = nil
		e.log.V(1).Info("task failed", "task", t.serial, "err", err)
	} else {
		e.log.V(1).Info("task completed", "task", t.serial)
	}
	if k != nil {
		k(v, err)
	}
}

// release retires the outstanding token of a task that settled without
// being resumed through it.
func (e *Executor) release(t *Task) {
	tok := t.tok
	if tok == nil {
		return
	}
	t.tok = nil
	if tok.release() {
		e.pending--
		e.log.V(1).Info("token released", "task", t.serial, "token", tok.serial)
	}
}

// resumed is the job a fired token posts to the executor queue.
// A task can settle while the job is queued, when its operation called back
// and then panicked; the job is dropped then, as k already has the failure.
func (e *Executor) resumed(t *Task, tok *token, err error, v any, k Continuation) {
	e.pending--
	if t.tok == tok {
		t.tok = nil
	}
	if t.state == taskSettled {
		e.log.V(1).Info("token resumed after settlement", "task", t.serial, "token", tok.serial)
		return
	}
	e.drive(t, err, v, k)
}
