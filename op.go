// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engen

import (
	"code.hybscloud.com/kont"
)

// Result is what a task observes when it resumes from a yield.
// Err carries the failure of whatever the task waited on; Value is ignored
// when Err is set.
type Result struct {
	Value any
	Err   error
}

// dispatcher is the structural interface for task effects.
// dispatch is called by the driver with the yielding task suspended; it
// arranges for the task to be driven again once the effect is satisfied.
type dispatcher interface {
	dispatch(e *Executor, t *Task, k Continuation)
}

// Delegate is the effect operation for sequential delegation.
// Perform(Delegate{Task: t}) drives t to settlement and resumes the
// performing task with t's value or failure.
type Delegate struct {
	kont.Phantom[Result]
	Task *Task
}

func (d Delegate) dispatch(e *Executor, t *Task, k Continuation) {
	if d.Task == nil {
		panic(usagef("yield", ErrUnsupportedYield, "nil task"))
	}
	e.start("delegate", d.Task, func(v any, err error) {
		e.drive(t, err, v, k)
	})
}

// All is the effect operation for an ordered parallel yield.
// Each slot is either a [*Task], which is driven concurrently with the
// others, or a literal copied into the result unchanged.
// The performing task resumes with a []any mirroring Slots.
type All struct {
	kont.Phantom[Result]
	Slots []any
}

func (a All) dispatch(e *Executor, t *Task, k Continuation) {
	e.parallel("parallel", a.Slots, func(results []any, err error) {
		if err != nil {
			e.drive(t, err, nil, k)
			return
		}
		e.drive(t, nil, results, k)
	})
}

// Field is one slot of a keyed parallel yield.
type Field struct {
	Key   string
	Value any
}

// Gather is the effect operation for a keyed parallel yield.
// Keys must be unique. Branches are started, and failures reported, in
// field order. The performing task resumes with a map[string]any.
type Gather struct {
	kont.Phantom[Result]
	Fields []Field
}

func (g Gather) dispatch(e *Executor, t *Task, k Continuation) {
	slots := make([]any, len(g.Fields))
	seen := make(map[string]struct{}, len(g.Fields))
	for i, f := range g.Fields {
		if _, dup := seen[f.Key]; dup {
			panic(usagef("gather", ErrDuplicateKey, "%q", f.Key))
		}
		seen[f.Key] = struct{}{}
		slots[i] = f.Value
	}
	e.parallel("gather", slots, func(results []any, err error) {
		if err != nil {
			e.drive(t, err, nil, k)
			return
		}
		m := make(map[string]any, len(results))
		for i, v := range results {
			m[g.Fields[i].Key] = v
		}
		e.drive(t, nil, m, k)
	})
}

// await is the effect operation carrying a suspension token.
// The driver binds the token's resume capability, then steps the task once
// more so that it can start the external operation.
type await struct {
	kont.Phantom[Result]
	tok *token
}

func (a await) dispatch(e *Executor, t *Task, k Continuation) {
	tok := a.tok
	tok.bind(func(err error, values []any) {
		e.post(func() {
			e.resumed(t, tok, err, first(values), k)
		})
	})
	e.pending++
	t.tok = tok
	e.log.V(1).Info("token bound", "task", t.serial, "token", tok.serial)
	e.drive(t, nil, nil, k)
}

// park is the neutral placeholder a wrapped task yields while its external
// operation is outstanding. The token resumes it.
type park struct {
	kont.Phantom[Result]
}

func (park) dispatch(*Executor, *Task, Continuation) {}

// first returns the leading value of values, or nil.
func first(values []any) any {
	if len(values) == 0 {
		return nil
	}
	return values[0]
}
