// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engen

// parallel drives every task slot of slots concurrently and calls done once
// all of them settled.
//
// Literal slots are copied into results as they are. Every branch is started
// before any is awaited, and a failing branch does not cancel its siblings.
// Failures are aggregated in slot order, not completion order. An empty
// collection completes immediately.
func (e *Executor) parallel(op string, slots []any, done func(results []any, err error)) {
	results := make([]any, len(slots))
	if len(slots) == 0 {
		done(results, nil)
		return
	}
	checkSlots(op, slots)

	errs := make([]error, len(slots))
	outstanding := len(slots)
	finish := func() {
		outstanding--
		if outstanding > 0 {
			return
		}
		var failed []error
		for _, err := range errs {
			if err != nil {
				failed = append(failed, err)
			}
		}
		if len(failed) > 1 {
			e.log.V(1).Info("parallel branches failed", "op", op, "failures", len(failed))
		}
		done(results, Aggregate(failed...))
	}

	for i, slot := range slots {
		sub, ok := slot.(*Task)
		if !ok {
			results[i] = slot
			finish()
			continue
		}
		e.start(op, sub, func(v any, err error) {
			if err != nil {
				errs[i] = err
			} else {
				results[i] = v
			}
			finish()
		})
	}
}

// checkSlots rejects slots that cannot be started, before any branch is.
func checkSlots(op string, slots []any) {
	seen := make(map[*Task]struct{})
	for i, slot := range slots {
		if nestedCollection(slot) {
			panic(usagef(op, ErrNestedCollection, "slot %d holds %T", i, slot))
		}
		sub, ok := slot.(*Task)
		if !ok {
			continue
		}
		if sub == nil {
			panic(usagef(op, ErrUnsupportedYield, "slot %d holds a nil task", i))
		}
		if _, dup := seen[sub]; dup || sub.state != taskIdle {
			panic(usagef(op, ErrTaskStarted, "slot %d, task %d", i, sub.serial))
		}
		seen[sub] = struct{}{}
	}
}

// nestedCollection reports whether slot is itself a collection of tasks.
// Plain data slices and maps are literals.
func nestedCollection(slot any) bool {
	switch v := slot.(type) {
	case All, Gather, []*Task, []Field:
		return true
	case []any:
		for _, s := range v {
			if _, ok := s.(*Task); ok {
				return true
			}
		}
	case map[string]any:
		for _, s := range v {
			if _, ok := s.(*Task); ok {
				return true
			}
		}
	}
	return false
}
