// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engen_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/engen"
	"code.hybscloud.com/kont"
	"github.com/go-logr/logr/funcr"
	"github.com/go-logr/logr/testr"
)

func TestExecutorGoIsSynchronous(t *testing.T) {
	e := engen.NewExecutor()
	var got any
	e.Go(value(1), func(v any, _ error) {
		got = v
	})
	if got != 1 {
		t.Fatalf("got %v before Run, want 1", got)
	}
	e.Run()
}

func TestExecutorSpawnDeferredToRun(t *testing.T) {
	e := engen.NewExecutor()
	started := false
	e.Spawn(engen.Lazy(func() kont.Eff[any] {
		started = true
		return engen.Return(nil)
	}), nil)
	if started {
		t.Fatal("spawned task started before Run")
	}
	e.Run()
	if !started {
		t.Fatal("spawned task not started by Run")
	}
}

func TestExecutorSpawnConcurrent(t *testing.T) {
	skipRace(t)

	const n = 16
	e := engen.NewExecutor(engen.WithQueueCapacity(4))
	results := make([]any, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Spawn(instant(i), func(v any, err error) {
				if err != nil {
					t.Errorf("task %d: %v", i, err)
				}
				results[i] = v
			})
		}()
	}
	wg.Wait()
	e.Run()

	for i, v := range results {
		if v != i {
			t.Fatalf("results[%d] = %v, want %d", i, v, i)
		}
	}
}

func TestExecutorFIFOAcrossOverflow(t *testing.T) {
	const n = 20
	e := engen.NewExecutor(engen.WithQueueCapacity(4))
	var order []int
	for i := range n {
		e.Spawn(value(i), func(v any, _ error) {
			order = append(order, v.(int))
		})
	}
	e.Run()

	if len(order) != n {
		t.Fatalf("ran %d tasks, want %d", len(order), n)
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("order[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestExecutorRunContextDeadline(t *testing.T) {
	var done engen.Callback
	never := engen.Wrap(func(_ []any, cb engen.Callback) {
		done = cb
	}, nil)

	e := engen.NewExecutor()
	var got any
	e.Go(never(), func(v any, _ error) {
		got = v
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := e.RunContext(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("RunContext returned %v, want deadline exceeded", err)
	}
	if e.Pending() != 1 {
		t.Fatalf("pending tokens %d, want 1", e.Pending())
	}

	// The suspended task can still be finished by a later Run.
	done(nil, "late")
	e.Run()
	if got != "late" {
		t.Fatalf("got %v, want late", got)
	}
	if e.Pending() != 0 {
		t.Fatalf("pending tokens %d, want 0", e.Pending())
	}
}

func TestExecutorRunContextCancelledWhileIdle(t *testing.T) {
	e := engen.NewExecutor()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := e.RunContext(ctx); err != nil {
		t.Fatalf("RunContext with no work returned %v, want nil", err)
	}
}

func TestExecutorReuse(t *testing.T) {
	e := engen.NewExecutor()
	var got []any
	k := func(v any, _ error) {
		got = append(got, v)
	}
	e.Go(instant("a"), k)
	e.Run()
	e.Go(instant("b"), k)
	e.Run()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("got %v, want [a b]", got)
	}
}

func TestExecutorSpawnUsageErrorPanicsFromRun(t *testing.T) {
	e := engen.NewExecutor()
	e.Spawn(nil, nil)
	mustUsage(t, engen.ErrNotTask, e.Run)
}

func TestExecutorTestLogger(t *testing.T) {
	log := testr.NewWithOptions(t, testr.Options{Verbosity: 1})
	a := engen.New(engen.Try(engen.Parallel(failing(errors.New("a")), failing(errors.New("b"))), func(v any, err error) kont.Eff[any] {
		return engen.Return(nil)
	}))
	if _, err := engen.Exec(a, engen.WithLogger(log)); err != nil {
		t.Fatalf("Exec error: %v", err)
	}
}

func TestExecutorLogsSettlement(t *testing.T) {
	var lines []string
	log := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 1})

	a := engen.New(engen.CallThen(instant(1), engen.Return))
	if _, err := engen.Exec(a, engen.WithLogger(log)); err != nil {
		t.Fatalf("Exec error: %v", err)
	}

	var completed, bound, failed int
	for _, l := range lines {
		switch {
		case strings.Contains(l, `"task completed"`):
			completed++
		case strings.Contains(l, `"token bound"`):
			bound++
		case strings.Contains(l, `"task failed"`):
			failed++
		}
	}
	if completed != 2 || bound != 1 || failed != 0 {
		t.Fatalf("logged %d completed, %d bound, %d failed: %q", completed, bound, failed, lines)
	}
}

func TestExecutorLogsQuietByDefault(t *testing.T) {
	var lines []string
	log := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{})

	if _, err := engen.Exec(value(1), engen.WithLogger(log)); err != nil {
		t.Fatalf("Exec error: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("logged at V(0): %q", lines)
	}
}
