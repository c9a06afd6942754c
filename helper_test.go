// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engen_test

import (
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/engen"
	"code.hybscloud.com/kont"
)

// mustUsage runs f and checks that it panics with a usage error wrapping want.
func mustUsage(t *testing.T, want error, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected usage panic wrapping %v", want)
		}
		u, ok := r.(*engen.UsageError)
		if !ok {
			t.Fatalf("unexpected panic: %v", r)
		}
		if !errors.Is(u, want) {
			t.Fatalf("usage error %q, want %q", u, want)
		}
	}()
	f()
}

// value returns a task that completes with v without yielding.
func value(v any) *engen.Task {
	return engen.New(engen.Return(v))
}

// failing returns a task that fails with err without yielding.
func failing(err error) *engen.Task {
	return engen.New(engen.Fail[any](err))
}

// delayed returns a task that completes with v after d.
func delayed(d time.Duration, v any) *engen.Task {
	return engen.New(engen.CallThen(engen.Wait(d), func(any) kont.Eff[any] {
		return engen.Return(v)
	}))
}

// delayedFail returns a task that fails with err after d.
func delayedFail(d time.Duration, err error) *engen.Task {
	return engen.New(engen.CallThen(engen.Wait(d), func(any) kont.Eff[any] {
		return engen.Fail[any](err)
	}))
}

// instant is a wrapped operation that calls back synchronously with its
// first argument.
var instant = engen.Wrap(func(args []any, done engen.Callback) {
	done(nil, args[0])
}, nil)
