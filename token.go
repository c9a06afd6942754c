// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engen

import "code.hybscloud.com/atomix"

// token is a suspension token: a pending external operation owned by the
// executor until it is resumed.
//
// resume is assigned once, on the executor goroutine, before the external
// operation is started. calls counts invocations of the capability, which
// is one-shot even when the operation calls back from another goroutine.
// fired arbitrates between the first call and release; a call that loses
// to release is dropped, since its task has already settled.
type token struct {
	serial Serial
	resume func(err error, values []any)
	calls  atomix.Uint32
	fired  atomix.Uint32
}

func newToken() *token {
	return &token{serial: nextSerial()}
}

func (tok *token) bind(resume func(err error, values []any)) {
	if tok.resume != nil {
		panic(usagef("yield", ErrTokenRebound, "token %d", tok.serial))
	}
	tok.resume = resume
}

// fire invokes the resume capability.
// Panics with a usage error if it is not bound yet or was already used.
func (tok *token) fire(err error, values []any) {
	if tok.resume == nil {
		panic(usagef("resume", ErrResumeNotReady, "token %d", tok.serial))
	}
	if tok.calls.Add(1) != 1 {
		panic(usagef("resume", ErrResumedTwice, "token %d", tok.serial))
	}
	if tok.fired.Add(1) != 1 {
		return
	}
	tok.resume(err, values)
}

// release retires the token without resuming.
// Reports whether the token was still outstanding.
func (tok *token) release() bool {
	return tok.fired.Add(1) == 1
}

// callback builds the completion callback handed to a wrapped operation.
//
// Without a shaper, args[0] is the error slot and the remaining arguments
// are the resumed values. With a shaper, its value is resumed, and its error
// or panic fails the task.
func (tok *token) callback(shape Shaper) Callback {
	return func(args ...any) {
		if shape == nil {
			if err := callbackError(first(args)); err != nil {
				tok.fire(err, nil)
				return
			}
			var values []any
			if len(args) > 1 {
				values = args[1:]
			}
			tok.fire(nil, values)
			return
		}
		v, err := applyShape(shape, args)
		if err != nil {
			tok.fire(err, nil)
			return
		}
		tok.fire(nil, []any{v})
	}
}

func applyShape(shape Shaper, args []any) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, recovered(r)
		}
	}()
	return shape(args...)
}
