// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engen

import (
	"code.hybscloud.com/kont"
)

// Exec drives src to settlement and returns its value or failure.
// Blocks on the calling goroutine like [Run], including while a wrapped
// operation has yet to call back.
func Exec(src Source, opts ...Option) (any, error) {
	var (
		value any
		err   error
	)
	Run(src, func(v any, e error) {
		value, err = v, e
	}, opts...)
	return value, err
}

// ExecEither is like [Exec], returning Right on success and Left on failure.
func ExecEither(src Source, opts ...Option) kont.Either[error, any] {
	v, err := Exec(src, opts...)
	if err != nil {
		return kont.Left[error, any](err)
	}
	return kont.Right[error, any](v)
}
