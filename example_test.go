// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engen_test

import (
	"errors"
	"fmt"

	"code.hybscloud.com/engen"
	"code.hybscloud.com/kont"
)

func Example() {
	double := engen.Wrap(func(args []any, done engen.Callback) {
		done(nil, args[0].(int)*2)
	}, nil)
	b := engen.Func(func(args ...any) kont.Eff[any] {
		return engen.CallThen(double(6), engen.Return)
	})
	a := engen.New(engen.Then(engen.Parallel(b(), 24), engen.Return))

	engen.Run(a, func(v any, err error) {
		fmt.Println(v, err)
	})
	// Output:
	// [12 24] <nil>
}

func ExampleWrap() {
	// add calls back with its error slot first, Node.js style.
	add := engen.Wrap(func(args []any, done engen.Callback) {
		done(nil, args[0].(int)+args[1].(int))
	}, nil)

	v, err := engen.Exec(engen.New(engen.CallThen(add(1, 2), engen.Return)))
	fmt.Println(v, err)
	// Output:
	// 3 <nil>
}

func ExampleTry() {
	errNotFound := errors.New("not found")
	lookup := engen.Wrap(func(args []any, done engen.Callback) {
		done(errNotFound)
	}, nil)

	a := engen.New(engen.Try(engen.Call(lookup("key")), func(v any, err error) kont.Eff[any] {
		if errors.Is(err, errNotFound) {
			return engen.Return("default")
		}
		return engen.Return(v)
	}))
	v, _ := engen.Exec(a)
	fmt.Println(v)
	// Output:
	// default
}

func ExampleAggregate() {
	err := engen.Aggregate(errors.New("a"), errors.New("b"))
	fmt.Println(err)
	// Output:
	// engen: parallel yield got multiple errors:
	// a
	//
	// b
}
