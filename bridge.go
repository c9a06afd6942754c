// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engen

import (
	"code.hybscloud.com/kont"
)

// Reify converts a Cont-world task body to Expr-world.
// Task effects survive the conversion, so the result can be passed to
// [NewExpr].
func Reify[A any](m kont.Eff[A]) kont.Expr[A] {
	return kont.Reify(m)
}

// Reflect converts an Expr-world task body to Cont-world, for composing it
// with [Then], [Try] and kont.Bind before passing it to [New].
func Reflect[A any](m kont.Expr[A]) kont.Eff[A] {
	return kont.Reflect(m)
}
