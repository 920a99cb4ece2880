package bvenum

import (
	"bvsynth/internal/bvast"
	"bvsynth/internal/bvsimplify"
)

// Canonical returns the string a candidate dedups on: its simplified
// form's surface syntax. Two expressions with the same Canonical string
// are considered the same representative for enumeration purposes.
func Canonical(e bvast.Expr) string {
	return bvsimplify.Simplify(e).String()
}
