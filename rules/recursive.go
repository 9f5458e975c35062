package rules

import (
	"fmt"

	luq "github.com/maroonedog/luq-sub004"
)

// Recurse re-applies the owning validator's entire field set to this field's
// value (SelfValue) or to each element of its array value (ArrayElement). It
// performs no check of its own, must be the last rule of the chain, and only
// descends into values whose preceding rules passed. maxDepth 0 selects
// luq.DefaultMaxDepth; exceeding the depth stops descent silently.
func Recurse(target luq.RecursionTarget, maxDepth int) (luq.Rule, error) {
	if maxDepth < 0 {
		return luq.Rule{}, fmt.Errorf("rules: negative recursion depth %d", maxDepth)
	}
	if target != luq.SelfValue && target != luq.ArrayElement {
		return luq.Rule{}, fmt.Errorf("rules: unknown recursion target %d", target)
	}
	return luq.Rule{
		Code:      "recurse",
		Kind:      luq.KindRecursive,
		Recursion: &luq.RecursionSpec{Target: target, MaxDepth: maxDepth},
	}, nil
}

// MustRecurse is Recurse that panics on error.
func MustRecurse(target luq.RecursionTarget, maxDepth int) luq.Rule {
	r, err := Recurse(target, maxDepth)
	if err != nil {
		panic(err)
	}
	return r
}
