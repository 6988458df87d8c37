// Package combos enumerates the call shapes of a function with defaults.
package combos

import (
	"github.com/phobologic/namedgen/internal/model"
)

// MaxOptional bounds the number of defaulted parameters per function; each
// one doubles the number of generated call shapes.
const MaxOptional = 16

// Optional returns the defaulted parameters of sig in signature order.
func Optional(sig model.Signature, table model.DefaultTable) []model.Parameter {
	var opt []model.Parameter
	for _, p := range sig.Params {
		if table.Has(p.Name) {
			opt = append(opt, p)
		}
	}
	return opt
}

// Enumerate returns one rule per subset of the optional parameters, 2^k in
// total, ordered by ascending mask. Bit i of a mask selects the i-th optional
// parameter. Mandatory parameters appear in every rule.
func Enumerate(sig model.Signature, table model.DefaultTable) []model.CombinationRule {
	k := len(Optional(sig, table))
	rules := make([]model.CombinationRule, 0, 1<<k)

	for mask := uint32(0); mask < 1<<k; mask++ {
		rule := model.CombinationRule{Mask: mask}
		bit := 0
		for _, p := range sig.Params {
			if !table.Has(p.Name) {
				rule.Supplied = append(rule.Supplied, p)
				continue
			}
			if mask&(1<<bit) != 0 {
				rule.Supplied = append(rule.Supplied, p)
			}
			bit++
		}
		rules = append(rules, rule)
	}

	return rules
}
