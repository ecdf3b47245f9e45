// Package fuzzy provides the Mamdani-style evaluation core used by every
// controller in fuzzylab.
//
// Evaluation runs in three stages:
//
//   - [Membership]: maps a crisp value to a degree in [0,1] through a
//     four-point trapezoid and remembers that degree
//   - [Rule]: pairs a crisp consequent with a truth supplier that reads the
//     live degrees of one or more memberships, combined with [And], [Or], [Not]
//   - [DefuzzifyByCentroid]: collapses the fired rules back into one crisp value
//
// [DefineInputsByPeaks] is a setup helper that derives the valleys of a chain
// of adjacent trapezoids from their peaks.
//
// # Example
//
//	poor := fuzzy.MustMembership(-math.MaxFloat64, 1, 1, 3)
//	good := fuzzy.MustMembership(1, 3, 3, math.MaxFloat64)
//	service := fuzzy.NewGroup(poor, good)
//
//	rules := []fuzzy.Rule{
//		fuzzy.NewRule(7.5, fuzzy.Is(poor)),
//		fuzzy.NewRule(20, fuzzy.Is(good)),
//	}
//
//	service.Fuzzify(2.4)
//	tip := fuzzy.DefuzzifyByCentroid(rules...)
//
// # Thread Safety
//
// A Membership stores its last degree, and rules read that stored value when
// they are evaluated. Nothing in this package locks. Callers that evaluate a
// controller from several goroutines must build one controller per goroutine.
package fuzzy
