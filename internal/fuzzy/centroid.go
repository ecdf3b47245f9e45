package fuzzy

// DefuzzifyByCentroid returns the firing-strength weighted mean of the rule
// outputs. When no rule fires (or there are no rules) the result is 0.
func DefuzzifyByCentroid(rules ...Rule) float64 {
	return DefuzzifyRuleSet(rules)
}

func DefuzzifyRuleSet(rules []Rule) float64 {
	var num, den float64
	for _, r := range rules {
		fx := r.Truth()
		num += fx * r.Output
		den += fx
	}
	if num == 0 && den == 0 {
		return 0
	}
	return num / den
}
