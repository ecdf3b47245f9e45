package fuzzy

// Truth computes a rule's firing strength from live membership degrees.
type Truth func() float64

// Rule pairs a crisp consequent with the truth of its antecedent.
// Truth is called on every defuzzification and must not cache degrees.
type Rule struct {
	Output float64
	Truth  Truth
}

func NewRule(output float64, truth Truth) Rule {
	return Rule{Output: output, Truth: truth}
}

// Is reads the current degree of m.
func Is(m *Membership) Truth {
	return m.Degree
}

// IsNot reads the complement of the current degree of m.
func IsNot(m *Membership) Truth {
	return func() float64 { return Not(m.Degree()) }
}

// AllOf is the conjunction of the current degrees of ms.
// With no memberships it is always 1.
func AllOf(ms ...*Membership) Truth {
	return func() float64 {
		v := 1.0
		for _, m := range ms {
			v = And(v, m.Degree())
		}
		return v
	}
}

// AnyOf is the disjunction of the current degrees of ms.
// With no memberships it is always 0.
func AnyOf(ms ...*Membership) Truth {
	return func() float64 {
		v := 0.0
		for _, m := range ms {
			v = Or(v, m.Degree())
		}
		return v
	}
}
