package fuzzy

// Group fuzzifies several memberships of the same input variable at once.
// It holds the memberships by pointer, so rules built over them observe the
// degrees written here.
type Group struct {
	members []*Membership
}

func NewGroup(members ...*Membership) *Group {
	return &Group{members: members}
}

// Fuzzify applies x to every member in order.
func (g *Group) Fuzzify(x float64) {
	for _, m := range g.members {
		m.Fuzzify(x)
	}
}

func (g *Group) Members() []*Membership {
	return g.members
}
