package controllers

import (
	"math"

	"github.com/san-kum/fuzzylab/internal/fuzzy"
)

const (
	LowTip      = 7.5
	AverageTip  = 15.0
	GenerousTip = 25.0
)

type serviceRating struct {
	excellent, ok, poor *fuzzy.Membership
}

func newServiceRating() serviceRating {
	return serviceRating{
		excellent: fuzzy.MustMembership(3, 5, 5, math.MaxFloat64),
		ok:        fuzzy.MustMembership(1, 3, 3, 5),
		poor:      fuzzy.MustMembership(-math.MaxFloat64, 1, 1, 3),
	}
}

func (s serviceRating) input() Input {
	return Input{
		Name: "service",
		Unit: "stars",
		Min:  0,
		Max:  5,
		Categories: []Category{
			{Label: "excellent", Fn: s.excellent},
			{Label: "ok", Fn: s.ok},
			{Label: "poor", Fn: s.poor},
		},
	}
}

// NewTipper returns the single-input tipping controller: service stars in,
// tip percentage out.
func NewTipper() *Mamdani {
	s := newServiceRating()

	return NewMamdani("tipper", []Input{s.input()}, []fuzzy.Rule{
		fuzzy.NewRule(GenerousTip, fuzzy.Is(s.excellent)),
		fuzzy.NewRule(AverageTip, fuzzy.Is(s.ok)),
		fuzzy.NewRule(LowTip, fuzzy.Is(s.poor)),
	})
}

// NewFoodTipper rates service and food. Poor service or rancid food gives
// a low tip; excellent service or delicious food gives a generous one.
func NewFoodTipper() *Mamdani {
	s := newServiceRating()
	rancid := fuzzy.MustMembership(-math.MaxFloat64, 0, 1, 3)
	delicious := fuzzy.MustMembership(7, 9, 10, math.MaxFloat64)

	food := Input{
		Name: "food",
		Unit: "points",
		Min:  0,
		Max:  10,
		Categories: []Category{
			{Label: "rancid", Fn: rancid},
			{Label: "delicious", Fn: delicious},
		},
	}

	return NewMamdani("food_tipper", []Input{s.input(), food}, []fuzzy.Rule{
		fuzzy.NewRule(LowTip, func() float64 { return fuzzy.Or(s.poor.Degree(), rancid.Degree()) }),
		fuzzy.NewRule(AverageTip, fuzzy.Is(s.ok)),
		fuzzy.NewRule(GenerousTip, func() float64 { return fuzzy.Or(s.excellent.Degree(), delicious.Degree()) }),
	})
}
