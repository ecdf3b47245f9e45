package fuzzy_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fuzzylab/internal/fuzzy"
)

const (
	lowTip = 7.5
	avgTip = 15.0
	genTip = 25.0
)

var _ = Describe("a tipping controller", func() {
	var (
		excellent, ok, poor *fuzzy.Membership
		service             *fuzzy.Group
	)

	BeforeEach(func() {
		excellent = fuzzy.MustMembership(3, 5, 5, math.MaxFloat64)
		ok = fuzzy.MustMembership(1, 3, 3, 5)
		poor = fuzzy.MustMembership(-math.MaxFloat64, 1, 1, 3)
		service = fuzzy.NewGroup(excellent, ok, poor)
	})

	Context("rating service only", func() {
		var rules []fuzzy.Rule

		BeforeEach(func() {
			rules = []fuzzy.Rule{
				fuzzy.NewRule(genTip, fuzzy.Is(excellent)),
				fuzzy.NewRule(avgTip, fuzzy.Is(ok)),
				fuzzy.NewRule(lowTip, fuzzy.Is(poor)),
			}
		})

		It("tips 17.5 for 3.5 stars", func() {
			service.Fuzzify(3.5)
			Expect(fuzzy.DefuzzifyByCentroid(rules...)).To(BeNumerically("~", 17.5, 1e-9))
		})

		It("tips the exact consequent at a category peak", func() {
			service.Fuzzify(5)
			Expect(fuzzy.DefuzzifyByCentroid(rules...)).To(BeNumerically("~", genTip, 1e-9))

			service.Fuzzify(3)
			Expect(fuzzy.DefuzzifyByCentroid(rules...)).To(BeNumerically("~", avgTip, 1e-9))
		})

		It("re-reads degrees after the input changes", func() {
			service.Fuzzify(3.5)
			first := fuzzy.DefuzzifyByCentroid(rules...)
			service.Fuzzify(1.5)
			second := fuzzy.DefuzzifyByCentroid(rules...)
			Expect(second).To(BeNumerically("<", first))
		})
	})

	Context("rating service and food", func() {
		var (
			rancid, delicious *fuzzy.Membership
			food              *fuzzy.Group
			rules             []fuzzy.Rule
		)

		BeforeEach(func() {
			rancid = fuzzy.MustMembership(-math.MaxFloat64, 0, 1, 3)
			delicious = fuzzy.MustMembership(7, 9, 10, math.MaxFloat64)
			food = fuzzy.NewGroup(rancid, delicious)

			rules = []fuzzy.Rule{
				fuzzy.NewRule(lowTip, func() float64 { return fuzzy.Or(poor.Degree(), rancid.Degree()) }),
				fuzzy.NewRule(avgTip, fuzzy.Is(ok)),
				fuzzy.NewRule(genTip, func() float64 { return fuzzy.Or(excellent.Degree(), delicious.Degree()) }),
			}
		})

		DescribeTable("defuzzified tip",
			func(serviceRating, foodRating, expected float64) {
				service.Fuzzify(serviceRating)
				food.Fuzzify(foodRating)
				Expect(fuzzy.DefuzzifyByCentroid(rules...)).To(BeNumerically("~", expected, 1e-6))
			},
			Entry("decent service, bland food", 3.5, 2.0, 14.1666666),
			Entry("poor service, poor food", 1.0, 1.0, 7.5),
		)
	})

	Context("with nothing fired", func() {
		It("returns zero instead of NaN", func() {
			narrow := fuzzy.MustMembership(0, 1, 1, 2)
			narrow.Fuzzify(10)
			out := fuzzy.DefuzzifyByCentroid(fuzzy.NewRule(99, fuzzy.Is(narrow)))
			Expect(math.IsNaN(out)).To(BeFalse())
			Expect(out).To(BeZero())
		})
	})
})
