package predictor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gsharesim/predictor"
)

var _ = Describe("Outcome", func() {
	It("should parse trace codes", func() {
		Expect(predictor.ParseOutcome('n')).To(Equal(predictor.NotTaken))
		Expect(predictor.ParseOutcome('t')).To(Equal(predictor.Taken))
	})

	It("should be case sensitive", func() {
		_, err := predictor.ParseOutcome('T')
		Expect(err).To(MatchError(ContainSubstring("invalid prediction outcome code: 'T'")))
	})

	It("should print its trace code", func() {
		Expect(predictor.Taken.String()).To(Equal("t"))
		Expect(predictor.NotTaken.String()).To(Equal("n"))
		Expect(predictor.Outcome(7).String()).To(Equal("Outcome(7)"))
	})
})
