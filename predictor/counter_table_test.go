package predictor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gsharesim/predictor"
)

var _ = Describe("CounterTable", func() {
	var table *predictor.CounterTable

	BeforeEach(func() {
		table = predictor.NewCounterTable(4)
	})

	It("should pack four counters per row", func() {
		Expect(table.Rows()).To(Equal(uint64(4)))
		Expect(table.Len()).To(Equal(uint64(16)))
	})

	It("should initialize every counter to weakly taken", func() {
		for i := uint64(0); i < table.Len(); i++ {
			v, err := table.Get(i)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(predictor.WeaklyTaken))
		}
		Expect(table.Snapshot()).To(Equal([]uint8{0xAA, 0xAA, 0xAA, 0xAA}))
	})

	It("should store each counter in its own 2-bit field", func() {
		for col := uint64(0); col < 4; col++ {
			Expect(table.Set(4+col, uint8(col))).To(Succeed())
		}

		// Column 0 is the least significant field.
		Expect(table.Snapshot()[1]).To(Equal(uint8(0b11100100)))
		for col := uint64(0); col < 4; col++ {
			Expect(table.Get(4 + col)).To(Equal(uint8(col)))
		}
	})

	It("should leave neighbouring counters untouched", func() {
		Expect(table.Set(9, predictor.StronglyTaken)).To(Succeed())
		Expect(table.Set(9, predictor.StronglyNotTaken)).To(Succeed())

		Expect(table.Get(8)).To(Equal(predictor.WeaklyTaken))
		Expect(table.Get(9)).To(Equal(predictor.StronglyNotTaken))
		Expect(table.Get(10)).To(Equal(predictor.WeaklyTaken))
		Expect(table.Get(11)).To(Equal(predictor.WeaklyTaken))
	})

	It("should reject out-of-range reads", func() {
		_, err := table.Get(16)
		Expect(err).To(MatchError(predictor.ErrOutOfRange))
	})

	It("should reject out-of-range writes", func() {
		Expect(table.Set(16, 1)).To(MatchError(predictor.ErrOutOfRange))
	})

	It("should reject values that do not fit in 2 bits", func() {
		Expect(table.Set(0, 4)).To(MatchError(predictor.ErrInvalidValue))
		Expect(table.Get(0)).To(Equal(predictor.WeaklyTaken))
	})

	It("should restore weakly taken on reset", func() {
		Expect(table.Set(3, 0)).To(Succeed())
		table.Reset()
		Expect(table.Get(3)).To(Equal(predictor.WeaklyTaken))
	})

	It("should return an independent snapshot", func() {
		snap := table.Snapshot()
		Expect(table.Set(0, 0)).To(Succeed())
		Expect(snap[0]).To(Equal(uint8(0xAA)))
	})
})
