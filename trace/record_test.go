package trace_test

import (
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gsharesim/predictor"
	"github.com/sarchlab/gsharesim/trace"
)

var _ = Describe("ParseRecord", func() {
	DescribeTable("well-formed lines",
		func(line string, address uint64, outcome predictor.Outcome) {
			rec, err := trace.ParseRecord(line)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec).To(Equal(trace.Record{Address: address, Outcome: outcome}))
		},
		Entry("taken", "3c7f10 t", uint64(0x3c7f10), predictor.Taken),
		Entry("not taken", "3c7f14 n", uint64(0x3c7f14), predictor.NotTaken),
		Entry("0x prefix", "0x1A2b t", uint64(0x1a2b), predictor.Taken),
		Entry("outcome word", "ff taken", uint64(0xff), predictor.Taken),
		Entry("tab separator", "10\tn", uint64(0x10), predictor.NotTaken),
		Entry("CRLF line ending", "20 t\r", uint64(0x20), predictor.Taken),
		Entry("64-bit address", "ffffffffffffffff n", ^uint64(0), predictor.NotTaken),
	)

	DescribeTable("malformed lines",
		func(line string, message string) {
			_, err := trace.ParseRecord(line)
			Expect(err).To(MatchError(ContainSubstring(message)))
		},
		Entry("missing outcome", "3c7f10", "invalid line: '3c7f10'"),
		Entry("trailing space only", "3c7f10 ", "invalid line"),
		Entry("unknown outcome", "3c7f10 x", "invalid prediction outcome code: 'x'"),
		Entry("upper case outcome", "3c7f10 T", "invalid prediction outcome code: 'T'"),
		Entry("bad hex", "zz t", "invalid address 'zz'"),
		Entry("hex digits followed by garbage", "12zz t", "invalid address '12zz'"),
		Entry("bare prefix", "0x t", "invalid address '0x'"),
	)

	It("should report address overflow", func() {
		_, err := trace.ParseRecord("10000000000000000 t")
		Expect(err).To(MatchError(strconv.ErrRange))
	})

	It("should check the outcome before the address", func() {
		_, err := trace.ParseRecord("zz q")
		Expect(err).To(MatchError(ContainSubstring("outcome code")))
	})
})
