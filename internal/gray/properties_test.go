package gray_test

import (
	"fmt"
	"math/rand"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/graycode/internal/gray"
)

// bitStrings returns every string of length 1..6 plus a handful of long
// random ones.
func bitStrings() []string {
	var out []string
	for n := 1; n <= 6; n++ {
		for v := 0; v < 1<<n; v++ {
			out = append(out, fmt.Sprintf("%0*b", n, v))
		}
	}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		var sb strings.Builder
		n := 64 + rng.Intn(64)
		for j := 0; j < n; j++ {
			sb.WriteByte(byte('0' + rng.Intn(2)))
		}
		out = append(out, sb.String())
	}
	return out
}

var _ = Describe("Converter", func() {
	inputs := bitStrings()

	Describe("round trips", func() {
		It("decodes what it encodes", func() {
			for _, b := range inputs {
				Expect(gray.GrayToBinary(gray.BinaryToGray(b).Result).Result).To(Equal(b))
			}
		})

		It("encodes what it decodes", func() {
			for _, b := range inputs {
				Expect(gray.BinaryToGray(gray.GrayToBinary(b).Result).Result).To(Equal(b))
			}
		})
	})

	DescribeTable("result shape",
		func(mode gray.Mode) {
			for _, b := range inputs {
				res := gray.Convert(mode, b)
				Expect(res.Result).To(HaveLen(len(b)))
				Expect(res.Steps).To(HaveLen(len(b)))
				Expect(res.Result[0]).To(Equal(b[0]))
				for k, s := range res.Steps {
					Expect(s.Index).To(Equal(k + 1))
					Expect(s.Cumulative).To(HaveLen(k + 1))
					Expect(res.Result).To(HavePrefix(s.Cumulative))
				}
			}
		},
		Entry("gray to binary", gray.ModeGrayToBinary),
		Entry("binary to gray", gray.ModeBinaryToGray),
	)

	DescribeTable("empty input",
		func(mode gray.Mode) {
			res := gray.Convert(mode, "")
			Expect(res.Result).To(BeEmpty())
			Expect(res.Steps).NotTo(BeNil())
			Expect(res.Steps).To(BeEmpty())
		},
		Entry("gray to binary", gray.ModeGrayToBinary),
		Entry("binary to gray", gray.ModeBinaryToGray),
	)

	It("satisfies the XOR recurrences", func() {
		for _, in := range inputs {
			bin := gray.GrayToBinary(in).Result
			enc := gray.BinaryToGray(in).Result
			for i := 1; i < len(in); i++ {
				Expect(bin[i] == '1').To(Equal((bin[i-1] == '1') != (in[i] == '1')))
				Expect(enc[i] == '1').To(Equal((in[i-1] == '1') != (in[i] == '1')))
			}
		}
	})

	It("changes one bit between consecutive encodings", func() {
		for v := 0; v < 255; v++ {
			a := gray.BinaryToGray(fmt.Sprintf("%08b", v)).Result
			b := gray.BinaryToGray(fmt.Sprintf("%08b", v+1)).Result
			d, err := gray.Hamming(a, b)
			Expect(err).NotTo(HaveOccurred())
			Expect(d).To(Equal(1))
		}
	})

	DescribeTable("known conversions",
		func(mode gray.Mode, in, want string) {
			Expect(gray.Convert(mode, in).Result).To(Equal(want))
		},
		Entry(nil, gray.ModeGrayToBinary, "1011", "1101"),
		Entry(nil, gray.ModeBinaryToGray, "1101", "1011"),
		Entry(nil, gray.ModeGrayToBinary, "0", "0"),
		Entry(nil, gray.ModeBinaryToGray, "1", "1"),
		Entry(nil, gray.ModeGrayToBinary, "000000", "000000"),
		Entry(nil, gray.ModeBinaryToGray, "111111", "100000"),
	)
})
