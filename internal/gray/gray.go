package gray

import "fmt"

// Step records how one output bit was derived.
type Step struct {
	Index       int    `json:"step"`
	Description string `json:"description"`
	Cumulative  string `json:"intermediate"`
}

type Result struct {
	Result string `json:"result"`
	Steps  []Step `json:"steps"`
}

// GrayToBinary decodes a Gray code string. Each binary bit is the previous
// binary bit XOR the current Gray bit.
func GrayToBinary(g string) Result {
	return derive(g, func(out []byte, i int) byte { return out[i-1] }, "B[%d] = B[%d] XOR G[%d]")
}

// BinaryToGray encodes a binary string. Each Gray bit is the XOR of two
// neighbouring input bits.
func BinaryToGray(b string) Result {
	return derive(b, func(_ []byte, i int) byte { return b[i-1] }, "G[%d] = B[%d] XOR B[%d]")
}

// Convert dispatches on mode.
func Convert(mode Mode, input string) Result {
	if mode == ModeBinaryToGray {
		return BinaryToGray(input)
	}
	return GrayToBinary(input)
}

// derive walks in left to right. prev yields the left XOR operand for
// position i given the output built so far.
func derive(in string, prev func(out []byte, i int) byte, formula string) Result {
	if in == "" {
		return Result{Steps: []Step{}}
	}

	out := make([]byte, 1, len(in))
	out[0] = in[0]
	steps := make([]Step, 0, len(in))
	steps = append(steps, Step{
		Index:       1,
		Description: fmt.Sprintf("MSB remains same: %c", in[0]),
		Cumulative:  string(out),
	})

	for i := 1; i < len(in); i++ {
		left := prev(out, i)
		bit := xor(left, in[i])
		out = append(out, bit)
		steps = append(steps, Step{
			Index:       i + 1,
			Description: fmt.Sprintf(formula+" = %c XOR %c = %c", i, i-1, i, left, in[i], bit),
			Cumulative:  string(out),
		})
	}

	return Result{Result: string(out), Steps: steps}
}

func xor(a, b byte) byte {
	if a == b {
		return '0'
	}
	return '1'
}
