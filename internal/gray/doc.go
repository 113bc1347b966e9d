// Package gray converts bit strings between binary and reflected Gray code.
//
// Both directions keep the most significant bit and derive every further bit
// with a single XOR:
//
//   - [BinaryToGray]: G[i] = B[i-1] XOR B[i]
//   - [GrayToBinary]: B[i] = B[i-1] XOR G[i]
//
// Each conversion returns a [Result] holding the converted string and one
// [Step] per input bit describing how that bit was obtained.
//
// # Example
//
//	res := gray.Convert(gray.ModeGrayToBinary, "1011")
//	fmt.Println(res.Result) // 1101
//
// # Validation
//
// The converters assume their input only contains '0' and '1'. Callers that
// accept untrusted input run it through [Parse] (or use [ConvertChecked])
// first.
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use.
package gray
