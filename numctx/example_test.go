package numctx_test

import (
	"fmt"

	"github.com/katalvlaran/axiomat/numctx"
)

// ExampleContext_CanonicalString demonstrates the quantization boundary:
// intermediate arithmetic carries full precision, the canonical form does not.
func ExampleContext_CanonicalString() {
	ctx := numctx.Default()

	sector, _ := ctx.Parse("163")
	divisor, _ := ctx.Parse("144")

	ratio, _ := ctx.Div(sector, divisor) // 1.131944444... at 34 digits
	s, _ := ctx.CanonicalString(ratio)   // 7 places, half-even

	fmt.Println(s)
	// Output:
	// 1.1319444
}
