package codec_test

import (
	"fmt"

	"github.com/matzehuels/drawbridge/pkg/mx/codec"
)

func ExampleDecode() {
	block := "UzV2zq1wL0osyPDNT0nNUTV2VTV2LsrPL4GwciucU3NyVI0MMlNUjV1UjYwMgFjVyA2HrCFY1qAgsSg1rwSLBiADYTaQg2Y1AA=="

	text, err := codec.Decode(block)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(text)
	// Output: <mxGraphModel><root><mxCell id="0"/><mxCell id="1" parent="0"/></root></mxGraphModel>
}

func ExampleEncode() {
	block, err := codec.Encode(`<mxGraphModel><root><mxCell id="0"/></root></mxGraphModel>`)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// The compressed block decodes back to the original text.
	text, _ := codec.Decode(block)
	fmt.Println(text)
	// Output: <mxGraphModel><root><mxCell id="0"/></root></mxGraphModel>
}
