package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/drawbridge/pkg/mx"
)

// encodeCommand creates the encode command for compressing markup.
func (c *CLI) encodeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "encode [file.xml]",
		Short: "Compress markup back into the .drawio format",
		Long: `Compress markup back into the .drawio format.

The encode command applies the draw.io compression pipeline in reverse:
each page's model is percent-encoded, deflated, and base64-encoded. Input
that already carries diagram wrapper tags keeps its document structure
byte-for-byte; plain markup is wrapped in a fresh single-page document with
a generated diagram id.

Documents decoded without wrapper tags cannot be re-encoded, since the
page boundaries are lost.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEncode(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// runEncode loads plain markup and writes the compressed document.
func (c *CLI) runEncode(input string, output string) error {
	prog := newProgress(c.Logger)

	doc, err := mx.Load(input, c.loadOptions())
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	text, err := doc.EncodedText()
	if err != nil {
		return fmt.Errorf("encode %s: %w", input, err)
	}

	if err := writeOutput(output, []byte(text+"\n")); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	prog.done(fmt.Sprintf("Encoded %s", input))
	if output != "" {
		printSuccess("Encoded %s", input)
		printStats(len(doc.Pages()), countElements(doc), false)
	}
	return nil
}
