package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/drawbridge/pkg/mx"
)

// treeCommand creates the tree command for printing the logical hierarchy.
func (c *CLI) treeCommand() *cobra.Command {
	var page string

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the logical parent/child tree of a diagram",
		Long: `Print the logical parent/child tree of a diagram.

The tree follows parent attribute references, not the file's physical
nesting: an element whose parent attribute names another element is shown
under that element regardless of where it appears in the markup.

Multi-page documents open an interactive page picker unless --page selects
one by name or 1-based position.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(args[0], page)
		},
	}

	cmd.Flags().StringVarP(&page, "page", "p", "", "page name or 1-based position")

	return cmd
}

// runTree loads the document and prints the selected page's tree.
func (c *CLI) runTree(input, pageSelector string) error {
	doc, err := mx.Load(input, c.loadOptions())
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	p, err := c.selectPage(doc, pageSelector)
	if err != nil {
		return err
	}

	if len(doc.Pages()) > 1 {
		printInfo("Page: %s", p.Name())
	}
	fmt.Println(p.TreeString())
	return nil
}
