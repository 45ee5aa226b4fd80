package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/drawbridge/pkg/errors"
	"github.com/matzehuels/drawbridge/pkg/mx"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// selectPage resolves the --page flag against a document's pages.
//
// An empty selector picks the first page when the document has exactly one,
// and falls back to the interactive picker otherwise. A numeric selector is
// a 1-based page position; anything else matches page names.
func (c *CLI) selectPage(doc *mx.Document, selector string) (*mx.Page, error) {
	pages := doc.Pages()
	if len(pages) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidPage, "document has no pages")
	}

	if selector == "" {
		if len(pages) == 1 {
			return pages[0], nil
		}
		return pickPage(pages), nil
	}

	if n, err := strconv.Atoi(selector); err == nil {
		if n < 1 || n > len(pages) {
			return nil, errors.New(errors.ErrCodeInvalidPage, "page %d out of range (document has %d pages)", n, len(pages))
		}
		return pages[n-1], nil
	}

	for _, p := range pages {
		if p.Name() == selector {
			return p, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidPage, "no page named %q", selector)
}

// pickPage runs the interactive page picker. When the picker cannot run
// (no TTY) or is dismissed without a choice, the first page is used.
func pickPage(pages []*mx.Page) *mx.Page {
	model := NewPageListModel(pages)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		printWarning("page picker unavailable, using page %q", pages[0].Name())
		return pages[0]
	}
	m, ok := final.(PageListModel)
	if !ok || m.Selected == nil {
		return pages[0]
	}
	return m.Selected
}

// =============================================================================
// PageListModel - Interactive page selection
// =============================================================================

// PageListModel is the bubbletea model for interactive page selection.
type PageListModel struct {
	Pages    []*mx.Page
	Cursor   int
	Selected *mx.Page
}

// NewPageListModel creates a new page list model.
func NewPageListModel(pages []*mx.Page) PageListModel {
	return PageListModel{Pages: pages}
}

func (m PageListModel) Init() tea.Cmd {
	return nil
}

func (m PageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Pages)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Pages[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m PageListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Page"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, p := range m.Pages {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		name := p.Name()
		if name == "" {
			name = fmt.Sprintf("Page-%d", i+1)
		}

		line := fmt.Sprintf("%s%-25s  %s", cursor, name,
			listDimStyle.Render(fmt.Sprintf("%d elements", len(p.Elements()))))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Pages))))

	return b.String()
}
