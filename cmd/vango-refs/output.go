package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vango-dev/vango-refs/internal/fixture"
)

// styles renders CLI output for one writer. Colors are dropped when the
// writer is not a terminal.
type styles struct {
	component lipgloss.Style
	meta      lipgloss.Style
	name      lipgloss.Style
	registry  lipgloss.Style
	query     lipgloss.Style
	none      lipgloss.Style
	ok        lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		component: r.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		meta:      r.NewStyle().Foreground(lipgloss.Color("8")),
		name:      r.NewStyle().Width(16),
		registry:  r.NewStyle().Foreground(lipgloss.Color("2")).Width(9),
		query:     r.NewStyle().Foreground(lipgloss.Color("6")).Width(9),
		none:      r.NewStyle().Foreground(lipgloss.Color("3")).Width(9),
		ok:        r.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

func (s styles) origin(origin string) lipgloss.Style {
	switch origin {
	case "registry":
		return s.registry
	case "query":
		return s.query
	default:
		return s.none
	}
}

// printReport writes one block per instance:
//
//	home #1 page
//	  cards           all  registry  <item-card>, <item-card>
func printReport(w io.Writer, reports []fixture.InstanceReport) {
	s := newStyles(w)
	for _, r := range reports {
		kind := "tag=" + r.Tag
		if r.Root {
			kind = "page"
			if r.Scope != "" {
				kind += " scope=" + r.Scope
			}
		} else if r.Tag == "" {
			kind = "untagged"
		}
		fmt.Fprintf(w, "%s %s\n",
			s.component.Render(r.Component),
			s.meta.Render(fmt.Sprintf("#%d %s", r.ID, kind)))

		if len(r.Refs) == 0 {
			fmt.Fprintf(w, "  %s\n", s.meta.Render("(no refs)"))
			continue
		}
		for _, ref := range r.Refs {
			matches := strings.Join(ref.Matches, ", ")
			if matches == "" {
				matches = "-"
			}
			fmt.Fprintf(w, "  %s %-4s %s %s\n",
				s.name.Render(ref.Name),
				ref.Mode,
				s.origin(ref.Origin).Render(ref.Origin),
				matches)
		}
	}
}

func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", newStyles(w).ok.Render("✓"), fmt.Sprintf(format, args...))
}
