package fixture

import (
	"strings"

	"github.com/vango-dev/vango-refs/pkg/refs"
	"github.com/vango-dev/vango-refs/pkg/vango"
	"github.com/vango-dev/vango-refs/pkg/vdom"
)

// InstanceReport is the resolved `$refs` table of one mounted instance.
type InstanceReport struct {
	ID        uint64      `json:"id"`
	Component string      `json:"component"`
	Tag       string      `json:"tag,omitempty"`
	Root      bool        `json:"root"`
	Scope     string      `json:"scope,omitempty"`
	Refs      []RefReport `json:"refs"`
}

// RefReport is the value of one reference at the time of the report.
type RefReport struct {
	Name    string   `json:"name"`
	Mode    string   `json:"mode"`
	Origin  string   `json:"origin"`
	Matches []string `json:"matches"`
}

// Report resolves every reference of every instance mounted under page, in
// mount order.
func Report(page *vango.Instance) []InstanceReport {
	var out []InstanceReport
	page.Walk(func(inst *vango.Instance) {
		r := InstanceReport{
			ID:        inst.ID(),
			Component: inst.Name(),
			Tag:       inst.RefTag(),
			Root:      inst.Page() == nil,
			Scope:     inst.Root().Hooks().Scope().ID(),
			Refs:      []RefReport{},
		}
		inst.Refs().Each(func(name string, res refs.Result) {
			r.Refs = append(r.Refs, RefReport{
				Name:    name,
				Mode:    res.Mode.String(),
				Origin:  res.Origin.String(),
				Matches: describe(res),
			})
		})
		out = append(out, r)
	})
	return out
}

// ReportRef resolves the single reference name of inst. Undeclared names
// fail with refs.ErrUnknownRef.
func ReportRef(inst *vango.Instance, name string) (RefReport, error) {
	res, err := inst.Refs().Require(name)
	if err != nil {
		return RefReport{}, err
	}
	return RefReport{
		Name:    name,
		Mode:    res.Mode.String(),
		Origin:  res.Origin.String(),
		Matches: describe(res),
	}, nil
}

func describe(res refs.Result) []string {
	out := []string{}
	for _, inst := range vango.AsInstances(res) {
		out = append(out, "<"+inst.Name()+">")
	}
	for _, n := range vango.AsNodes(res) {
		out = append(out, Describe(n))
	}
	return out
}

// Describe renders a node as a short selector-like label, e.g. li#i1.item.
func Describe(n *vdom.VNode) string {
	if n == nil {
		return ""
	}
	if n.Kind == vdom.KindText {
		return "#text"
	}

	var b strings.Builder
	b.WriteString(n.Tag)
	if id := n.Props.String("id"); id != "" {
		b.WriteString("#" + id)
	}
	for _, c := range strings.Fields(n.Props.String("class")) {
		b.WriteString("." + c)
	}
	return b.String()
}
