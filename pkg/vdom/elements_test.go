package vdom

import (
	"testing"

	"github.com/vango-dev/vango-refs/pkg/refs"
)

func TestCreateElement(t *testing.T) {
	t.Run("basic element", func(t *testing.T) {
		node := Div()
		if node.Kind != KindElement {
			t.Errorf("Kind = %v, want KindElement", node.Kind)
		}
		if node.Tag != "div" {
			t.Errorf("Tag = %v, want div", node.Tag)
		}
	})

	t.Run("with multiple attributes", func(t *testing.T) {
		node := Div(Class("card", "wide"), ID("main"))
		if node.Props["class"] != "card wide" {
			t.Errorf("class = %v, want card wide", node.Props["class"])
		}
		if node.Props["id"] != "main" {
			t.Errorf("id = %v, want main", node.Props["id"])
		}
	})

	t.Run("attribute slice", func(t *testing.T) {
		node := Span([]Attr{Data("x", "1"), Name("n")})
		if node.Props["data-x"] != "1" || node.Props["name"] != "n" {
			t.Errorf("Props = %v", node.Props)
		}
	})


	t.Run("children", func(t *testing.T) {
		node := Ul(nil, Li("a"), []*VNode{Li("b"), nil}, "tail")
		if len(node.Children) != 3 {
			t.Fatalf("Children len = %d, want 3", len(node.Children))
		}
		if node.Children[2].Kind != KindText || node.Children[2].Text != "tail" {
			t.Errorf("string child = %+v", node.Children[2])
		}
	})

	t.Run("embedded component", func(t *testing.T) {
		node := Div(Func(func() *VNode { return nil }))
		if len(node.Children) != 1 || node.Children[0].Kind != KindComponent {
			t.Fatalf("Children = %+v", node.Children)
		}
	})
}

func TestComp(t *testing.T) {
	node := Comp("item-card", Class("item"), RefAll(".item"), Text("slot"))
	if node.Kind != KindComponent {
		t.Fatalf("Kind = %v, want KindComponent", node.Kind)
	}
	if node.Tag != "item-card" {
		t.Errorf("Tag = %q", node.Tag)
	}
	if got := node.Props.String(refs.TagAttr); got != "[].item" {
		t.Errorf("ref tag = %q, want [].item", got)
	}
	if len(node.Children) != 1 {
		t.Errorf("Children len = %d, want 1", len(node.Children))
	}
}

func TestRefTagHelpers(t *testing.T) {
	if got := RefOne("#a").Value; got != "#a" {
		t.Errorf("RefOne = %v", got)
	}
	if got := RefTag("[x]").Value; got != "[x]" {
		t.Errorf("RefTag = %v", got)
	}
}

func TestIsVoidElement(t *testing.T) {
	if !IsVoidElement("input") || IsVoidElement("div") {
		t.Error("IsVoidElement mismatch")
	}
}

func TestWalk(t *testing.T) {
	tree := Div(ID("a"), Span(ID("b"), Span(ID("c"))), P(ID("d")))

	var seen []string
	Walk(tree, func(n *VNode) bool {
		seen = append(seen, n.Props.String("id"))
		return n.Props.String("id") != "b"
	})

	want := []string{"a", "b", "d"}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("seen = %v, want %v", seen, want)
		}
	}
}

func TestRangeAndIf(t *testing.T) {
	nodes := Range([]string{"a", "b", "c"}, func(s string, i int) *VNode {
		return If(i != 1, Li(s))
	})
	if len(nodes) != 2 {
		t.Errorf("Range len = %d, want 2", len(nodes))
	}
	if f := Fragment("a", nil, Span()); len(f.Children) != 2 || f.Children[1].Tag != "span" {
		t.Error("Fragment children mismatch")
	}
}
