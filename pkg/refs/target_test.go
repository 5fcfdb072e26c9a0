package refs

import (
	"errors"
	"testing"
)

func TestTargetKey(t *testing.T) {
	tests := []struct {
		target Target
		want   string
	}{
		{One("#header"), "#header"},
		{All(".item"), "[].item"},
		{One("card"), "card"},
		{All("card"), "[]card"},
	}

	for _, tt := range tests {
		if got := tt.target.Key(); got != tt.want {
			t.Errorf("%v.Key() = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag       string
		wantKey   string
		wantMulti bool
	}{
		{"", "", false},
		{"card", "card", false},
		{"#header", "#header", false},
		{"[]card", "[]card", true},
		{"[card]", "[]card", true},
		{"[].item", "[].item", true},
		{"[", "[", true},
		{"[a[x]]", "[]a[x]", true},
	}

	for _, tt := range tests {
		key, multi := ParseTag(tt.tag)
		if key != tt.wantKey || multi != tt.wantMulti {
			t.Errorf("ParseTag(%q) = (%q, %v), want (%q, %v)", tt.tag, key, multi, tt.wantKey, tt.wantMulti)
		}
	}
}

func TestTagAndTargetAgree(t *testing.T) {
	for _, target := range []Target{One("sel"), All("sel")} {
		key, multi := ParseTag(GroupKey(target.Selector, target.Mode == ModeAll))
		if key != target.Key() {
			t.Errorf("tag key %q != target key %q", key, target.Key())
		}
		if multi != (target.Mode == ModeAll) {
			t.Errorf("multi = %v for mode %v", multi, target.Mode)
		}
	}
}

func TestParseDeclarations(t *testing.T) {
	decls, err := ParseDeclarations(map[string]any{
		"header": "#header",
		"items":  []any{".item"},
		"rows":   []string{"tr"},
	})
	if err != nil {
		t.Fatalf("ParseDeclarations() error = %v", err)
	}

	want := Declarations{
		"header": One("#header"),
		"items":  All(".item"),
		"rows":   All("tr"),
	}
	if len(decls) != len(want) {
		t.Fatalf("len = %d, want %d", len(decls), len(want))
	}
	for name, target := range want {
		if decls[name] != target {
			t.Errorf("decls[%q] = %v, want %v", name, decls[name], target)
		}
	}
}

func TestParseDeclarations_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"empty string", map[string]any{"a": ""}},
		{"two selectors", map[string]any{"a": []any{"x", "y"}}},
		{"empty list", map[string]any{"a": []string{}}},
		{"non-string element", map[string]any{"a": []any{42}}},
		{"number", map[string]any{"a": 3}},
		{"nested map", map[string]any{"a": map[string]any{"b": "c"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDeclarations(tt.raw)
			if !errors.Is(err, ErrInvalidDeclaration) {
				t.Fatalf("error = %v, want ErrInvalidDeclaration", err)
			}
		})
	}
}

func TestParseDeclarations_Nil(t *testing.T) {
	decls, err := ParseDeclarations(nil)
	if err != nil || decls != nil {
		t.Fatalf("ParseDeclarations(nil) = (%v, %v), want (nil, nil)", decls, err)
	}
}

func TestNormalize_StaticPageSharesMap(t *testing.T) {
	decls := Declarations{"a": One("#a")}
	src, err := Normalize(true, decls)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	got, _ := src()
	got["b"] = One("#b")
	if _, ok := decls["b"]; !ok {
		t.Error("page declarations should be used as-is")
	}
}

func TestNormalize_StaticComponentClones(t *testing.T) {
	decls := Declarations{"a": One("#a")}
	src, err := Normalize(false, decls)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	first, _ := src()
	first["b"] = One("#b")
	second, _ := src()
	if _, ok := second["b"]; ok {
		t.Error("component instances should not share a declaration map")
	}
	if _, ok := decls["b"]; ok {
		t.Error("original declarations were mutated")
	}
}

func TestNormalize_Forms(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name    string
		raw     any
		want    Declarations
		wantErr error
	}{
		{"declarations", Declarations{"a": All("x")}, Declarations{"a": All("x")}, nil},
		{"raw map", map[string]any{"a": []any{"x"}}, Declarations{"a": All("x")}, nil},
		{"string map", map[string]string{"a": "x"}, Declarations{"a": One("x")}, nil},
		{"source", Source(func() (Declarations, error) { return Declarations{"a": One("x")}, nil }), Declarations{"a": One("x")}, nil},
		{"plain producer", func() Declarations { return Declarations{"a": One("x")} }, Declarations{"a": One("x")}, nil},
		{"raw producer", func() map[string]any { return map[string]any{"a": "x"} }, Declarations{"a": One("x")}, nil},
		{"failing producer", func() (Declarations, error) { return nil, boom }, nil, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Normalize(false, tt.raw)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			got, err := src()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("source error = %v, want %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for name, target := range tt.want {
				if got[name] != target {
					t.Errorf("%q = %v, want %v", name, got[name], target)
				}
			}
		})
	}
}

func TestNormalize_Rejects(t *testing.T) {
	if _, err := Normalize(false, 42); !errors.Is(err, ErrInvalidDeclaration) {
		t.Errorf("Normalize(42) error = %v, want ErrInvalidDeclaration", err)
	}
	if _, err := Normalize(false, map[string]string{"a": ""}); !errors.Is(err, ErrInvalidDeclaration) {
		t.Errorf("empty selector error = %v, want ErrInvalidDeclaration", err)
	}
	src, err := Normalize(true, nil)
	if err != nil || src != nil {
		t.Errorf("Normalize(nil) = (%v, %v), want (nil, nil)", src, err)
	}
}

func TestModeString(t *testing.T) {
	if ModeOne.String() != "one" || ModeAll.String() != "all" || Mode(9).String() != "unknown" {
		t.Error("unexpected Mode strings")
	}
}
