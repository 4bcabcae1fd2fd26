package naming

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "basic", input: "Checkout Flow", want: "checkout-flow"},
		{name: "collapse separators", input: "  A__B---C  ", want: "a-b-c"},
		{name: "invalid chars", input: "api/gateway@v2", want: "api-gateway-v2"},
		{name: "empty", input: "   ", want: "unknown"},
		{name: "non ascii", input: "漢字", want: "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slug(tt.input)
			if got != tt.want {
				t.Fatalf("Slug(%q)=%q want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestUniqueNamer(t *testing.T) {
	n := NewUniqueNamer()
	got := []string{n.Next("Box"), n.Next("box"), n.Next("other"), n.Next("BOX")}
	want := []string{"box", "box-2", "other", "box-3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Next #%d=%q want %q", i, got[i], want[i])
		}
	}
}

func TestOutputNames(t *testing.T) {
	tests := []struct {
		name   string
		inputs []string
		format string
		want   []string
	}{
		{name: "ascii", inputs: []string{"docs/Flow.txt"}, format: "ascii", want: []string{"flow.txt"}},
		{name: "svg", inputs: []string{"a.flow", "b.flow"}, format: "svg", want: []string{"a.svg", "b.svg"}},
		{name: "collision", inputs: []string{"x/flow.txt", "y/flow.txt"}, format: "json", want: []string{"flow.json", "flow-2.json"}},
		{name: "stdin", inputs: []string{"-"}, format: "ascii", want: []string{"stdin.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OutputNames(tt.inputs, tt.format)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("OutputNames[%d]=%q want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
