package github

import "testing"

func TestIdentifiersFromNames(t *testing.T) {
	in := []string{"Go", "machine-learning", "go", "  ", "TypeScript"}
	out := identifiersFromNames(in)

	if len(out) != 3 {
		t.Fatalf("expected 3 identifiers, got %d: %+v", len(out), out)
	}
	if out[0].Name != "Go" {
		t.Errorf("first = %q", out[0].Name)
	}
	if out[1].Name != "machine learning" {
		t.Errorf("topic slug should lose hyphens, got %q", out[1].Name)
	}
	if out[2].Name != "TypeScript" {
		t.Errorf("third = %q", out[2].Name)
	}
}

func TestHostFromBaseURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://github.com", "github.com"},
		{"http://localhost:9999", "localhost"},
		{"", "github.com"},
		{"::bad::", "github.com"},
	}
	for _, c := range cases {
		if got := hostFromBaseURL(c.in); got != c.want {
			t.Errorf("hostFromBaseURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
