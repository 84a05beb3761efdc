package ipa

import "testing"

func TestNormalizeIdempotent(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"plain", "o l a"},
		{"apostrophe stress", "'ola"},
		{"ascii colon length", "o:la"},
		{"ascii g", "ga to"},
		{"greek alpha", "pαta"},
		{"extra whitespace", "o   l    a"},
		{"zero width", "o​la"},
		{"empty", ""},
	}
	n := NewNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := n.Normalize(tt.in)
			twice := n.Normalize(once)
			if once != twice {
				t.Fatalf("normalize not idempotent: %q -> %q -> %q", tt.in, once, twice)
			}
		})
	}
}

func TestNormalizeFolds(t *testing.T) {
	n := NewNormalizer()
	if got := n.Normalize("'ola"); got != "ˈola" {
		t.Fatalf("apostrophe fold: got %q", got)
	}
	if got := n.Normalize("o:la"); got != "oːla" {
		t.Fatalf("colon fold: got %q", got)
	}
	if got := n.Normalize("gato"); got != "ɡato" {
		t.Fatalf("ascii g fold: got %q", got)
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	n := NewNormalizer()
	if got := n.Normalize("o   l    a"); got != "o l a" {
		t.Fatalf("whitespace collapse: got %q", got)
	}
}

func TestNormalizeAllowList(t *testing.T) {
	n := NewNormalizer(WithAllowList("ola"))
	got := n.Normalize("o l a x")
	if got != "o l a" {
		t.Fatalf("allow-list filter: got %q", got)
	}
}

func TestNormalizeDenyList(t *testing.T) {
	n := NewNormalizer(WithDenyList("x"))
	got := n.Normalize("o l a x")
	if got != "o l a" {
		t.Fatalf("deny-list filter: got %q", got)
	}
}

func TestNormalizeReplacements(t *testing.T) {
	n := NewNormalizer(WithReplacements(map[string]string{
		"rr": "r",
		"r":  "ɾ",
	}))
	// longest-match-first means "rr" wins over two separate "r" matches
	if got := n.Normalize("perro"); got != "pero" {
		t.Fatalf("replacement ordering: got %q", got)
	}
}
