package textref

import (
	"context"
	"testing"
)

type fakeFallback struct {
	resolved map[string]string
	called   [][]string
}

func (f *fakeFallback) Phonemize(ctx context.Context, words []string, lang string) (map[string]string, error) {
	f.called = append(f.called, words)
	out := make(map[string]string)
	for _, w := range words {
		if v, ok := f.resolved[w]; ok {
			out[w] = v
		}
	}
	return out, nil
}

func TestToIPALexiconHit(t *testing.T) {
	p := NewLexiconProvider(map[string]string{
		"ola": "o l a",
	}, nil)
	r, err := p.ToIPA(context.Background(), "ola", "es-mx")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"o", "l", "a"}
	if len(r.Tokens) != len(want) {
		t.Fatalf("got %v, want %v", r.Tokens, want)
	}
	for i := range want {
		if r.Tokens[i] != want[i] {
			t.Fatalf("got %v, want %v", r.Tokens, want)
		}
	}
}

func TestToIPABatchesOOVIntoOneCall(t *testing.T) {
	fb := &fakeFallback{resolved: map[string]string{
		"zorro": "s o r o",
		"gato":  "g a t o",
	}}
	p := NewLexiconProvider(map[string]string{"ola": "o l a"}, fb)
	r, err := p.ToIPA(context.Background(), "ola zorro gato", "es-mx")
	if err != nil {
		t.Fatal(err)
	}
	if len(fb.called) != 1 {
		t.Fatalf("expected 1 batched fallback call, got %d", len(fb.called))
	}
	if len(fb.called[0]) != 2 {
		t.Fatalf("expected 2 OOV words batched, got %v", fb.called[0])
	}
	if len(r.Tokens) == 0 {
		t.Fatalf("expected tokens from lexicon + fallback, got none")
	}
}

func TestToIPAFallbackAbsentSkipsOOV(t *testing.T) {
	p := NewLexiconProvider(map[string]string{"ola": "o l a"}, nil)
	r, err := p.ToIPA(context.Background(), "ola xyzzy", "es-mx")
	if err != nil {
		t.Fatal(err)
	}
	if r.Meta["oov_skipped"].(int) != 1 {
		t.Fatalf("expected oov_skipped=1, got %v", r.Meta["oov_skipped"])
	}
	want := []string{"o", "l", "a"}
	if len(r.Tokens) != len(want) {
		t.Fatalf("got %v, want only lexicon tokens %v", r.Tokens, want)
	}
}
