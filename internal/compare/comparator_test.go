package compare

import "testing"

func TestCompareIdentity(t *testing.T) {
	xs := []string{"o", "l", "a"}
	r := NewLevenshteinComparator().Compare(xs, xs, DefaultWeights())
	if r.PER != 0 {
		t.Fatalf("PER = %v, want 0", r.PER)
	}
	if r.Insertions != 0 || r.Deletions != 0 || r.Substitutions != 0 {
		t.Fatalf("expected no errors, got %+v", r)
	}
	for _, op := range r.Ops {
		if op.Kind != OpMatch {
			t.Fatalf("expected all match ops, got %v", op)
		}
	}
}

func TestCompareSymmetryOfCounts(t *testing.T) {
	a := []string{"o", "l", "a"}
	b := []string{"o", "l", "a", "s"}
	fwd := NewLevenshteinComparator().Compare(a, b, DefaultWeights())
	rev := NewLevenshteinComparator().Compare(b, a, DefaultWeights())

	if fwd.Insertions != rev.Deletions {
		t.Fatalf("fwd.Insertions=%d != rev.Deletions=%d", fwd.Insertions, rev.Deletions)
	}
	if fwd.Deletions != rev.Insertions {
		t.Fatalf("fwd.Deletions=%d != rev.Insertions=%d", fwd.Deletions, rev.Insertions)
	}
	if fwd.Substitutions != rev.Substitutions {
		t.Fatalf("substitutions not symmetric: %d vs %d", fwd.Substitutions, rev.Substitutions)
	}
	if fwd.Matches != rev.Matches {
		t.Fatalf("matches not symmetric: %d vs %d", fwd.Matches, rev.Matches)
	}
}

func TestCompareOpAccounting(t *testing.T) {
	tests := [][2][]string{
		{{"o", "l", "a"}, {"o", "l", "a"}},
		{{"o", "l", "a"}, {"o", "ɾ", "a"}},
		{{"o", "l", "a"}, {"o", "l", "a", "s"}},
		{{"h", "o", "l", "a"}, {"o", "l", "a"}},
		{{}, {}},
		{{}, {"a"}},
	}
	for _, tt := range tests {
		ref, hyp := tt[0], tt[1]
		r := NewLevenshteinComparator().Compare(ref, hyp, DefaultWeights())
		if r.Matches+r.Substitutions+r.Deletions != r.TotalRefTokens {
			t.Fatalf("ref accounting broken for %v/%v: %+v", ref, hyp, r)
		}
		if r.Matches+r.Substitutions+r.Insertions != len(hyp) {
			t.Fatalf("hyp accounting broken for %v/%v: %+v", ref, hyp, r)
		}
	}
}

func TestComparePERBounds(t *testing.T) {
	ref := []string{"o", "l", "a"}
	hyp := []string{"o", "ɾ", "a", "s"}
	r := NewLevenshteinComparator().Compare(ref, hyp, DefaultWeights())
	if r.PER < 0 {
		t.Fatalf("PER negative: %v", r.PER)
	}
	bound := float64(r.Substitutions+r.Deletions+r.Insertions) / float64(max(len(ref), 1))
	if r.PER > bound+1e-9 {
		t.Fatalf("PER %v exceeds bound %v", r.PER, bound)
	}
}

func TestComparePERDivisorAtZeroRef(t *testing.T) {
	// Open Question 1, resolved: no cap. Empty ref + non-empty hyp yields
	// PER == number of insertions (possibly > 1).
	r := NewLevenshteinComparator().Compare(nil, []string{"a", "b", "c"}, DefaultWeights())
	if r.PER != 3 {
		t.Fatalf("PER = %v, want 3 (uncapped)", r.PER)
	}

	empty := NewLevenshteinComparator().Compare(nil, nil, DefaultWeights())
	if empty.PER != 0 {
		t.Fatalf("PER for both-empty = %v, want 0", empty.PER)
	}
}

func TestS1ExactMatch(t *testing.T) {
	r := NewLevenshteinComparator().Compare([]string{"o", "l", "a"}, []string{"o", "l", "a"}, DefaultWeights())
	if r.PER != 0 || len(r.Ops) != 3 {
		t.Fatalf("unexpected result: %+v", r)
	}
}

func TestS2Substitution(t *testing.T) {
	r := NewLevenshteinComparator().Compare([]string{"o", "l", "a"}, []string{"o", "ɾ", "a"}, DefaultWeights())
	if r.PER != 1.0/3.0 {
		t.Fatalf("PER = %v, want 1/3", r.PER)
	}
	want := []Op{{OpMatch, "o", "o"}, {OpSubstitute, "l", "ɾ"}, {OpMatch, "a", "a"}}
	assertOps(t, r.Ops, want)
	if r.PerPhoneme["l"].Substitutions != 1 {
		t.Fatalf("per_phoneme[l].substitutions = %d, want 1", r.PerPhoneme["l"].Substitutions)
	}
}

func TestS3Insertion(t *testing.T) {
	r := NewLevenshteinComparator().Compare([]string{"o", "l", "a"}, []string{"o", "l", "a", "s"}, DefaultWeights())
	if r.PER != 1.0/3.0 {
		t.Fatalf("PER = %v, want 1/3", r.PER)
	}
	last := r.Ops[len(r.Ops)-1]
	if last.Kind != OpInsert || last.Hyp != "s" {
		t.Fatalf("last op = %+v, want insert s", last)
	}
	if r.PerPhoneme["s"].Insertions != 1 {
		t.Fatalf("per_phoneme[s].insertions = %d, want 1", r.PerPhoneme["s"].Insertions)
	}
}

func TestS4Deletion(t *testing.T) {
	r := NewLevenshteinComparator().Compare([]string{"h", "o", "l", "a"}, []string{"o", "l", "a"}, DefaultWeights())
	if r.PER != 0.25 {
		t.Fatalf("PER = %v, want 0.25", r.PER)
	}
	first := r.Ops[0]
	if first.Kind != OpDelete || first.Ref != "h" {
		t.Fatalf("first op = %+v, want delete h", first)
	}
}

func assertOps(t *testing.T, got, want []Op) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("ops length = %d, want %d (%+v)", len(got), len(want), got)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("op[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
