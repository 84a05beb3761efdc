// Package compare implements the weighted-edit-distance alignment between a
// reference and a hypothesis IPA token sequence.
package compare

// OpKind is a closed sum type over the four alignment operation cases,
// replacing the source's stringly-typed op kinds per the design notes.
type OpKind int

const (
	OpMatch OpKind = iota
	OpSubstitute
	OpInsert
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpMatch:
		return "match"
	case OpSubstitute:
		return "substitute"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the op kind as its wire string.
func (k OpKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// Op is one alignment operation. Ref is empty for OpInsert; Hyp is empty for
// OpDelete.
type Op struct {
	Kind OpKind `json:"op"`
	Ref  string `json:"ref,omitempty"`
	Hyp  string `json:"hyp,omitempty"`
}

// PhonemeStats summarizes per-phoneme outcomes.
type PhonemeStats struct {
	Matches       int `json:"matches"`
	Substitutions int `json:"substitutions"`
	Deletions     int `json:"deletions"`
	Insertions    int `json:"insertions"`
}

// Errors returns the total non-matching count for this phoneme.
func (p PhonemeStats) Errors() int {
	return p.Substitutions + p.Deletions + p.Insertions
}

// Result is the outcome of comparing ref against hyp.
type Result struct {
	PER             float64                 `json:"per"`
	Ops             []Op                     `json:"ops"`
	TotalRefTokens  int                      `json:"total_ref_tokens"`
	Matches         int                      `json:"matches"`
	Substitutions   int                      `json:"substitutions"`
	Insertions      int                      `json:"insertions"`
	Deletions       int                      `json:"deletions"`
	PerPhoneme      map[string]PhonemeStats  `json:"per_phoneme"`
	Meta            map[string]any           `json:"meta,omitempty"`
}

// Weights are the alignment costs used to choose among equal-count paths.
// They never affect the reported counts, only which alignment is chosen.
type Weights struct {
	Substitute float64
	Insert     float64
	Delete     float64
}

// DefaultWeights returns the unit weights spec.md uses when the caller does
// not override them.
func DefaultWeights() Weights {
	return Weights{Substitute: 1.0, Insert: 1.0, Delete: 1.0}
}

// Comparator is the pure, synchronous C7 contract. Implementations must
// never suspend.
type Comparator interface {
	Compare(ref, hyp []string, weights Weights) Result
}

// LevenshteinComparator implements the weighted Levenshtein alignment of
// §4.7 with deterministic tie-breaking: diagonal (match/substitute) beats up
// (delete) beats left (insert).
type LevenshteinComparator struct{}

// NewLevenshteinComparator builds the default comparator.
func NewLevenshteinComparator() *LevenshteinComparator {
	return &LevenshteinComparator{}
}

// Compare aligns ref against hyp. The DP matrix is a flat []float64 rather
// than a gonum mat.Dense: this is a write-once cost table walked by simple
// index arithmetic, and mat.Dense's general-matrix machinery (norms,
// decompositions, BLAS dispatch) buys nothing here.
func (LevenshteinComparator) Compare(ref, hyp []string, weights Weights) Result {
	nRef := len(ref)
	nHyp := len(hyp)
	stride := nHyp + 1

	d := make([]float64, (nRef+1)*stride)
	for i := 1; i <= nRef; i++ {
		d[i*stride] = d[(i-1)*stride] + weights.Delete
	}
	for j := 1; j <= nHyp; j++ {
		d[j] = d[j-1] + weights.Insert
	}

	for i := 1; i <= nRef; i++ {
		for j := 1; j <= nHyp; j++ {
			subCost := weights.Substitute
			if ref[i-1] == hyp[j-1] {
				subCost = 0
			}
			diag := d[(i-1)*stride+(j-1)] + subCost
			up := d[(i-1)*stride+j] + weights.Delete
			left := d[i*stride+(j-1)] + weights.Insert

			best := diag
			if up < best {
				best = up
			}
			if left < best {
				best = left
			}
			d[i*stride+j] = best
		}
	}

	// Backtrace from (nRef, nHyp) to (0, 0), preferring diagonal over up
	// over left on ties, so the alignment is a pure function of the inputs.
	ops := make([]Op, 0, nRef+nHyp)
	i, j := nRef, nHyp
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0:
			subCost := weights.Substitute
			match := ref[i-1] == hyp[j-1]
			if match {
				subCost = 0
			}
			diag := d[(i-1)*stride+(j-1)] + subCost
			up := d[(i-1)*stride+j] + weights.Delete
			left := d[i*stride+(j-1)] + weights.Insert
			cur := d[i*stride+j]

			switch {
			case cur == diag:
				if match {
					ops = append(ops, Op{Kind: OpMatch, Ref: ref[i-1], Hyp: hyp[j-1]})
				} else {
					ops = append(ops, Op{Kind: OpSubstitute, Ref: ref[i-1], Hyp: hyp[j-1]})
				}
				i--
				j--
			case cur == up:
				ops = append(ops, Op{Kind: OpDelete, Ref: ref[i-1]})
				i--
			default:
				_ = left
				ops = append(ops, Op{Kind: OpInsert, Hyp: hyp[j-1]})
				j--
			}
		case i > 0:
			ops = append(ops, Op{Kind: OpDelete, Ref: ref[i-1]})
			i--
		default:
			ops = append(ops, Op{Kind: OpInsert, Hyp: hyp[j-1]})
			j--
		}
	}
	// Reverse into forward order.
	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}

	return buildResult(ops, nRef)
}

func buildResult(ops []Op, totalRefTokens int) Result {
	perPhoneme := make(map[string]PhonemeStats)
	var matches, substitutions, insertions, deletions int

	bump := func(key string, f func(*PhonemeStats)) {
		st := perPhoneme[key]
		f(&st)
		perPhoneme[key] = st
	}

	for _, op := range ops {
		switch op.Kind {
		case OpMatch:
			matches++
			bump(op.Ref, func(s *PhonemeStats) { s.Matches++ })
		case OpSubstitute:
			substitutions++
			bump(op.Ref, func(s *PhonemeStats) { s.Substitutions++ })
		case OpDelete:
			deletions++
			bump(op.Ref, func(s *PhonemeStats) { s.Deletions++ })
		case OpInsert:
			insertions++
			bump(op.Hyp, func(s *PhonemeStats) { s.Insertions++ })
		}
	}

	denom := totalRefTokens
	if denom < 1 {
		denom = 1
	}
	per := float64(substitutions+deletions+insertions) / float64(denom)

	return Result{
		PER:            per,
		Ops:            ops,
		TotalRefTokens: totalRefTokens,
		Matches:        matches,
		Substitutions:  substitutions,
		Insertions:     insertions,
		Deletions:      deletions,
		PerPhoneme:     perPhoneme,
	}
}
