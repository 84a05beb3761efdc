// Package minimalpairs implements the C10 Minimal-Pair Generator: curated,
// per-language contrast lists plus pairs derived from a lexicon.
package minimalpairs

import (
	"log"
	"sort"
	"sync"

	"golang.org/x/text/language"
	"gonum.org/v1/gonum/stat"
)

// Pair is a single-phoneme-contrast word pair.
type Pair struct {
	Word1      string   `json:"word1"`
	IPA1Tokens []string `json:"ipa1_tokens"`
	Word2      string   `json:"word2"`
	IPA2Tokens []string `json:"ipa2_tokens"`
	Phoneme1   string   `json:"phoneme1"`
	Phoneme2   string   `json:"phoneme2"`
	Position   int      `json:"position"`
	Difficulty int      `json:"difficulty"`
	Language   string   `json:"language"`
	Tags       []string `json:"tags,omitempty"`
}

// isValid checks the §3 invariant: equal token-length sequences differing
// in exactly one position.
func (p Pair) isValid() bool {
	if len(p.IPA1Tokens) != len(p.IPA2Tokens) {
		return false
	}
	diffs := 0
	for i := range p.IPA1Tokens {
		if p.IPA1Tokens[i] != p.IPA2Tokens[i] {
			diffs++
		}
	}
	return diffs == 1
}

// Generator serves curated pairs by BCP-47 tag (with base-tag fallback) and
// derives pairs from a caller-supplied lexicon, caching the derived list
// until the lexicon changes again.
type Generator struct {
	mu       sync.Mutex
	curated  map[string][]Pair
	maxPairs int

	lexicon      map[string][]string
	derived      []Pair
	derivedValid bool
}

// NewGenerator builds a Generator seeded with the built-in curated pairs
// and the given cap on derived-pair output.
func NewGenerator(maxPairs int) *Generator {
	if maxPairs <= 0 {
		maxPairs = 1000
	}
	return &Generator{
		curated:  cloneCurated(),
		maxPairs: maxPairs,
	}
}

// CuratedPairs returns the curated list for lang, falling back to the
// BCP-47 base tag (e.g. es-mx -> es) when no exact match exists.
func (g *Generator) CuratedPairs(lang string) []Pair {
	g.mu.Lock()
	defer g.mu.Unlock()

	if pairs, ok := g.curated[lang]; ok {
		return append([]Pair(nil), pairs...)
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return nil
	}
	base, conf := tag.Base()
	if conf == language.No {
		return nil
	}
	if pairs, ok := g.curated[base.String()]; ok {
		return append([]Pair(nil), pairs...)
	}
	return nil
}

// SetLexicon installs a new lexicon (word -> IPA tokens) for derived-pair
// generation, invalidating any cached derived list.
func (g *Generator) SetLexicon(lexicon map[string][]string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lexicon = lexicon
	g.derivedValid = false
}

// DerivedPairs returns pairs derived from the installed lexicon: every
// pair of words with equal token-length sequences differing in exactly one
// position, capped at maxPairs. Each pair is emitted once, with words taken
// in sorted order (the earlier word is Word1). The derived list is cached
// until SetLexicon is called again.
func (g *Generator) DerivedPairs(lang string) []Pair {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.derivedValid {
		return append([]Pair(nil), g.derived...)
	}

	words := make([]string, 0, len(g.lexicon))
	for w := range g.lexicon {
		words = append(words, w)
	}
	sort.Strings(words) // deterministic iteration order

	var derived []Pair
outer:
	for i := 0; i < len(words); i++ {
		for j := i + 1; j < len(words); j++ {
			w1, w2 := words[i], words[j]
			t1, t2 := g.lexicon[w1], g.lexicon[w2]
			if len(t1) != len(t2) {
				continue
			}
			pos := -1
			diffs := 0
			for k := range t1 {
				if t1[k] != t2[k] {
					diffs++
					pos = k
				}
			}
			if diffs != 1 {
				continue
			}
			derived = append(derived, Pair{
				Word1: w1, IPA1Tokens: t1,
				Word2: w2, IPA2Tokens: t2,
				Phoneme1: t1[pos], Phoneme2: t2[pos],
				Position: pos, Difficulty: 1, Language: lang,
			})
			if len(derived) >= g.maxPairs {
				break outer
			}
		}
	}

	g.derived = derived
	g.derivedValid = true
	return append([]Pair(nil), derived...)
}

// ByPhoneme returns every pair (curated for lang, plus derived) where
// phoneme participates as either contrast member.
func (g *Generator) ByPhoneme(lang, phoneme string) []Pair {
	var out []Pair
	for _, p := range append(g.CuratedPairs(lang), g.DerivedPairs(lang)...) {
		if p.Phoneme1 == phoneme || p.Phoneme2 == phoneme {
			out = append(out, p)
		}
	}
	return out
}

// ByContrast returns pairs whose unordered phoneme contrast matches {p1,p2}.
func (g *Generator) ByContrast(lang, p1, p2 string) []Pair {
	var out []Pair
	for _, p := range append(g.CuratedPairs(lang), g.DerivedPairs(lang)...) {
		if (p.Phoneme1 == p1 && p.Phoneme2 == p2) || (p.Phoneme1 == p2 && p.Phoneme2 == p1) {
			out = append(out, p)
		}
	}
	return out
}

// ByDifficulty returns pairs at exactly the given difficulty (1-3).
func (g *Generator) ByDifficulty(lang string, difficulty int) []Pair {
	var out []Pair
	for _, p := range append(g.CuratedPairs(lang), g.DerivedPairs(lang)...) {
		if p.Difficulty == difficulty {
			out = append(out, p)
		}
	}
	return out
}

// ByTag returns pairs carrying tag.
func (g *Generator) ByTag(lang, tag string) []Pair {
	var out []Pair
	for _, p := range append(g.CuratedPairs(lang), g.DerivedPairs(lang)...) {
		for _, t := range p.Tags {
			if t == tag {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// DifficultyStats summarizes the spread of difficulty ratings across a
// language's curated and derived pairs, used by callers ranking which
// contrast set to drill next. Uses gonum/stat rather than a hand-rolled
// mean/stddev, matching the pack's numerical-stats dependency.
func (g *Generator) DifficultyStats(lang string) (mean, stddev float64) {
	pairs := append(g.CuratedPairs(lang), g.DerivedPairs(lang)...)
	if len(pairs) == 0 {
		return 0, 0
	}
	values := make([]float64, len(pairs))
	for i, p := range pairs {
		values[i] = float64(p.Difficulty)
	}
	mean, stddev = stat.MeanStdDev(values, nil)
	return mean, stddev
}

func cloneCurated() map[string][]Pair {
	out := make(map[string][]Pair, len(curatedSeed))
	for lang, pairs := range curatedSeed {
		valid := make([]Pair, 0, len(pairs))
		for _, p := range pairs {
			if !p.isValid() {
				log.Printf("minimalpairs: dropping curated entry %q/%q for %s: not a valid minimal pair", p.Word1, p.Word2, lang)
				continue
			}
			valid = append(valid, p)
		}
		out[lang] = valid
	}
	return out
}
