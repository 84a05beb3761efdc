// Package ipa canonicalizes and tokenizes provider-specific IPA text so
// downstream comparison sees a single stable representation regardless of
// which ASR or G2P backend produced it.
package ipa

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Token is a single segmental unit: a base IPA symbol plus any attached
// diacritics, length marks, and tie-barred partners. Kept as a plain string
// (not a distinct named type) so callers can pass []Token where []string is
// expected at JSON boundaries, rather than introducing a wrapper type.
type Token = string

// zeroWidthAndBOM is the set of zero-width / BOM-like code points stripped
// before folding, per §4.1 step 2.
var zeroWidthAndBOM = map[rune]struct{}{
	'\U0000FEFF': {}, // BOM
	'​': {}, // zero width space
	'‌': {}, // zero width non-joiner
	'‍': {}, // zero width joiner
	'⁠': {}, // word joiner
}

// foldTable folds common provider-specific variants onto canonical IPA
// glyphs, per §4.1 step 3. Populated once; order does not matter since each
// entry is a single rune.
var foldTable = map[rune]rune{
	'α':  'ɑ', // Greek alpha -> IPA ɑ
	'\'': 'ˈ', // ASCII apostrophe -> primary stress
	':':  'ː', // ASCII colon -> length mark
	'~':  '̃', // ASCII tilde -> combining tilde
	'g':  'ɡ', // ASCII g -> canonical IPA ɡ (script g), never folded back
}

// Normalizer canonicalizes raw provider IPA text into the stable form the
// tokenizer expects. It is pure and safe for concurrent use.
type Normalizer struct {
	replacements []replacement // ordered by descending source length
	allowList    map[rune]struct{}
	denyList     map[rune]struct{}
}

type replacement struct {
	from string
	to   string
}

// Option configures a Normalizer at construction time.
type Option func(*Normalizer)

// WithReplacements installs a configured replacement table (§4.1 step 4).
// Entries are sorted by descending source-string length so longer matches
// win over shorter prefixes, preventing prefix overlap.
func WithReplacements(table map[string]string) Option {
	return func(n *Normalizer) {
		n.replacements = n.replacements[:0]
		for from, to := range table {
			n.replacements = append(n.replacements, replacement{from: from, to: to})
		}
		sort.Slice(n.replacements, func(i, j int) bool {
			if len(n.replacements[i].from) != len(n.replacements[j].from) {
				return len(n.replacements[i].from) > len(n.replacements[j].from)
			}
			return n.replacements[i].from < n.replacements[j].from
		})
	}
}

// WithAllowList restricts normalize output to only these runes (plus
// whitespace, always kept). Mutually exclusive in effect with WithDenyList;
// if both are set, the allow-list takes precedence per §4.1 step 5.
func WithAllowList(runes string) Option {
	return func(n *Normalizer) {
		n.allowList = make(map[rune]struct{}, len(runes))
		for _, r := range runes {
			n.allowList[r] = struct{}{}
		}
	}
}

// WithDenyList drops these runes from normalize output.
func WithDenyList(runes string) Option {
	return func(n *Normalizer) {
		n.denyList = make(map[rune]struct{}, len(runes))
		for _, r := range runes {
			n.denyList[r] = struct{}{}
		}
	}
}

// NewNormalizer builds a Normalizer with the fixed fold table plus any
// configured options.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize canonicalizes text per §4.1 steps 1-7. It never errors: unknown
// code points pass through unless filtered by an allow/deny list.
func (n *Normalizer) Normalize(text string) string {
	// Step 1: NFC composition.
	out := norm.NFC.String(text)

	// Step 2 + 3: strip zero-width/BOM, fold known variants.
	var b strings.Builder
	b.Grow(len(out))
	for _, r := range out {
		if _, drop := zeroWidthAndBOM[r]; drop {
			continue
		}
		if folded, ok := foldTable[r]; ok {
			r = folded
		}
		b.WriteRune(r)
	}
	out = b.String()

	// Step 4: configured replacement table in a single left-to-right pass,
	// longest source first; replaced text is not matched again.
	if len(n.replacements) > 0 {
		pairs := make([]string, 0, 2*len(n.replacements))
		for _, rep := range n.replacements {
			pairs = append(pairs, rep.from, rep.to)
		}
		out = strings.NewReplacer(pairs...).Replace(out)
	}

	// Step 5: allow-list or deny-list filtering.
	if n.allowList != nil {
		var filtered strings.Builder
		filtered.Grow(len(out))
		for _, r := range out {
			if unicode.IsSpace(r) {
				filtered.WriteRune(r)
				continue
			}
			if _, ok := n.allowList[r]; ok {
				filtered.WriteRune(r)
			}
		}
		out = filtered.String()
	} else if n.denyList != nil {
		var filtered strings.Builder
		filtered.Grow(len(out))
		for _, r := range out {
			if _, ok := n.denyList[r]; ok {
				continue
			}
			filtered.WriteRune(r)
		}
		out = filtered.String()
	}

	// Step 6: collapse whitespace runs.
	out = collapseWhitespace(out)

	// Step 7: re-normalize to NFC (folds/replacements may have introduced
	// decomposed sequences that now compose).
	return norm.NFC.String(out)
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
