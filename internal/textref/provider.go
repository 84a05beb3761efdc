// Package textref implements the C5 Text-to-IPA port: a lexicon-first
// provider with an external G2P fallback for out-of-vocabulary words.
package textref

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Result is a provider's response.
type Result struct {
	Tokens []string
	Meta   map[string]any
}

// Provider is the C5 plugin contract.
type Provider interface {
	Setup(ctx context.Context) error
	Teardown(ctx context.Context) error
	ToIPA(ctx context.Context, text, lang string) (Result, error)
}

// G2PFallback is the external rule-based phonemizer consulted for
// out-of-vocabulary words. A nil G2PFallback is legal: OOV words then
// contribute no tokens, per §4.5 step 6.
type G2PFallback interface {
	Phonemize(ctx context.Context, words []string, lang string) (map[string]string, error)
}

// LexiconProvider implements the five-step algorithm of §4.5 against a
// pack's lexicon map.
type LexiconProvider struct {
	Lexicon map[string]string
	Fallback G2PFallback
}

// NewLexiconProvider builds a provider over the given lexicon (normalized
// word -> space-separated IPA string) with an optional G2P fallback.
func NewLexiconProvider(lexicon map[string]string, fallback G2PFallback) *LexiconProvider {
	return &LexiconProvider{Lexicon: lexicon, Fallback: fallback}
}

func (p *LexiconProvider) Setup(ctx context.Context) error    { return nil }
func (p *LexiconProvider) Teardown(ctx context.Context) error { return nil }

// ToIPA tokenizes text on whitespace, normalizes each word, looks each up in
// the lexicon, batches OOV words into one G2P fallback call, then
// reassembles in original order.
func (p *LexiconProvider) ToIPA(ctx context.Context, text, lang string) (Result, error) {
	words := strings.Fields(text)
	normalized := make([]string, len(words))
	for i, w := range words {
		normalized[i] = NormalizeWord(w)
	}

	perWordIPA := make([]string, len(words))
	present := make([]bool, len(words))
	var oov []string
	oovIndex := make(map[string][]int)

	for i, w := range normalized {
		if ipaStr, ok := p.Lexicon[w]; ok {
			perWordIPA[i] = ipaStr
			present[i] = true
			continue
		}
		if _, seen := oovIndex[w]; !seen {
			oov = append(oov, w)
		}
		oovIndex[w] = append(oovIndex[w], i)
	}

	oovSkipped := 0
	if len(oov) > 0 && p.Fallback != nil {
		resolved, err := p.Fallback.Phonemize(ctx, oov, lang)
		if err != nil {
			// §4.5 step 6: if the fallback fails, OOV words contribute no
			// tokens; this is not an error.
			resolved = nil
		}
		for _, w := range oov {
			ipaStr, ok := resolved[w]
			for _, idx := range oovIndex[w] {
				if ok {
					perWordIPA[idx] = ipaStr
					present[idx] = true
				} else {
					oovSkipped++
				}
			}
		}
	} else {
		for _, w := range oov {
			oovSkipped += len(oovIndex[w])
		}
	}

	var tokens []string
	for i := range words {
		if !present[i] {
			continue
		}
		for _, tok := range strings.Fields(perWordIPA[i]) {
			tokens = append(tokens, tok)
		}
	}

	return Result{
		Tokens: tokens,
		Meta: map[string]any{
			"oov_skipped": oovSkipped,
			"lang":        lang,
		},
	}, nil
}

// NormalizeWord implements §4.5 step 2: NFD-fold, lowercase, strip
// punctuation except ' and -, strip whitespace. NFD is applied first so
// lookup keys are robust to whichever composed/decomposed form the caller's
// text arrives in; lexicon keys are folded identically at load time
// (packs.loadLexicon), so the two sides always compare equal regardless of
// input normalization form.
func NormalizeWord(w string) string {
	w = norm.NFD.String(strings.ToLower(strings.TrimSpace(w)))
	var b strings.Builder
	b.Grow(len(w))
	for _, r := range w {
		if r == '\'' || r == '-' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
