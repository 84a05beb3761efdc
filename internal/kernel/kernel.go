// Package kernel implements the C8 Kernel: composes the preprocessor, ASR
// backend, text-to-IPA provider and comparator (C3-C7) behind a single
// Run entry point, an explicit, registry-driven composition root in place
// of one manager type that owns both model selection and pipeline
// orchestration.
package kernel

import (
	"context"
	"fmt"
	"log"

	"ipakernel/internal/asrport"
	"ipakernel/internal/audio"
	"ipakernel/internal/cache"
	"ipakernel/internal/compare"
	"ipakernel/internal/ipa"
	"ipakernel/internal/kernelerr"
	"ipakernel/internal/textref"
)

// state tracks the Created -> Ready -> Running / TornDown lifecycle of §4.8.
type state int

const (
	stateCreated state = iota
	stateReady
	stateRunning
	stateTornDown
	stateFailed
)

// PluginNames selects, by registry key, which concrete plugin the Kernel
// wires for each capability.
type PluginNames struct {
	ASR          string
	TextRef      string
	Comparator   string
	Preprocessor string
}

// Config bundles everything New needs to compose a Kernel.
type Config struct {
	Registry *Registry
	Names    PluginNames

	ASRConfig          map[string]any
	TextRefConfig      map[string]any
	ComparatorConfig   map[string]any
	PreprocessorConfig map[string]any

	Cache   *cache.TextRefCache
	Weights compare.Weights

	// OverrideRequireIPA allows a non-IPA ASR backend to be wired anyway,
	// the explicit escape hatch named in §4.8's validation rule.
	OverrideRequireIPA bool
}

// Kernel composes C3-C7 behind a single Run(audio, text, lang) entry point.
// Construction validates the output_type=ipa invariant once, at
// composition time, rather than on every Run.
type Kernel struct {
	state state

	preprocessor audio.Preprocessor
	asr          asrport.Backend
	textRef      textref.Provider
	comparator   compare.Comparator
	cache        *cache.TextRefCache
	weights      compare.Weights

	asrName     string
	textRefName string
}

// New builds a Kernel from cfg, instantiating each plugin via its registry
// factory and validating the output_type=ipa invariant. Unknown plugin
// names and invalid combinations fail here, never inside Run.
func New(cfg Config) (*Kernel, error) {
	if cfg.Registry == nil {
		return nil, kernelerr.New(kernelerr.ConfigurationError, "kernel: registry is required")
	}

	preproc, err := cfg.Registry.buildPreprocessor(cfg.Names.Preprocessor, cfg.PreprocessorConfig)
	if err != nil {
		return nil, kernelerr.Wrap(kernelerr.ConfigurationError, "kernel: building preprocessor", err)
	}

	asrBackend, err := cfg.Registry.buildASR(cfg.Names.ASR, cfg.ASRConfig)
	if err != nil {
		return nil, kernelerr.Wrap(kernelerr.ConfigurationError, "kernel: building asr backend", err)
	}
	if asrBackend.OutputType() != asrport.OutputIPA {
		allowed := cfg.OverrideRequireIPA || !asrBackend.RequireIPA()
		if !allowed {
			return nil, kernelerr.New(kernelerr.ConfigurationError,
				fmt.Sprintf("kernel: asr backend %q would produce '%s', no IPA, and was not overridden", cfg.Names.ASR, asrBackend.OutputType()))
		}
	}

	textRefProvider, err := cfg.Registry.buildTextRef(cfg.Names.TextRef, cfg.TextRefConfig)
	if err != nil {
		return nil, kernelerr.Wrap(kernelerr.ConfigurationError, "kernel: building textref provider", err)
	}

	comparator, err := cfg.Registry.buildComparator(cfg.Names.Comparator, cfg.ComparatorConfig)
	if err != nil {
		return nil, kernelerr.Wrap(kernelerr.ConfigurationError, "kernel: building comparator", err)
	}

	if cfg.Cache == nil {
		return nil, kernelerr.New(kernelerr.ConfigurationError, "kernel: cache is required")
	}

	weights := cfg.Weights
	if weights == (compare.Weights{}) {
		weights = compare.DefaultWeights()
	}

	return &Kernel{
		state:        stateCreated,
		preprocessor: preproc,
		asr:          asrBackend,
		textRef:      textRefProvider,
		comparator:   comparator,
		cache:        cfg.Cache,
		weights:      weights,
		asrName:      cfg.Names.ASR,
		textRefName:  cfg.Names.TextRef,
	}, nil
}

// Setup transitions Created -> Ready, calling each plugin's Setup in
// declared order. A failure transitions to Failed and propagates.
func (k *Kernel) Setup(ctx context.Context) error {
	if k.state != stateCreated {
		return kernelerr.New(kernelerr.NotReady, "kernel: Setup called out of order")
	}

	for _, step := range []struct {
		name string
		fn   func(context.Context) error
	}{
		{"preprocessor", k.preprocessor.Setup},
		{"asr", k.asr.Setup},
		{"textref", k.textRef.Setup},
	} {
		if err := step.fn(ctx); err != nil {
			k.state = stateFailed
			return kernelerr.Wrap(kernelerr.BackendFailure, "kernel: setup failed at "+step.name, err)
		}
	}

	k.state = stateReady
	return nil
}

// Teardown transitions Ready (or Failed) -> TornDown, calling plugin
// Teardown in reverse order. Idempotent; logs and swallows individual
// teardown failures rather than propagating, per §4.8.
func (k *Kernel) Teardown(ctx context.Context) {
	if k.state == stateTornDown {
		return
	}

	for _, step := range []struct {
		name string
		fn   func(context.Context) error
	}{
		{"textref", k.textRef.Teardown},
		{"asr", k.asr.Teardown},
		{"preprocessor", k.preprocessor.Teardown},
	} {
		if err := step.fn(ctx); err != nil {
			log.Printf("kernel: teardown of %s failed, continuing: %v", step.name, err)
		}
	}

	k.state = stateTornDown
}

// Run executes one evaluation: preprocess audio, transcribe, derive the
// reference IPA through the cache, compare, and annotate the result with
// meta.asr/meta.textref/meta.lang. Stages run in strict order; ctx is
// threaded through every suspension point named in §5.
func (k *Kernel) Run(ctx context.Context, h audio.Handle, text, lang string) (*compare.Result, error) {
	if k.state != stateReady {
		return nil, kernelerr.New(kernelerr.NotReady, "kernel: Run called before Setup or after Teardown")
	}
	k.state = stateRunning
	defer func() {
		if k.state == stateRunning {
			k.state = stateReady
		}
	}()

	processed, err := k.preprocessor.ProcessAudio(ctx, h)
	if err != nil {
		return nil, kernelerr.Wrap(kernelerr.BackendFailure, "kernel: preprocess", err).WithStage(kernelerr.StagePreprocess)
	}

	asrOut, err := k.asr.Transcribe(ctx, processed, lang)
	if err != nil {
		if ctx.Err() != nil {
			return nil, kernelerr.Wrap(kernelerr.Cancelled, "kernel: asr transcribe cancelled", err).WithStage(kernelerr.StageASR)
		}
		return nil, kernelerr.Wrap(kernelerr.BackendFailure, "kernel: asr transcribe", err).WithStage(kernelerr.StageASR)
	}
	hyp := ipa.Tokenize(normalizer.Normalize(joinTokens(asrOut.Tokens)), ipa.TokenizeOptions{})

	cacheKey := cache.Key(k.textRefName, lang, text)
	refResult, err := k.cache.GetOrCompute(ctx, cacheKey, func(ctx context.Context) (cache.Result, error) {
		return k.textRef.ToIPA(ctx, text, lang)
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, kernelerr.Wrap(kernelerr.Cancelled, "kernel: textref cancelled", err).WithStage(kernelerr.StageTextRef)
		}
		return nil, kernelerr.Wrap(kernelerr.BackendFailure, "kernel: textref to_ipa", err).WithStage(kernelerr.StageTextRef)
	}
	textRefOut, ok := refResult.(textref.Result)
	if !ok {
		return nil, kernelerr.New(kernelerr.IntegrityError, "kernel: cache returned unexpected type for textref result").WithStage(kernelerr.StageTextRef)
	}
	ref := ipa.Tokenize(normalizer.Normalize(joinTokens(textRefOut.Tokens)), ipa.TokenizeOptions{})

	result := k.comparator.Compare(ref, hyp, k.weights)
	result.Meta = map[string]any{
		"asr":     asrOut.Meta,
		"textref": textRefOut.Meta,
		"lang":    lang,
	}
	return &result, nil
}

// normalizer is the shared C1 normalizer used to bring both the ASR
// hypothesis and the reference transcription into comparable IPA form
// before tokenization.
var normalizer = ipa.NewNormalizer()

func joinTokens(tokens []string) string {
	out := ""
	for i, t := range tokens {
		if i > 0 {
			out += " "
		}
		out += t
	}
	return out
}

func unknownPluginError(capability, name string) error {
	return kernelerr.New(kernelerr.ConfigurationError, fmt.Sprintf("kernel: unknown %s plugin %q", capability, name))
}
