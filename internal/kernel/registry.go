package kernel

import (
	"ipakernel/internal/asrport"
	"ipakernel/internal/audio"
	"ipakernel/internal/compare"
	"ipakernel/internal/textref"
)

// Explicit per-capability registries, keyed by plugin name: one name-keyed
// map per capability rather than a single shared type-switch factory, so
// an unknown name fails at composition time (kernel.New), not at first Run.

// ASRFactory builds an ASR backend from raw plugin configuration.
type ASRFactory func(cfg map[string]any) (asrport.Backend, error)

// TextRefFactory builds a text-to-IPA provider from raw plugin configuration.
type TextRefFactory func(cfg map[string]any) (textref.Provider, error)

// ComparatorFactory builds a comparator from raw plugin configuration.
type ComparatorFactory func(cfg map[string]any) (compare.Comparator, error)

// PreprocessorFactory builds an audio preprocessor from raw plugin
// configuration.
type PreprocessorFactory func(cfg map[string]any) (audio.Preprocessor, error)

// Registry holds the four capability registries the Kernel composes
// plugins from.
type Registry struct {
	asr          map[string]ASRFactory
	textref      map[string]TextRefFactory
	comparator   map[string]ComparatorFactory
	preprocessor map[string]PreprocessorFactory
}

// NewRegistry returns an empty registry ready for RegisterX calls.
func NewRegistry() *Registry {
	return &Registry{
		asr:          make(map[string]ASRFactory),
		textref:      make(map[string]TextRefFactory),
		comparator:   make(map[string]ComparatorFactory),
		preprocessor: make(map[string]PreprocessorFactory),
	}
}

// RegisterASR adds an ASR backend factory under name.
func (r *Registry) RegisterASR(name string, f ASRFactory) { r.asr[name] = f }

// RegisterTextRef adds a text-to-IPA provider factory under name.
func (r *Registry) RegisterTextRef(name string, f TextRefFactory) { r.textref[name] = f }

// RegisterComparator adds a comparator factory under name.
func (r *Registry) RegisterComparator(name string, f ComparatorFactory) { r.comparator[name] = f }

// RegisterPreprocessor adds a preprocessor factory under name.
func (r *Registry) RegisterPreprocessor(name string, f PreprocessorFactory) {
	r.preprocessor[name] = f
}

func (r *Registry) buildASR(name string, cfg map[string]any) (asrport.Backend, error) {
	f, ok := r.asr[name]
	if !ok {
		return nil, unknownPluginError("asr", name)
	}
	return f(cfg)
}

func (r *Registry) buildTextRef(name string, cfg map[string]any) (textref.Provider, error) {
	f, ok := r.textref[name]
	if !ok {
		return nil, unknownPluginError("textref", name)
	}
	return f(cfg)
}

func (r *Registry) buildComparator(name string, cfg map[string]any) (compare.Comparator, error) {
	f, ok := r.comparator[name]
	if !ok {
		return nil, unknownPluginError("comparator", name)
	}
	return f(cfg)
}

func (r *Registry) buildPreprocessor(name string, cfg map[string]any) (audio.Preprocessor, error) {
	f, ok := r.preprocessor[name]
	if !ok {
		return nil, unknownPluginError("preprocessor", name)
	}
	return f(cfg)
}
