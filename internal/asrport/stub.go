package asrport

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"ipakernel/internal/audio"
)

// StubBackend is a deterministic, table-fed ASR backend used for tests and
// for main.go's demo path. Concrete ONNX/Whisper backends are external per
// §1; this stub is the wiring point a real backend would replace, without
// the kernel needing to change.
type StubBackend struct {
	mu       sync.Mutex
	ready    bool
	// Responses maps a lookup key (caller-supplied, e.g. the request text)
	// to the IPA tokens the stub should "transcribe" for it.
	Responses map[string][]string
	// Default is used when the key is not found in Responses.
	Default []string
}

// NewStubBackend builds a stub with the given canned responses.
func NewStubBackend(responses map[string][]string) *StubBackend {
	return &StubBackend{Responses: responses}
}

func (s *StubBackend) Setup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
	return nil
}

func (s *StubBackend) Teardown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = false
	return nil
}

func (s *StubBackend) OutputType() OutputType { return OutputIPA }
func (s *StubBackend) RequireIPA() bool       { return true }

// Transcribe looks up tokens keyed by lang (tests key by whatever string
// the caller wired as key), falling back to Default. The key is passed via
// the handle in test doubles that need per-call routing; for the common
// case callers key on lang or embed the key into the handle via
// StubKeyHandle.
func (s *StubBackend) Transcribe(ctx context.Context, h audio.Handle, lang string) (Transcript, error) {
	s.mu.Lock()
	ready := s.ready
	s.mu.Unlock()
	if !ready {
		return Transcript{}, fmt.Errorf("stub backend not ready")
	}

	key := lang
	if kh, ok := h.(StubKeyHandle); ok {
		key = kh.Key
	}

	tokens, ok := s.Responses[key]
	if !ok {
		tokens = s.Default
	}
	return Transcript{
		Tokens:  tokens,
		RawText: strings.Join(tokens, " "),
		Meta:    map[string]any{"backend": "stub", "lang": lang},
	}, nil
}

// StubKeyHandle is a test-only audio.Handle that carries a lookup key
// instead of real samples, letting tests route StubBackend.Transcribe by
// scenario without decoding actual audio bytes.
type StubKeyHandle struct {
	Key string
}

func (StubKeyHandle) AudioHandle() {}
