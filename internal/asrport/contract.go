// Package asrport defines the C4 ASR plugin contract the kernel composes
// against: a concrete-engine transcription API generalized into an
// output_type-gated port any ASR backend can satisfy.
package asrport

import (
	"context"

	"ipakernel/internal/audio"
)

// OutputType is the declared shape of a backend's transcription output. The
// kernel refuses to wire a backend whose OutputType is not IPA unless the
// backend explicitly opts into RequireIPA()==false or the kernel's
// Config.OverrideRequireIPA is set.
type OutputType int

const (
	OutputIPA OutputType = iota
	OutputText
	OutputNone
)

func (o OutputType) String() string {
	switch o {
	case OutputIPA:
		return "ipa"
	case OutputText:
		return "text"
	default:
		return "none"
	}
}

// Transcript is a backend's raw response.
type Transcript struct {
	Tokens  []string
	RawText string
	Meta    map[string]any
}

// Backend is the C4 plugin contract.
type Backend interface {
	Setup(ctx context.Context) error
	Teardown(ctx context.Context) error
	OutputType() OutputType
	// RequireIPA reports whether the kernel must reject this backend when
	// OutputType() != OutputIPA. True by default; a diagnostic-only
	// backend may override to false as an explicit escape hatch.
	RequireIPA() bool
	Transcribe(ctx context.Context, h audio.Handle, lang string) (Transcript, error)
}
