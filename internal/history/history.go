// Package history implements the C9 History port: per-user attempt
// recording and phoneme-mastery aggregation.
package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"ipakernel/internal/compare"
)

// AttemptRecord is one recorded pronunciation attempt.
type AttemptRecord struct {
	AttemptID string         `json:"attempt_id"`
	UserID    string         `json:"user_id"`
	Lang      string         `json:"lang"`
	Text      string         `json:"text"`
	Score     float64        `json:"score"`
	PER       float64        `json:"per"`
	Ops       []compare.Op   `json:"ops"`
	Timestamp time.Time      `json:"timestamp"`
	Meta      map[string]any `json:"meta,omitempty"`
}

// PhonemeMasteryStats summarizes a user's outcomes for one phoneme in one
// language.
type PhonemeMasteryStats struct {
	Phoneme      string  `json:"phoneme"`
	Attempts     int     `json:"attempts"`
	Correct      int     `json:"correct"`
	ErrorRate    float64 `json:"error_rate"`
	MasteryLevel string  `json:"mastery_level"`
}

// Mastery level thresholds, per §3.
const (
	thresholdMastered   = 0.05
	thresholdProficient = 0.20
	thresholdDeveloping = 0.50
)

// MasteryLevel classifies an error rate per the fixed thresholds.
func MasteryLevel(errorRate float64) string {
	switch {
	case errorRate < thresholdMastered:
		return "mastered"
	case errorRate < thresholdProficient:
		return "proficient"
	case errorRate < thresholdDeveloping:
		return "developing"
	default:
		return "beginner"
	}
}

// Summary aggregates a user's overall progress.
type Summary struct {
	TotalAttempts int      `json:"total_attempts"`
	AvgScore      float64  `json:"avg_score"`
	Languages     []string `json:"languages"`
	TopErrors     []string `json:"top_errors"`
}

// ScoreFromPER maps a PER value to the [0,100] score domain, per §3:
// score = 100 * max(0, 1 - per), unless a pack overrides.
func ScoreFromPER(per float64) float64 {
	s := 100 * (1 - per)
	if s < 0 {
		return 0
	}
	return s
}

// Manager is a sync.RWMutex-guarded map[user_id][]AttemptRecord: lock,
// mutate the in-memory map, done. Durability is out of core per §4.9; this
// is an in-memory implementation only.
type Manager struct {
	mu       sync.RWMutex
	attempts map[string][]AttemptRecord
}

// NewManager builds an empty in-memory history manager.
func NewManager() *Manager {
	return &Manager{attempts: make(map[string][]AttemptRecord)}
}

// RecordAttempt appends a new attempt for userID, returning its
// server-assigned opaque attempt_id (UUID v4, via github.com/google/uuid).
// Appends happen under the write lock, so append order equals completion
// order: two concurrent records for the same user get distinct IDs and a
// stable visible order.
func (m *Manager) RecordAttempt(ctx context.Context, userID, lang, text string, score, per float64, ops []compare.Op, meta map[string]any) (string, error) {
	attemptID := uuid.New().String()
	rec := AttemptRecord{
		AttemptID: attemptID,
		UserID:    userID,
		Lang:      lang,
		Text:      text,
		Score:     score,
		PER:       per,
		Ops:       ops,
		Timestamp: time.Now(),
		Meta:      meta,
	}

	m.mu.Lock()
	m.attempts[userID] = append(m.attempts[userID], rec)
	m.mu.Unlock()

	return attemptID, nil
}

// GetAttempts returns userID's attempts, newest first, optionally filtered
// by lang, with limit/offset pagination.
func (m *Manager) GetAttempts(ctx context.Context, userID, lang string, limit, offset int) ([]AttemptRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.attempts[userID]
	filtered := make([]AttemptRecord, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- { // newest first
		rec := all[i]
		if lang != "" && rec.Lang != lang {
			continue
		}
		filtered = append(filtered, rec)
	}

	if offset > len(filtered) {
		return []AttemptRecord{}, nil
	}
	filtered = filtered[offset:]
	if limit > 0 && limit < len(filtered) {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

// GetPhonemeStats aggregates userID's attempts in lang into per-phoneme
// mastery stats, sorted by error_rate descending. Per §4.9: the attempt
// denominator counts ops whose ref equals the phoneme (ref-anchored ops
// only); the correct count is those ops that are matches.
func (m *Manager) GetPhonemeStats(ctx context.Context, userID, lang string) ([]PhonemeMasteryStats, error) {
	m.mu.RLock()
	records := append([]AttemptRecord(nil), m.attempts[userID]...)
	m.mu.RUnlock()

	type counter struct{ attempts, correct int }
	counters := make(map[string]*counter)

	for _, rec := range records {
		if rec.Lang != lang {
			continue
		}
		for _, op := range rec.Ops {
			if op.Ref == "" {
				continue // insertions are hyp-anchored, not ref-anchored
			}
			c, ok := counters[op.Ref]
			if !ok {
				c = &counter{}
				counters[op.Ref] = c
			}
			c.attempts++
			if op.Kind == compare.OpMatch {
				c.correct++
			}
		}
	}

	stats := make([]PhonemeMasteryStats, 0, len(counters))
	for phoneme, c := range counters {
		errorRate := float64(c.attempts-c.correct) / float64(maxInt(c.attempts, 1))
		stats = append(stats, PhonemeMasteryStats{
			Phoneme:      phoneme,
			Attempts:     c.attempts,
			Correct:      c.correct,
			ErrorRate:    errorRate,
			MasteryLevel: MasteryLevel(errorRate),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].ErrorRate != stats[j].ErrorRate {
			return stats[i].ErrorRate > stats[j].ErrorRate
		}
		return stats[i].Phoneme < stats[j].Phoneme
	})

	return stats, nil
}

// GetSummary aggregates userID's overall progress across all languages.
func (m *Manager) GetSummary(ctx context.Context, userID string) (Summary, error) {
	m.mu.RLock()
	records := append([]AttemptRecord(nil), m.attempts[userID]...)
	m.mu.RUnlock()

	if len(records) == 0 {
		return Summary{}, nil
	}

	langSet := make(map[string]struct{})
	var scoreSum float64
	errCounts := make(map[string]int)

	for _, rec := range records {
		langSet[rec.Lang] = struct{}{}
		scoreSum += rec.Score
		for _, op := range rec.Ops {
			if op.Kind != compare.OpMatch && op.Ref != "" {
				errCounts[op.Ref]++
			}
		}
	}

	languages := make([]string, 0, len(langSet))
	for l := range langSet {
		languages = append(languages, l)
	}
	sort.Strings(languages)

	type phErr struct {
		phoneme string
		count   int
	}
	errs := make([]phErr, 0, len(errCounts))
	for p, c := range errCounts {
		errs = append(errs, phErr{p, c})
	}
	sort.Slice(errs, func(i, j int) bool {
		if errs[i].count != errs[j].count {
			return errs[i].count > errs[j].count
		}
		return errs[i].phoneme < errs[j].phoneme
	})
	topN := 5
	if len(errs) < topN {
		topN = len(errs)
	}
	topErrors := make([]string, topN)
	for i := 0; i < topN; i++ {
		topErrors[i] = errs[i].phoneme
	}

	return Summary{
		TotalAttempts: len(records),
		AvgScore:      scoreSum / float64(len(records)),
		Languages:     languages,
		TopErrors:     topErrors,
	}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
