package history

import (
	"context"
	"sync"
	"testing"

	"ipakernel/internal/compare"
)

func TestRecordAttemptDistinctIDsStableOrder(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]string, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			id, err := m.RecordAttempt(ctx, "u1", "es-mx", "ola", 90, 0.1, nil, nil)
			if err != nil {
				t.Errorf("RecordAttempt: %v", err)
			}
			ids[idx] = id
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{})
	for _, id := range ids {
		if id == "" {
			t.Fatalf("empty attempt id")
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate attempt id %s", id)
		}
		seen[id] = struct{}{}
	}

	attempts, err := m.GetAttempts(ctx, "u1", "", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(attempts) != 20 {
		t.Fatalf("expected 20 attempts, got %d", len(attempts))
	}

	again, err := m.GetAttempts(ctx, "u1", "", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := range attempts {
		if again[i].AttemptID != attempts[i].AttemptID {
			t.Fatalf("visible order changed between reads at index %d", i)
		}
	}
}

func TestGetAttemptsNewestFirst(t *testing.T) {
	m := NewManager()
	ctx := context.Background()
	first, _ := m.RecordAttempt(ctx, "u1", "es-mx", "ola", 90, 0.1, nil, nil)
	second, _ := m.RecordAttempt(ctx, "u1", "es-mx", "hola", 80, 0.2, nil, nil)

	attempts, err := m.GetAttempts(ctx, "u1", "", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(attempts) != 2 || attempts[0].AttemptID != second || attempts[1].AttemptID != first {
		t.Fatalf("expected newest-first order, got %+v", attempts)
	}
}

func TestMasteryThresholds(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{0.0, "mastered"},
		{0.04, "mastered"},
		{0.05, "proficient"},
		{0.19, "proficient"},
		{0.20, "developing"},
		{0.49, "developing"},
		{0.50, "beginner"},
		{0.99, "beginner"},
	}
	for _, tt := range tests {
		if got := MasteryLevel(tt.rate); got != tt.want {
			t.Errorf("MasteryLevel(%v) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}

func TestPhonemeStatsAggregation(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	ops := []compare.Op{
		{Kind: compare.OpMatch, Ref: "l", Hyp: "l"},
		{Kind: compare.OpSubstitute, Ref: "l", Hyp: "ɾ"},
		{Kind: compare.OpInsert, Hyp: "s"},
	}
	if _, err := m.RecordAttempt(ctx, "u1", "es-mx", "ola", 50, 0.5, ops, nil); err != nil {
		t.Fatal(err)
	}

	stats, err := m.GetPhonemeStats(ctx, "u1", "es-mx")
	if err != nil {
		t.Fatal(err)
	}
	var lStats *PhonemeMasteryStats
	for i := range stats {
		if stats[i].Phoneme == "l" {
			lStats = &stats[i]
		}
	}
	if lStats == nil {
		t.Fatalf("expected phoneme 'l' in stats, got %+v", stats)
	}
	if lStats.Attempts != 2 || lStats.Correct != 1 {
		t.Fatalf("expected 2 attempts / 1 correct for 'l', got %+v", lStats)
	}
	if _, ok := findPhoneme(stats, "s"); ok {
		t.Fatalf("insertion-only phoneme 's' should not contribute to ref-anchored stats")
	}
}

func findPhoneme(stats []PhonemeMasteryStats, p string) (PhonemeMasteryStats, bool) {
	for _, s := range stats {
		if s.Phoneme == p {
			return s, true
		}
	}
	return PhonemeMasteryStats{}, false
}

func TestScoreFromPER(t *testing.T) {
	if got := ScoreFromPER(0); got != 100 {
		t.Fatalf("got %v, want 100", got)
	}
	if got := ScoreFromPER(1); got != 0 {
		t.Fatalf("got %v, want 0", got)
	}
	if got := ScoreFromPER(2); got != 0 {
		t.Fatalf("got %v, want 0 (clamped)", got)
	}
}
