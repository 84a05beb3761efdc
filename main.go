package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"ipakernel/internal/asrport"
	"ipakernel/internal/audio"
	"ipakernel/internal/cache"
	"ipakernel/internal/compare"
	"ipakernel/internal/config"
	"ipakernel/internal/history"
	"ipakernel/internal/kernel"
	"ipakernel/internal/packs"
	"ipakernel/internal/textref"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	if cfg.AudioPath == "" || cfg.Text == "" {
		log.Fatal("both -audio and -text are required")
	}

	// 2. Load the language pack
	pack, err := packs.Load(cfg.PackDir)
	if err != nil {
		log.Fatalf("failed to load pack %s: %v", cfg.PackDir, err)
	}

	lang := cfg.Lang
	if lang == "" {
		lang = pack.Manifest.Language
	}

	if verifyResult, err := packs.Verify(cfg.PackDir, nil); err != nil {
		log.Printf("Note: pack integrity check skipped: %v", err)
	} else if !verifyResult.Valid {
		log.Printf("Warning: pack %s failed integrity verification: %+v", cfg.PackDir, verifyResult)
	}

	// 3. Build the capability registries and wire concrete plugins. A real
	// ONNX/Whisper ASR backend is external per §1's non-goals; the stub
	// backend is the wiring point it would replace without the kernel
	// needing to change.
	registry := kernel.NewRegistry()
	registry.RegisterPreprocessor("standard", func(map[string]any) (audio.Preprocessor, error) {
		return audio.NewStandardPreprocessor(), nil
	})
	registry.RegisterASR("stub", func(map[string]any) (asrport.Backend, error) {
		return asrport.NewStubBackend(nil), nil
	})
	registry.RegisterTextRef("lexicon", func(map[string]any) (textref.Provider, error) {
		var fallback textref.G2PFallback
		if cfg.G2PEndpoint != "" {
			fallback = textref.NewHTTPG2PFallback(cfg.G2PEndpoint, cfg.G2PTimeout)
		}
		return &textref.LexiconProvider{Lexicon: pack.Lexicon, Fallback: fallback}, nil
	})
	registry.RegisterComparator("levenshtein", func(map[string]any) (compare.Comparator, error) {
		return compare.NewLevenshteinComparator(), nil
	})

	textRefCache := cache.New(cfg.CacheCapacity, cfg.CacheTTL)

	k, err := kernel.New(kernel.Config{
		Registry: registry,
		Names: kernel.PluginNames{
			ASR:          "stub",
			TextRef:      "lexicon",
			Comparator:   "levenshtein",
			Preprocessor: "standard",
		},
		Cache: textRefCache,
		Weights: compare.Weights{
			Substitute: cfg.WeightSubstitute,
			Insert:     cfg.WeightInsert,
			Delete:     cfg.WeightDelete,
		},
	})
	if err != nil {
		log.Fatalf("failed to compose kernel: %v", err)
	}

	ctx := context.Background()
	if err := k.Setup(ctx); err != nil {
		log.Fatalf("kernel setup failed: %v", err)
	}
	defer k.Teardown(ctx)

	pool := kernel.NewPool(k, cfg.WorkerPoolSize, 0)

	// 4. Run one evaluation.
	handle := audio.PathHandle{Path: cfg.AudioPath}
	result, err := pool.Run(ctx, handle, cfg.Text, lang)
	if err != nil {
		log.Fatalf("evaluation failed: %v", err)
	}

	// 5. Record the attempt in history and print the result.
	historyMgr := history.NewManager()
	score := history.ScoreFromPER(result.PER)
	if _, err := historyMgr.RecordAttempt(ctx, "cli-user", lang, cfg.Text, score, result.PER, result.Ops, result.Meta); err != nil {
		log.Printf("Warning: failed to record attempt: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal result: %v", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
}
