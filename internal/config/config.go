package config

import (
	"flag"
	"time"
)

// Config holds the flags needed to compose a kernel: pack location, cache
// sizing, comparator weights and worker-pool size. YAML loading stays out
// of scope; this loader only reads process flags.
type Config struct {
	PackDir string

	CacheCapacity int
	CacheTTL      time.Duration

	WeightSubstitute float64
	WeightInsert     float64
	WeightDelete     float64

	WorkerPoolSize int

	G2PEndpoint string
	G2PTimeout  time.Duration

	// AudioPath, Text and Lang drive a single ad-hoc evaluation from
	// main.go; the HTTP layer this core would sit behind is out of scope.
	AudioPath string
	Text      string
	Lang      string
}

// Load parses process flags into a Config. Call once at startup.
func Load() *Config {
	packDir := flag.String("pack-dir", "testdata/packs/es-mx", "Directory containing the language pack (manifest, inventory, lexicon, checksums.sha256)")

	cacheCapacity := flag.Int("cache-capacity", 512, "Maximum number of entries in the TextRef cache")
	cacheTTL := flag.Duration("cache-ttl", 0, "TextRef cache entry TTL (0 disables expiry)")

	wSub := flag.Float64("weight-substitute", 1.0, "Comparator substitution weight")
	wIns := flag.Float64("weight-insert", 1.0, "Comparator insertion weight")
	wDel := flag.Float64("weight-delete", 1.0, "Comparator deletion weight")

	pool := flag.Int("worker-pool-size", 4, "Maximum number of concurrent evaluation requests")

	g2pEndpoint := flag.String("g2p-endpoint", "", "Base URL of the external G2P fallback service (empty disables it)")
	g2pTimeout := flag.Duration("g2p-timeout", 5*time.Second, "Timeout for a single G2P fallback call")

	audioPath := flag.String("audio", "", "Path to a WAV or MP3 recording of the attempt")
	text := flag.String("text", "", "Reference text the attempt is being scored against")
	lang := flag.String("lang", "", "BCP-47 language tag (defaults to the loaded pack's language)")

	flag.Parse()

	return &Config{
		PackDir:          *packDir,
		CacheCapacity:    *cacheCapacity,
		CacheTTL:         *cacheTTL,
		WeightSubstitute: *wSub,
		WeightInsert:     *wIns,
		WeightDelete:     *wDel,
		WorkerPoolSize:   *pool,
		G2PEndpoint:      *g2pEndpoint,
		G2PTimeout:       *g2pTimeout,
		AudioPath:        *audioPath,
		Text:             *text,
		Lang:             *lang,
	}
}
