// Command benchcompare micro-benchmarks the C7 comparator over a
// configurable reference/hypothesis IPA token pair, timed the same way as a
// testing.B loop (warm up once, then time N repetitions) but runnable
// outside `go test` for ad-hoc profiling against real pack-sized sequences.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"ipakernel/internal/compare"
)

func main() {
	ref := flag.String("ref", "p e ɾ o", "reference IPA tokens, space-separated")
	hyp := flag.String("hyp", "p e r o", "hypothesis IPA tokens, space-separated")
	iterations := flag.Int("n", 100000, "number of Compare calls to time")
	flag.Parse()

	refTokens := strings.Fields(*ref)
	hypTokens := strings.Fields(*hyp)
	if len(refTokens) == 0 {
		log.Fatal("-ref must contain at least one token")
	}
	if *iterations <= 0 {
		log.Fatal("-n must be positive")
	}

	comparator := compare.NewLevenshteinComparator()
	weights := compare.DefaultWeights()

	// One untimed warm-up call, mirroring b.ResetTimer() discarding setup
	// cost before the timed loop starts.
	result := comparator.Compare(refTokens, hypTokens, weights)

	start := time.Now()
	for i := 0; i < *iterations; i++ {
		comparator.Compare(refTokens, hypTokens, weights)
	}
	elapsed := time.Since(start)

	fmt.Printf("ref=%q hyp=%q\n", refTokens, hypTokens)
	fmt.Printf("per=%.4f matches=%d substitutions=%d insertions=%d deletions=%d\n",
		result.PER, result.Matches, result.Substitutions, result.Insertions, result.Deletions)
	fmt.Printf("%d iterations in %v (%v/op)\n", *iterations, elapsed, elapsed/time.Duration(*iterations))
}
