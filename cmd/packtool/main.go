// Command packtool generates, writes and verifies a language pack's
// checksums.sha256 (C11), a single-purpose CLI in the same style as the
// other cmd/ tools built on top of the core packages.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"ipakernel/internal/packs"
)

func main() {
	verb := flag.String("verb", "verify", "one of: verify, generate, write")
	dir := flag.String("dir", "", "pack directory")
	flag.Parse()

	if *dir == "" {
		log.Fatal("-dir is required")
	}

	switch *verb {
	case "verify":
		result, err := packs.Verify(*dir, nil)
		if err != nil {
			log.Fatalf("verify: %v", err)
		}
		out, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(out))
		if !result.Valid {
			os.Exit(1)
		}

	case "generate":
		checksums, err := packs.Generate(*dir, nil)
		if err != nil {
			log.Fatalf("generate: %v", err)
		}
		out, _ := json.MarshalIndent(checksums, "", "  ")
		fmt.Println(string(out))

	case "write":
		checksums, err := packs.Generate(*dir, nil)
		if err != nil {
			log.Fatalf("generate: %v", err)
		}
		if err := packs.Write(*dir, checksums); err != nil {
			log.Fatalf("write: %v", err)
		}
		log.Printf("wrote checksums.sha256 for %d files in %s", len(checksums), *dir)

	default:
		log.Fatalf("unknown -verb %q (want verify, generate, or write)", *verb)
	}
}
