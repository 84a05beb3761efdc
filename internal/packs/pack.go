// Package packs loads immutable language packs (manifest, inventory,
// lexicon, checksums) from disk and verifies their integrity.
package packs

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ipakernel/internal/textref"
)

// Manifest describes a pack per §6 "Language pack layout (on-disk)".
type Manifest struct {
	ID        string   `json:"id"`
	Version   string   `json:"version"`
	Language  string   `json:"language"`
	Dialect   string   `json:"dialect,omitempty"`
	Inventory string   `json:"inventory"`
	Lexicon   string   `json:"lexicon"`
	Sources   []string `json:"sources,omitempty"`
	License   string   `json:"license,omitempty"`
}

// Inventory lists the phoneme set a pack declares.
type Inventory struct {
	Consonants []string `json:"consonants"`
	Vowels     []string `json:"vowels"`
}

// Pack is an immutable, loaded language pack. Once loaded it is never
// mutated; multiple plugins may hold read-only borrows of the same *Pack
// concurrently without synchronization, per §9's ownership guidance.
type Pack struct {
	Dir       string
	Manifest  Manifest
	Inventory Inventory
	// Lexicon maps a normalized word to its space-separated IPA string,
	// tokenizable per §4.2.
	Lexicon map[string]string
}

// Load reads manifest/inventory/lexicon from dir. It does not verify
// checksums; call Verify (integrity.go) separately when that is required.
func Load(dir string) (*Pack, error) {
	manifestPath := filepath.Join(dir, "manifest.json")
	manifestBytes, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var manifest Manifest
	if err := json.Unmarshal(manifestBytes, &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	inventoryBytes, err := os.ReadFile(filepath.Join(dir, manifest.Inventory))
	if err != nil {
		return nil, fmt.Errorf("reading inventory: %w", err)
	}
	var inventory Inventory
	if err := json.Unmarshal(inventoryBytes, &inventory); err != nil {
		return nil, fmt.Errorf("parsing inventory: %w", err)
	}

	lexicon, err := loadLexicon(filepath.Join(dir, manifest.Lexicon))
	if err != nil {
		return nil, fmt.Errorf("reading lexicon: %w", err)
	}

	return &Pack{
		Dir:       dir,
		Manifest:  manifest,
		Inventory: inventory,
		Lexicon:   lexicon,
	}, nil
}

// loadLexicon reads a "word<TAB>ipa string" per-line lexicon file. Keys are
// folded through textref.NormalizeWord at load time, mirroring the lookup
// word's own fold in textref.LexiconProvider.ToIPA, so a lexicon file
// written in any Unicode normalization form still matches lookups regardless
// of the form the caller's text arrives in.
func loadLexicon(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lexicon := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			continue
		}
		lexicon[textref.NormalizeWord(parts[0])] = strings.TrimSpace(parts[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lexicon, nil
}
