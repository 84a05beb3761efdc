package textref

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPG2PFallback calls an external rule-based phonemizer service over
// HTTP, amortizing process startup by batching every OOV word from one
// ToIPA call into a single request. Grounded directly on
// pythainlp's client.go: same {data, metadata, error} JSON envelope, same
// bounded http.Client/Transport, same context-first method signature.
type HTTPG2PFallback struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPG2PFallback builds a fallback client against baseURL with the
// given per-call timeout.
func NewHTTPG2PFallback(baseURL string, timeout time.Duration) *HTTPG2PFallback {
	return &HTTPG2PFallback{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type g2pRequest struct {
	Words []string `json:"words"`
	Lang  string   `json:"lang,omitempty"`
}

type serviceError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e serviceError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

type serviceResponse struct {
	Data  json.RawMessage `json:"data"`
	Error *serviceError   `json:"error"`
}

// Phonemize sends every OOV word in one POST /g2p request and returns a
// word -> IPA string map. A failed or unreachable service is returned as an
// error; the caller (LexiconProvider) treats that as "no phonemization
// available" rather than a fatal failure, per §4.5 step 6. This client
// itself never caches results, positive or negative — see §9 Open Question
// 3: only the TextRef cache owns caching, and only of successful results.
func (c *HTTPG2PFallback) Phonemize(ctx context.Context, words []string, lang string) (map[string]string, error) {
	if len(words) == 0 {
		return map[string]string{}, nil
	}

	body, err := json.Marshal(g2pRequest{Words: words, Lang: lang})
	if err != nil {
		return nil, fmt.Errorf("marshal g2p request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/g2p", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build g2p request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("g2p request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading g2p response: %w", err)
	}

	var sr serviceResponse
	if err := json.Unmarshal(respBody, &sr); err != nil {
		return nil, fmt.Errorf("parsing g2p response: %w", err)
	}
	if sr.Error != nil {
		return nil, sr.Error
	}

	var data struct {
		Phonemes map[string]string `json:"phonemes"`
	}
	if err := json.Unmarshal(sr.Data, &data); err != nil {
		return nil, fmt.Errorf("parsing g2p data: %w", err)
	}

	return data.Phonemes, nil
}
