package hint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"geoquiz/internal/logger"
	"geoquiz/internal/metrics"
)

const instruction = `You write clues for a geography quiz. Describe the country or territory named below without naming it, ` +
	`without naming its capital, and without any coordinates, latitude, longitude or degree values. ` +
	`Reply with exactly one JSON object: {"hint": "<two short sentences>", "caption": "<at most eight words>"}.`

// Client calls a generateContent-style text generation endpoint.
type Client struct {
	BaseURL string // e.g. https://generativelanguage.googleapis.com/v1beta
	APIKey  string
	Model   string
	HTTP    *http.Client
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate asks for a hint about englishName. lang, when set, is the
// language the reply should be written in.
func (c *Client) Generate(ctx context.Context, englishName, lang string) (Hint, error) {
	if c == nil || c.APIKey == "" {
		return Hint{}, ErrDisabled
	}
	prompt := instruction + "\nName: " + englishName
	if lang != "" {
		prompt += "\nWrite the JSON values in language: " + lang
	}
	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}})
	if err != nil {
		return Hint{}, err
	}
	u := strings.TrimRight(c.BaseURL, "/") + "/models/" + url.PathEscape(c.Model) + ":generateContent?key=" + url.QueryEscape(c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return Hint{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTP
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	t0 := time.Now()
	metrics.HintRequestsTotal.Inc()
	logger.L().Debug("hint_req", "name", englishName, "model", c.Model)
	resp, err := client.Do(req)
	if err != nil {
		logger.L().Error("hint_http_error", "err", err)
		metrics.HintFailTotal.Inc()
		return Hint{}, fmt.Errorf("hint request: %w", err)
	}
	defer resp.Body.Close()
	metrics.HintDurationMs.Observe(float64(time.Since(t0).Milliseconds()))
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		logger.L().Error("hint_http_status", "status", resp.StatusCode)
		metrics.HintFailTotal.Inc()
		return Hint{}, fmt.Errorf("hint endpoint returned status %d", resp.StatusCode)
	}
	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		logger.L().Error("hint_decode_error", "err", err)
		metrics.HintFailTotal.Inc()
		return Hint{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var text strings.Builder
	for _, cand := range gr.Candidates {
		for _, p := range cand.Content.Parts {
			text.WriteString(p.Text)
		}
		if text.Len() > 0 {
			break
		}
	}
	h, err := ParseHint(text.String())
	if err != nil {
		logger.L().Warn("hint_malformed", "name", englishName, "text_len", text.Len())
		metrics.HintFailTotal.Inc()
		return Hint{}, err
	}
	metrics.HintSuccessTotal.Inc()
	logger.L().Debug("hint_resp", "name", englishName, "duration_ms", time.Since(t0).Milliseconds())
	h.Source = SourceRemote
	return h, nil
}

// ParseHint extracts the {"hint", "caption"} object from model output.
// Markdown code fences and surrounding prose are tolerated; an object
// without a hint is malformed.
func ParseHint(text string) (Hint, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return Hint{}, ErrMalformed
	}
	var h Hint
	if err := json.Unmarshal([]byte(text[start:end+1]), &h); err != nil {
		return Hint{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	h.Text = strings.TrimSpace(h.Text)
	h.Caption = strings.TrimSpace(h.Caption)
	if h.Text == "" {
		return Hint{}, ErrMalformed
	}
	return h, nil
}
