package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	appcfg "github.com/moodify/core/internal/config"
)

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// ParseKind accepts "image" or "video"; anything else is derived from the content type.
func ParseKind(raw, contentType string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "image":
		return KindImage, true
	case "video":
		return KindVideo, true
	case "":
		ct := strings.ToLower(contentType)
		if strings.HasPrefix(ct, "video/") {
			return KindVideo, true
		}
		if strings.HasPrefix(ct, "image/") {
			return KindImage, true
		}
	}
	return "", false
}

// Scores maps raw detector labels to their weight.
type Scores map[string]float64

// Analyzer is the emotion detection collaborator.
type Analyzer interface {
	Analyze(ctx context.Context, kind Kind, filename string, payload []byte) (Scores, error)
}

// Client talks to the facial emotion service over multipart POSTs.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(cfg appcfg.EmotionConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type analyzeResponse struct {
	TopEmotions      json.RawMessage    `json:"top_emotions"`
	WeightedEmotions map[string]float64 `json:"weighted_emotions"`
	Error            string             `json:"error"`
}

func (c *Client) Analyze(ctx context.Context, kind Kind, filename string, payload []byte) (Scores, error) {
	path := "/analyze-image"
	if kind == KindVideo {
		path = "/analyze-video"
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(payload); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("emotion service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	var result analyzeResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, fmt.Errorf("emotion service: %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("decode emotion response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest || result.Error != "" {
		return nil, fmt.Errorf("emotion service: %d %s", resp.StatusCode, result.Error)
	}

	if len(result.WeightedEmotions) > 0 {
		return Scores(result.WeightedEmotions), nil
	}
	return parseTopEmotions(result.TopEmotions)
}

// parseTopEmotions reads either [[label, score], ...] or a bare label.
func parseTopEmotions(raw json.RawMessage) (Scores, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return Scores{}, nil
	}

	var label string
	if err := json.Unmarshal(raw, &label); err == nil {
		if label = strings.TrimSpace(label); label == "" {
			return Scores{}, nil
		}
		return Scores{label: 1}, nil
	}

	var pairs [][]json.RawMessage
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, fmt.Errorf("decode top_emotions: %w", err)
	}
	out := make(Scores, len(pairs))
	for _, pair := range pairs {
		if len(pair) == 0 {
			continue
		}
		var name string
		if err := json.Unmarshal(pair[0], &name); err != nil {
			return nil, fmt.Errorf("decode top_emotions label: %w", err)
		}
		score := 1.0
		if len(pair) > 1 {
			if err := json.Unmarshal(pair[1], &score); err != nil {
				return nil, errors.New("decode top_emotions score: not a number")
			}
		}
		out[name] += score
	}
	return out, nil
}
