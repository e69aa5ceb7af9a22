package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	appcfg "github.com/moodify/core/internal/config"
	"github.com/moodify/core/internal/models"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	jetopenai "go.jetify.com/ai/provider/openai"
	"go.uber.org/zap"
)

const (
	maxOutputTokens       = 8
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-haiku-4-5-20251001"
)

// Completer sends one system+user exchange to a language model.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// LLM asks a language model for a single base mood label and never fails:
// any error degrades to neutral.
type LLM struct {
	completer Completer
	timeout   time.Duration
	log       *zap.Logger
}

// NewLLM builds the delegate from config. A disabled or keyless provider yields
// an LLM that only short-circuits known labels.
func NewLLM(cfg appcfg.AIProvider, log *zap.Logger) (*LLM, error) {
	if log == nil {
		log = zap.NewNop()
	}
	l := &LLM{timeout: cfg.Timeout, log: log.Named("llm")}
	if !cfg.Enabled {
		return l, nil
	}
	completer, err := newCompleter(cfg)
	if err != nil {
		return nil, err
	}
	l.completer = completer
	return l, nil
}

// NewLLMWithCompleter wires a custom completer.
func NewLLMWithCompleter(c Completer, timeout time.Duration, log *zap.Logger) *LLM {
	if log == nil {
		log = zap.NewNop()
	}
	return &LLM{completer: c, timeout: timeout, log: log.Named("llm")}
}

// Enabled reports whether a provider is wired.
func (l *LLM) Enabled() bool {
	return l != nil && l.completer != nil
}

// Classify returns one label from the base set.
func (l *LLM) Classify(ctx context.Context, input string) string {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if models.IsBaseMood(trimmed) {
		return trimmed
	}
	if !l.Enabled() {
		return models.MoodNeutral
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	raw, err := l.completer.Complete(ctx, systemPrompt(), userPrompt(input))
	if err != nil {
		l.log.Warn("mood classification failed", zap.Error(err))
		return models.MoodNeutral
	}
	label, ok := parseLabel(raw)
	if !ok {
		l.log.Warn("unexpected model reply", zap.String("reply", truncateText(raw, 80)))
		return models.MoodNeutral
	}
	return label
}

func newCompleter(cfg appcfg.AIProvider) (Completer, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("AI provider api key is empty")
	}
	switch normalizeProviderType(cfg.Type) {
	case "openai-compatible", "openaicompatible":
		model := cfg.Model
		if model == "" {
			model = defaultOpenAIModel
		}
		return &compatCompleter{
			endpoint: normalizeOpenAICompatibleEndpoint(cfg.Endpoint),
			apiKey:   apiKey,
			model:    model,
			client:   &http.Client{Timeout: 30 * time.Second},
		}, nil
	case "anthropic":
		model := cfg.Model
		if model == "" {
			model = defaultAnthropicModel
		}
		opts := []anthropicoption.RequestOption{
			anthropicoption.WithAPIKey(apiKey),
			anthropicoption.WithMaxRetries(0),
		}
		if cfg.Endpoint != "" {
			opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(cfg.Endpoint, "/")))
		}
		client := anthropicclient.NewClient(opts...)
		return &sdkCompleter{model: jetanthropic.NewLanguageModel(model, jetanthropic.WithClient(client))}, nil
	case "openai":
		model := cfg.Model
		if model == "" {
			model = defaultOpenAIModel
		}
		opts := []openaioption.RequestOption{
			openaioption.WithAPIKey(apiKey),
			openaioption.WithMaxRetries(0),
		}
		if normalized := normalizeOpenAIBaseURL(cfg.Endpoint); normalized != "" {
			opts = append(opts, openaioption.WithBaseURL(normalized))
		}
		client := openaiclient.NewClient(opts...)
		return &sdkCompleter{model: jetopenai.NewLanguageModel(model, jetopenai.WithClient(client))}, nil
	default:
		return nil, fmt.Errorf("unsupported AI provider type %q", cfg.Type)
	}
}

// sdkCompleter goes through go.jetify.com/ai so openai and anthropic share one call path.
type sdkCompleter struct {
	model jetapi.LanguageModel
}

func (s *sdkCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := jetai.GenerateText(
		ctx,
		buildPromptMessages(system, prompt),
		jetai.WithModel(s.model),
		jetai.WithMaxOutputTokens(maxOutputTokens),
	)
	if err != nil {
		return "", err
	}
	return extractTextFromResponse(resp)
}

func buildPromptMessages(system, prompt string) []jetapi.Message {
	messages := make([]jetapi.Message, 0, 2)
	if strings.TrimSpace(system) != "" {
		messages = append(messages, &jetapi.SystemMessage{Content: system})
	}
	messages = append(messages, &jetapi.UserMessage{Content: jetapi.ContentFromText(prompt)})
	return messages
}

func extractTextFromResponse(resp *jetapi.Response) (string, error) {
	if resp == nil {
		return "", errors.New("empty response from AI")
	}
	var full strings.Builder
	for _, block := range resp.Content {
		textBlock, ok := block.(*jetapi.TextBlock)
		if !ok || textBlock.Text == "" {
			continue
		}
		full.WriteString(textBlock.Text)
	}
	text := full.String()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty response from AI")
	}
	return text, nil
}

// compatCompleter speaks the chat-completions wire format directly for gateways
// that only implement that endpoint.
type compatCompleter struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *compatCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if strings.TrimSpace(system) != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages, MaxTokens: maxOutputTokens})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("openai-compatible error: %d %s", resp.StatusCode, truncateText(strings.TrimSpace(string(respBody)), 200))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}
	if result.Error != nil && strings.TrimSpace(result.Error.Message) != "" {
		return "", fmt.Errorf("openai-compatible error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("empty response from AI")
	}
	return result.Choices[0].Message.Content, nil
}

func normalizeProviderType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	t = strings.ReplaceAll(t, " ", "")
	return t
}

func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/")
	}
	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		path += "/v1"
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}

func normalizeOpenAICompatibleEndpoint(raw string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return "https://api.openai.com"
	}
	return strings.TrimSuffix(base, "/v1")
}

func truncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
