package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/mistral-web/domain"
	"github.com/satriahrh/mistral-web/utils/log"
)

// MistralClient talks to an OpenAI-compatible chat-completions endpoint such
// as the mistral.rs server. One attempt per call, no retries; failures are
// surfaced as the typed errors in domain.
type MistralClient struct {
	serverURL string
	client    *http.Client
}

func NewMistralClient(serverURL string) *MistralClient {
	return &MistralClient{
		serverURL: serverURL,
		client:    &http.Client{Timeout: 120 * time.Second},
	}
}

type chatCompletionRequest struct {
	Model       string           `json:"model"`
	Messages    []domain.Message `json:"messages"`
	Temperature float64          `json:"temperature"`
	TopP        float64          `json:"top_p"`
	MaxTokens   int              `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate implements domain.Llm.
func (m *MistralClient) Generate(ctx context.Context, messages []domain.Message, params domain.GenerateParams) (string, error) {
	payload := chatCompletionRequest{
		// The model name is arbitrary for the mistral.rs server.
		Model:       "local-model",
		Messages:    messages,
		Temperature: params.Temperature,
		TopP:        params.TopP,
		MaxTokens:   params.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/chat/completions", m.serverURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.WithCtx(ctx).Debug("sending chat completion request",
		zap.String("url", url),
		zap.Int("messages", len(messages)),
		zap.Int("max_tokens", params.MaxTokens))

	resp, err := m.client.Do(req)
	if err != nil {
		return "", &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(resp.Body)
		return "", &domain.UpstreamError{StatusCode: resp.StatusCode, Body: string(detail)}
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", &domain.MalformedResponseError{Reason: fmt.Sprintf("decoding body: %v", err)}
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == nil {
		return "", &domain.MalformedResponseError{Reason: "missing choices[0].message.content"}
	}

	return *completion.Choices[0].Message.Content, nil
}

var _ domain.Llm = (*MistralClient)(nil)
