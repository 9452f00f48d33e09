package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/satriahrh/mistral-web/domain"
)

// GeminiClient is the alternate provider behind the domain.Llm port, for
// running the front end against Gemini instead of a local mistral.rs server.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context) (*GeminiClient, error) {
	client, err := genai.NewClient(
		ctx,
		&genai.ClientConfig{
			HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GeminiClient{client: client, model: "gemini-2.0-flash-001"}, nil
}

// Generate implements domain.Llm. The system message becomes the system
// instruction; user and assistant turns map to Gemini's user/model roles.
func (g *GeminiClient) Generate(ctx context.Context, messages []domain.Message, params domain.GenerateParams) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(params.Temperature)),
		TopP:            genai.Ptr(float32(params.TopP)),
		MaxOutputTokens: int32(params.MaxTokens),
	}

	var contents []*genai.Content
	for _, msg := range messages {
		switch msg.Role {
		case domain.SystemRole:
			config.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{{Text: msg.Content}},
			}
		case domain.AssistantRole:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", &domain.TransportError{Err: err}
	}

	text := resp.Text()
	if text == "" {
		return "", &domain.MalformedResponseError{Reason: "empty candidate text"}
	}
	return text, nil
}

var _ domain.Llm = (*GeminiClient)(nil)
