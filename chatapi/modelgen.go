package chatapi

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/pablobispo/scribeai"
)

// ModelGenerator runs round trips directly against a chat model, skipping the
// HTTP hop. The prompt assembly is identical to the server handler's, so a
// session behaves the same either way.
type ModelGenerator struct {
	chatModel model.BaseChatModel
}

var _ scribeai.Generator = (*ModelGenerator)(nil)

func NewModelGenerator(chatModel model.BaseChatModel) *ModelGenerator {
	return &ModelGenerator{chatModel: chatModel}
}

func (g *ModelGenerator) Generate(ctx context.Context, req *scribeai.Request) (string, error) {
	prompt := modelPrompt(&ChatRequest{
		Prompt:      req.Prompt,
		Context:     req.Context,
		UserMessage: req.UserMessage,
	})
	resp, err := g.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	if resp.Content == "" {
		return "", fmt.Errorf("LLM call failed: empty response")
	}
	return resp.Content, nil
}
