package scribeai

import "context"

// TurnContext is the side-channel progress object attached to follow-up round
// trips. Field names match the wire contract of the generation endpoint.
type TurnContext struct {
	FormFields        []Field `json:"formFields"`
	CurrentFieldIndex int     `json:"currentFieldIndex"`
	TotalFields       int     `json:"totalFields"`
}

// Request carries everything one round trip needs. The initial round trip has
// neither Context nor UserMessage.
type Request struct {
	Prompt      string
	Context     *TurnContext
	UserMessage string
}

// Generator performs one round trip against the generation service and
// returns the assistant's display text. The engine treats the text as opaque:
// it never inspects it beyond appending it to the transcript.
type Generator interface {
	Generate(ctx context.Context, req *Request) (string, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req *Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req *Request) (string, error) {
	return f(ctx, req)
}
