// Package chatapi implements both sides of the generation endpoint wire
// contract: the HTTP client the engine uses for round trips, the server
// handler that turns a prompt into response text via a chat model, and a
// direct in-process generator for embedders that own the model.
package chatapi

import "github.com/pablobispo/scribeai"

// ChatRequest is the POST body of one round trip.
type ChatRequest struct {
	Prompt      string                `json:"prompt"`
	Context     *scribeai.TurnContext `json:"context,omitempty"`
	UserMessage string                `json:"userMessage,omitempty"`
}

// ChatResponse is the success body.
type ChatResponse struct {
	Text string `json:"text"`
}

// ErrorResponse is the body of 4xx/5xx replies.
type ErrorResponse struct {
	Error string `json:"error"`
}
