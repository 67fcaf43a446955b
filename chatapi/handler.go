package chatapi

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"
)

// Handler serves the generation endpoint: it converts a round-trip request
// into one chat-model call and returns the model's text. Upstream failures
// surface as 500; clients collapse them into the same generic apology as any
// other round-trip failure.
type Handler struct {
	chatModel model.BaseChatModel
}

// NewHandler builds the endpoint handler. A nil model is allowed and makes
// every call fail with a configuration error, mirroring a missing upstream
// credential.
func NewHandler(chatModel model.BaseChatModel) *Handler {
	return &Handler{chatModel: chatModel}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/chat", h.ServeHTTP)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}

	var req ChatRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.Prompt == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Prompt is required"})
		return
	}

	if h.chatModel == nil {
		slog.Error("chat model not configured")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "chat model not configured on the server"})
		return
	}

	resp, err := h.chatModel.Generate(r.Context(), []*schema.Message{
		schema.UserMessage(modelPrompt(&req)),
	})
	if err != nil {
		slog.Error("chat model call failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to get response from AI."})
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{Text: resp.Content})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal response", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write response", "err", err)
	}
}
