package chatapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/pablobispo/scribeai"
)

type fakeChatModel struct {
	reply     string
	err       error
	lastInput []*schema.Message
}

func (m *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.lastInput = input
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{Role: schema.Assistant, Content: m.reply}, nil
}

func (m *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func postChat(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlerRejectsMissingPrompt(t *testing.T) {
	t.Parallel()
	h := NewHandler(&fakeChatModel{reply: "oi"})

	rec := postChat(t, h, `{"userMessage":"olá"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var errResp ErrorResponse
	if err := sonic.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("failed to parse error body: %v", err)
	}
	if errResp.Error != "Prompt is required" {
		t.Errorf("unexpected error message: %q", errResp.Error)
	}
}

func TestHandlerWithoutModelReturnsConfigurationError(t *testing.T) {
	t.Parallel()
	h := NewHandler(nil)

	rec := postChat(t, h, `{"prompt":"oi"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestHandlerSurfacesUpstreamFailureAs500(t *testing.T) {
	t.Parallel()
	h := NewHandler(&fakeChatModel{err: errors.New("quota exceeded")})

	rec := postChat(t, h, `{"prompt":"oi"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var errResp ErrorResponse
	if err := sonic.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("failed to parse error body: %v", err)
	}
	if errResp.Error != "Failed to get response from AI." {
		t.Errorf("unexpected error message: %q", errResp.Error)
	}
}

func TestHandlerReturnsModelText(t *testing.T) {
	t.Parallel()
	fake := &fakeChatModel{reply: "Qual é o seu nome?"}
	h := NewHandler(fake)

	rec := postChat(t, h, `{"prompt":"briefing"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp ChatResponse
	if err := sonic.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if resp.Text != "Qual é o seu nome?" {
		t.Errorf("unexpected text: %q", resp.Text)
	}
	if len(fake.lastInput) != 1 || fake.lastInput[0].Content != "briefing" {
		t.Errorf("initial round trip must pass the prompt through untouched, got %+v", fake.lastInput)
	}
}

func TestHandlerAppendsProgressBlockOnFollowUp(t *testing.T) {
	t.Parallel()
	fake := &fakeChatModel{reply: "Parabéns!"}
	h := NewHandler(fake)

	body, err := sonic.Marshal(ChatRequest{
		Prompt: "briefing",
		Context: &scribeai.TurnContext{
			FormFields: []scribeai.Field{
				{ID: "name", Label: "Nome", Kind: scribeai.KindText},
				{ID: "email", Label: "Email", Kind: scribeai.KindEmail},
			},
			CurrentFieldIndex: 1,
			TotalFields:       2,
		},
		UserMessage: "maria@x.com",
	})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	rec := postChat(t, h, string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	prompt := fake.lastInput[0].Content
	for _, want := range []string{
		"briefing",
		"CONTEXTO: Campo 2/2: Email",
		`RESPOSTA: "maria@x.com"`,
		"ÚLTIMO: true",
		"parabenize e mencione envio",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("upstream prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestModelGenerator(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fake := &fakeChatModel{reply: "Próximo campo, por favor."}
	gen := NewModelGenerator(fake)

	text, err := gen.Generate(ctx, &scribeai.Request{
		Prompt: "briefing",
		Context: &scribeai.TurnContext{
			FormFields:        []scribeai.Field{{ID: "name", Label: "Nome"}, {ID: "email", Label: "Email"}},
			CurrentFieldIndex: 0,
			TotalFields:       2,
		},
		UserMessage: "Maria",
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if text != "Próximo campo, por favor." {
		t.Errorf("unexpected text: %q", text)
	}
	prompt := fake.lastInput[0].Content
	if !strings.Contains(prompt, "ÚLTIMO: false") || !strings.Contains(prompt, "pergunte sobre o próximo campo") {
		t.Errorf("unexpected upstream prompt:\n%s", prompt)
	}

	fake.err = errors.New("down")
	if _, err := gen.Generate(ctx, &scribeai.Request{Prompt: "x"}); err == nil {
		t.Error("expected error from failing model")
	}
}
