package chatapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/pablobispo/scribeai"
)

func TestClientRoundTrip(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		var req ChatRequest
		if err := sonic.Unmarshal(body, &req); err != nil {
			t.Errorf("failed to parse request: %v", err)
		}
		if req.Prompt != "briefing" || req.UserMessage != "Maria" {
			t.Errorf("unexpected request: %+v", req)
		}
		if req.Context == nil || req.Context.TotalFields != 2 {
			t.Errorf("unexpected context: %+v", req.Context)
		}
		writeJSON(w, http.StatusOK, ChatResponse{Text: "E o email?"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	text, err := client.Generate(context.Background(), &scribeai.Request{
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
	if text != "E o email?" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestClientTreatsNonSuccessAsFailure(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to get response from AI."})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Generate(context.Background(), &scribeai.Request{Prompt: "x"}); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestClientTreatsMissingTextAsFailure(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Generate(context.Background(), &scribeai.Request{Prompt: "x"}); err == nil {
		t.Error("expected error for success body without text")
	}
}

func TestClientSurfacesNetworkErrors(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL)
	if _, err := client.Generate(context.Background(), &scribeai.Request{Prompt: "x"}); err == nil {
		t.Error("expected error for unreachable endpoint")
	}
}
