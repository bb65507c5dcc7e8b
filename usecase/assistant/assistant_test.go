package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rbsgo/taskhub/domain"
)

func member() *domain.User {
	return &domain.User{Email: "msk@example.com", Role: domain.RoleMember, Status: domain.UserActive}
}

func manager() *domain.User {
	return &domain.User{Email: "boss@example.com", Role: domain.RoleManager, Status: domain.UserActive}
}

func chatReply(content string) string {
	return `{"choices":[{"message":{"role":"assistant","content":"` + content + `"}}]}`
}

func TestSummarizeDisabledWithoutAPIKey(t *testing.T) {
	uc := New(Config{}, nil)
	if uc.Enabled() {
		t.Fatal("assistant must be disabled without an API key")
	}
	if got := uc.Summarize(context.Background(), member(), nil); got != Fallback {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestSummarizeReturnsCollaboratorReply(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decoding request failed: %v", err)
		}
		w.Write([]byte(chatReply("Focus on the overdue API task first.")))
	}))
	defer srv.Close()

	uc := New(Config{BaseURL: srv.URL, APIKey: "test-key"}, nil)
	tasks := []domain.Task{{
		Description: "update the API",
		Status:      domain.StatusOpen,
		Priority:    domain.PriorityHigh,
		DueDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		AssignedTo:  "praveen@example.com",
	}}

	got := uc.Summarize(context.Background(), member(), tasks)
	if got != "Focus on the overdue API task first." {
		t.Fatalf("expected collaborator reply, got %q", got)
	}

	if len(captured.Messages) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(captured.Messages))
	}
	if !strings.Contains(captured.Messages[1].Content, "update the API") {
		t.Fatalf("task lines missing from prompt: %q", captured.Messages[1].Content)
	}
	if !strings.Contains(captured.Messages[1].Content, "2025-03-10") {
		t.Fatalf("due date missing from prompt: %q", captured.Messages[1].Content)
	}
}

func TestSummarizePromptFollowsViewerRole(t *testing.T) {
	var system string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) > 0 {
			system = req.Messages[0].Content
		}
		w.Write([]byte(chatReply("ok")))
	}))
	defer srv.Close()

	uc := New(Config{BaseURL: srv.URL, APIKey: "test-key"}, nil)

	uc.Summarize(context.Background(), manager(), nil)
	if !strings.Contains(system, "team manager") {
		t.Fatalf("expected manager prompt, got %q", system)
	}

	uc.Summarize(context.Background(), member(), nil)
	if !strings.Contains(system, "personal task-tracking assistant") {
		t.Fatalf("expected member prompt, got %q", system)
	}
}

func TestSummarizeFallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream melted", http.StatusBadGateway)
	}))
	defer srv.Close()

	uc := New(Config{BaseURL: srv.URL, APIKey: "test-key"}, nil)
	if got := uc.Summarize(context.Background(), member(), nil); got != Fallback {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestSummarizeFallsBackOnEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	uc := New(Config{BaseURL: srv.URL, APIKey: "test-key"}, nil)
	if got := uc.Summarize(context.Background(), member(), nil); got != Fallback {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestSummarizeFallsBackWhenEndpointUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	uc := New(Config{BaseURL: srv.URL, APIKey: "test-key", Timeout: time.Second}, nil)
	if got := uc.Summarize(context.Background(), member(), nil); got != Fallback {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestRenderTasksHandlesEmptySet(t *testing.T) {
	if got := renderTasks(nil); got != "No visible tasks." {
		t.Fatalf("unexpected empty rendering %q", got)
	}
}
