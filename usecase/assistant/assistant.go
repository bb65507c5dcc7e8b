package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rbsgo/taskhub/domain"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultBaseURL = "https://api.openai.com/v1/chat/completions"
	defaultTimeout = 20 * time.Second

	// Fallback shown whenever the collaborator fails. Assistant errors
	// are surfaced inline, never propagated.
	Fallback = "The task assistant is unavailable right now. Your task list above is still current."
)

const managerPrompt = `You are a task-tracking assistant for a team manager.
Summarize the task list you are given in three short bullet sections:
- Bottlenecks: overdue or stalled items and who holds them.
- Today's focus: what the team should push on today.
- Closing remark: one encouraging sentence.`

const memberPrompt = `You are a personal task-tracking assistant.
Summarize the task list you are given in three short bullet sections:
- Bottlenecks: your overdue or blocked items.
- Today's focus: what to tackle first today.
- Closing remark: one encouraging sentence.`

// Config controls the chat-completions collaborator. An empty APIKey
// disables the assistant cleanly.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// UseCase produces free-text summaries of the currently visible task
// set through an OpenAI-compatible chat endpoint.
type UseCase struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *UseCase {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Enabled reports whether an API key is configured.
func (uc *UseCase) Enabled() bool {
	return uc.cfg.APIKey != ""
}

// Summarize renders the visible tasks as text and asks the collaborator
// for a role-aware summary. Any failure degrades to the fallback
// message; Summarize never returns an error to its caller.
func (uc *UseCase) Summarize(ctx context.Context, viewer *domain.User, tasks []domain.Task) string {
	if !uc.Enabled() {
		return Fallback
	}

	prompt := memberPrompt
	if viewer.IsManager() {
		prompt = managerPrompt
	}

	reply, err := uc.complete(ctx, prompt, renderTasks(tasks))
	if err != nil {
		uc.logger.Warn("assistant summary failed", zap.Error(err))
		return Fallback
	}
	return reply
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (uc *UseCase) complete(ctx context.Context, system, user string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: uc.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uc.cfg.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+uc.cfg.APIKey)

	resp, err := uc.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", domain.WrapError(domain.ErrCodeAssistant,
			fmt.Sprintf("assistant endpoint returned %d", resp.StatusCode), nil)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if parsed.Error != nil {
		return "", domain.WrapError(domain.ErrCodeAssistant, parsed.Error.Message, nil)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", domain.WrapError(domain.ErrCodeAssistant, "assistant returned no content", nil)
	}
	return parsed.Choices[0].Message.Content, nil
}

// renderTasks flattens the visible set into the plain-text lines the
// prompt operates on.
func renderTasks(tasks []domain.Task) string {
	if len(tasks) == 0 {
		return "No visible tasks."
	}
	var sb strings.Builder
	for _, t := range tasks {
		fmt.Fprintf(&sb, "- %s | due %s | %s | %s", t.Description, t.DueDate.Format("2006-01-02"), t.Priority, t.Status)
		if t.AssignedTo != "" {
			fmt.Fprintf(&sb, " | %s", t.AssignedTo)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
