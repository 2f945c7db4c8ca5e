package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"google.golang.org/genai"

	"github.com/mindflowhq/mindflow/internal/model"
)

const DefaultModel = "gemini-3-flash-preview"

const (
	suggestSystemPrompt = "You are a world-class productivity coach. Be concise, encouraging, and specific."
	chatSystemPrompt    = "You are MindFlow AI, an intelligent productivity assistant. Help the user organize their life. You can suggest reorganizing tasks, starting focus sessions, or reflecting on habits."
)

// Gemini fulfills the gateway contracts against the Google GenAI API. The
// client is created lazily on first use so construction never needs a
// context or network access.
type Gemini struct {
	client *genai.Client
	apiKey string
	model  string
	logger *slog.Logger
	mutex  sync.Mutex
}

type Option func(*Gemini)

func WithModel(model string) Option {
	return func(g *Gemini) { g.model = model }
}

func WithAPIKey(apiKey string) Option {
	return func(g *Gemini) { g.apiKey = apiKey }
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gemini) { g.logger = logger }
}

func NewGemini(opts ...Option) *Gemini {
	var apiKey string
	if value := os.Getenv("GEMINI_API_KEY"); value != "" {
		apiKey = value
	} else if value := os.Getenv("GOOGLE_API_KEY"); value != "" {
		apiKey = value
	}
	g := &Gemini{
		apiKey: apiKey,
		model:  DefaultModel,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Configured reports whether an API key is available.
func (g *Gemini) Configured() bool {
	return g.apiKey != ""
}

func (g *Gemini) initClient(ctx context.Context) (*genai.Client, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.client != nil {
		return g.client, nil
	}
	if g.apiKey == "" {
		return nil, ErrUnavailable
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: g.apiKey})
	if err != nil {
		return nil, fmt.Errorf("assist: create genai client: %w", err)
	}
	g.client = client
	return g.client, nil
}

func (g *Gemini) ParseTask(ctx context.Context, text string) (TaskDraft, error) {
	client, err := g.initClient(ctx)
	if err != nil {
		return TaskDraft{}, err
	}

	prompt := fmt.Sprintf("Parse the following task description into a structured JSON object: %q", text)
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   taskDraftSchema(),
	}
	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return TaskDraft{}, fmt.Errorf("assist: parse task: %w", err)
	}
	draft, err := DecodeDraft(responseText(resp))
	if err != nil {
		g.logger.Warn("task draft response was malformed", "error", err)
		return TaskDraft{}, err
	}
	return draft, nil
}

func (g *Gemini) Suggest(ctx context.Context, tasks []model.Task, habits []model.Habit) (string, error) {
	client, err := g.initClient(ctx)
	if err != nil {
		return "", err
	}

	snapshot, err := json.Marshal(struct {
		Tasks  []model.Task  `json:"tasks"`
		Habits []model.Habit `json:"habits"`
	}{Tasks: tasks, Habits: habits})
	if err != nil {
		return "", fmt.Errorf("assist: encode suggestion context: %w", err)
	}

	prompt := fmt.Sprintf("Based on the following tasks and habits, provide 3 brief, actionable productivity tips for today: %s", snapshot)
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{genai.NewPartFromText(suggestSystemPrompt)}},
	}
	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("assist: suggest: %w", err)
	}
	out := responseText(resp)
	if out == "" {
		return "", ErrBadResponse
	}
	return out, nil
}

func (g *Gemini) Chat(ctx context.Context, message string, state model.AppState) (string, error) {
	client, err := g.initClient(ctx)
	if err != nil {
		return "", err
	}

	snapshot, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("assist: encode chat context: %w", err)
	}

	prompt := fmt.Sprintf("User message: %s\nContext: %s", message, snapshot)
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{genai.NewPartFromText(chatSystemPrompt)}},
	}
	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("assist: chat: %w", err)
	}
	out := responseText(resp)
	if out == "" {
		return "", ErrBadResponse
	}
	return out, nil
}

func taskDraftSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":       {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
			"priority": {
				Type: genai.TypeString,
				Enum: []string{string(model.PriorityLow), string(model.PriorityMedium), string(model.PriorityHigh)},
			},
			"estimatedMinutes": {Type: genai.TypeNumber},
			"category":         {Type: genai.TypeString},
			"dueDate":          {Type: genai.TypeString, Description: "ISO date string"},
		},
		Required: []string{"title"},
	}
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	out := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			out += part.Text
		}
	}
	return out
}
