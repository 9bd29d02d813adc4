package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/peopleops/hrdesk/config"
)

// Client represents different LLM providers.
type Client string

const (
	Gemini Client = "gemini"
	OpenAI Client = "openai"
)

// Message is a single turn in a completion request.
type Message struct {
	Role       string // user, assistant, tool
	Content    string
	ToolCalls  []ToolCall // assistant turns that requested tools
	ToolCallID string     // tool turns: id of the call being answered
	ToolName   string     // tool turns: name of the tool that ran
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]interface{}
}

// ToolDef describes a callable tool offered to the model.
type ToolDef struct {
	Name        string
	Description string
	Parameters  map[string]interface{} // JSON schema
}

// Completion is the model's reply: final text, or tool calls to execute.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
}

// Provider is the interface that all LLM implementations must satisfy.
type Provider interface {
	Complete(ctx context.Context, system string, msgs []Message, tools []ToolDef) (Completion, error)
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// NewProvider creates a new LLM client based on the provided configuration.
func NewProvider(ctx context.Context, cfg config.LLMConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm api key not set")
	}
	switch Client(cfg.Provider) {
	case Gemini:
		return NewGeminiClient(ctx, cfg)
	case OpenAI:
		return NewOpenAIClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
