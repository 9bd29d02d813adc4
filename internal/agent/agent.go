package agent

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/peopleops/hrdesk/internal/telemetry"
	"github.com/peopleops/hrdesk/models"
	"github.com/peopleops/hrdesk/provider"
	"github.com/peopleops/hrdesk/tools"
)

const systemPrompt = `You are an advanced HR policy assistant with access to multiple tools. Your role is to:

1. Answer HR policy questions using the policy knowledge base
2. Provide current date and holiday information when asked
3. Help HR professionals with policy interpretation and compliance

Decision making:
- For questions about HR policies, procedures, leave rules, benefits, use the 'search_hr_policies' tool
- For questions about today's date or the current date, use the 'get_current_date' tool
- For questions about holidays or the holiday list, use the 'check_holidays' tool
- For questions about whether today is a holiday, use the 'check_today_holiday' tool
- For questions about upcoming or next holidays, use the 'get_upcoming_holidays' tool

Guidelines:
- Use the most specific tool for the query; chain tools when a question needs more than one
- Always provide clear, professional, and accurate responses
- If information is not available, clearly state that and suggest alternatives
- Cite specific policies when using information from the knowledge base`

// maxIterations bounds the tool-calling loop for a single query.
const maxIterations = 5

// Executor runs one conversational turn: it offers the registered tools to
// the model, executes whatever calls come back, and loops until the model
// produces final text.
type Executor struct {
	provider provider.Provider
	registry map[string]tools.Tool
	defs     []provider.ToolDef
	logger   *log.Logger
}

// NewExecutor creates an executor over the given tool set.
func NewExecutor(p provider.Provider, toolSet []tools.Tool) *Executor {
	e := &Executor{
		provider: p,
		registry: make(map[string]tools.Tool, len(toolSet)),
		logger:   log.New(log.Writer(), "[AGENT] ", log.LstdFlags),
	}
	for _, t := range toolSet {
		def := t.Definition()
		e.registry[def.Name] = t
		e.defs = append(e.defs, def)
	}
	return e
}

// Tools returns the names of the registered tools.
func (e *Executor) Tools() []string {
	names := make([]string, 0, len(e.defs))
	for _, d := range e.defs {
		names = append(names, d.Name)
	}
	return names
}

// Run answers a user query given the session's prior history and returns the
// agent's final text.
func (e *Executor) Run(ctx context.Context, query string, history []models.ChatMessage) (string, error) {
	msgs := make([]provider.Message, 0, len(history)+1)
	for _, m := range history {
		msgs = append(msgs, provider.Message{Role: string(m.Role), Content: m.Content})
	}
	msgs = append(msgs, provider.Message{Role: "user", Content: query})

	for i := 0; i < maxIterations; i++ {
		start := time.Now()
		completion, err := e.provider.Complete(ctx, systemPrompt, msgs, e.defs)
		telemetry.LLMRequestDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			return "", fmt.Errorf("llm completion: %w", err)
		}

		if len(completion.ToolCalls) == 0 {
			return completion.Content, nil
		}

		msgs = append(msgs, provider.Message{
			Role:      "assistant",
			Content:   completion.Content,
			ToolCalls: completion.ToolCalls,
		})
		for _, call := range completion.ToolCalls {
			msgs = append(msgs, e.execute(ctx, call))
		}
	}

	return "", fmt.Errorf("no final answer after %d tool iterations", maxIterations)
}

// execute runs a single tool call. Tool failures are not fatal: they are
// returned to the model as error strings so it can recover or report them.
func (e *Executor) execute(ctx context.Context, call provider.ToolCall) provider.Message {
	result := provider.Message{Role: "tool", ToolCallID: call.ID, ToolName: call.Name}

	t, ok := e.registry[call.Name]
	if !ok {
		e.logger.Printf("model requested unknown tool %q", call.Name)
		telemetry.ToolInvocations.WithLabelValues(call.Name, "unknown").Inc()
		result.Content = fmt.Sprintf("Error: unknown tool %q", call.Name)
		return result
	}

	out, err := t.Call(ctx, call.Args)
	if err != nil {
		e.logger.Printf("tool %s failed: %v", call.Name, err)
		telemetry.ToolInvocations.WithLabelValues(call.Name, "error").Inc()
		result.Content = fmt.Sprintf("Error: %v", err)
		return result
	}
	telemetry.ToolInvocations.WithLabelValues(call.Name, "ok").Inc()
	result.Content = out
	return result
}
