package clock

import (
	"context"
	"time"

	"github.com/peopleops/hrdesk/provider"
	"github.com/peopleops/hrdesk/tools"
)

// Tool reports the current date. It has no inputs and no failure modes.
type Tool struct {
	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func New() *Tool {
	return &Tool{Now: time.Now}
}

var _ tools.Tool = (*Tool)(nil)

func (t *Tool) Definition() provider.ToolDef {
	return provider.ToolDef{
		Name:        "get_current_date",
		Description: "Returns the current date. Use this when the user asks about today's date or what day it is.",
		Parameters: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	}
}

func (t *Tool) Call(ctx context.Context, args map[string]interface{}) (string, error) {
	now := t.Now()
	return now.Format("2006-01-02") + " (" + now.Format("Monday, January 02, 2006") + ")", nil
}
