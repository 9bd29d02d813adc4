package holidays

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/peopleops/hrdesk/provider"
	"github.com/peopleops/hrdesk/tools"
)

const (
	maxListed   = 20
	maxUpcoming = 5
)

// All returns the holiday tool set backed by a shared API client.
func All(client *Client) []tools.Tool {
	return []tools.Tool{
		&CheckTool{client: client},
		&TodayTool{client: client},
		&UpcomingTool{client: client},
	}
}

var countryParam = map[string]interface{}{
	"type":        "string",
	"description": "ISO 3166-1 alpha-2 country code",
}

// CheckTool lists the holidays of a country for a year.
type CheckTool struct {
	client *Client
}

var _ tools.Tool = (*CheckTool)(nil)

func (t *CheckTool) Definition() provider.ToolDef {
	return provider.ToolDef{
		Name:        "check_holidays",
		Description: "Fetches all holidays for a country and year. Use this when the user asks about holidays, public holidays, or the leave calendar.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"country": countryParam,
				"year": map[string]interface{}{
					"type":        "integer",
					"description": "Year to check holidays for, defaults to the current year",
				},
			},
		},
	}
}

func (t *CheckTool) Call(ctx context.Context, args map[string]interface{}) (string, error) {
	country := t.country(args)
	year := tools.IntArg(args, "year")
	if year == 0 {
		year = t.client.now().Year()
	}

	hols, err := t.client.Holidays(ctx, country, year)
	if err != nil {
		return "", err
	}
	if len(hols) == 0 {
		return fmt.Sprintf("No holidays found for %s in %d.", country, year), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Holidays in %s for %d:\n\n", country, year)
	for i, h := range hols {
		if i >= maxListed {
			break
		}
		fmt.Fprintf(&b, "- %s - %s (%s)\n", h.Name, h.ISO, strings.Join(h.Types, ", "))
	}
	if len(hols) > maxListed {
		fmt.Fprintf(&b, "\n... and %d more holidays.", len(hols)-maxListed)
	}
	return b.String(), nil
}

func (t *CheckTool) country(args map[string]interface{}) string {
	if c := tools.StringArg(args, "country"); c != "" {
		return c
	}
	return t.client.Country()
}

// TodayTool answers whether today is a holiday.
type TodayTool struct {
	client *Client
}

var _ tools.Tool = (*TodayTool)(nil)

func (t *TodayTool) Definition() provider.ToolDef {
	return provider.ToolDef{
		Name:        "check_today_holiday",
		Description: "Checks if today is a holiday. Use this when the user asks if today is a holiday or what holiday is today.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"country": countryParam,
			},
		},
	}
}

func (t *TodayTool) Call(ctx context.Context, args map[string]interface{}) (string, error) {
	country := tools.StringArg(args, "country")
	if country == "" {
		country = t.client.Country()
	}
	today := t.client.now()

	hols, err := t.client.HolidaysOn(ctx, country, today)
	if err != nil {
		return "", err
	}
	if len(hols) == 0 {
		return fmt.Sprintf("No, today (%s) is not a holiday in %s.", today.Format("January 02, 2006"), country), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Yes! Today (%s) is a holiday:\n\n", today.Format("January 02, 2006"))
	for _, h := range hols {
		fmt.Fprintf(&b, "- %s (%s)\n", h.Name, strings.Join(h.Types, ", "))
		if h.Description != "" {
			fmt.Fprintf(&b, "  Description: %s\n", h.Description)
		}
	}
	return b.String(), nil
}

// UpcomingTool lists the next holidays from today onwards.
type UpcomingTool struct {
	client *Client
}

var _ tools.Tool = (*UpcomingTool)(nil)

func (t *UpcomingTool) Definition() provider.ToolDef {
	return provider.ToolDef{
		Name:        "get_upcoming_holidays",
		Description: "Gets the next upcoming holidays. Use this when the user asks about upcoming or next holidays.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"country": countryParam,
			},
		},
	}
}

func (t *UpcomingTool) Call(ctx context.Context, args map[string]interface{}) (string, error) {
	country := tools.StringArg(args, "country")
	if country == "" {
		country = t.client.Country()
	}
	today := t.client.now()

	hols, err := t.client.Holidays(ctx, country, today.Year())
	if err != nil {
		return "", err
	}

	// parsed holiday dates are midnight UTC
	startOfDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	var upcoming []Holiday
	for _, h := range hols {
		if h.Date.IsZero() {
			continue
		}
		if !h.Date.Before(startOfDay) {
			upcoming = append(upcoming, h)
		}
		if len(upcoming) >= maxUpcoming {
			break
		}
	}
	if len(upcoming) == 0 {
		return fmt.Sprintf("No upcoming holidays found for %s in %d.", country, today.Year()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Upcoming holidays in %s:\n\n", country)
	for _, h := range upcoming {
		fmt.Fprintf(&b, "- %s - %s (%s)\n", h.Name, h.ISO, strings.Join(h.Types, ", "))
	}
	return b.String(), nil
}
