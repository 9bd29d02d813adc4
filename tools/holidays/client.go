package holidays

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/peopleops/hrdesk/config"
)

// Holiday is a single entry from the Calendarific API.
type Holiday struct {
	Name        string
	Description string
	Date        time.Time
	ISO         string
	Types       []string
}

// Client calls the Calendarific holidays API.
type Client struct {
	apiKey     string
	baseURL    string
	country    string
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(cfg config.HolidayConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		country:    cfg.Country,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// Country returns the default country code for holiday lookups.
func (c *Client) Country() string { return c.country }

// Holidays returns all holidays for a country and year. An empty result is
// not an error.
func (c *Client) Holidays(ctx context.Context, country string, year int) ([]Holiday, error) {
	return c.fetch(ctx, country, map[string]string{"year": strconv.Itoa(year)})
}

// HolidaysOn returns the holidays falling on a specific day.
func (c *Client) HolidaysOn(ctx context.Context, country string, day time.Time) ([]Holiday, error) {
	return c.fetch(ctx, country, map[string]string{
		"year":  strconv.Itoa(day.Year()),
		"month": strconv.Itoa(int(day.Month())),
		"day":   strconv.Itoa(day.Day()),
	})
}

type apiResponse struct {
	Meta struct {
		Code        int    `json:"code"`
		ErrorDetail string `json:"error_detail"`
	} `json:"meta"`
	// The API returns an object normally and an empty array when there are
	// no results, so decode lazily.
	Response json.RawMessage `json:"response"`
}

type apiHoliday struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        struct {
		ISO string `json:"iso"`
	} `json:"date"`
	Type []string `json:"type"`
}

func (c *Client) fetch(ctx context.Context, country string, params map[string]string) ([]Holiday, error) {
	if c.apiKey == "" {
		return nil, errors.New("holiday API key is not configured")
	}
	if country == "" {
		country = c.country
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("country", country)
	for k, v := range params {
		q.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/holidays?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday API returned status: %d", resp.StatusCode)
	}

	var data apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("parsing holiday response: %w", err)
	}
	switch {
	case data.Meta.Code == http.StatusOK:
	case data.Meta.Code == 0 && len(data.Response) > 0:
		// some responses omit the meta block but still carry a payload
	default:
		detail := data.Meta.ErrorDetail
		if detail == "" {
			detail = "unknown error"
		}
		return nil, fmt.Errorf("holiday API error: %s", detail)
	}

	var body struct {
		Holidays []apiHoliday `json:"holidays"`
	}
	if err := json.Unmarshal(data.Response, &body); err != nil {
		// empty array response: no holidays
		return nil, nil
	}

	out := make([]Holiday, 0, len(body.Holidays))
	for _, h := range body.Holidays {
		hol := Holiday{Name: h.Name, Description: h.Description, ISO: h.Date.ISO, Types: h.Type}
		if h.Date.ISO != "" {
			// ISO values may carry a time component
			datePart := h.Date.ISO
			if idx := len("2006-01-02"); len(datePart) > idx {
				datePart = datePart[:idx]
			}
			if d, err := time.Parse("2006-01-02", datePart); err == nil {
				hol.Date = d
			}
		}
		out = append(out, hol)
	}
	return out, nil
}
