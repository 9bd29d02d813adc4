package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/peopleops/hrdesk/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(config.HolidayConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Country: "IN",
	})
	c.now = func() time.Time {
		return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	}
	return c
}

func holidaysJSON(hols []map[string]interface{}) string {
	b, _ := json.Marshal(map[string]interface{}{
		"meta":     map[string]interface{}{"code": 200},
		"response": map[string]interface{}{"holidays": hols},
	})
	return string(b)
}

func namedHoliday(name, iso string) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"description": name + " description",
		"date":        map[string]string{"iso": iso},
		"type":        []string{"National holiday"},
	}
}

func TestCheckToolListsHolidays(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("year"); got != "2026" {
			t.Errorf("expected year=2026, got %q", got)
		}
		if got := r.URL.Query().Get("country"); got != "IN" {
			t.Errorf("expected country=IN, got %q", got)
		}
		fmt.Fprint(w, holidaysJSON([]map[string]interface{}{
			namedHoliday("Republic Day", "2026-01-26"),
			namedHoliday("Holi", "2026-03-04"),
		}))
	})

	tool := &CheckTool{client: c}
	out, err := tool.Call(context.Background(), map[string]interface{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Holidays in IN for 2026:") {
		t.Errorf("missing header in output: %q", out)
	}
	if !strings.Contains(out, "- Republic Day - 2026-01-26 (National holiday)") {
		t.Errorf("missing holiday line in output: %q", out)
	}
}

func TestCheckToolTruncatesLongLists(t *testing.T) {
	var hols []map[string]interface{}
	for i := 0; i < 27; i++ {
		hols = append(hols, namedHoliday(fmt.Sprintf("Holiday %d", i), "2026-06-01"))
	}
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, holidaysJSON(hols))
	})

	out, err := (&CheckTool{client: c}).Call(context.Background(), map[string]interface{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Count(out, "- Holiday"); got != maxListed {
		t.Errorf("expected %d listed holidays, got %d", maxListed, got)
	}
	if !strings.Contains(out, "... and 7 more holidays.") {
		t.Errorf("missing truncation note in output: %q", out)
	}
}

func TestCheckToolNoHolidays(t *testing.T) {
	// the API returns an empty array instead of an object when there are
	// no results
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"meta":{"code":200},"response":[]}`)
	})

	out, err := (&CheckTool{client: c}).Call(context.Background(), map[string]interface{}{
		"country": "AQ",
		"year":    float64(2026),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "No holidays found for AQ in 2026." {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestCheckToolAPIError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"meta":{"code":401,"error_detail":"Invalid API key"},"response":[]}`)
	})

	_, err := (&CheckTool{client: c}).Call(context.Background(), map[string]interface{}{})
	if err == nil || !strings.Contains(err.Error(), "Invalid API key") {
		t.Errorf("expected API error, got %v", err)
	}
}

func TestTodayToolHoliday(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("month") != "3" || q.Get("day") != "10" {
			t.Errorf("expected month=3 day=10, got month=%s day=%s", q.Get("month"), q.Get("day"))
		}
		fmt.Fprint(w, holidaysJSON([]map[string]interface{}{
			namedHoliday("Festival Day", "2026-03-10"),
		}))
	})

	out, err := (&TodayTool{client: c}).Call(context.Background(), map[string]interface{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "Yes! Today (March 10, 2026) is a holiday:") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "Description: Festival Day description") {
		t.Errorf("missing description in output: %q", out)
	}
}

func TestTodayToolNotHoliday(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"meta":{"code":200},"response":[]}`)
	})

	out, err := (&TodayTool{client: c}).Call(context.Background(), map[string]interface{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "No, today (March 10, 2026) is not a holiday in IN." {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestUpcomingToolNextFive(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, holidaysJSON([]map[string]interface{}{
			namedHoliday("Past Holiday", "2026-01-26"),
			namedHoliday("Today Holiday", "2026-03-10"),
			namedHoliday("Next 1", "2026-04-01"),
			namedHoliday("Next 2", "2026-05-01"),
			namedHoliday("Next 3", "2026-06-01"),
			namedHoliday("Next 4", "2026-07-01"),
			namedHoliday("Next 5", "2026-08-15"),
		}))
	})

	out, err := (&UpcomingTool{client: c}).Call(context.Background(), map[string]interface{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "Past Holiday") {
		t.Errorf("past holiday listed: %q", out)
	}
	if !strings.Contains(out, "Today Holiday") {
		t.Errorf("today's holiday should count as upcoming: %q", out)
	}
	if got := strings.Count(out, "\n- "); got != maxUpcoming {
		t.Errorf("expected %d upcoming holidays, got %d", maxUpcoming, got)
	}
	if strings.Contains(out, "Next 5") {
		t.Errorf("sixth upcoming holiday listed: %q", out)
	}
}

func TestClientMissingMetaWithPayload(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response":{"holidays":[
			{"name":"Republic Day","date":{"iso":"2026-01-26"},"type":["National holiday"]}
		]}}`)
	})

	hols, err := c.Holidays(context.Background(), "IN", 2026)
	if err != nil {
		t.Fatalf("payload without meta block must not fail: %v", err)
	}
	if len(hols) != 1 || hols[0].Name != "Republic Day" {
		t.Errorf("unexpected holidays: %+v", hols)
	}
}

func TestClientMissingMetaNoPayload(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})

	_, err := c.Holidays(context.Background(), "IN", 2026)
	if err == nil || !strings.Contains(err.Error(), "holiday API error") {
		t.Errorf("expected API error for empty body, got %v", err)
	}
}

func TestClientMissingAPIKey(t *testing.T) {
	c := NewClient(config.HolidayConfig{BaseURL: "http://127.0.0.1:0", Country: "IN"})
	if _, err := c.Holidays(context.Background(), "IN", 2026); err == nil {
		t.Fatal("expected error for missing API key")
	}
}
