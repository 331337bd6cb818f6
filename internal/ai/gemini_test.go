package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-key")
	c.baseURL = srv.URL
	return c
}

func modelReply(text string) []byte {
	data, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	})
	return data
}

func TestCleanJSONFence(t *testing.T) {
	cases := []struct{ in, want string }{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n[1,2]\n```", "[1,2]"},
		{"  {\"a\":1}  ", "{\"a\":1}"},
		{"", ""},
	}
	for _, c := range cases {
		if got := cleanJSONFence(c.in); got != c.want {
			t.Errorf("cleanJSONFence(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDisabledClient(t *testing.T) {
	c := NewClient("")
	if c.Enabled() {
		t.Fatalf("empty key should disable the client")
	}
	if _, err := c.ParseScheduleImage(context.Background(), nil, "image/png"); !errors.Is(err, ErrDisabled) {
		t.Fatalf("err = %v, want ErrDisabled", err)
	}
	if got := c.DailyHuddle(context.Background(), "Friday", 5, nil); got != HuddleFallback {
		t.Fatalf("disabled huddle = %q", got)
	}
}

func TestParseScheduleImageHydratesRows(t *testing.T) {
	payload := `{"week_period":"Aug 24 - Aug 30","shifts":[{"name":"Ana Lopez","fri":"8:00AM-4:00PM"}]}`
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write(modelReply("```json\n" + payload + "\n```"))
	})
	sched, err := c.ParseScheduleImage(context.Background(), []byte("img"), "image/png")
	if err != nil {
		t.Fatalf("ParseScheduleImage: %v", err)
	}
	if sched.WeekPeriod != "Aug 24 - Aug 30" || len(sched.Rows) != 1 {
		t.Fatalf("unexpected schedule: %+v", sched)
	}
	row := sched.Rows[0]
	if row.ID == "" || row.Role != "Stock" {
		t.Fatalf("row not hydrated: %+v", row)
	}
	if row.Mon != "OFF" || row.Fri != "8:00AM-4:00PM" {
		t.Fatalf("cells not hydrated: %+v", row)
	}
}

func TestParseScheduleImageNoShifts(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(modelReply(`{"week_period":"","shifts":[]}`))
	})
	if _, err := c.ParseScheduleImage(context.Background(), []byte("img"), "image/png"); !errors.Is(err, ErrNoShiftsFound) {
		t.Fatalf("err = %v, want ErrNoShiftsFound", err)
	}
}

func TestAnalyzeWorkplaceImageAssignsSuggestionIDs(t *testing.T) {
	payload := `[{"code":"CLN","name":"Wipe Down Wet Rack","type":"general","effort":20},{"code":"STK","name":"Restock Bananas"}]`
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(modelReply(payload))
	})
	rules, err := c.AnalyzeWorkplaceImage(context.Background(), []byte("img"), "image/jpeg")
	if err != nil {
		t.Fatalf("AnalyzeWorkplaceImage: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	if rules[0].ID != 8000 || rules[1].ID != 8001 {
		t.Fatalf("ids not in suggestion range: %d, %d", rules[0].ID, rules[1].ID)
	}
	if rules[1].Effort != 30 || rules[1].Type != "general" {
		t.Fatalf("defaults not applied: %+v", rules[1])
	}
	if rules[0].FallbackChain == nil || len(rules[0].FallbackChain) != 0 {
		t.Fatalf("suggestions must carry an empty chain: %+v", rules[0])
	}
}

func TestDailyHuddleFallsBackOnError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom"}}`))
	})
	if got := c.DailyHuddle(context.Background(), "Friday", 4, []string{"Wet Rack"}); got != HuddleFallback {
		t.Fatalf("huddle should fall back, got %q", got)
	}
}

func TestDailyHuddleReturnsModelText(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(modelReply("  Let's go team!  "))
	})
	if got := c.DailyHuddle(context.Background(), "Friday", 4, nil); got != "Let's go team!" {
		t.Fatalf("huddle = %q", got)
	}
}
