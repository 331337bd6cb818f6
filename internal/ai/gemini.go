// Package ai wraps the Gemini REST API for the three assisted features:
// reading a posted schedule photo into structured rows, proposing tasks
// from a workplace photo, and writing the daily huddle blurb.
//
// Every entry point degrades gracefully. A missing API key disables the
// client rather than erroring, and the huddle writer falls back to a
// canned line so the morning flow never blocks on the network.
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kingrea/shiftboard/internal/roster"
	"github.com/kingrea/shiftboard/internal/tasks"
)

// ErrNoShiftsFound means the model answered but found no employee rows in
// the image.
var ErrNoShiftsFound = errors.New("no shifts found in image")

// ErrDisabled means no API key is configured.
var ErrDisabled = errors.New("ai features disabled: no API key")

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// visionModel handles the heavy table and photo analysis.
	visionModel = "gemini-3-pro-preview"
	// textModel handles the low-latency huddle text.
	textModel = "gemini-2.5-flash-lite"
)

// HuddleFallback is returned when the huddle request fails for any reason.
const HuddleFallback = "Team, let's focus on safety and customers today!"

// ScheduleScanner reads a schedule image into structured rows.
type ScheduleScanner interface {
	ParseScheduleImage(ctx context.Context, image []byte, mimeType string) (roster.Schedule, error)
}

// WorkplaceAnalyzer proposes catalog rules from a workplace photo.
type WorkplaceAnalyzer interface {
	AnalyzeWorkplaceImage(ctx context.Context, image []byte, mimeType string) ([]tasks.Rule, error)
}

// HuddleWriter produces the pre-shift huddle text.
type HuddleWriter interface {
	DailyHuddle(ctx context.Context, day string, staffCount int, focusAreas []string) string
}

// Client talks to the Gemini generateContent endpoint.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient builds a Client. An empty apiKey yields a disabled client
// whose calls return ErrDisabled.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool { return c != nil && c.apiKey != "" }

const scheduleParsePrompt = `Analyze this roster image. Return a JSON object with:
1. 'week_period': The date range found (e.g., "Nov 1 - Nov 7").
2. 'shifts': An array of objects for each employee row.

Schema for 'shifts':
{
  "name": "Employee Name",
  "role": "Job Title (or 'Stock' if unclear)",
  "sun": "Time Range", "mon": "Time Range", "tue": "Time Range",
  "wed": "Time Range", "thu": "Time Range", "fri": "Time Range",
  "sat": "Time Range"
}

Rules:
- Format Times: "HH:MM(AM/PM)-HH:MM(AM/PM)".
- If blank/X/Loan, use "OFF".
- Return ONLY JSON.`

// ParseScheduleImage reads a photographed or scanned weekly roster.
func (c *Client) ParseScheduleImage(ctx context.Context, image []byte, mimeType string) (roster.Schedule, error) {
	if !c.Enabled() {
		return roster.Schedule{}, ErrDisabled
	}
	text, err := c.generate(ctx, visionModel, []part{
		{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(image)}},
		{Text: scheduleParsePrompt},
	}, true)
	if err != nil {
		return roster.Schedule{}, fmt.Errorf("schedule scan: %w", err)
	}

	var sched roster.Schedule
	if err := json.Unmarshal([]byte(cleanJSONFence(text)), &sched); err != nil {
		return roster.Schedule{}, fmt.Errorf("schedule scan: bad model output: %w", err)
	}
	if len(sched.Rows) == 0 {
		return roster.Schedule{}, ErrNoShiftsFound
	}
	hydrateSchedule(&sched)
	return sched, nil
}

const workplacePrompt = `You are a retail operations expert. Analyze this image of a store environment.
Identify 3-5 specific, actionable tasks to improve the area (stocking, cleaning, safety, organizing).

Return a JSON array of objects with this schema:
{
    "code": "Short Code (e.g., CLN, STK)",
    "name": "Actionable Task Name",
    "type": "general",
    "effort": Estimated minutes (integer)
}

Do not include generic advice. Be specific to what you see in the photo.`

// AnalyzeWorkplaceImage proposes new catalog rules from a photo of the
// department. Returned rules carry ids in the suggestion range and no
// preference chain; the user reviews them before they join the catalog.
func (c *Client) AnalyzeWorkplaceImage(ctx context.Context, image []byte, mimeType string) ([]tasks.Rule, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	text, err := c.generate(ctx, visionModel, []part{
		{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(image)}},
		{Text: workplacePrompt},
	}, true)
	if err != nil {
		return nil, fmt.Errorf("workplace analysis: %w", err)
	}

	var rules []tasks.Rule
	if err := json.Unmarshal([]byte(cleanJSONFence(text)), &rules); err != nil {
		return nil, fmt.Errorf("workplace analysis: bad model output: %w", err)
	}
	for i := range rules {
		rules[i].ID = tasks.SuggestionIDBase + i
		rules[i].FallbackChain = []string{}
		if rules[i].Type == "" {
			rules[i].Type = tasks.TypeGeneral
		}
		if rules[i].Effort <= 0 {
			rules[i].Effort = tasks.DefaultEffort
		}
	}
	return rules, nil
}

// DailyHuddle writes a short pre-shift speech. Errors are swallowed in
// favor of the canned fallback.
func (c *Client) DailyHuddle(ctx context.Context, day string, staffCount int, focusAreas []string) string {
	if !c.Enabled() {
		return HuddleFallback
	}
	focus := strings.Join(focusAreas, ", ")
	if focus == "" {
		focus = "General Service & Speed"
	}
	prompt := fmt.Sprintf(`Write a high-energy, 30-second pre-shift huddle speech for a retail team.
Day: %s
Staff Count: %d
Focus Areas: %s

Keep it professional but motivating. Do not use markdown. Just plain text.`, day, staffCount, focus)

	text, err := c.generate(ctx, textModel, []part{{Text: prompt}}, false)
	if err != nil || strings.TrimSpace(text) == "" {
		return HuddleFallback
	}
	return strings.TrimSpace(text)
}

// hydrateSchedule fills the gaps the model tends to leave: missing ids,
// blank roles and empty cells.
func hydrateSchedule(sched *roster.Schedule) {
	for i := range sched.Rows {
		row := &sched.Rows[i]
		if row.ID == "" {
			row.ID = uuid.NewString()
		}
		if row.Role == "" {
			row.Role = "Stock"
		}
		for _, d := range roster.Days {
			if strings.TrimSpace(row.Cell(d)) == "" {
				row.SetCell(d, "OFF")
			}
		}
	}
}

// cleanJSONFence strips a markdown code fence from model output. The API
// is asked for raw JSON but models still wrap it now and then.
func cleanJSONFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Wire types for the generateContent endpoint.

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) generate(ctx context.Context, model string, parts []part, wantJSON bool) (string, error) {
	req := generateRequest{Contents: []content{{Parts: parts}}}
	if wantJSON {
		req.GenerationConfig = &generationConfig{ResponseMimeType: "application/json"}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", err
	}
	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("model %s: unreadable response: %w", model, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("model %s: %s", model, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model %s: status %d", model, resp.StatusCode)
	}
	var out strings.Builder
	for _, cand := range parsed.Candidates {
		for _, p := range cand.Content.Parts {
			out.WriteString(p.Text)
		}
		break
	}
	return out.String(), nil
}
