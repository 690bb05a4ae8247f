// Command apitest runs a smoke test suite against a running Lunar Calendar API.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// LunarDate is the response for /lunar, /lunar/today and /solar
type LunarDate struct {
	SolarDate   string `json:"solar_date"`
	LunarDate   string `json:"lunar_date"`
	LunarYear   string `json:"lunar_year"`
	Zodiac      string `json:"zodiac"`
	DayNumber   int    `json:"lunar_day_number"`
	IsLeapMonth bool   `json:"is_leap_month"`
}

// MonthGrid is the response for /calendar
type MonthGrid struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	LunarYear string `json:"lunar_year"`
	Zodiac    string `json:"zodiac"`
	Days      []struct {
		Day      int    `json:"day"`
		Weekday  string `json:"weekday"`
		LunarDay string `json:"lunar_day"`
		IsToday  bool   `json:"is_today"`
	} `json:"days"`
}

// Clothing is the response for /clothes/{id}
type Clothing struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Season    string `json:"season"`
	WearCount int    `json:"wear_count"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status string `json:"status"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	out          io.Writer
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL, apiKey string, out io.Writer, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		out:     out,
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintln(tr.out, "Lunar Calendar API Test Suite")
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintf(tr.out, "Base URL: %s\n", tr.baseURL)
	fmt.Fprintln(tr.out)

	// Run test groups
	tr.testHealth()
	tr.testLunarDates()
	tr.testSolarRoundTrip()
	tr.testCalendarGrids()
	tr.testCalculator()
	tr.testEdgeCases()
	tr.testWardrobe()
	tr.testMonthSweep()

	// Print summary
	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health HealthResponse
	if err := tr.getData("/health", &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testLunarDates() {
	tr.printSection("Lunar Date Lookups")

	testCases := []struct {
		date        string
		expected    string
		description string
	}{
		{"2024-01-01", "冬月二十", "Default date"},
		{"2024-02-10", "正月初一", "Lunar new year 2024"},
		{"2023-03-22", "闰二月初一", "First day of a leap month"},
		{"1900-01-31", "正月初一", "First day of the table"},
		{"2101-01-28", "腊月廿九", "Last day of the table"},
	}

	for _, tc := range testCases {
		var y, m, d int
		fmt.Sscanf(tc.date, "%d-%d-%d", &y, &m, &d)

		var data LunarDate
		if err := tr.getData(fmt.Sprintf("/api/v1/lunar?year=%d&month=%d&day=%d", y, m, d), &data); err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		if data.LunarDate == tc.expected {
			tr.recordSuccess(fmt.Sprintf("%s: %s%s (%s)", tc.date, data.LunarYear, data.LunarDate, tc.description))
		} else {
			tr.recordError(tc.date, fmt.Sprintf("Expected '%s', got '%s'", tc.expected, data.LunarDate))
		}
	}

	var today LunarDate
	if err := tr.getData("/api/v1/lunar/today", &today); err != nil {
		tr.recordError("Today", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Today (%s): %s%s %s", today.SolarDate, today.LunarYear, today.LunarDate, today.Zodiac))
}

func (tr *TestRunner) testSolarRoundTrip() {
	tr.printSection("Solar Round Trip")

	testCases := []struct {
		query    string
		expected string
	}{
		{"year=2023&month=2&day=1&leap=true", "2023-03-22"},
		{"year=2024&month=1&day=1", "2024-02-10"},
		{"year=1900&month=1&day=1", "1900-01-31"},
	}

	for _, tc := range testCases {
		var data LunarDate
		if err := tr.getData("/api/v1/solar?"+tc.query, &data); err != nil {
			tr.recordError(tc.query, err.Error())
			continue
		}

		if data.SolarDate == tc.expected {
			tr.recordSuccess(fmt.Sprintf("%s -> %s", tc.query, data.SolarDate))
		} else {
			tr.recordError(tc.query, fmt.Sprintf("Expected %s, got %s", tc.expected, data.SolarDate))
		}
	}
}

func (tr *TestRunner) testCalendarGrids() {
	tr.printSection("Calendar Grids")

	testCases := []struct {
		year, month int
		cells       int
	}{
		{2024, 2, 35},
		{2024, 1, 35},
		{2023, 12, 42},
		{2015, 2, 35},
	}

	for _, tc := range testCases {
		var grid MonthGrid
		if err := tr.getData(fmt.Sprintf("/api/v1/calendar?year=%d&month=%d", tc.year, tc.month), &grid); err != nil {
			tr.recordError(fmt.Sprintf("%d-%02d", tc.year, tc.month), err.Error())
			continue
		}

		if len(grid.Days) == tc.cells {
			tr.recordSuccess(fmt.Sprintf("%d-%02d: %d cells (%s %s)", tc.year, tc.month, len(grid.Days), grid.LunarYear, grid.Zodiac))
		} else {
			tr.recordError(fmt.Sprintf("%d-%02d", tc.year, tc.month),
				fmt.Sprintf("Expected %d cells, got %d", tc.cells, len(grid.Days)))
		}

		if tr.verbose {
			tr.printGrid(&grid)
		}
	}
}

func (tr *TestRunner) testCalculator() {
	tr.printSection("Calculator")

	var result struct {
		Result float64 `json:"result"`
	}
	if err := tr.postData("/api/v1/calculate", map[string]string{"expression": "6 * 7"}, &result); err != nil {
		tr.recordError("6 * 7", err.Error())
	} else if result.Result != 42 {
		tr.recordError("6 * 7", fmt.Sprintf("Expected 42, got %v", result.Result))
	} else {
		tr.recordSuccess("6 * 7 = 42")
	}

	tr.expectStatus("Division by zero rejected", http.MethodPost, "/api/v1/calculate",
		map[string]string{"expression": "1 / 0"}, http.StatusBadRequest, "INVALID_EXPRESSION")
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	tr.expectStatus("Nonexistent date rejected", http.MethodGet, "/api/v1/lunar?year=2023&month=2&day=29",
		nil, http.StatusBadRequest, "INVALID_DATE")
	tr.expectStatus("Month 13 rejected", http.MethodGet, "/api/v1/lunar?year=2024&month=13&day=1",
		nil, http.StatusBadRequest, "VALIDATION_FAILED")
	tr.expectStatus("Date before table rejected", http.MethodGet, "/api/v1/lunar?year=1899&month=12&day=31",
		nil, http.StatusUnprocessableEntity, "OUT_OF_RANGE")
	tr.expectStatus("Date after table rejected", http.MethodGet, "/api/v1/lunar?year=2101&month=1&day=29",
		nil, http.StatusUnprocessableEntity, "OUT_OF_RANGE")
	tr.expectStatus("Missing grid month rejected", http.MethodGet, "/api/v1/calendar?year=2024",
		nil, http.StatusBadRequest, "VALIDATION_FAILED")
	tr.expectStatus("Missing leap month rejected", http.MethodGet, "/api/v1/solar?year=2024&month=1&day=1&leap=true",
		nil, http.StatusBadRequest, "INVALID_DATE")
	tr.expectStatus("Unknown route", http.MethodGet, "/api/v1/nope",
		nil, http.StatusNotFound, "NOT_FOUND")
}

func (tr *TestRunner) testWardrobe() {
	tr.printSection("Wardrobe")

	var created Clothing
	body := map[string]interface{}{
		"label":         "apitest scarf",
		"clothing_type": "outerwear",
		"season":        "winter",
	}
	if err := tr.postData("/api/v1/clothes", body, &created); err != nil {
		tr.recordError("Create", err.Error())
		return
	}
	tr.recordSuccess(fmt.Sprintf("Created %s (%s)", created.Label, created.ID))

	var updated Clothing
	if err := tr.sendData(http.MethodPut, "/api/v1/clothes/"+created.ID, map[string]int{"wear_count": 3}, &updated); err != nil {
		tr.recordError("Update", err.Error())
	} else if updated.WearCount != 3 {
		tr.recordError("Update", fmt.Sprintf("Expected wear_count 3, got %d", updated.WearCount))
	} else {
		tr.recordSuccess("Updated wear count")
	}

	var winter []Clothing
	if err := tr.getData("/api/v1/clothes/season/winter", &winter); err != nil {
		tr.recordError("Season filter", err.Error())
	} else {
		tr.recordSuccess(fmt.Sprintf("Winter clothes: %d", len(winter)))
	}

	if err := tr.sendData(http.MethodDelete, "/api/v1/clothes/"+created.ID, nil, nil); err != nil {
		tr.recordError("Delete", err.Error())
		return
	}
	tr.expectStatus("Deleted item is gone", http.MethodGet, "/api/v1/clothes/"+created.ID,
		nil, http.StatusNotFound, "NOT_FOUND")
}

func (tr *TestRunner) testMonthSweep() {
	tr.printSection("Lunar Day Sequence (February 2024)")

	prev, gaps := 0, 0
	for day := 1; day <= 29; day++ {
		date := fmt.Sprintf("2024-02-%02d", day)

		var data LunarDate
		if err := tr.getData(fmt.Sprintf("/api/v1/lunar?year=2024&month=2&day=%d", day), &data); err != nil {
			tr.recordError(date, err.Error())
			continue
		}

		// Consecutive days advance by one or restart at the first of a month.
		if prev != 0 && data.DayNumber != prev+1 && data.DayNumber != 1 {
			gaps++
			tr.recordError(date, fmt.Sprintf("Lunar day %d does not follow %d", data.DayNumber, prev))
		} else if tr.verbose {
			tr.recordSuccess(fmt.Sprintf("%s: %s", date, data.LunarDate))
		}
		prev = data.DayNumber
	}

	if gaps == 0 {
		tr.recordSuccess("Lunar days advance without gaps")
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) getData(path string, target interface{}) error {
	return tr.sendData(http.MethodGet, path, nil, target)
}

func (tr *TestRunner) postData(path string, body, target interface{}) error {
	return tr.sendData(http.MethodPost, path, body, target)
}

// sendData performs a request and decodes the envelope's data into target.
// A failed envelope is returned as an error.
func (tr *TestRunner) sendData(method, path string, body, target interface{}) error {
	resp, err := tr.do(method, path, body)
	if err != nil {
		return err
	}

	if !resp.Success {
		errMsg := "unknown error"
		if resp.Error != nil {
			errMsg = fmt.Sprintf("%s (%s)", resp.Error.Message, resp.Error.Code)
		}
		return fmt.Errorf("API error: %s", errMsg)
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, target); err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	return nil
}

// expectStatus records a success when the request fails with the given status and error code.
func (tr *TestRunner) expectStatus(name, method, path string, body interface{}, status int, code string) {
	httpResp, err := tr.doRaw(method, path, body)
	if err != nil {
		tr.recordError(name, err.Error())
		return
	}
	defer httpResp.Body.Close()

	var resp APIResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		tr.recordError(name, fmt.Sprintf("parse error: %v", err))
		return
	}

	gotCode := ""
	if resp.Error != nil {
		gotCode = resp.Error.Code
	}
	if httpResp.StatusCode == status && gotCode == code {
		tr.recordSuccess(fmt.Sprintf("%s (HTTP %d %s)", name, status, code))
	} else {
		tr.recordError(name, fmt.Sprintf("Expected HTTP %d %s, got HTTP %d %s", status, code, httpResp.StatusCode, gotCode))
	}
}

func (tr *TestRunner) do(method, path string, body interface{}) (*APIResponse, error) {
	httpResp, err := tr.doRaw(method, path, body)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return &apiResp, nil
}

func (tr *TestRunner) doRaw(method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, tr.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tr.apiKey != "" {
		req.Header.Set("X-API-Key", tr.apiKey)
	}
	return tr.client.Do(req)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Fprintln(tr.out)
	fmt.Fprintf(tr.out, "--- %s ---\n", name)
	fmt.Fprintln(tr.out)
}

func (tr *TestRunner) printGrid(g *MonthGrid) {
	for i, c := range g.Days {
		if i%7 == 0 {
			fmt.Fprint(tr.out, "    ")
		}
		mark := " "
		if c.IsToday {
			mark = "*"
		}
		fmt.Fprintf(tr.out, "%2d%s%-4s", c.Day, mark, c.LunarDay)
		if i%7 == 6 {
			fmt.Fprintln(tr.out)
		}
	}
	fmt.Fprintln(tr.out)
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Fprintf(tr.out, "  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Fprintf(tr.out, "  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Fprintln(tr.out)
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintln(tr.out, "Summary")
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintf(tr.out, "  Passed: %d\n", tr.successCount)
	fmt.Fprintf(tr.out, "  Failed: %d\n", tr.errorCount)
	fmt.Fprintln(tr.out)

	if tr.errorCount > 0 {
		fmt.Fprintln(tr.out, "Failures:")
		for _, err := range tr.errors {
			fmt.Fprintf(tr.out, "  • %s\n", err)
		}
		fmt.Fprintln(tr.out)
	}

	if tr.errorCount == 0 {
		fmt.Fprintln(tr.out, "All tests passed! ✓")
	} else {
		fmt.Fprintf(tr.out, "Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func run(ctx context.Context, cmd *cli.Command) error {
	baseURL := cmd.String("url")

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return fmt.Errorf("cannot connect to %s, make sure the API server is running: %w", baseURL, err)
	}
	resp.Body.Close()

	runner := NewTestRunner(baseURL, cmd.String("api-key"), os.Stdout, cmd.Bool("verbose"))
	runner.Run()

	if runner.errorCount > 0 {
		return cli.Exit(fmt.Sprintf("%d check(s) failed", runner.errorCount), 1)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "apitest",
		Usage:  "Smoke test a running Lunar Calendar API",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "url",
				Usage: "Base URL of the API",
				Value: "http://localhost:3031",
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "API key for wardrobe mutations",
				Sources: cli.EnvVars("API_KEY"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Verbose output (show grids and every swept day)",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
