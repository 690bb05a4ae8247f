package api

import (
	"log/slog"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/zapponejosh/lunar-calendar-api/internal/calculator"
	"github.com/zapponejosh/lunar-calendar-api/internal/calendar"
	"github.com/zapponejosh/lunar-calendar-api/internal/logger"
	"github.com/zapponejosh/lunar-calendar-api/internal/lunar"
)

// Defaults for missing or unparseable /lunar query parameters.
const (
	defaultLunarYear  = 2024
	defaultLunarMonth = 1
	defaultLunarDay   = 1
)

// LunarDateResponse describes one Gregorian date and its lunar equivalent.
type LunarDateResponse struct {
	SolarDate  string `json:"solar_date"`  // YYYY-MM-DD
	LunarDate  string `json:"lunar_date"`  // e.g. 闰二月初一
	LunarYear  string `json:"lunar_year"`  // e.g. 甲子年
	LunarMonth string `json:"lunar_month"` // e.g. 闰二月
	LunarDay   string `json:"lunar_day"`   // e.g. 初一
	Zodiac     string `json:"zodiac"`      // e.g. 鼠年
	StemBranch string `json:"stem_branch"` // e.g. 甲子

	LunarYearNumber  int  `json:"lunar_year_number"`
	LunarMonthNumber int  `json:"lunar_month_number"`
	LunarDayNumber   int  `json:"lunar_day_number"`
	IsLeapMonth      bool `json:"is_leap_month"`
}

func newLunarDateResponse(year, month, day int, ld lunar.Date) LunarDateResponse {
	return LunarDateResponse{
		SolarDate:        calendar.FormatDate(year, month, day),
		LunarDate:        ld.String(),
		LunarYear:        ld.YearName(),
		LunarMonth:       ld.MonthName(),
		LunarDay:         ld.DayName(),
		Zodiac:           ld.ZodiacName(),
		StemBranch:       ld.StemBranch().String(),
		LunarYearNumber:  ld.Year,
		LunarMonthNumber: ld.Month,
		LunarDayNumber:   ld.Day,
		IsLeapMonth:      ld.IsLeap,
	}
}

// dateQuery is a Gregorian date from query parameters.
type dateQuery struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Validate checks field ranges. Whether the day exists in the month is left to the converter.
func (q dateQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Month, validation.Required, validation.Min(1), validation.Max(12)),
		validation.Field(&q.Day, validation.Required, validation.Min(1), validation.Max(31)),
	)
}

// GetLunarDate handles GET /api/v1/lunar?year=&month=&day=
//
// Missing or unparseable parameters fall back to 2024-01-01.
func (h *Handlers) GetLunarDate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dq := dateQuery{
		Year:  queryIntDefault(q.Get("year"), defaultLunarYear),
		Month: queryIntDefault(q.Get("month"), defaultLunarMonth),
		Day:   queryIntDefault(q.Get("day"), defaultLunarDay),
	}

	if err := dq.Validate(); err != nil {
		WriteValidationError(w, err)
		return
	}

	h.writeLunarDate(w, r, dq.Year, dq.Month, dq.Day)
}

// GetTodayLunarDate handles GET /api/v1/lunar/today
func (h *Handlers) GetTodayLunarDate(w http.ResponseWriter, r *http.Request) {
	y, m, d := h.today().Date()
	h.writeLunarDate(w, r, y, int(m), d)
}

func (h *Handlers) writeLunarDate(w http.ResponseWriter, r *http.Request, year, month, day int) {
	ld, err := h.conv.Convert(year, month, day)
	if err != nil {
		h.writeDateError(w, r, err)
		return
	}

	logger.Debug(r.Context(), "lunar date converted",
		slog.String("solar", calendar.FormatDate(year, month, day)),
		slog.String("lunar", ld.String()),
	)

	WriteSuccess(w, newLunarDateResponse(year, month, day, ld))
}

// solarQuery is a lunar date from query parameters.
type solarQuery struct {
	Year  int  `json:"year"`
	Month int  `json:"month"`
	Day   int  `json:"day"`
	Leap  bool `json:"leap"`
}

func (q solarQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Month, validation.Required, validation.Min(1), validation.Max(12)),
		validation.Field(&q.Day, validation.Required, validation.Min(1), validation.Max(30)),
	)
}

// GetSolarDate handles GET /api/v1/solar?year=&month=&day=&leap=
//
// It converts a lunar date back to its Gregorian date.
func (h *Handlers) GetSolarDate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	values, err := requiredInts(q, "year", "month", "day")
	if err != nil {
		WriteValidationError(w, err)
		return
	}

	sq := solarQuery{Year: values["year"], Month: values["month"], Day: values["day"]}
	if s := q.Get("leap"); s != "" {
		leap, err := strconv.ParseBool(s)
		if err != nil {
			WriteValidationError(w, validation.Errors{"leap": validation.NewError("validation_is_bool", "must be a boolean")})
			return
		}
		sq.Leap = leap
	}

	if err := sq.Validate(); err != nil {
		WriteValidationError(w, err)
		return
	}

	solar, err := h.conv.ToSolar(sq.Year, sq.Month, sq.Day, sq.Leap)
	if err != nil {
		h.writeDateError(w, r, err)
		return
	}

	h.writeLunarDate(w, r, solar.Year(), int(solar.Month()), solar.Day())
}

// monthQuery selects a Gregorian month.
type monthQuery struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (q monthQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Month, validation.Required, validation.Min(1), validation.Max(12)),
	)
}

// GetMonthGrid handles GET /api/v1/calendar?year=&month=
func (h *Handlers) GetMonthGrid(w http.ResponseWriter, r *http.Request) {
	values, err := requiredInts(r.URL.Query(), "year", "month")
	if err != nil {
		WriteValidationError(w, err)
		return
	}

	mq := monthQuery{Year: values["year"], Month: values["month"]}
	if err := mq.Validate(); err != nil {
		WriteValidationError(w, err)
		return
	}

	grid, err := h.grids.Build(mq.Year, mq.Month, h.today())
	if err != nil {
		h.writeDateError(w, r, err)
		return
	}

	WriteSuccess(w, grid)
}

// calculateRequest is the body of POST /api/v1/calculate.
type calculateRequest struct {
	Expression string `json:"expression"`
}

func (req calculateRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Expression, validation.Required, validation.Length(1, 256)),
	)
}

// CalculateResponse is the result of an evaluated expression.
type CalculateResponse struct {
	Expression string  `json:"expression"`
	Result     float64 `json:"result"`
}

// Calculate handles POST /api/v1/calculate
func (h *Handlers) Calculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body: "+err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		WriteValidationError(w, err)
		return
	}

	result, err := calculator.Evaluate(req.Expression)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error(), "INVALID_EXPRESSION")
		return
	}

	WriteSuccess(w, CalculateResponse{
		Expression: req.Expression,
		Result:     result,
	})
}

// queryIntDefault parses s, returning def when it is empty or not an integer.
func queryIntDefault(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
