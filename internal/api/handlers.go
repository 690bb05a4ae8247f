package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/zapponejosh/lunar-calendar-api/internal/calendar"
	"github.com/zapponejosh/lunar-calendar-api/internal/config"
	"github.com/zapponejosh/lunar-calendar-api/internal/database"
	"github.com/zapponejosh/lunar-calendar-api/internal/logger"
	"github.com/zapponejosh/lunar-calendar-api/internal/lunar"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db     *database.DB
	conv   *lunar.Converter
	grids  *calendar.GridBuilder
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// Option configures Handlers.
type Option func(*Handlers)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(h *Handlers) {
		h.now = now
	}
}

// WithConverter replaces the built-in lunar table.
func WithConverter(conv *lunar.Converter) Option {
	return func(h *Handlers) {
		h.conv = conv
	}
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, cfg *config.Config, logger *slog.Logger, opts ...Option) *Handlers {
	h := &Handlers{
		db:     db,
		conv:   lunar.NewConverter(),
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.grids = calendar.NewGridBuilder(h.conv)
	return h
}

// today returns the current UTC calendar date.
func (h *Handlers) today() time.Time {
	return calendar.Today(h.now())
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Health(ctx); err != nil {
		logger.Warn(ctx, "health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// writeDateError maps lunar engine errors onto status codes.
func (h *Handlers) writeDateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, lunar.ErrInvalidDate):
		WriteError(w, http.StatusBadRequest, err.Error(), "INVALID_DATE")
	case errors.Is(err, lunar.ErrOutOfRange):
		WriteError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("%v (supported: %s to %s)", err,
				lunar.Epoch.Format(calendar.DateLayout), lunar.LastDate().Format(calendar.DateLayout)),
			"OUT_OF_RANGE")
	case errors.Is(err, lunar.ErrConversion):
		logger.Error(r.Context(), "lunar conversion failed", err, slog.String("path", r.URL.Path))
		WriteError(w, http.StatusInternalServerError, "Lunar conversion failed", "CONVERSION_ERROR")
	default:
		logger.Error(r.Context(), "unexpected date error", err, slog.String("path", r.URL.Path))
		WriteInternalError(w, "Internal server error")
	}
}

// queryInt reads an integer query parameter. ok is false when the parameter is absent.
func queryInt(q url.Values, name string) (v int, ok bool, err error) {
	s := q.Get(name)
	if s == "" {
		return 0, false, nil
	}
	v, err = strconv.Atoi(s)
	if err != nil {
		return 0, false, validation.NewError("validation_is_int", "must be an integer")
	}
	return v, true, nil
}

// requiredInts reads integer query parameters that must all be present.
// Missing and malformed parameters are reported together.
func requiredInts(q url.Values, names ...string) (map[string]int, error) {
	values := make(map[string]int, len(names))
	errs := validation.Errors{}

	for _, name := range names {
		v, ok, err := queryInt(q, name)
		switch {
		case err != nil:
			errs[name] = err
		case !ok:
			errs[name] = validation.ErrRequired
		default:
			values[name] = v
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return values, nil
}

// decodeJSON decodes JSON request body.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
