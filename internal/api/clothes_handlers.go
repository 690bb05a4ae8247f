package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"github.com/zapponejosh/lunar-calendar-api/internal/database"
	"github.com/zapponejosh/lunar-calendar-api/internal/logger"
)

const maxLabelLength = 100

// clothingTypeValues and seasonValues adapt the enum listings for validation.In.
func clothingTypeValues() []interface{} {
	var values []interface{}
	for _, ct := range database.ValidClothingTypes() {
		values = append(values, ct)
	}
	return values
}

func seasonValues() []interface{} {
	var values []interface{}
	for _, s := range database.ValidSeasons() {
		values = append(values, s)
	}
	return values
}

func validateNewClothing(nc *database.NewClothing) error {
	return validation.ValidateStruct(nc,
		validation.Field(&nc.Label, validation.Required, validation.Length(1, maxLabelLength)),
		validation.Field(&nc.Type, validation.Required, validation.In(clothingTypeValues()...)),
		validation.Field(&nc.Season, validation.Required, validation.In(seasonValues()...)),
		validation.Field(&nc.WearCount, validation.Min(0)),
		validation.Field(&nc.ImageURL, is.URL),
	)
}

func validateClothingUpdate(upd *database.ClothingUpdate) error {
	if upd.IsEmpty() {
		return errors.New("no fields to update")
	}
	return validation.ValidateStruct(upd,
		validation.Field(&upd.Label, validation.NilOrNotEmpty, validation.Length(1, maxLabelLength)),
		validation.Field(&upd.Type, validation.NilOrNotEmpty, validation.In(clothingTypeValues()...)),
		validation.Field(&upd.Season, validation.NilOrNotEmpty, validation.In(seasonValues()...)),
		validation.Field(&upd.WearCount, validation.Min(0)),
		validation.Field(&upd.ImageURL, is.URL),
	)
}

// clothingID reads and checks the {id} path parameter.
// It writes a 400 response and returns false when the id is not a UUID.
func clothingID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid clothing ID", "INVALID_ID")
		return "", false
	}
	return id.String(), true
}

// ListClothes handles GET /api/v1/clothes
func (h *Handlers) ListClothes(w http.ResponseWriter, r *http.Request) {
	clothes, err := h.db.ListClothes(r.Context())
	if err != nil {
		logger.Error(r.Context(), "failed to list clothes", err)
		WriteInternalError(w, "Failed to retrieve clothes")
		return
	}

	WriteSuccess(w, clothes)
}

// GetClothing handles GET /api/v1/clothes/{id}
func (h *Handlers) GetClothing(w http.ResponseWriter, r *http.Request) {
	id, ok := clothingID(w, r)
	if !ok {
		return
	}

	c, err := h.db.GetClothing(r.Context(), id)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Clothing not found")
			return
		}
		logger.Error(r.Context(), "failed to get clothing", err, slog.String("id", id))
		WriteInternalError(w, "Failed to retrieve clothing")
		return
	}

	WriteSuccess(w, c)
}

// CreateClothing handles POST /api/v1/clothes
func (h *Handlers) CreateClothing(w http.ResponseWriter, r *http.Request) {
	var nc database.NewClothing
	if err := decodeJSON(r, &nc); err != nil {
		WriteBadRequest(w, "Invalid request body: "+err.Error())
		return
	}

	if err := validateNewClothing(&nc); err != nil {
		WriteValidationError(w, err)
		return
	}

	c, err := h.db.CreateClothing(r.Context(), nc)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			WriteError(w, http.StatusConflict, "Clothing already exists", "DUPLICATE")
			return
		}
		logger.Error(r.Context(), "failed to create clothing", err)
		WriteInternalError(w, "Failed to create clothing")
		return
	}

	logger.Info(r.Context(), "clothing created", slog.String("id", c.ID), slog.String("label", c.Label))

	WriteJSON(w, http.StatusCreated, Response{
		Success: true,
		Data:    c,
	})
}

// UpdateClothing handles PUT /api/v1/clothes/{id}
//
// Only the fields present in the body are changed.
func (h *Handlers) UpdateClothing(w http.ResponseWriter, r *http.Request) {
	id, ok := clothingID(w, r)
	if !ok {
		return
	}

	var upd database.ClothingUpdate
	if err := decodeJSON(r, &upd); err != nil {
		WriteBadRequest(w, "Invalid request body: "+err.Error())
		return
	}

	if err := validateClothingUpdate(&upd); err != nil {
		WriteValidationError(w, err)
		return
	}

	c, err := h.db.UpdateClothing(r.Context(), id, upd)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Clothing not found")
			return
		}
		logger.Error(r.Context(), "failed to update clothing", err, slog.String("id", id))
		WriteInternalError(w, "Failed to update clothing")
		return
	}

	WriteSuccess(w, c)
}

// DeleteClothing handles DELETE /api/v1/clothes/{id}
func (h *Handlers) DeleteClothing(w http.ResponseWriter, r *http.Request) {
	id, ok := clothingID(w, r)
	if !ok {
		return
	}

	if err := h.db.DeleteClothing(r.Context(), id); err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Clothing not found")
			return
		}
		logger.Error(r.Context(), "failed to delete clothing", err, slog.String("id", id))
		WriteInternalError(w, "Failed to delete clothing")
		return
	}

	WriteSuccess(w, map[string]string{"message": "Clothing deleted"})
}

// ListClothesBySeason handles GET /api/v1/clothes/season/{season}
func (h *Handlers) ListClothesBySeason(w http.ResponseWriter, r *http.Request) {
	season := database.Season(chi.URLParam(r, "season"))
	if err := validation.Validate(season, validation.In(seasonValues()...)); err != nil {
		WriteValidationError(w, validation.Errors{"season": err})
		return
	}

	clothes, err := h.db.ListClothesBySeason(r.Context(), season)
	if err != nil {
		logger.Error(r.Context(), "failed to list clothes by season", err, slog.String("season", string(season)))
		WriteInternalError(w, "Failed to retrieve clothes")
		return
	}

	WriteSuccess(w, clothes)
}

// ListClothesByType handles GET /api/v1/clothes/type/{type}
func (h *Handlers) ListClothesByType(w http.ResponseWriter, r *http.Request) {
	ct := database.ClothingType(chi.URLParam(r, "type"))
	if err := validation.Validate(ct, validation.In(clothingTypeValues()...)); err != nil {
		WriteValidationError(w, validation.Errors{"type": err})
		return
	}

	clothes, err := h.db.ListClothesByType(r.Context(), ct)
	if err != nil {
		logger.Error(r.Context(), "failed to list clothes by type", err, slog.String("type", string(ct)))
		WriteInternalError(w, "Failed to retrieve clothes")
		return
	}

	WriteSuccess(w, clothes)
}

// GetWardrobeStats handles GET /api/v1/clothes/stats
func (h *Handlers) GetWardrobeStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.db.WardrobeStats(r.Context())
	if err != nil {
		logger.Error(r.Context(), "failed to get wardrobe stats", err)
		WriteInternalError(w, "Failed to retrieve statistics")
		return
	}

	WriteSuccess(w, stats)
}
