package handler

import (
	"log/slog"
	"net/http"

	"billmap/internal/delivery/http/response"
	domainerrors "billmap/internal/domain/errors"
	"billmap/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SearchHandlerParams holds dependencies for SearchHandler, injected by Fx.
type SearchHandlerParams struct {
	fx.In

	SearchUC usecase.SearchUsecase
	Logger   *slog.Logger
}

// SearchHandler holds dependencies for place search handlers
type SearchHandler struct {
	searchUC usecase.SearchUsecase
	logger   *slog.Logger
}

// NewSearchHandler is the constructor for SearchHandler
func NewSearchHandler(params SearchHandlerParams) *SearchHandler {
	return &SearchHandler{
		searchUC: params.SearchUC,
		logger:   params.Logger,
	}
}

// SearchRequest represents the request body for a place text search
type SearchRequest struct {
	Query        string   `json:"query" validate:"required"`
	KeepExisting bool     `json:"keep_existing"`
	SouthWestLat *float64 `json:"sw_lat" validate:"omitempty,min=-90,max=90"`
	SouthWestLng *float64 `json:"sw_lng" validate:"omitempty,min=-180,max=180"`
	NorthEastLat *float64 `json:"ne_lat" validate:"omitempty,min=-90,max=90"`
	NorthEastLng *float64 `json:"ne_lng" validate:"omitempty,min=-180,max=180"`
}

// Search handles a place text search
func (h *SearchHandler) Search(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid search input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	places, err := h.searchUC.Search(c.Request().Context(), &usecase.SearchInput{
		Query:        req.Query,
		KeepExisting: req.KeepExisting,
		SouthWestLat: req.SouthWestLat,
		SouthWestLng: req.SouthWestLng,
		NorthEastLat: req.NorthEastLat,
		NorthEastLng: req.NorthEastLng,
	})
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, places, "Search completed")
}

// Refresh handles a debounced re-run of the last search, typically fired on
// viewport changes
func (h *SearchHandler) Refresh(c echo.Context) error {
	h.searchUC.Refresh()

	return response.Success(c, http.StatusAccepted, nil, "Search refresh scheduled")
}

// Clear handles dropping the stored search results
func (h *SearchHandler) Clear(c echo.Context) error {
	if err := h.searchUC.ClearPlaces(c.Request().Context()); err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Search results cleared")
}

func (h *SearchHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
