package handler

import (
	"log/slog"
	"net/http"

	"billmap/internal/delivery/http/response"
	domainerrors "billmap/internal/domain/errors"
	"billmap/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ProximityHandlerParams holds dependencies for ProximityHandler, injected by Fx.
type ProximityHandlerParams struct {
	fx.In

	ProximityUC usecase.ProximityUsecase
	Logger      *slog.Logger
}

// ProximityHandler holds dependencies for reference and radius handlers
type ProximityHandler struct {
	proximityUC usecase.ProximityUsecase
	logger      *slog.Logger
}

// NewProximityHandler is the constructor for ProximityHandler
func NewProximityHandler(params ProximityHandlerParams) *ProximityHandler {
	return &ProximityHandler{
		proximityUC: params.ProximityUC,
		logger:      params.Logger,
	}
}

// SetReferenceRequest represents the request body for activating a reference
type SetReferenceRequest struct {
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Lat     *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lng     *float64 `json:"lng" validate:"omitempty,min=-180,max=180"`
}

// SetRadiusRequest represents the request body for updating the shared radius
type SetRadiusRequest struct {
	Meters float64 `json:"meters" validate:"required,gt=0"`
}

// SetVisibilityRequest represents the request body for the visibility toggle
type SetVisibilityRequest struct {
	ShowOnlyInRange bool `json:"show_only_in_range"`
}

// SetReference handles activating an external reference point
func (h *ProximityHandler) SetReference(c echo.Context) error {
	var req SetReferenceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reference input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	snapshot, err := h.proximityUC.SetReference(c.Request().Context(), &usecase.SetReferenceInput{
		Name:    req.Name,
		Address: req.Address,
		Lat:     req.Lat,
		Lng:     req.Lng,
	})
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, snapshot, "Reference point set")
}

// ClearReference handles deactivating the reference point
func (h *ProximityHandler) ClearReference(c echo.Context) error {
	snapshot, err := h.proximityUC.ClearReference(c.Request().Context())
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, snapshot, "Reference point cleared")
}

// Promote handles making an inventory item the reference point
func (h *ProximityHandler) Promote(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid item ID")
	}

	snapshot, err := h.proximityUC.PromoteItem(c.Request().Context(), id)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, snapshot, "Item promoted to reference")
}

// SetRadius handles updating the shared radius
func (h *ProximityHandler) SetRadius(c echo.Context) error {
	var req SetRadiusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid radius input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	snapshot, err := h.proximityUC.SetRadius(c.Request().Context(), req.Meters)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, snapshot, "Radius updated")
}

// ToggleCircle handles flipping a peek circle on an item
func (h *ProximityHandler) ToggleCircle(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid item ID")
	}

	snapshot, err := h.proximityUC.ToggleCircle(c.Request().Context(), id)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, snapshot, "Circle toggled")
}

// ShowAllCircles handles drawing a peek circle on every item
func (h *ProximityHandler) ShowAllCircles(c echo.Context) error {
	snapshot, err := h.proximityUC.ShowAllCircles(c.Request().Context())
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, snapshot, "Circles shown for all items")
}

// HideAllCircles handles removing every peek circle
func (h *ProximityHandler) HideAllCircles(c echo.Context) error {
	snapshot, err := h.proximityUC.HideAllCircles(c.Request().Context())
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, snapshot, "Circles hidden")
}

// SetVisibility handles the show-only-in-range toggle
func (h *ProximityHandler) SetVisibility(c echo.Context) error {
	var req SetVisibilityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid visibility input")
	}

	snapshot, err := h.proximityUC.SetVisibility(c.Request().Context(), req.ShowOnlyInRange)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, snapshot, "Visibility updated")
}

// Snapshot handles retrieving the current derived map view
func (h *ProximityHandler) Snapshot(c echo.Context) error {
	snapshot, err := h.proximityUC.Snapshot(c.Request().Context())
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, snapshot, "Snapshot retrieved successfully")
}

func (h *ProximityHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
