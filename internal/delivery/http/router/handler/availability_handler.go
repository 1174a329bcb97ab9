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

// AvailabilityHandlerParams holds dependencies for AvailabilityHandler, injected by Fx.
type AvailabilityHandlerParams struct {
	fx.In

	AvailabilityUC usecase.AvailabilityUsecase
	Logger         *slog.Logger
}

// AvailabilityHandler holds dependencies for availability filtering handlers
type AvailabilityHandler struct {
	availabilityUC usecase.AvailabilityUsecase
	logger         *slog.Logger
}

// NewAvailabilityHandler is the constructor for AvailabilityHandler
func NewAvailabilityHandler(params AvailabilityHandlerParams) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUC: params.AvailabilityUC,
		logger:         params.Logger,
	}
}

// FilterRequest represents the request body for an availability filter
type FilterRequest struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" validate:"required,datetime=2006-01-02"`
}

// Filter handles filtering items by declared availability
func (h *AvailabilityHandler) Filter(c echo.Context) error {
	var req FilterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid filter input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	matches, err := h.availabilityUC.Filter(c.Request().Context(), &usecase.AvailabilityInput{
		Start: req.Start,
		End:   req.End,
	})
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, matches, "Availability filter applied")
}

func (h *AvailabilityHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
