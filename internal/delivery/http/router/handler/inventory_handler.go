package handler

import (
	"io"
	"log/slog"
	"net/http"

	"billmap/internal/delivery/http/response"
	domainerrors "billmap/internal/domain/errors"
	"billmap/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// InventoryHandlerParams holds dependencies for InventoryHandler, injected by Fx.
type InventoryHandlerParams struct {
	fx.In

	InventoryUC usecase.InventoryUsecase
	Logger      *slog.Logger
}

// InventoryHandler holds dependencies for inventory-related handlers
type InventoryHandler struct {
	inventoryUC usecase.InventoryUsecase
	logger      *slog.Logger
}

// NewInventoryHandler is the constructor for InventoryHandler
func NewInventoryHandler(params InventoryHandlerParams) *InventoryHandler {
	return &InventoryHandler{
		inventoryUC: params.InventoryUC,
		logger:      params.Logger,
	}
}

// Upload handles an inventory file upload
func (h *InventoryHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Missing file upload")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "UPLOAD_FAILED", "Could not open uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return response.InternalServerError(c, "UPLOAD_FAILED", "Could not read uploaded file")
	}

	summary, err := h.inventoryUC.Ingest(c.Request().Context(), &usecase.IngestInput{
		Filename: fileHeader.Filename,
		Data:     data,
	})
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, summary, "Inventory imported successfully")
}

// List handles retrieving the current inventory
func (h *InventoryHandler) List(c echo.Context) error {
	items, err := h.inventoryUC.List(c.Request().Context())
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, items, "Inventory retrieved successfully")
}

// Clear handles dropping the current inventory
func (h *InventoryHandler) Clear(c echo.Context) error {
	if err := h.inventoryUC.Clear(c.Request().Context()); err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Inventory cleared")
}

// Template serves the CSV import template
func (h *InventoryHandler) Template(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="template_panouri.csv"`)

	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", h.inventoryUC.TemplateCSV())
}

func (h *InventoryHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
