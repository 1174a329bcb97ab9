package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"billmap/internal/delivery/http/response"
	domainerrors "billmap/internal/domain/errors"
	"billmap/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ExportHandlerParams holds dependencies for ExportHandler, injected by Fx.
type ExportHandlerParams struct {
	fx.In

	ExportUC usecase.ExportUsecase
	Logger   *slog.Logger
}

// ExportHandler holds dependencies for spreadsheet export handlers
type ExportHandler struct {
	exportUC usecase.ExportUsecase
	logger   *slog.Logger
}

// NewExportHandler is the constructor for ExportHandler
func NewExportHandler(params ExportHandlerParams) *ExportHandler {
	return &ExportHandler{
		exportUC: params.ExportUC,
		logger:   params.Logger,
	}
}

// InRange handles exporting the items inside the active radius
func (h *ExportHandler) InRange(c echo.Context) error {
	file, err := h.exportUC.ExportInRange(c.Request().Context())
	if err != nil {
		return h.handleAppError(c, err)
	}

	return h.serveFile(c, file)
}

// Workbook handles re-exporting the imported workbook with hyperlinks
func (h *ExportHandler) Workbook(c echo.Context) error {
	file, err := h.exportUC.ExportWorkbook(c.Request().Context())
	if err != nil {
		return h.handleAppError(c, err)
	}

	return h.serveFile(c, file)
}

// Grouped handles exporting places grouped per peeked item
func (h *ExportHandler) Grouped(c echo.Context) error {
	file, err := h.exportUC.ExportGrouped(c.Request().Context())
	if err != nil {
		return h.handleAppError(c, err)
	}

	return h.serveFile(c, file)
}

func (h *ExportHandler) serveFile(c echo.Context, file *usecase.ExportFile) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", file.Filename))

	return c.Blob(http.StatusOK, file.ContentType, file.Data)
}

func (h *ExportHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
