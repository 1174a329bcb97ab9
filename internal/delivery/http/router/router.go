// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"billmap/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	InventoryHandler    *handler.InventoryHandler
	ProximityHandler    *handler.ProximityHandler
	AvailabilityHandler *handler.AvailabilityHandler
	ExportHandler       *handler.ExportHandler
	SearchHandler       *handler.SearchHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	inventoryHandler    *handler.InventoryHandler
	proximityHandler    *handler.ProximityHandler
	availabilityHandler *handler.AvailabilityHandler
	exportHandler       *handler.ExportHandler
	searchHandler       *handler.SearchHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		inventoryHandler:    params.InventoryHandler,
		proximityHandler:    params.ProximityHandler,
		availabilityHandler: params.AvailabilityHandler,
		exportHandler:       params.ExportHandler,
		searchHandler:       params.SearchHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Inventory routes
	inventoryGroup := e.Group("/inventory")
	{
		inventoryGroup.POST("", r.inventoryHandler.Upload)
		inventoryGroup.GET("", r.inventoryHandler.List)
		inventoryGroup.DELETE("", r.inventoryHandler.Clear)
		inventoryGroup.GET("/template", r.inventoryHandler.Template)
		inventoryGroup.POST("/:id/circle", r.proximityHandler.ToggleCircle)
	}

	// Reference point routes
	referenceGroup := e.Group("/reference")
	{
		referenceGroup.POST("", r.proximityHandler.SetReference)
		referenceGroup.DELETE("", r.proximityHandler.ClearReference)
		referenceGroup.POST("/promote/:id", r.proximityHandler.Promote)
	}

	// Map state routes
	e.GET("/map", r.proximityHandler.Snapshot)
	e.PUT("/radius", r.proximityHandler.SetRadius)
	e.PUT("/visibility", r.proximityHandler.SetVisibility)
	e.POST("/circles", r.proximityHandler.ShowAllCircles)
	e.DELETE("/circles", r.proximityHandler.HideAllCircles)

	// Availability routes
	e.POST("/availability/filter", r.availabilityHandler.Filter)

	// Place search routes
	searchGroup := e.Group("/search")
	{
		searchGroup.POST("", r.searchHandler.Search)
		searchGroup.POST("/refresh", r.searchHandler.Refresh)
		searchGroup.DELETE("", r.searchHandler.Clear)
	}

	// Export routes
	exportGroup := e.Group("/export")
	{
		exportGroup.GET("/in-range", r.exportHandler.InRange)
		exportGroup.GET("/workbook", r.exportHandler.Workbook)
		exportGroup.GET("/grouped", r.exportHandler.Grouped)
	}
}
