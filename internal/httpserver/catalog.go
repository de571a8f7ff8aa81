package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/toggar/toggar-backend/internal/events"
	"github.com/toggar/toggar-backend/internal/logging"
	"github.com/toggar/toggar-backend/internal/models"
	"github.com/toggar/toggar-backend/internal/service"
	"github.com/toggar/toggar-backend/internal/service/search"
	"github.com/toggar/toggar-backend/internal/transport"
)

type CatalogHTTP struct {
	Svc      *service.CatalogService
	Producer *events.Producer
	Search   *search.Service
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *CatalogHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_categories")

	cats, err := h.Svc.ListCategories(ctx)
	if err != nil {
		l.Error("list_categories_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_category")

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" {
		l.Warn("create_category_failed", "status", 400, "reason", "missing name")
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	cat, err := h.Svc.CreateCategory(ctx, req.Name)
	if err != nil {
		l.Error("create_category_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	h.publish(c, map[string]any{"type": "category_created", "categoryID": cat.ID, "name": cat.Name})

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Category added successfully",
		"categoryId": cat.ID,
	})
}

func (h *CatalogHTTP) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update_category")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateCategory(ctx, id, req.Name); err != nil {
		l.Error("update_category_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	h.publish(c, map[string]any{"type": "category_updated", "categoryID": id, "name": req.Name})

	return c.JSON(http.StatusOK, echo.Map{"message": "Category updated successfully"})
}

func (h *CatalogHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_category")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteCategory(ctx, id); err != nil {
		l.Error("delete_category_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	h.publish(c, map[string]any{"type": "category_deleted", "categoryID": id})

	return c.JSON(http.StatusOK, echo.Map{"message": "Category deleted successfully"})
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_products")

	rows, err := h.Svc.ListProducts(ctx)
	if err != nil {
		l.Error("list_products_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *CatalogHTTP) ListProductsByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_products_by_category")

	categoryID, err := parseID(c, "categoryId")
	if err != nil {
		return err
	}

	rows, err := h.Svc.ListProductsByCategory(ctx, categoryID)
	if err != nil {
		l.Error("list_products_by_category_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_product")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" {
		l.Warn("create_product_failed", "status", 400, "reason", "missing name")
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	prod := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	}
	if err := h.Svc.CreateProduct(ctx, &prod); err != nil {
		l.Error("create_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	h.publish(c, map[string]any{"type": "product_created", "productID": prod.ID, "name": prod.Name})
	h.index(c, &prod)

	return c.JSON(http.StatusCreated, echo.Map{
		"message":   "Product added successfully",
		"productId": prod.ID,
	})
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update_product")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod := models.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	}
	if err := h.Svc.UpdateProduct(ctx, id, &prod); err != nil {
		l.Error("update_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	h.publish(c, map[string]any{"type": "product_updated", "productID": id, "name": prod.Name})
	h.index(c, &prod)

	return c.JSON(http.StatusOK, echo.Map{"message": "Product updated successfully"})
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_product")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		l.Error("delete_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}

	h.publish(c, map[string]any{"type": "product_deleted", "productID": id})
	if h.Search != nil {
		if err := h.Search.DeleteProduct(ctx, id); err != nil {
			l.Error("search deindex failed", "productID", id, "error", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

func (h *CatalogHTTP) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	key := event["categoryID"]
	if key == nil {
		key = event["productID"]
	}
	if err := h.Producer.PublishEvent(ctx, events.TopicCatalogEvents, fmt.Sprint(key), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "error", err)
	}
}

func (h *CatalogHTTP) index(c echo.Context, prod *models.Product) {
	if h.Search == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Search.IndexProduct(ctx, prod); err != nil {
		logging.FromContext(c.Request().Context()).Error("search index failed", "productID", prod.ID, "error", err)
	}
}
