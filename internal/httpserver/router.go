package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	authmw "github.com/toggar/toggar-backend/internal/middleware/auth"
	"github.com/toggar/toggar-backend/internal/models"
)

type Deps struct {
	DB        *gorm.DB
	Auth      *AuthHTTP
	Catalog   *CatalogHTTP
	Search    *SearchHTTP
	JWTSecret []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	// Ready means the store answers, not just that the process is up.
	e.GET("/health/ready", func(c echo.Context) error {
		sqlDB, err := d.DB.DB()
		if err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/api")

	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)

	api.GET("/categories", d.Catalog.ListCategories)
	api.GET("/products", d.Catalog.ListProducts)
	api.GET("/products/category/:categoryId", d.Catalog.ListProductsByCategory)
	if d.Search != nil {
		api.GET("/products/search", d.Search.Search)
	}

	admin := api.Group("/admin", authmw.RequireAuth(d.JWTSecret), authmw.RequireRole(models.RoleAdmin))

	admin.POST("/categories", d.Catalog.CreateCategory)
	admin.PUT("/categories/:id", d.Catalog.UpdateCategory)
	admin.DELETE("/categories/:id", d.Catalog.DeleteCategory)

	admin.POST("/products", d.Catalog.CreateProduct)
	admin.PUT("/products/:id", d.Catalog.UpdateProduct)
	admin.DELETE("/products/:id", d.Catalog.DeleteProduct)
}
