package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/misthy/shop-api/internal/logging"
	"github.com/misthy/shop-api/internal/service"
	"github.com/misthy/shop-api/internal/util"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) UploadProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload_product")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		l.Warn("upload_product_failed", "status", 400, "reason", "no image", "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No image file provided"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		l.Error("upload_product_failed", "status", 500, "reason", "cannot open upload", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	defer file.Close()

	prod, err := h.Svc.UploadProduct(ctx, service.UploadProductInput{
		Image:            file,
		OriginalFilename: fileHeader.Filename,
		ProductName:      c.FormValue("product_name"),
		Description:      c.FormValue("description"),
		Category:         c.FormValue("category"),
		Price:            c.FormValue("price"),
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("upload_product_failed", "status", 400, "reason", "invalid fields")
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Product name, description, price and category are required",
			})
		}
		l.Error("upload_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusCreated, prod)
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get_products")

	views, err := h.Svc.ListProducts(ctx)
	if err != nil {
		l.Error("get_products_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, views)
}

func (h *CatalogHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search_products")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Query is required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, views, err := h.Svc.SearchProducts(ctx, q, from, limit)
	if err != nil {
		l.Error("search_products_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": views})
}
