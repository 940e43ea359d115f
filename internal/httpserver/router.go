package httpserver

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/misthy/shop-api/internal/jwtmiddleware"
	"github.com/misthy/shop-api/internal/logging"
	"github.com/misthy/shop-api/internal/token"
)

type Deps struct {
	Auth      *AuthHTTP
	Catalog   *CatalogHTTP
	Issuer    *token.Issuer
	UploadDir string

	// SearchEnabled mounts /search only when an Elasticsearch client is
	// configured.
	SearchEnabled bool
}

type echoValidator struct {
	validate *validator.Validate
}

func (v *echoValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// ContextLogger installs the request-scoped logger so every layer below can
// pick it up with logging.FromContext.
func ContextLogger(l *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			reqLog := l.With("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), reqLog)))
			return next(c)
		}
	}
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = &echoValidator{validate: validator.New()}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.POST("/register", d.Auth.Register)
	e.POST("/login", d.Auth.Login)
	e.POST("/uploadProduct", d.Catalog.UploadProduct)
	e.GET("/products", d.Catalog.GetProducts)

	if d.SearchEnabled {
		e.GET("/search", d.Catalog.Search)
	}

	e.GET("/me", d.Auth.Profile, jwtmiddleware.RequireAuth(d.Issuer))

	// Uploaded images are served read-only straight from the asset
	// directory, matching the stored imagePath values.
	e.Static("/uploads", d.UploadDir)
}
