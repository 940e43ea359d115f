package httpserver

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/misthy/shop-api/internal/assets"
	"github.com/misthy/shop-api/internal/hash"
	"github.com/misthy/shop-api/internal/models"
	"github.com/misthy/shop-api/internal/repo"
	"github.com/misthy/shop-api/internal/service"
	"github.com/misthy/shop-api/internal/token"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Issuer *token.Issuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}))

	uploadDir := t.TempDir()
	store, err := assets.NewDiskStore(uploadDir)
	require.NoError(t, err)

	gormRepo := &repo.GormRepo{DB: db}
	issuer := token.NewIssuer([]byte("test-jwt-secret"), time.Hour)

	authSvc := &service.AuthService{
		Repo:   gormRepo,
		Hasher: hash.New(bcrypt.MinCost),
		Tokens: issuer,
	}
	catalogSvc := &service.CatalogService{
		Repo:          gormRepo,
		Assets:        store,
		PublicBaseURL: "http://localhost:8080",
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())

	Register(e, &Deps{
		Auth:      &AuthHTTP{Svc: authSvc},
		Catalog:   &CatalogHTTP{Svc: catalogSvc},
		Issuer:    issuer,
		UploadDir: uploadDir,
	})

	return &testEnv{T: t, E: e, DB: db, Issuer: issuer}
}

func (env *testEnv) doJSON(method, path string, body interface{}, headers ...http.Header) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, h := range headers {
		for k, vs := range h {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) doMultipart(path string, fields map[string]string, image []byte, imageName string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if image != nil {
		fw, err := w.CreateFormFile("image", imageName)
		require.NoError(env.T, err)
		_, err = fw.Write(image)
		require.NoError(env.T, err)
	}
	for k, v := range fields {
		require.NoError(env.T, w.WriteField(k, v))
	}
	require.NoError(env.T, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) register(username, email, password string) *httptest.ResponseRecorder {
	env.T.Helper()
	return env.doJSON(http.MethodPost, "/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
}

func (env *testEnv) login(email, password string) *httptest.ResponseRecorder {
	env.T.Helper()
	return env.doJSON(http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}
