package service

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/misthy/shop-api/internal/assets"
	"github.com/misthy/shop-api/internal/logging"
	"github.com/misthy/shop-api/internal/models"
	"github.com/misthy/shop-api/internal/repo"
	"github.com/misthy/shop-api/internal/service/search"
	"github.com/misthy/shop-api/internal/transport"
)

// publicAssetPrefix is the path the asset directory is mounted at, stored
// image paths and the static route in the router must agree on it.
const publicAssetPrefix = "uploads"

type CatalogService struct {
	Repo          *repo.GormRepo
	Assets        *assets.DiskStore
	Events        EventPublisher
	ES            *elasticsearch.Client
	Index         string
	PublicBaseURL string
}

type UploadProductInput struct {
	Image            io.Reader
	OriginalFilename string
	ProductName      string
	Description      string
	Category         string
	Price            string
}

func (s *CatalogService) UploadProduct(ctx context.Context, in UploadProductInput) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.upload_product")

	if in.Image == nil {
		return nil, ErrValidation
	}
	if in.ProductName == "" || in.Description == "" || in.Category == "" || in.Price == "" {
		return nil, ErrValidation
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}

	storedName, err := s.Assets.Store(in.OriginalFilename, in.Image)
	if err != nil {
		l.Error("upload_product_error", "reason", "cannot store image", "error", err)
		return nil, fmt.Errorf("upload product: %w", err)
	}

	prod := models.Product{
		ImagePath:   publicAssetPrefix + "/" + storedName,
		ImageName:   in.OriginalFilename,
		ProductName: in.ProductName,
		Description: in.Description,
		Category:    in.Category,
		Price:       price,
	}
	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		l.Error("upload_product_error", "reason", "cannot create product", "error", err)
		return nil, fmt.Errorf("upload product: %w", err)
	}

	publish(ctx, s.Events, "product_events", fmt.Sprint(prod.ID), map[string]interface{}{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.ProductName,
	})

	if s.ES != nil {
		if err := search.IndexProduct(ctx, s.ES, s.Index, &prod); err != nil {
			l.Error("es_index_error", "productID", prod.ID, "error", err)
		}
	}

	l.Info("upload_product_success", "productID", prod.ID)
	return &prod, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]transport.ProductView, error) {
	items, err := s.Repo.GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	views := make([]transport.ProductView, len(items))
	for i, prod := range items {
		views[i] = transport.ProductView{
			ID:          prod.ID,
			ProductName: prod.ProductName,
			Description: prod.Description,
			Price:       prod.Price,
			Category:    prod.Category,
			ImageURL:    s.imageURL(prod.ImagePath),
		}
	}
	return views, nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string, from, size int) (int64, []transport.ProductView, error) {
	total, items, err := search.Search(ctx, s.ES, s.Index, query, from, size)
	if err != nil {
		return 0, nil, fmt.Errorf("search products: %w", err)
	}

	views := make([]transport.ProductView, len(items))
	for i, prod := range items {
		views[i] = transport.ProductView{
			ID:          prod.ID,
			ProductName: prod.ProductName,
			Description: prod.Description,
			Price:       prod.Price,
			Category:    prod.Category,
			ImageURL:    s.imageURL(prod.ImagePath),
		}
	}
	return total, views, nil
}

func (s *CatalogService) imageURL(imagePath string) string {
	return strings.TrimSuffix(s.PublicBaseURL, "/") + "/" + imagePath
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, ErrValidation
	}
	if price < 0 {
		return 0, ErrValidation
	}
	return price, nil
}
