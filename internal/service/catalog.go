package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/tablegames/shop/internal/logging"
	"github.com/tablegames/shop/internal/models"
	"github.com/tablegames/shop/internal/repo"
	"github.com/tablegames/shop/internal/service/search"
)

type CatalogService struct {
	Repo  *repo.Repo
	ES    *elasticsearch.Client
	Index string
}

type ProductFields struct {
	Name         string
	Price        float64
	StockCount   int
	Publisher    string
	ProductImage string
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListInStock(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) Search(ctx context.Context, substring string) ([]models.Product, error) {
	if s.ES != nil {
		return search.Search(ctx, s.ES, s.Index, substring)
	}
	return s.Repo.SearchByName(ctx, substring)
}

// Create adds a product to the catalog. Only admins may do this.
func (s *CatalogService) Create(ctx context.Context, user *models.User, fields ProductFields) (*models.Product, error) {
	if !user.Admin {
		return nil, fmt.Errorf("%w: admin required", ErrPermission)
	}

	product := &models.Product{
		Name:         fields.Name,
		Price:        fields.Price,
		StockCount:   fields.StockCount,
		Publisher:    fields.Publisher,
		ProductImage: fields.ProductImage,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.index(ctx, *product)
	return product, nil
}

// Restock adds exactly one unit, the fixed increment the storefront uses.
func (s *CatalogService) Restock(ctx context.Context, id uint) error {
	if err := s.Repo.IncrementStock(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *CatalogService) SetImage(ctx context.Context, id uint, filename string) error {
	if err := s.Repo.SetProductImage(ctx, id, filename); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}

	if product, err := s.Repo.ProductByID(ctx, id); err == nil {
		s.index(ctx, *product)
	}
	return nil
}

// index mirrors the product into Elasticsearch, best effort.
func (s *CatalogService) index(ctx context.Context, p models.Product) {
	if s.ES == nil {
		return
	}
	if err := search.IndexProduct(ctx, s.ES, s.Index, p); err != nil {
		logging.FromContext(ctx).Warn("es_index_failed", "product_id", p.ID, "error", err)
	}
}
