package service

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/souqly/souqly-backend/internal/apperrors"
	"github.com/souqly/souqly-backend/internal/logging"
	"github.com/souqly/souqly-backend/internal/models"
	"github.com/souqly/souqly-backend/internal/repository"
)

// ProductService serves the catalog. Detail lookups are cache-aside with
// singleflight collapsing concurrent misses for the same product into one
// database read.
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        repository.ProductCache
	group        singleflight.Group
	logger       *logging.Logger
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	cache repository.ProductCache,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		logger:       logging.New("product-service"),
	}
}

func (s *ProductService) GetProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error) {
	filter.Page, filter.Limit = normalizePagination(filter.Page, filter.Limit)
	return s.productRepo.List(ctx, filter)
}

func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	v, err, _ := s.group.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		product, err := s.productRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, product); err != nil {
				s.logger.Debug("Cache set failed", logging.Fields{"product_id": id})
			}
		}
		return product, nil
	})
	if err == apperrors.ErrNotFound {
		return nil, apperrors.NewNotFound(fmt.Sprintf("Product %d not found", id))
	}
	if err != nil {
		return nil, err
	}
	return v.(*models.Product), nil
}

func (s *ProductService) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsByName(ctx, p.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict(fmt.Sprintf("Product %q already exists", p.Name))
	}

	created, err := s.productRepo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product created", logging.Fields{
		"product_id": created.ID,
		"name":       created.Name,
	})
	return created, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	updated, err := s.productRepo.Update(ctx, p)
	if err == apperrors.ErrNotFound {
		return nil, apperrors.NewNotFound(fmt.Sprintf("Product %d not found", p.ID))
	}
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, p.ID)
	return updated, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound(fmt.Sprintf("Product %d not found", id))
	}

	s.invalidate(ctx, id)
	s.logger.Info("Product deleted", logging.Fields{"product_id": id})
	return nil
}

// UpdateStock overwrites a product's stock level.
func (s *ProductService) UpdateStock(ctx context.Context, productID int64, stock int) (*models.Product, error) {
	if stock < 0 {
		return nil, apperrors.NewValidation("Stock cannot be negative")
	}

	updated, err := s.productRepo.SetStock(ctx, productID, stock)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperrors.NewNotFound(fmt.Sprintf("Product %d not found", productID))
	}

	s.invalidate(ctx, productID)
	return s.productRepo.GetByID(ctx, productID)
}

// UpdateSalesCount adds quantity to a product's sales counter.
func (s *ProductService) UpdateSalesCount(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return apperrors.NewValidation("Valid positive quantity is required")
	}

	updated, err := s.productRepo.IncrementSalesCount(ctx, productID, quantity)
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.NewNotFound(fmt.Sprintf("Product %d not found", productID))
	}

	s.invalidate(ctx, productID)
	return nil
}

func (s *ProductService) ListCategories(ctx context.Context, page, limit int) ([]models.Category, int, error) {
	page, limit = normalizePagination(page, limit)
	return s.categoryRepo.List(ctx, page, limit)
}

func (s *ProductService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.logger.Debug("Cache invalidation failed", logging.Fields{"product_id": id})
	}
}
