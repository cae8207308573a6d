package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/heavymachinery/backend/cache"
	"github.com/heavymachinery/backend/models"
	"github.com/heavymachinery/backend/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	trendingCacheKey = "trending_products"
	offersCacheKey   = "all_offers"
	trendingLimit    = 10
)

// ProductCatalog is the slice of the product repository the catalog
// reads and writes go through.
type ProductCatalog interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Find(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	TopTrending(ctx context.Context, limit int64) ([]models.Product, error)
	Insert(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, updates bson.M) error
	Delete(ctx context.Context, id string) error
}

// OfferStore persists and lists promotional offers.
type OfferStore interface {
	Insert(ctx context.Context, offer *models.Offer) error
	FindAll(ctx context.Context) ([]models.Offer, error)
}

// AddProductRequest is the admin payload for creating a product.
type AddProductRequest struct {
	Name           string                 `json:"name" binding:"required"`
	Description    string                 `json:"description"`
	Price          float64                `json:"price" binding:"required,gt=0"`
	Stock          int                    `json:"stock" binding:"min=0"`
	Category       string                 `json:"category" binding:"required"`
	Brand          string                 `json:"brand" binding:"required"`
	Specifications map[string]interface{} `json:"specifications"`
	ImageURL       string                 `json:"image_url"`
}

// AddOfferRequest attaches a discount to an existing product.
type AddOfferRequest struct {
	ProductID   string  `json:"product_id" binding:"required"`
	Discount    float64 `json:"discount" binding:"required,gt=0,lte=100"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

// CatalogService covers product listing, search, trending and the
// admin-side product/offer management. The trending and offers lists go
// through the read-through cache; everything else hits Mongo directly.
type CatalogService struct {
	products ProductCatalog
	offers   OfferStore
	kv       cache.KV
}

func NewCatalogService(products ProductCatalog, offers OfferStore, kv cache.KV) *CatalogService {
	return &CatalogService{products: products, offers: offers, kv: kv}
}

// ListProducts returns products optionally filtered by brand and
// category, with the derived availability flag set.
func (s *CatalogService) ListProducts(ctx context.Context, brand, category string) ([]models.Product, *ServiceError) {
	filter := bson.M{}
	if brand != "" {
		filter["brand"] = brand
	}
	if category != "" {
		filter["category"] = category
	}

	products, err := s.products.Find(ctx, filter, nil)
	if err != nil {
		zap.L().Error("Product listing failed", zap.Error(err))
		return nil, internal("Failed to fetch products")
	}
	markAvailability(products)
	return products, nil
}

// GetProduct returns one product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, *ServiceError) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound(fmt.Sprintf("Product %s not found", id))
		}
		zap.L().Error("Product lookup failed", zap.String("product_id", id), zap.Error(err))
		return nil, internal("Failed to fetch product")
	}
	product.Available = product.Stock > 0
	return product, nil
}

// SearchProducts matches the query against name, description and brand.
func (s *CatalogService) SearchProducts(ctx context.Context, query string) ([]models.Product, *ServiceError) {
	if query == "" {
		return nil, badRequest("Search query is required")
	}
	products, err := s.products.Search(ctx, query)
	if err != nil {
		zap.L().Error("Product search failed", zap.String("query", query), zap.Error(err))
		return nil, internal("Failed to search products")
	}
	markAvailability(products)
	return products, nil
}

// SimilarProducts lists other products sharing the reference product's
// category and brand.
func (s *CatalogService) SimilarProducts(ctx context.Context, id string) ([]models.Product, *ServiceError) {
	product, svcErr := s.GetProduct(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}

	filter := bson.M{
		"_id":      bson.M{"$ne": product.ID},
		"category": product.Category,
		"brand":    product.Brand,
	}
	similar, err := s.products.Find(ctx, filter, nil)
	if err != nil {
		zap.L().Error("Similar products lookup failed", zap.String("product_id", id), zap.Error(err))
		return nil, internal("Failed to fetch similar products")
	}
	markAvailability(similar)
	return similar, nil
}

// SortByPrice lists all products ordered by price.
func (s *CatalogService) SortByPrice(ctx context.Context, descending bool) ([]models.Product, *ServiceError) {
	direction := 1
	if descending {
		direction = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: "price", Value: direction}})

	products, err := s.products.Find(ctx, bson.M{}, opts)
	if err != nil {
		zap.L().Error("Sorted product listing failed", zap.Error(err))
		return nil, internal("Failed to fetch products")
	}
	markAvailability(products)
	return products, nil
}

// Trending serves the cached top-trending list; the payload is raw JSON
// so a cache hit skips re-encoding entirely.
func (s *CatalogService) Trending(ctx context.Context) ([]byte, *ServiceError) {
	payload, err := cache.GetOrLoad(ctx, s.kv, trendingCacheKey, cache.ListTTL, func(ctx context.Context) (interface{}, error) {
		products, err := s.products.TopTrending(ctx, trendingLimit)
		if err != nil {
			return nil, err
		}
		markAvailability(products)
		return products, nil
	})
	if err != nil {
		zap.L().Error("Trending products load failed", zap.Error(err))
		return nil, internal("Failed to fetch trending products")
	}
	return payload, nil
}

// Offers serves the cached offers list.
func (s *CatalogService) Offers(ctx context.Context) ([]byte, *ServiceError) {
	payload, err := cache.GetOrLoad(ctx, s.kv, offersCacheKey, cache.ListTTL, func(ctx context.Context) (interface{}, error) {
		return s.offers.FindAll(ctx)
	})
	if err != nil {
		zap.L().Error("Offers load failed", zap.Error(err))
		return nil, internal("Failed to fetch offers")
	}
	return payload, nil
}

// AddProduct creates a product with a fresh id and zero trending score.
func (s *CatalogService) AddProduct(ctx context.Context, req *AddProductRequest) (*models.Product, *ServiceError) {
	product := &models.Product{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Stock:          req.Stock,
		Category:       req.Category,
		Brand:          req.Brand,
		Specifications: req.Specifications,
		ImageURL:       req.ImageURL,
		TrendingScore:  0,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.products.Insert(ctx, product); err != nil {
		zap.L().Error("Product insert failed", zap.String("name", req.Name), zap.Error(err))
		return nil, internal("Failed to add product")
	}
	product.Available = product.Stock > 0

	zap.L().Info("Product added", zap.String("product_id", product.ID), zap.String("name", product.Name))
	return product, nil
}

// UpdateProduct applies a partial update to the named fields only.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, updates map[string]interface{}) *ServiceError {
	if len(updates) == 0 {
		return badRequest("No fields to update")
	}
	// Identity and derived fields are not writable through this path.
	delete(updates, "_id")
	delete(updates, "id")
	delete(updates, "trending_score")
	delete(updates, "created_at")
	if len(updates) == 0 {
		return badRequest("No updatable fields provided")
	}

	if err := s.products.Update(ctx, id, bson.M(updates)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(fmt.Sprintf("Product %s not found", id))
		}
		zap.L().Error("Product update failed", zap.String("product_id", id), zap.Error(err))
		return internal("Failed to update product")
	}
	return nil
}

// DeleteProduct removes a product from the catalog.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) *ServiceError {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(fmt.Sprintf("Product %s not found", id))
		}
		zap.L().Error("Product delete failed", zap.String("product_id", id), zap.Error(err))
		return internal("Failed to delete product")
	}
	zap.L().Info("Product deleted", zap.String("product_id", id))
	return nil
}

// AddOffer attaches an offer to an existing product.
func (s *CatalogService) AddOffer(ctx context.Context, req *AddOfferRequest) (*models.Offer, *ServiceError) {
	if _, err := s.products.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound(fmt.Sprintf("Product %s not found", req.ProductID))
		}
		zap.L().Error("Product lookup failed", zap.String("product_id", req.ProductID), zap.Error(err))
		return nil, internal("Failed to add offer")
	}

	offer := &models.Offer{
		ID:          uuid.NewString(),
		ProductID:   req.ProductID,
		Discount:    req.Discount,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.offers.Insert(ctx, offer); err != nil {
		zap.L().Error("Offer insert failed", zap.String("product_id", req.ProductID), zap.Error(err))
		return nil, internal("Failed to add offer")
	}
	return offer, nil
}

func markAvailability(products []models.Product) {
	for i := range products {
		products[i].Available = products[i].Stock > 0
	}
}
