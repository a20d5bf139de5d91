package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dhruvp132/Dhyan-ecom/internal/apperr"
	"github.com/Dhruvp132/Dhyan-ecom/internal/cache"
	"github.com/Dhruvp132/Dhyan-ecom/internal/entity"
	"github.com/Dhruvp132/Dhyan-ecom/internal/objectid"
)

// catalogTTL bounds staleness for catalog reads; writes invalidate eagerly.
const catalogTTL = 120 * time.Second

const allProductsKey = "products"

func productKey(id string) string {
	return "product:" + id
}

// SearchResult is one page of a product search.
type SearchResult struct {
	Products   []entity.Product `json:"products"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

// AutocompleteResult backs the search bar dropdown.
type AutocompleteResult struct {
	Suggestions []string         `json:"suggestions"`
	Products    []entity.Product `json:"products"`
}

// CatalogService is the read side of the product catalog, fronted by a
// Redis cache with an explicit TTL and invalidation on every catalog write.
type CatalogService struct {
	productRepo    ProductStore
	suggestionRepo SuggestionStore
	cache          cache.Cache
}

func NewCatalogService(productRepo ProductStore, suggestionRepo SuggestionStore, c cache.Cache) *CatalogService {
	return &CatalogService{productRepo: productRepo, suggestionRepo: suggestionRepo, cache: c}
}

// GetProducts returns the whole catalog with categories.
func (s *CatalogService) GetProducts(ctx context.Context) ([]entity.Product, error) {
	cached, err := s.cache.Get(ctx, allProductsKey)
	if err == nil {
		var products []entity.Product
		if err := json.Unmarshal([]byte(cached), &products); err == nil {
			return products, nil
		}
		logger.Warn().Msg("Discarding undecodable catalog cache entry")
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Error().Err(err).Msg("Error reading catalog cache")
	}

	products, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error fetching products")
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: no products found", apperr.ErrNotFound)
	}

	if payload, err := json.Marshal(products); err == nil {
		if err := s.cache.Set(ctx, allProductsKey, string(payload), catalogTTL); err != nil {
			logger.Error().Err(err).Msg("Error writing catalog cache")
		}
	}
	return products, nil
}

// GetProductByID returns one product, cached per-product.
func (s *CatalogService) GetProductByID(ctx context.Context, id string) (*entity.Product, error) {
	if !objectid.IsValid(id) {
		return nil, fmt.Errorf("%w: invalid product ID format", apperr.ErrInvalidInput)
	}

	cached, err := s.cache.Get(ctx, productKey(id))
	if err == nil {
		var product entity.Product
		if err := json.Unmarshal([]byte(cached), &product); err == nil {
			return &product, nil
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Error().Err(err).Msgf("Error reading cache for product %s", id)
	}

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if isMissingRecord(err) {
			return nil, fmt.Errorf("%w: product not found", apperr.ErrNotFound)
		}
		logger.Error().Err(err).Msgf("Error fetching product %s", id)
		return nil, err
	}

	if payload, err := json.Marshal(product); err == nil {
		if err := s.cache.Set(ctx, productKey(id), string(payload), catalogTTL); err != nil {
			logger.Error().Err(err).Msgf("Error caching product %s", id)
		}
	}
	return product, nil
}

// GetProductsByCategory returns products carrying the named category.
func (s *CatalogService) GetProductsByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", apperr.ErrInvalidInput)
	}
	products, err := s.productRepo.GetProductsByCategory(ctx, category)
	if err != nil {
		logger.Error().Err(err).Msgf("Error fetching products for category %s", category)
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: no products found", apperr.ErrNotFound)
	}
	return products, nil
}

// Search runs a paginated name/description search and records the term for
// autocomplete. Tracking failures never fail the search itself.
func (s *CatalogService) Search(ctx context.Context, query string, page, limit int) (*SearchResult, error) {
	if query == "" {
		return &SearchResult{Products: []entity.Product{}}, nil
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 24
	}

	suggestion := &entity.SearchSuggestion{
		ID:         objectid.New(),
		Term:       strings.ToLower(query),
		Popularity: 1,
	}
	if err := s.suggestionRepo.Upsert(ctx, suggestion); err != nil {
		logger.Warn().Err(err).Msgf("Error tracking search term %q", query)
	}

	products, total, err := s.productRepo.SearchProducts(ctx, query, page, limit)
	if err != nil {
		logger.Error().Err(err).Msgf("Error searching products for %q", query)
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &SearchResult{Products: products, Total: total, Page: page, TotalPages: totalPages}, nil
}

// Autocomplete combines popular search terms, matching products, and
// category names. Queries shorter than two characters return nothing.
func (s *CatalogService) Autocomplete(ctx context.Context, query string) (*AutocompleteResult, error) {
	if len(query) < 2 {
		return &AutocompleteResult{Suggestions: []string{}, Products: []entity.Product{}}, nil
	}

	suggestions, err := s.suggestionRepo.TopMatching(ctx, query, 5)
	if err != nil {
		logger.Error().Err(err).Msgf("Error loading suggestions for %q", query)
		return nil, err
	}

	products, _, err := s.productRepo.SearchProducts(ctx, query, 1, 4)
	if err != nil {
		logger.Error().Err(err).Msgf("Error loading autocomplete products for %q", query)
		return nil, err
	}

	categories, err := s.productRepo.SearchCategories(ctx, query, 3)
	if err != nil {
		logger.Error().Err(err).Msgf("Error loading category suggestions for %q", query)
		return nil, err
	}

	seen := map[string]struct{}{}
	terms := make([]string, 0, len(suggestions)+len(categories))
	for _, sg := range suggestions {
		if _, ok := seen[sg.Term]; !ok {
			seen[sg.Term] = struct{}{}
			terms = append(terms, sg.Term)
		}
	}
	for _, name := range categories {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			terms = append(terms, name)
		}
	}
	return &AutocompleteResult{Suggestions: terms, Products: products}, nil
}

// InvalidateProduct drops the cached entries touched by a catalog write.
// Every write path (seeding, stock updates) must call this.
func (s *CatalogService) InvalidateProduct(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, allProductsKey, productKey(id)); err != nil {
		logger.Error().Err(err).Msgf("Error invalidating cache for product %s", id)
	}
}
