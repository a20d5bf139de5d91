package service

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/Dhruvp132/Dhyan-ecom/internal/apperr"
	"github.com/Dhruvp132/Dhyan-ecom/internal/entity"
	"github.com/Dhruvp132/Dhyan-ecom/internal/objectid"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// CartService owns the per-user cart line items.
type CartService struct {
	cartRepo    CartStore
	userRepo    UserStore
	productRepo ProductStore
}

func NewCartService(cartRepo CartStore, userRepo UserStore, productRepo ProductStore) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

// AddItem adds quantity of a product variant to the user's cart. A second
// add of the identical (product, color, size) key increments the existing
// row instead of creating a duplicate. The bool result is true when a new
// row was created.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int, color, size string) (*entity.CartItem, bool, error) {
	if userID == "" || productID == "" {
		return nil, false, fmt.Errorf("%w: user ID and product ID are required", apperr.ErrInvalidInput)
	}
	if !objectid.IsValid(userID) {
		return nil, false, fmt.Errorf("%w: invalid user ID format. Please log out and log back in", apperr.ErrInvalidInput)
	}
	if !objectid.IsValid(productID) {
		return nil, false, fmt.Errorf("%w: invalid product ID format", apperr.ErrInvalidInput)
	}
	if quantity <= 0 {
		return nil, false, fmt.Errorf("%w: quantity must be at least 1", apperr.ErrInvalidInput)
	}

	exists, err := s.userRepo.UserExists(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error checking user %s", userID)
		return nil, false, err
	}
	if !exists {
		return nil, false, fmt.Errorf("%w: user not found", apperr.ErrNotFound)
	}

	exists, err = s.productRepo.ProductExists(ctx, productID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error checking product %s", productID)
		return nil, false, err
	}
	if !exists {
		return nil, false, fmt.Errorf("%w: product not found", apperr.ErrNotFound)
	}

	existing, err := s.cartRepo.FindVariant(ctx, userID, productID, color, size)
	if err != nil {
		logger.Error().Err(err).Msg("Error looking up cart variant")
		return nil, false, err
	}

	if existing != nil {
		updated, err := s.cartRepo.IncrementQuantity(ctx, existing.ID, quantity)
		if err != nil {
			logger.Error().Err(err).Msgf("Error incrementing cart item %s", existing.ID)
			return nil, false, err
		}
		return updated, false, nil
	}

	item := &entity.CartItem{
		ID:        objectid.New(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		Color:     color,
		Size:      size,
	}
	if err := s.cartRepo.CreateItem(ctx, item); err != nil {
		logger.Error().Err(err).Msg("Error creating cart item")
		return nil, false, err
	}
	return item, true, nil
}

// ListItems returns the user's cart rows, each joined with the owning
// product's current name, image and price. Catalog data is read live on
// every call; cart contents are too volatile to cache usefully.
func (s *CartService) ListItems(ctx context.Context, userID string) ([]entity.CartItemView, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error listing cart for user %s", userID)
		return nil, err
	}
	if len(items) == 0 {
		return []entity.CartItemView{}, nil
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.GetProductsByIDs(ctx, ids)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading cart products")
		return nil, err
	}

	views := make([]entity.CartItemView, 0, len(items))
	for _, item := range items {
		view := entity.CartItemView{CartItem: item}
		if p, ok := products[item.ProductID]; ok {
			view.Product = entity.ProductSummary{Name: p.Name, MainImage: p.MainImage, Price: p.Price}
		}
		views = append(views, view)
	}
	return views, nil
}

// RemoveItem deletes the user's line item(s) for a product. Removing a
// product that is not in the cart is a no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) error {
	if !objectid.IsValid(userID) {
		return fmt.Errorf("%w: invalid user ID format. Please log out and log back in", apperr.ErrInvalidInput)
	}
	if !objectid.IsValid(productID) {
		return fmt.Errorf("%w: invalid product ID format", apperr.ErrInvalidInput)
	}
	return s.cartRepo.DeleteByUserAndProduct(ctx, userID, productID)
}

func (s *CartService) requireUser(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user ID is required", apperr.ErrInvalidInput)
	}
	if !objectid.IsValid(userID) {
		return fmt.Errorf("%w: invalid user ID format. Please log out and log back in", apperr.ErrInvalidInput)
	}
	exists, err := s.userRepo.UserExists(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error checking user %s", userID)
		return err
	}
	if !exists {
		return fmt.Errorf("%w: user not found", apperr.ErrNotFound)
	}
	return nil
}
