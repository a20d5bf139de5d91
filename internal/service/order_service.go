package service

import (
	"context"
	"fmt"

	"github.com/Dhruvp132/Dhyan-ecom/internal/apperr"
	"github.com/Dhruvp132/Dhyan-ecom/internal/entity"
	"github.com/Dhruvp132/Dhyan-ecom/internal/objectid"
)

// OrderService serves the order-history read path.
type OrderService struct {
	orderRepo   OrderStore
	productRepo ProductStore
}

func NewOrderService(orderRepo OrderStore, productRepo ProductStore) *OrderService {
	return &OrderService{orderRepo: orderRepo, productRepo: productRepo}
}

// ListOrders returns the user's orders newest-first, each line item joined
// with the owning product's current display data. The snapshot price on the
// item itself stays untouched; the join is for name and image only.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]entity.Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", apperr.ErrInvalidInput)
	}
	if !objectid.IsValid(userID) {
		return nil, fmt.Errorf("%w: invalid user ID format. Please log out and log back in", apperr.ErrInvalidInput)
	}

	orders, err := s.orderRepo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error fetching orders for user %s", userID)
		return nil, err
	}
	if len(orders) == 0 {
		return []entity.Order{}, nil
	}

	idSet := map[string]struct{}{}
	for _, order := range orders {
		for _, item := range order.Items {
			idSet[item.ProductID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	products, err := s.productRepo.GetProductsByIDs(ctx, ids)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading products for order history")
		return nil, err
	}

	for i := range orders {
		for j := range orders[i].Items {
			if p, ok := products[orders[i].Items[j].ProductID]; ok {
				orders[i].Items[j].Product = &entity.ProductSummary{
					ID:        p.ID,
					Name:      p.Name,
					MainImage: p.MainImage,
					Price:     p.Price,
				}
			}
		}
	}
	return orders, nil
}
