package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/heavymachinery/backend/models"
	"github.com/heavymachinery/backend/repository"
	"go.uber.org/zap"
)

// loyalMinPurchases is the purchase-history size from which a customer
// counts as loyal.
const loyalMinPurchases = 5

// AccountStore is the slice of the user repository account operations
// go through.
type AccountStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	SetCart(ctx context.Context, userID string, cart []models.CartItem) error
	SetFavorites(ctx context.Context, userID string, favorites []models.CartItem) error
	SetSubscription(ctx context.Context, userID string, subscribed bool) error
	FindLoyal(ctx context.Context, minPurchases int) ([]models.User, error)
}

// ProductLookup resolves products when denormalizing cart entries.
type ProductLookup interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
}

// CartItemRequest adds a product to the cart or favorites.
type CartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"min=0"`
}

// UserService covers profile reads and the cart, favorites and
// subscription mutations. Cart and favorites entries are denormalized
// copies of the product at insertion time.
type UserService struct {
	users    AccountStore
	products ProductLookup
}

func NewUserService(users AccountStore, products ProductLookup) *UserService {
	return &UserService{users: users, products: products}
}

// Profile returns the caller's account document.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, *ServiceError) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("User not found")
		}
		zap.L().Error("User lookup failed", zap.String("user_id", userID), zap.Error(err))
		return nil, internal("Failed to fetch user")
	}
	return user, nil
}

// AddToCart upserts a cart line: an existing entry for the product has
// its quantity increased, a new product gets a fresh denormalized entry.
func (s *UserService) AddToCart(ctx context.Context, userID string, req *CartItemRequest) ([]models.CartItem, *ServiceError) {
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}

	user, svcErr := s.Profile(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound(fmt.Sprintf("Product %s not found", req.ProductID))
		}
		zap.L().Error("Product lookup failed", zap.String("product_id", req.ProductID), zap.Error(err))
		return nil, internal("Failed to update cart")
	}

	cart := user.Cart
	found := false
	for i := range cart {
		if cart[i].ProductID == req.ProductID {
			cart[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
			Quantity:  qty,
		})
	}

	if err := s.users.SetCart(ctx, userID, cart); err != nil {
		zap.L().Error("Cart update failed", zap.String("user_id", userID), zap.Error(err))
		return nil, internal("Failed to update cart")
	}
	return cart, nil
}

// RemoveFromCart drops the product's line entirely.
func (s *UserService) RemoveFromCart(ctx context.Context, userID, productID string) ([]models.CartItem, *ServiceError) {
	user, svcErr := s.Profile(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	cart := make([]models.CartItem, 0, len(user.Cart))
	removed := false
	for _, item := range user.Cart {
		if item.ProductID == productID {
			removed = true
			continue
		}
		cart = append(cart, item)
	}
	if !removed {
		return nil, notFound(fmt.Sprintf("Product %s not in cart", productID))
	}

	if err := s.users.SetCart(ctx, userID, cart); err != nil {
		zap.L().Error("Cart update failed", zap.String("user_id", userID), zap.Error(err))
		return nil, internal("Failed to update cart")
	}
	return cart, nil
}

// ClearCart empties the cart, typically after a successful checkout.
func (s *UserService) ClearCart(ctx context.Context, userID string) *ServiceError {
	if err := s.users.SetCart(ctx, userID, []models.CartItem{}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("User not found")
		}
		zap.L().Error("Cart clear failed", zap.String("user_id", userID), zap.Error(err))
		return internal("Failed to clear cart")
	}
	return nil
}

// AddFavorite adds the product to the favorites list if not already
// present; favorites carry no quantity.
func (s *UserService) AddFavorite(ctx context.Context, userID, productID string) ([]models.CartItem, *ServiceError) {
	user, svcErr := s.Profile(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	for _, item := range user.Favorites {
		if item.ProductID == productID {
			return user.Favorites, nil
		}
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound(fmt.Sprintf("Product %s not found", productID))
		}
		zap.L().Error("Product lookup failed", zap.String("product_id", productID), zap.Error(err))
		return nil, internal("Failed to update favorites")
	}

	favorites := append(user.Favorites, models.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
		Quantity:  1,
	})
	if err := s.users.SetFavorites(ctx, userID, favorites); err != nil {
		zap.L().Error("Favorites update failed", zap.String("user_id", userID), zap.Error(err))
		return nil, internal("Failed to update favorites")
	}
	return favorites, nil
}

// RemoveFavorite drops the product from the favorites list.
func (s *UserService) RemoveFavorite(ctx context.Context, userID, productID string) ([]models.CartItem, *ServiceError) {
	user, svcErr := s.Profile(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}

	favorites := make([]models.CartItem, 0, len(user.Favorites))
	removed := false
	for _, item := range user.Favorites {
		if item.ProductID == productID {
			removed = true
			continue
		}
		favorites = append(favorites, item)
	}
	if !removed {
		return nil, notFound(fmt.Sprintf("Product %s not in favorites", productID))
	}

	if err := s.users.SetFavorites(ctx, userID, favorites); err != nil {
		zap.L().Error("Favorites update failed", zap.String("user_id", userID), zap.Error(err))
		return nil, internal("Failed to update favorites")
	}
	return favorites, nil
}

// SetSubscription toggles the newsletter subscription flag.
func (s *UserService) SetSubscription(ctx context.Context, userID string, subscribed bool) *ServiceError {
	if err := s.users.SetSubscription(ctx, userID, subscribed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("User not found")
		}
		zap.L().Error("Subscription update failed", zap.String("user_id", userID), zap.Error(err))
		return internal("Failed to update subscription")
	}
	return nil
}

// LoyalCustomers lists users with at least five recorded purchases.
func (s *UserService) LoyalCustomers(ctx context.Context) ([]models.User, *ServiceError) {
	users, err := s.users.FindLoyal(ctx, loyalMinPurchases)
	if err != nil {
		zap.L().Error("Loyal customers query failed", zap.Error(err))
		return nil, internal("Failed to fetch loyal customers")
	}
	return users, nil
}
