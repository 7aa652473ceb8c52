package service

import (
	"errors"

	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/app/repository"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartNotFound      = errors.New("cart not found")
	ErrCartAccessDenied  = errors.New("cart belongs to another user")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type CartService interface {
	GetOrCreateMyCart(userID uint) (*model.Cart, error)
	Get(cartID, userID uint, isStaff bool) (*model.Cart, error)
	ListAll() ([]model.Cart, error)
	ListEmpty() ([]model.Cart, error)
	AddItem(userID, accessoryID uint, quantity int) (*model.Cart, error)
	UpdateItem(userID, itemID uint, isStaff bool, quantity int) (*model.CartItem, error)
	RemoveItem(userID, itemID uint, isStaff bool) error
	Clear(cartID, userID uint, isStaff bool) error
	Stats() (*repository.CartStats, error)
}

type cartService struct {
	cartRepo      repository.CartRepository
	accessoryRepo repository.AccessoryRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	accessoryRepo repository.AccessoryRepository,
) CartService {
	return &cartService{
		cartRepo:      cartRepo,
		accessoryRepo: accessoryRepo,
	}
}

func (s *cartService) GetOrCreateMyCart(userID uint) (*model.Cart, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	cart, err := s.cartRepo.GetOrCreateByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return cart, nil
}

func (s *cartService) Get(cartID, userID uint, isStaff bool) (*model.Cart, error) {
	cart, err := s.cartRepo.FindByID(cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	if cart.UserID != userID && !isStaff {
		logger.Warn("Cart access denied", map[string]interface{}{
			"cart_id":  cartID,
			"user_id":  userID,
			"owner_id": cart.UserID,
		})
		return nil, ErrCartAccessDenied
	}
	return cart, nil
}

func (s *cartService) ListAll() ([]model.Cart, error) {
	carts, err := s.cartRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list carts", err, nil)
		return nil, err
	}
	return carts, nil
}

// ListEmpty returns carts with no items, for the staff cleanup view.
func (s *cartService) ListEmpty() ([]model.Cart, error) {
	carts, err := s.cartRepo.FindEmpty()
	if err != nil {
		logger.Error("Failed to list empty carts", err, nil)
		return nil, err
	}
	return carts, nil
}

// AddItem adds an accessory to the user's cart. Adding an accessory that
// is already in the cart sums the quantities; the combined quantity may
// not exceed the current stock.
func (s *cartService) AddItem(userID, accessoryID uint, quantity int) (*model.Cart, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":      userID,
		"accessory_id": accessoryID,
		"quantity":     quantity,
	})

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	accessory, err := s.accessoryRepo.FindByID(accessoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: accessory not found", map[string]interface{}{
				"user_id":      userID,
				"accessory_id": accessoryID,
			})
			return nil, ErrAccessoryNotFound
		}
		logger.Error("Failed to fetch accessory", err, map[string]interface{}{
			"accessory_id": accessoryID,
		})
		return nil, err
	}

	cart, err := s.cartRepo.GetOrCreateByUserID(userID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.FindItemByCartAndAccessory(cart.ID, accessoryID)
	switch {
	case err == nil:
		newQuantity := item.Quantity + quantity
		if newQuantity > accessory.Stock {
			logger.Warn("Cannot add to cart: insufficient stock", map[string]interface{}{
				"accessory_id": accessoryID,
				"requested":    newQuantity,
				"stock":        accessory.Stock,
			})
			return nil, ErrInsufficientStock
		}
		item.Quantity = newQuantity
		if err := s.cartRepo.UpdateItem(item); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if quantity > accessory.Stock {
			logger.Warn("Cannot add to cart: insufficient stock", map[string]interface{}{
				"accessory_id": accessoryID,
				"requested":    quantity,
				"stock":        accessory.Stock,
			})
			return nil, ErrInsufficientStock
		}
		item = &model.CartItem{
			CartID:      cart.ID,
			AccessoryID: accessoryID,
			Quantity:    quantity,
		}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, err
		}
	default:
		logger.Error("Failed to fetch cart item", err, map[string]interface{}{
			"cart_id":      cart.ID,
			"accessory_id": accessoryID,
		})
		return nil, err
	}

	logger.Info("Item added to cart", map[string]interface{}{
		"cart_id":      cart.ID,
		"accessory_id": accessoryID,
		"quantity":     item.Quantity,
	})

	return s.cartRepo.FindByID(cart.ID)
}

// UpdateItem replaces a line's quantity, capped at the current stock
func (s *cartService) UpdateItem(userID, itemID uint, isStaff bool, quantity int) (*model.CartItem, error) {
	logger.Info("Updating cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": itemID,
		"quantity":     quantity,
	})

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.cartRepo.FindItemByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	cart, err := s.cartRepo.FindByID(item.CartID)
	if err != nil {
		return nil, err
	}
	if cart.UserID != userID && !isStaff {
		return nil, ErrCartAccessDenied
	}

	if quantity > item.Accessory.Stock {
		logger.Warn("Cannot update cart item: insufficient stock", map[string]interface{}{
			"cart_item_id": itemID,
			"requested":    quantity,
			"stock":        item.Accessory.Stock,
		})
		return nil, ErrInsufficientStock
	}

	item.Quantity = quantity
	if err := s.cartRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) RemoveItem(userID, itemID uint, isStaff bool) error {
	logger.Info("Removing cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": itemID,
	})

	item, err := s.cartRepo.FindItemByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}

	cart, err := s.cartRepo.FindByID(item.CartID)
	if err != nil {
		return err
	}
	if cart.UserID != userID && !isStaff {
		return ErrCartAccessDenied
	}

	return s.cartRepo.DeleteItem(itemID)
}

func (s *cartService) Clear(cartID, userID uint, isStaff bool) error {
	logger.Info("Clearing cart", map[string]interface{}{
		"cart_id": cartID,
		"user_id": userID,
	})

	cart, err := s.cartRepo.FindByID(cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartNotFound
		}
		return err
	}
	if cart.UserID != userID && !isStaff {
		return ErrCartAccessDenied
	}

	return s.cartRepo.ClearItems(cartID)
}

func (s *cartService) Stats() (*repository.CartStats, error) {
	return s.cartRepo.Stats()
}
