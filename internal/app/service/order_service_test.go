package service

import (
	"testing"

	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/app/repository"
	"github.com/pawstore/pawstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderTestEnv struct {
	db           *gorm.DB
	orderService OrderService
	cartService  CartService
	user         *model.User
	accessory    *model.Accessory
	shipping     *model.Address
	billing      *model.Address
}

// recordingNotifier captures order events for assertions
type recordingNotifier struct {
	events []model.OrderStatus
}

func (n *recordingNotifier) NotifyOrderStatus(userID, orderID uint, status model.OrderStatus) {
	n.events = append(n.events, status)
}

func setupOrderServiceTest(t *testing.T) (*orderTestEnv, *recordingNotifier) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	cartRepo := repository.NewCartRepository(testDB)
	accessoryRepo := repository.NewAccessoryRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	addressRepo := repository.NewAddressRepository(testDB)

	notifier := &recordingNotifier{}
	orderService := NewOrderService(testDB, orderRepo, cartRepo, addressRepo, notifier)
	cartService := NewCartService(cartRepo, accessoryRepo)

	user := &model.User{
		Username:     "buyer",
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)

	category := &model.Category{Name: "Food"}
	require.NoError(t, testDB.Create(category).Error)

	accessory := &model.Accessory{
		Name:       "Premium Dog Food 5kg",
		Price:      1499,
		Stock:      10,
		CategoryID: category.ID,
	}
	require.NoError(t, testDB.Create(accessory).Error)

	shipping := &model.Address{
		UserID: user.ID,
		Type:   model.AddressTypeShipping,
		Line1:  "12 Hill Road",
		City:   "Mumbai",
	}
	billing := &model.Address{
		UserID: user.ID,
		Type:   model.AddressTypeBilling,
		Line1:  "12 Hill Road",
		City:   "Mumbai",
	}
	require.NoError(t, testDB.Create(shipping).Error)
	require.NoError(t, testDB.Create(billing).Error)

	return &orderTestEnv{
		db:           testDB,
		orderService: orderService,
		cartService:  cartService,
		user:         user,
		accessory:    accessory,
		shipping:     shipping,
		billing:      billing,
	}, notifier
}

func (e *orderTestEnv) placeOrder(t *testing.T, quantity int) *model.Order {
	cart, err := e.cartService.AddItem(e.user.ID, e.accessory.ID, quantity)
	require.NoError(t, err)

	order, err := e.orderService.Create(e.user.ID, CreateOrderInput{
		CartID:            cart.ID,
		ShippingAddressID: e.shipping.ID,
		BillingAddressID:  e.billing.ID,
	})
	require.NoError(t, err)
	return order
}

func TestOrderService_Create(t *testing.T) {
	env, notifier := setupOrderServiceTest(t)
	defer db.CleanupTestDB(env.db)

	order := env.placeOrder(t, 2)

	assert.Equal(t, model.OrderStatusProcessing, order.Status)
	assert.Equal(t, 2*env.accessory.Price, order.TotalPrice)
	assert.Equal(t, []model.OrderStatus{model.OrderStatusProcessing}, notifier.events)

	// Stock is decremented
	var accessory model.Accessory
	require.NoError(t, env.db.First(&accessory, env.accessory.ID).Error)
	assert.Equal(t, 8, accessory.Stock)

	// The cart is left intact
	cart, err := env.cartService.GetOrCreateMyCart(env.user.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestOrderService_Create_EmptyCart(t *testing.T) {
	env, _ := setupOrderServiceTest(t)
	defer db.CleanupTestDB(env.db)

	cart, err := env.cartService.GetOrCreateMyCart(env.user.ID)
	require.NoError(t, err)

	_, err = env.orderService.Create(env.user.ID, CreateOrderInput{
		CartID:            cart.ID,
		ShippingAddressID: env.shipping.ID,
		BillingAddressID:  env.billing.ID,
	})
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestOrderService_Create_ForeignCart(t *testing.T) {
	env, _ := setupOrderServiceTest(t)
	defer db.CleanupTestDB(env.db)

	cart, err := env.cartService.AddItem(env.user.ID, env.accessory.ID, 1)
	require.NoError(t, err)

	other := &model.User{Username: "other", Email: "other@example.com", PasswordHash: "hash"}
	require.NoError(t, env.db.Create(other).Error)

	_, err = env.orderService.Create(other.ID, CreateOrderInput{
		CartID:            cart.ID,
		ShippingAddressID: env.shipping.ID,
		BillingAddressID:  env.billing.ID,
	})
	assert.ErrorIs(t, err, ErrCartAccessDenied)
}

func TestOrderService_Create_ForeignAddress(t *testing.T) {
	env, _ := setupOrderServiceTest(t)
	defer db.CleanupTestDB(env.db)

	cart, err := env.cartService.AddItem(env.user.ID, env.accessory.ID, 1)
	require.NoError(t, err)

	other := &model.User{Username: "other", Email: "other@example.com", PasswordHash: "hash"}
	require.NoError(t, env.db.Create(other).Error)
	foreign := &model.Address{UserID: other.ID, Type: model.AddressTypeShipping, Line1: "elsewhere", City: "Delhi"}
	require.NoError(t, env.db.Create(foreign).Error)

	_, err = env.orderService.Create(env.user.ID, CreateOrderInput{
		CartID:            cart.ID,
		ShippingAddressID: foreign.ID,
		BillingAddressID:  env.billing.ID,
	})
	assert.ErrorIs(t, err, ErrAddressNotOwned)
}

func TestOrderService_Create_InsufficientStock(t *testing.T) {
	env, _ := setupOrderServiceTest(t)
	defer db.CleanupTestDB(env.db)

	cart, err := env.cartService.AddItem(env.user.ID, env.accessory.ID, 10)
	require.NoError(t, err)

	// Stock drops after the item went into the cart
	require.NoError(t, env.db.Model(&model.Accessory{}).
		Where("id = ?", env.accessory.ID).
		Update("stock", 3).Error)

	_, err = env.orderService.Create(env.user.ID, CreateOrderInput{
		CartID:            cart.ID,
		ShippingAddressID: env.shipping.ID,
		BillingAddressID:  env.billing.ID,
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// The transaction rolled back, stock is untouched
	var accessory model.Accessory
	require.NoError(t, env.db.First(&accessory, env.accessory.ID).Error)
	assert.Equal(t, 3, accessory.Stock)
}

func TestOrderService_TotalIsSnapshotted(t *testing.T) {
	env, _ := setupOrderServiceTest(t)
	defer db.CleanupTestDB(env.db)

	order := env.placeOrder(t, 2)
	originalTotal := order.TotalPrice

	// A later price change must not affect the stored total
	require.NoError(t, env.db.Model(&model.Accessory{}).
		Where("id = ?", env.accessory.ID).
		Update("price", 9999).Error)

	got, err := env.orderService.Get(order.ID, env.user.ID, false)
	assert.NoError(t, err)
	assert.Equal(t, originalTotal, got.TotalPrice)
}

func TestOrderService_Cancel(t *testing.T) {
	env, notifier := setupOrderServiceTest(t)
	defer db.CleanupTestDB(env.db)

	order := env.placeOrder(t, 1)

	cancelled, err := env.orderService.Cancel(order.ID, env.user.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, cancelled.Status)
	assert.Contains(t, notifier.events, model.OrderStatusCancelled)
}

func TestOrderService_Cancel_Guards(t *testing.T) {
	env, _ := setupOrderServiceTest(t)
	defer db.CleanupTestDB(env.db)

	order := env.placeOrder(t, 1)

	other := &model.User{Username: "other", Email: "other@example.com", PasswordHash: "hash"}
	require.NoError(t, env.db.Create(other).Error)

	_, err := env.orderService.Cancel(order.ID, other.ID)
	assert.ErrorIs(t, err, ErrOrderAccessDenied)

	// Shipped orders can no longer be cancelled by the customer
	_, err = env.orderService.UpdateStatus(order.ID, model.OrderStatusShipped)
	require.NoError(t, err)

	_, err = env.orderService.Cancel(order.ID, env.user.ID)
	assert.ErrorIs(t, err, ErrOrderNotCancelable)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	env, _ := setupOrderServiceTest(t)
	defer db.CleanupTestDB(env.db)

	order := env.placeOrder(t, 1)

	// Staff may set any valid status, lifecycle rules do not apply
	updated, err := env.orderService.UpdateStatus(order.ID, model.OrderStatusDelivered)
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, updated.Status)

	_, err = env.orderService.UpdateStatus(order.ID, model.OrderStatus("bogus"))
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestOrderService_Tracking(t *testing.T) {
	env, _ := setupOrderServiceTest(t)
	defer db.CleanupTestDB(env.db)

	order := env.placeOrder(t, 1)

	tracking, err := env.orderService.Tracking(order.ID, env.user.ID, false)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, tracking.OrderID)
	assert.Equal(t, model.OrderStatusProcessing, tracking.Status)
	assert.NotEmpty(t, tracking.UpdatedAt)
}

func TestOrderService_ListByUser(t *testing.T) {
	env, _ := setupOrderServiceTest(t)
	defer db.CleanupTestDB(env.db)

	env.placeOrder(t, 1)
	env.placeOrder(t, 2)

	orders, err := env.orderService.ListByUser(env.user.ID, "")
	assert.NoError(t, err)
	assert.Len(t, orders, 2)

	orders, err = env.orderService.ListByUser(env.user.ID, model.OrderStatusCancelled)
	assert.NoError(t, err)
	assert.Len(t, orders, 0)

	_, err = env.orderService.ListByUser(env.user.ID, model.OrderStatus("bogus"))
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}
