package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pawstore/pawstore-backend/internal/app/controller"
	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/app/repository"
	"github.com/pawstore/pawstore-backend/internal/app/service"
	"github.com/pawstore/pawstore-backend/internal/db"
	"github.com/pawstore/pawstore-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	accessoryRepo := repository.NewAccessoryRepository(testDB)
	addressRepo := repository.NewAddressRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	paymentRepo := repository.NewPaymentRepository(testDB)

	authService := service.NewAuthService(userRepo, "test-secret", 15*time.Minute, 7*24*time.Hour)
	addressService := service.NewAddressService(addressRepo)
	cartService := service.NewCartService(cartRepo, accessoryRepo)
	orderService := service.NewOrderService(testDB, orderRepo, cartRepo, addressRepo, nil)
	paymentService := service.NewPaymentService(paymentRepo, orderRepo, nil)

	authController := controller.NewAuthController(authService)
	addressController := controller.NewAddressController(addressService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	paymentController := controller.NewPaymentController(paymentService)

	authMiddleware := middleware.NewAuthMiddleware("test-secret")
	authenticate := authMiddleware.Authenticate()

	router := gin.New()

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/me", authenticate, authController.Me)
	}

	addresses := router.Group("/api/v1/addresses")
	addresses.Use(authenticate)
	{
		addresses.POST("", addressController.Create)
	}

	carts := router.Group("/api/v1/carts")
	carts.Use(authenticate)
	{
		carts.GET("/my", cartController.GetMyCart)
		carts.POST("/my/items", cartController.AddItem)
	}

	orders := router.Group("/api/v1/orders")
	orders.Use(authenticate)
	{
		orders.POST("", orderController.Create)
		orders.GET("/:id", orderController.Get)
		orders.GET("/:id/tracking", orderController.Tracking)
	}

	payments := router.Group("/api/v1/payments")
	payments.Use(authenticate)
	{
		payments.POST("", paymentController.Create)
		payments.POST("/:id/process", paymentController.Process)
	}

	// Catalog fixtures
	category := &model.Category{Name: "Toys"}
	require.NoError(t, testDB.Create(category).Error)
	require.NoError(t, testDB.Create(&model.Accessory{
		Name:       "Rope Tug Toy",
		Price:      299,
		Stock:      10,
		CategoryID: category.ID,
	}).Error)

	return &TestServer{Router: router, DB: testDB}
}

func (ts *TestServer) request(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestCheckoutFlow(t *testing.T) {
	ts := setupIntegrationTest(t)

	// Register
	w := ts.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username":         "buyer",
		"email":            "buyer@example.com",
		"password":         "Password123",
		"password_confirm": "Password123",
		"first_name":       "Test",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Login
	w = ts.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "buyer",
		"password": "Password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := decode(t, w)["access_token"].(string)
	require.NotEmpty(t, token)

	// Create shipping and billing addresses
	addressPayload := map[string]string{
		"type":        "shipping",
		"line1":       "12 Hill Road",
		"city":        "Mumbai",
		"state":       "Maharashtra",
		"postal_code": "400001",
	}
	w = ts.request(t, http.MethodPost, "/api/v1/addresses", token, addressPayload)
	require.Equal(t, http.StatusCreated, w.Code)
	shippingID := decode(t, w)["address"].(map[string]interface{})["id"].(float64)

	addressPayload["type"] = "billing"
	w = ts.request(t, http.MethodPost, "/api/v1/addresses", token, addressPayload)
	require.Equal(t, http.StatusCreated, w.Code)
	billingID := decode(t, w)["address"].(map[string]interface{})["id"].(float64)

	// Add an accessory to the cart
	w = ts.request(t, http.MethodPost, "/api/v1/carts/my/items", token, map[string]interface{}{
		"accessory_id": 1,
		"quantity":     2,
	})
	require.Equal(t, http.StatusOK, w.Code)
	cartResponse := decode(t, w)
	assert.Equal(t, float64(2), cartResponse["total_items"])
	cartID := cartResponse["cart"].(map[string]interface{})["id"].(float64)

	// Place the order
	w = ts.request(t, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
		"cart_id":             cartID,
		"shipping_address_id": shippingID,
		"billing_address_id":  billingID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	order := decode(t, w)["order"].(map[string]interface{})
	orderID := order["id"].(float64)
	assert.Equal(t, "processing", order["status"])
	assert.Equal(t, 2*299.0, order["total_price"])

	// Stock was decremented
	var accessory model.Accessory
	require.NoError(t, ts.DB.First(&accessory, 1).Error)
	assert.Equal(t, 8, accessory.Stock)

	// Pay for the order
	w = ts.request(t, http.MethodPost, "/api/v1/payments", token, map[string]interface{}{
		"order_id": orderID,
		"method":   "upi",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	payment := decode(t, w)["payment"].(map[string]interface{})
	paymentID := payment["id"].(float64)
	assert.Equal(t, "pending", payment["status"])
	assert.Equal(t, order["total_price"], payment["amount"])

	w = ts.request(t, http.MethodPost, fmt.Sprintf("/api/v1/payments/%.0f/process", paymentID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	payment = decode(t, w)["payment"].(map[string]interface{})
	assert.Equal(t, "completed", payment["status"])
	assert.NotNil(t, payment["paid_at"])

	// Tracking reflects the order state
	w = ts.request(t, http.MethodGet, fmt.Sprintf("/api/v1/orders/%.0f/tracking", orderID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tracking := decode(t, w)["tracking"].(map[string]interface{})
	assert.Equal(t, "processing", tracking["status"])
}

func TestAuthRequired(t *testing.T) {
	ts := setupIntegrationTest(t)

	w := ts.request(t, http.MethodGet, "/api/v1/carts/my", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.request(t, http.MethodPost, "/api/v1/orders", "", map[string]interface{}{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	ts := setupIntegrationTest(t)

	// Mismatched password confirmation
	w := ts.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username":         "buyer",
		"email":            "buyer@example.com",
		"password":         "Password123",
		"password_confirm": "Different123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Invalid email
	w = ts.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username":         "buyer",
		"email":            "not-an-email",
		"password":         "Password123",
		"password_confirm": "Password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
