package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/app/repository"
	"github.com/pawstore/pawstore-backend/internal/app/service"
	"github.com/pawstore/pawstore-backend/internal/db"
	"github.com/pawstore/pawstore-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartControllerTest(t *testing.T) (*CartController, *gin.Engine, *model.User, *model.Accessory) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	accessoryRepo := repository.NewAccessoryRepository(testDB)
	cartService := service.NewCartService(cartRepo, accessoryRepo)
	cartController := NewCartController(cartService)

	user := &model.User{
		Username:     "buyer",
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)

	category := &model.Category{Name: "Toys"}
	require.NoError(t, testDB.Create(category).Error)

	accessory := &model.Accessory{
		Name:       "Rope Tug Toy",
		Price:      299,
		Stock:      10,
		CategoryID: category.ID,
	}
	require.NoError(t, testDB.Create(accessory).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, user.ID)
		c.Set(middleware.UserRoleKey, user.Role)
		c.Next()
	})

	return cartController, router, user, accessory
}

func TestCartController_GetMyCart(t *testing.T) {
	controller, router, _, _ := setupCartControllerTest(t)

	router.GET("/carts/my", controller.GetMyCart)

	req := httptest.NewRequest(http.MethodGet, "/carts/my", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(0), response["total_items"])
	assert.NotNil(t, response["cart"])
}

func TestCartController_AddItem(t *testing.T) {
	controller, router, _, accessory := setupCartControllerTest(t)

	router.POST("/carts/my/items", controller.AddItem)

	body, _ := json.Marshal(AddToCartRequest{AccessoryID: accessory.ID, Quantity: 2})
	req := httptest.NewRequest(http.MethodPost, "/carts/my/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["total_items"])
	assert.Equal(t, float64(2*accessory.Price), response["total_price"])
}

func TestCartController_AddItem_InvalidBody(t *testing.T) {
	controller, router, _, _ := setupCartControllerTest(t)

	router.POST("/carts/my/items", controller.AddItem)

	req := httptest.NewRequest(http.MethodPost, "/carts/my/items", bytes.NewBufferString(`{"quantity": 0}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartController_AddItem_UnknownAccessory(t *testing.T) {
	controller, router, _, _ := setupCartControllerTest(t)

	router.POST("/carts/my/items", controller.AddItem)

	body, _ := json.Marshal(AddToCartRequest{AccessoryID: 9999, Quantity: 1})
	req := httptest.NewRequest(http.MethodPost, "/carts/my/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartController_AddItem_InsufficientStock(t *testing.T) {
	controller, router, _, accessory := setupCartControllerTest(t)

	router.POST("/carts/my/items", controller.AddItem)

	body, _ := json.Marshal(AddToCartRequest{AccessoryID: accessory.ID, Quantity: 99})
	req := httptest.NewRequest(http.MethodPost, "/carts/my/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCartController_UpdateAndRemoveItem(t *testing.T) {
	controller, router, user, accessory := setupCartControllerTest(t)

	router.POST("/carts/my/items", controller.AddItem)
	router.PATCH("/carts/items/:id", controller.UpdateItem)
	router.DELETE("/carts/items/:id", controller.RemoveItem)
	router.GET("/carts/my", controller.GetMyCart)

	body, _ := json.Marshal(AddToCartRequest{AccessoryID: accessory.ID, Quantity: 2})
	req := httptest.NewRequest(http.MethodPost, "/carts/my/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Cart model.Cart `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Cart.Items, 1)
	require.Equal(t, user.ID, response.Cart.UserID)
	itemID := response.Cart.Items[0].ID

	// Update the quantity
	body, _ = json.Marshal(UpdateCartItemRequest{Quantity: 5})
	req = httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/carts/items/%d", itemID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Remove the line
	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/carts/items/%d", itemID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Cart is empty again
	req = httptest.NewRequest(http.MethodGet, "/carts/my", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var cartResponse map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cartResponse))
	assert.Equal(t, float64(0), cartResponse["total_items"])
}
