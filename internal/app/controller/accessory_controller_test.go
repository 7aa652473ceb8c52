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

func setupAccessoryControllerTest(t *testing.T) (*AccessoryController, *gin.Engine, *model.Category) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	accessoryRepo := repository.NewAccessoryRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	accessoryService := service.NewAccessoryService(accessoryRepo, categoryRepo)
	accessoryController := NewAccessoryController(accessoryService)

	category := &model.Category{Name: "Toys"}
	require.NoError(t, testDB.Create(category).Error)

	staff := &model.User{
		Username:     "staff",
		Email:        "staff@example.com",
		PasswordHash: "hash",
		Role:         model.RoleStaff,
	}
	require.NoError(t, testDB.Create(staff).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, staff.ID)
		c.Set(middleware.UserRoleKey, staff.Role)
		c.Next()
	})

	return accessoryController, router, category
}

func createAccessoryViaAPI(t *testing.T, router *gin.Engine, req AccessoryRequest) model.Accessory {
	body, _ := json.Marshal(req)
	httpReq := httptest.NewRequest(http.MethodPost, "/accessories", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)
	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Accessory model.Accessory `json:"accessory"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.Accessory
}

func TestAccessoryController_Create(t *testing.T) {
	controller, router, category := setupAccessoryControllerTest(t)

	router.POST("/accessories", controller.Create)

	accessory := createAccessoryViaAPI(t, router, AccessoryRequest{
		Name:       "Rope Tug Toy",
		Price:      299,
		Stock:      10,
		CategoryID: category.ID,
	})
	assert.NotZero(t, accessory.ID)
	assert.Equal(t, model.CurrencyINR, accessory.Currency)
}

func TestAccessoryController_Create_UnknownCategory(t *testing.T) {
	controller, router, _ := setupAccessoryControllerTest(t)

	router.POST("/accessories", controller.Create)

	body, _ := json.Marshal(AccessoryRequest{
		Name:       "Rope Tug Toy",
		Price:      299,
		CategoryID: 9999,
	})
	req := httptest.NewRequest(http.MethodPost, "/accessories", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAccessoryController_Create_InvalidPrice(t *testing.T) {
	controller, router, category := setupAccessoryControllerTest(t)

	router.POST("/accessories", controller.Create)

	// gt=0 binding rejects a zero price before the service runs
	body, _ := json.Marshal(map[string]interface{}{
		"name":        "Freebie",
		"price":       0,
		"category_id": category.ID,
	})
	req := httptest.NewRequest(http.MethodPost, "/accessories", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccessoryController_List_Filters(t *testing.T) {
	controller, router, category := setupAccessoryControllerTest(t)

	router.POST("/accessories", controller.Create)
	router.GET("/accessories", controller.List)

	createAccessoryViaAPI(t, router, AccessoryRequest{Name: "Rope Tug Toy", Price: 299, Stock: 10, CategoryID: category.ID})
	createAccessoryViaAPI(t, router, AccessoryRequest{Name: "Feather Wand", Price: 199, Stock: 0, CategoryID: category.ID})

	req := httptest.NewRequest(http.MethodGet, "/accessories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["count"])

	// in_stock query narrows the listing
	req = httptest.NewRequest(http.MethodGet, "/accessories?in_stock=true", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])

	// search by name
	req = httptest.NewRequest(http.MethodGet, "/accessories?search=Feather", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestAccessoryController_UpdateStock(t *testing.T) {
	controller, router, category := setupAccessoryControllerTest(t)

	router.POST("/accessories", controller.Create)
	router.PATCH("/accessories/:id/stock", controller.UpdateStock)

	accessory := createAccessoryViaAPI(t, router, AccessoryRequest{Name: "Rope Tug Toy", Price: 299, Stock: 10, CategoryID: category.ID})

	stock := 0
	body, _ := json.Marshal(UpdateStockRequest{Stock: &stock})
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/accessories/%d/stock", accessory.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Accessory model.Accessory `json:"accessory"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 0, response.Accessory.Stock)
}

func TestAccessoryController_Get_NotFound(t *testing.T) {
	controller, router, _ := setupAccessoryControllerTest(t)

	router.GET("/accessories/:id", controller.Get)

	req := httptest.NewRequest(http.MethodGet, "/accessories/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAccessoryController_Export(t *testing.T) {
	controller, router, category := setupAccessoryControllerTest(t)

	router.POST("/accessories", controller.Create)
	router.GET("/accessories/export", controller.Export)

	createAccessoryViaAPI(t, router, AccessoryRequest{Name: "Rope Tug Toy", Price: 299, Stock: 10, CategoryID: category.ID})

	req := httptest.NewRequest(http.MethodGet, "/accessories/export", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, w.Body.Len())
}
