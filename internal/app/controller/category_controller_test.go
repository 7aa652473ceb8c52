package controller

import (
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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCategoryControllerTest(t *testing.T) (*CategoryController, *gin.Engine, *model.Category) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	categoryRepo := repository.NewCategoryRepository(testDB)
	accessoryRepo := repository.NewAccessoryRepository(testDB)
	categoryService := service.NewCategoryService(categoryRepo)
	accessoryService := service.NewAccessoryService(accessoryRepo, categoryRepo)
	categoryController := NewCategoryController(categoryService, accessoryService)

	category := &model.Category{Name: "Toys"}
	require.NoError(t, testDB.Create(category).Error)

	require.NoError(t, testDB.Create(&model.Accessory{
		Name:       "Rope Tug Toy",
		Price:      299,
		Stock:      10,
		CategoryID: category.ID,
	}).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return categoryController, router, category
}

func TestCategoryController_List(t *testing.T) {
	controller, router, _ := setupCategoryControllerTest(t)

	router.GET("/categories", controller.List)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestCategoryController_ListAccessories(t *testing.T) {
	controller, router, category := setupCategoryControllerTest(t)

	router.GET("/categories/:id/accessories", controller.ListAccessories)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/categories/%d/accessories", category.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Accessories []model.Accessory `json:"accessories"`
		Count       int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, 1, response.Count)
	assert.Equal(t, "Rope Tug Toy", response.Accessories[0].Name)
}

func TestCategoryController_ListAccessories_UnknownCategory(t *testing.T) {
	controller, router, _ := setupCategoryControllerTest(t)

	router.GET("/categories/:id/accessories", controller.ListAccessories)

	req := httptest.NewRequest(http.MethodGet, "/categories/9999/accessories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
