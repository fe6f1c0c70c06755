package handlers

import (
	"net/http"
	"testing"

	"train-task-tracker/internal/middleware"
	"train-task-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestListCars(t *testing.T) {
	seededDB(t)

	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.GET("/api/cars", ListCars)

	w := do(t, r, http.MethodGet, "/api/cars?limit=1&offset=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Cars  []models.Car `json:"cars"`
		Count int          `json:"count"`
		Total int64        `json:"total"`
	}
	decode(t, w, &resp)
	require.Equal(t, 1, resp.Count)
	require.EqualValues(t, 2, resp.Total)
	require.Equal(t, "car-2", resp.Cars[0].ID)
	require.NotNil(t, resp.Cars[0].TrainUnit)
	require.Equal(t, 2, resp.Cars[0].TrainUnit.TrainNumber)
	require.Equal(t, models.Category3Car, resp.Cars[0].CarType.Category)
}

func TestListCars_BadPaging(t *testing.T) {
	seededDB(t)

	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.GET("/api/cars", ListCars)

	require.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/cars?offset=-1", nil).Code)
	require.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/cars?limit=zero", nil).Code)
}
