package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"train-task-tracker/internal/dashboard"
	"train-task-tracker/internal/export"
	"train-task-tracker/internal/metrics"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandler serves the aggregated dashboard.
type DashboardHandler struct {
	Service *dashboard.Service
}

func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{Service: svc}
}

// parseTrains reads "trains=1,2,3". Blank means no filter.
func parseTrains(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var trains []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid train number %q", part)
		}
		trains = append(trains, n)
	}
	return trains, nil
}

func (h *DashboardHandler) load(c *gin.Context) (metrics.DashboardMetrics, bool) {
	trains, err := parseTrains(c.Query("trains"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return metrics.DashboardMetrics{}, false
	}
	opts := metrics.Options{Sort: metrics.ParseVehicleSort(c.Query("sort"))}

	m, err := h.Service.Metrics(c.Request.Context(), metrics.Filter{Trains: trains}, opts)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load dashboard data"})
		return metrics.DashboardMetrics{}, false
	}
	return m, true
}

// GetMetrics handles GET /api/dashboard?trains=1,2&sort=train|percent
func (h *DashboardHandler) GetMetrics(c *gin.Context) {
	m, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"metrics": m,
		"status":  h.Service.Status(),
	})
}

// Refresh handles POST /api/dashboard/refresh
// Overlapping requests share the refresh already running.
func (h *DashboardHandler) Refresh(c *gin.Context) {
	if _, err := h.Service.Refresh(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to refresh dashboard data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": h.Service.Status()})
}

// GetStatus handles GET /api/dashboard/status
func (h *DashboardHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.Status())
}

// Export handles GET /api/dashboard/export.xlsx, same query params as GetMetrics.
func (h *DashboardHandler) Export(c *gin.Context) {
	m, ok := h.load(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="dashboard.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
