package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"starter_backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

const serviceName = "Starter Backend"

var (
	healthCheckCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "health_check_requests_total",
			Help: "Total number of health check requests",
		},
		[]string{"endpoint", "status"},
	)

	healthCheckDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "health_check_duration_seconds",
			Help: "Time spent on health checks",
		},
		[]string{"endpoint"},
	)

	databaseConnectionGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "database_connection_status",
		Help: "Database connection status (1=healthy, 0=unhealthy)",
	})

	databaseResponseTimeGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "database_response_time_seconds",
		Help: "Database response time in seconds",
	})

	systemCPUGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_cpu_percent",
		Help: "System CPU usage percentage",
	})

	systemMemoryGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_memory_percent",
		Help: "System memory usage percentage",
	})

	systemDiskGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_disk_percent",
		Help: "System disk usage percentage",
	})
)

// HealthHandler serves liveness, readiness and detailed health probes
type HealthHandler struct {
	db        repository.DBTX
	version   string
	startedAt time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db repository.DBTX, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version, startedAt: time.Now()}
}

// checkDatabase runs a minimal round-trip query and records its latency
func (h *HealthHandler) checkDatabase(ctx context.Context) gin.H {
	start := time.Now()

	var one int
	err := h.db.QueryRow(ctx, "SELECT 1").Scan(&one)
	elapsed := time.Since(start)
	databaseResponseTimeGauge.Set(elapsed.Seconds())

	if err != nil || one != 1 {
		databaseConnectionGauge.Set(0)
		log.Printf("Database health check failed: %v", err)
		result := gin.H{
			"status":    "unhealthy",
			"timestamp": time.Now().Format(time.RFC3339),
		}
		if err != nil {
			result["error"] = err.Error()
		} else {
			result["error"] = "unexpected database response"
		}
		return result
	}

	databaseConnectionGauge.Set(1)
	return gin.H{
		"status":           "healthy",
		"response_time_ms": float64(elapsed.Microseconds()) / 1000.0,
		"timestamp":        time.Now().Format(time.RFC3339),
	}
}

// checkSystem samples cpu, memory and disk usage
func (h *HealthHandler) checkSystem() gin.H {
	cpuPercents, err := cpu.Percent(0, false)
	if err != nil || len(cpuPercents) == 0 {
		log.Printf("System resources check failed: %v", err)
		return gin.H{"status": "error", "error": "cpu sampling failed", "timestamp": time.Now().Format(time.RFC3339)}
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Printf("System resources check failed: %v", err)
		return gin.H{"status": "error", "error": err.Error(), "timestamp": time.Now().Format(time.RFC3339)}
	}

	du, err := disk.Usage("/")
	if err != nil {
		log.Printf("System resources check failed: %v", err)
		return gin.H{"status": "error", "error": err.Error(), "timestamp": time.Now().Format(time.RFC3339)}
	}

	systemCPUGauge.Set(cpuPercents[0])
	systemMemoryGauge.Set(vm.UsedPercent)
	systemDiskGauge.Set(du.UsedPercent)

	return gin.H{
		"status":      "healthy",
		"cpu_percent": cpuPercents[0],
		"memory": gin.H{
			"total":     vm.Total,
			"available": vm.Available,
			"used":      vm.Used,
			"percent":   vm.UsedPercent,
		},
		"disk": gin.H{
			"total":   du.Total,
			"used":    du.Used,
			"free":    du.Free,
			"percent": du.UsedPercent,
		},
		"timestamp": time.Now().Format(time.RFC3339),
	}
}

// Basic reports process liveness only
func (h *HealthHandler) Basic(c *gin.Context) {
	timer := prometheus.NewTimer(healthCheckDuration.WithLabelValues("basic"))
	defer timer.ObserveDuration()
	healthCheckCounter.WithLabelValues("basic", "success").Inc()

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   serviceName,
		"version":   h.version,
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).String(),
	})
}

// Detailed reports database and system resource state
func (h *HealthHandler) Detailed(c *gin.Context) {
	timer := prometheus.NewTimer(healthCheckDuration.WithLabelValues("detailed"))
	defer timer.ObserveDuration()

	dbStatus := h.checkDatabase(c.Request.Context())
	systemStatus := h.checkSystem()

	overall := "healthy"
	if dbStatus["status"] != "healthy" || systemStatus["status"] != "healthy" {
		overall = "unhealthy"
	}
	healthCheckCounter.WithLabelValues("detailed", overall).Inc()

	c.JSON(http.StatusOK, gin.H{
		"status":    overall,
		"service":   serviceName,
		"version":   h.version,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks": gin.H{
			"database": dbStatus,
			"system":   systemStatus,
		},
	})
}

// Ready is the readiness probe: 200 only when the database answers
func (h *HealthHandler) Ready(c *gin.Context) {
	timer := prometheus.NewTimer(healthCheckDuration.WithLabelValues("readiness"))
	defer timer.ObserveDuration()

	dbStatus := h.checkDatabase(c.Request.Context())
	if dbStatus["status"] != "healthy" {
		healthCheckCounter.WithLabelValues("readiness", "not_ready").Inc()
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "not_ready",
			"reason":    "Database connection failed",
			"database":  dbStatus,
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}

	healthCheckCounter.WithLabelValues("readiness", "ready").Inc()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"database":  dbStatus,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// RegisterHealthRoutes registers health probe routes
func (h *HealthHandler) RegisterHealthRoutes(router *gin.Engine) {
	router.GET("/health", h.Basic)
	router.GET("/health/detailed", h.Detailed)
	router.GET("/health/ready", h.Ready)
}
