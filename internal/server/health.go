package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// HealthStatus represents the overall health of the system
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// ComponentStatus represents the health of an individual component
type ComponentStatus string

const (
	ComponentStatusUp       ComponentStatus = "up"
	ComponentStatusDown     ComponentStatus = "down"
	ComponentStatusDegraded ComponentStatus = "degraded"
)

// Health is the complete health check response
type Health struct {
	Status     HealthStatus               `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth is the health of a single collaborator
type ComponentHealth struct {
	Status    ComponentStatus `json:"status"`
	Message   string          `json:"message,omitempty"`
	LatencyMs float64         `json:"latency_ms,omitempty"`
}

// HandleHealth reports the health of the database and the object store.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := s.checkHealth()

	statusCode := http.StatusOK
	if health.Status == HealthStatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(health)
}

func (s *Server) checkHealth() Health {
	health := Health{
		Timestamp:  time.Now(),
		Version:    s.version,
		Components: make(map[string]ComponentHealth),
	}

	health.Components["database"] = s.checkDatabaseHealth()
	health.Components["object_store"] = s.checkObjectStoreHealth()
	health.Status = determineOverallHealth(health.Components)

	return health
}

func (s *Server) checkDatabaseHealth() ComponentHealth {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return ComponentHealth{
			Status:  ComponentStatusDown,
			Message: "database ping failed: " + err.Error(),
		}
	}

	var boxCount int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM boxes").Scan(&boxCount); err != nil {
		return ComponentHealth{
			Status:  ComponentStatusDegraded,
			Message: "database query failed: " + err.Error(),
		}
	}

	latency := time.Since(start).Milliseconds()

	status := ComponentStatusUp
	message := "database healthy"
	if latency > 1000 {
		status = ComponentStatusDegraded
		message = "database latency high"
	}

	return ComponentHealth{
		Status:    status,
		Message:   message,
		LatencyMs: float64(latency),
	}
}

func (s *Server) checkObjectStoreHealth() ComponentHealth {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := s.minioClient.BucketExists(ctx, s.bucketName)
	if err != nil {
		return ComponentHealth{
			Status:  ComponentStatusDown,
			Message: "object store connection failed: " + err.Error(),
		}
	}
	if !exists {
		return ComponentHealth{
			Status:  ComponentStatusDown,
			Message: "bucket does not exist: " + s.bucketName,
		}
	}

	latency := time.Since(start).Milliseconds()

	status := ComponentStatusUp
	message := "object store healthy"
	if latency > 2000 {
		status = ComponentStatusDegraded
		message = "object store latency high"
	}

	return ComponentHealth{
		Status:    status,
		Message:   message,
		LatencyMs: float64(latency),
	}
}

func determineOverallHealth(components map[string]ComponentHealth) HealthStatus {
	var downCount, degradedCount int
	for _, component := range components {
		switch component.Status {
		case ComponentStatusDown:
			downCount++
		case ComponentStatusDegraded:
			degradedCount++
		}
	}

	if downCount > 0 {
		return HealthStatusUnhealthy
	}
	if degradedCount > 0 {
		return HealthStatusDegraded
	}
	return HealthStatusHealthy
}
