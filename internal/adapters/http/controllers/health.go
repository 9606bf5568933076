package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/NaMinhyeok/order-practice/internal/adapters/http/handlers"
)

type HealthResponse struct {
	Status   string            `json:"status" example:"ok"`
	Services map[string]string `json:"services" example:"postgres:ok,redis:ok,rabbitmq:ok"`
}

type HealthChecker struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthController struct {
	checkers []HealthChecker
	timeout  time.Duration
}

func NewHealthController(checkers []HealthChecker) *HealthController {
	return &HealthController{checkers: checkers, timeout: 3 * time.Second}
}

// Health godoc
// @Summary     Health check
// @Description Checks the health of all dependent services
// @Tags        health
// @Produce     json
// @Success     200 {object} handlers.Response{data=HealthResponse}
// @Failure     503 {object} handlers.Response{data=HealthResponse}
// @Router      /api/v1/health [get]
func (h *HealthController) Health(c *gin.Context) {
	checkCtx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	var (
		mu       sync.Mutex
		status   = "ok"
		services = make(map[string]string, len(h.checkers))
	)

	// Checks run concurrently and share one deadline.
	var group errgroup.Group
	for _, checker := range h.checkers {
		group.Go(func() error {
			result := "ok"
			if err := checker.Check(checkCtx); err != nil {
				result = err.Error()
			}
			mu.Lock()
			defer mu.Unlock()
			services[checker.Name] = result
			if result != "ok" {
				status = "degraded"
			}
			return nil
		})
	}
	_ = group.Wait()

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	handlers.Respond(c, code, HealthResponse{
		Status:   status,
		Services: services,
	})
}
