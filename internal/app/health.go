package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker probes both stores. The marketplace cannot serve
// logins without Postgres or LINE state nonces without Redis, so
// either failure reports the service as down.
type HealthChecker struct {
	infra Infrastructure
}

func NewHealthChecker(infra Infrastructure) *HealthChecker {
	return &HealthChecker{infra: infra}
}

func (h *HealthChecker) check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	checks := map[string]string{
		"postgres": "pass",
		"redis":    "pass",
	}

	type result struct {
		name string
		err  error
	}
	results := make(chan result, 2)

	go func() {
		results <- result{"postgres", h.infra.Postgres().Ping(ctx)}
	}()
	go func() {
		results <- result{"redis", h.infra.Redis().Ping(ctx)}
	}()

	for i := 0; i < len(checks); i++ {
		r := <-results
		if r.err != nil {
			checks[r.name] = r.err.Error()
		}
	}

	return checks
}

func (h *HealthChecker) Handler(c *gin.Context) {
	checks := h.check(c.Request.Context())

	status := http.StatusOK
	overall := "pass"
	for _, v := range checks {
		if v != "pass" {
			status = http.StatusServiceUnavailable
			overall = "fail"
		}
	}

	c.JSON(status, gin.H{
		"status":  overall,
		"service": "village-shop",
		"checks":  checks,
	})
}
