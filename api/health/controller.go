// Package health exposes liveness and readiness probes.
package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Checker reports whether a dependency is reachable.
type Checker func() error

type Controller struct {
	checkers map[string]Checker
}

func NewController() *Controller {
	return &Controller{checkers: make(map[string]Checker)}
}

// AddChecker registers a named readiness dependency.
func (ctl *Controller) AddChecker(name string, check Checker) {
	ctl.checkers[name] = check
}

// RegisterRoutes mounts /healthz and /readyz.
func (ctl *Controller) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", ctl.live)
	r.GET("/readyz", ctl.ready)
}

func (ctl *Controller) live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (ctl *Controller) ready(c *gin.Context) {
	results := make(map[string]string, len(ctl.checkers))
	healthy := true
	for name, check := range ctl.checkers {
		if err := check(); err != nil {
			results[name] = err.Error()
			healthy = false
		} else {
			results[name] = "ok"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": results})
}
