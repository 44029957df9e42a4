package tracks

import (
	"context"
	"net/http"
	"time"
)

type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheck probes one dependency. A failing critical check makes the
// whole report unhealthy, any other failure only degrades it.
type HealthCheck struct {
	Name     string
	Check    func(context.Context) error
	Critical bool
	Timeout  time.Duration
}

type ComponentHealth struct {
	Name         string       `json:"name"`
	Status       HealthStatus `json:"status"`
	Error        string       `json:"error,omitempty"`
	ResponseTime string       `json:"response_time,omitempty"`
}

type HealthReport struct {
	Status     HealthStatus      `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components []ComponentHealth `json:"components,omitempty"`
}

func runCheck(ctx context.Context, check HealthCheck) error {
	if check.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, check.Timeout)
		defer cancel()
	}
	return check.Check(ctx)
}

// HealthCheck serves a health report at path, "/health" by default. The
// plain status is returned unless the "detailed" query parameter is true.
// An unhealthy report answers with 503.
func (r *router) HealthCheck(path string, checks ...HealthCheck) Router {
	if path == "" {
		path = "/health"
	}

	return r.GetFunc(path, "health", "check", func(req *http.Request) (any, error) {
		detailed := req.URL.Query().Get("detailed") == "true"

		report := HealthReport{
			Status:    StatusHealthy,
			Timestamp: time.Now(),
		}

		for _, check := range checks {
			start := time.Now()
			err := runCheck(req.Context(), check)

			comp := ComponentHealth{
				Name:         check.Name,
				Status:       StatusHealthy,
				ResponseTime: time.Since(start).String(),
			}

			if err != nil {
				comp.Error = err.Error()
				if check.Critical {
					comp.Status = StatusUnhealthy
					report.Status = StatusUnhealthy
				} else {
					comp.Status = StatusDegraded
					if report.Status == StatusHealthy {
						report.Status = StatusDegraded
					}
				}
			}

			report.Components = append(report.Components, comp)
		}

		status := http.StatusOK
		if report.Status == StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}

		if !detailed {
			return &Response{StatusCode: status, Data: string(report.Status)}, nil
		}
		return &Response{StatusCode: status, Data: report}, nil
	})
}
