package http

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/dharshanac/ZeilCardValidatorApi/internal/domain/card/deps"
	"github.com/dharshanac/ZeilCardValidatorApi/pkg/httputil"
)

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// ComponentHealth represents health status of a single component
type ComponentHealth struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`

	critical bool
}

// HealthResponse represents the JSON response for health check
type HealthResponse struct {
	Status     HealthStatus      `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components []ComponentHealth `json:"components"`
}

// selfCheck numbers must keep their Luhn outcome for the core to be healthy
var selfCheck = []struct {
	number string
	valid  bool
}{
	{number: "4242 4242 4242 4242", valid: true},
	{number: "5555-5555-5555-4444", valid: true},
	{number: "4242424242424241", valid: false},
	{number: "4242A24242424242", valid: false},
}

// HealthHandler handles HTTP health check requests
type HealthHandler struct {
	cards     deps.CardValidator
	publisher deps.EventPublisher
	logger    zerolog.Logger
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(cards deps.CardValidator, publisher deps.EventPublisher, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		cards:     cards,
		publisher: publisher,
		logger:    logger.With().Str("handler", "health").Logger(),
	}
}

// Handle handles the health check request for fasthttp
func (h *HealthHandler) Handle(ctx *fasthttp.RequestCtx) {
	components := h.checkComponents()
	status := determineOverallStatus(components)

	response := HealthResponse{
		Status:     status,
		Timestamp:  time.Now().UTC(),
		Components: components,
	}

	logEvent := h.logger.Debug()
	if status == HealthStatusUnhealthy {
		logEvent = h.logger.Warn()
	} else if status == HealthStatusDegraded {
		logEvent = h.logger.Info()
	}
	logEvent.
		Str("status", string(status)).
		Interface("components", components).
		Msg("Health check completed")

	httputil.WriteHealthResponse(ctx, response, status != HealthStatusUnhealthy)
}

func (h *HealthHandler) checkComponents() []ComponentHealth {
	components := make([]ComponentHealth, 0, 2)

	coreHealthy := h.cards != nil
	if coreHealthy {
		for _, c := range selfCheck {
			if h.cards.Validate(c.number) != c.valid {
				coreHealthy = false
				break
			}
		}
	}
	coreMsg := ""
	if !coreHealthy {
		coreMsg = "Luhn self-check failed"
	}

	components = append(components, ComponentHealth{
		Name:     "luhn_core",
		Healthy:  coreHealthy,
		Message:  coreMsg,
		critical: true,
	})

	publisherHealthy := h.publisher != nil && h.publisher.IsHealthy()
	publisherMsg := ""
	if !publisherHealthy {
		publisherMsg = "Event publisher is not healthy"
	}

	components = append(components, ComponentHealth{
		Name:    "event_publisher",
		Healthy: publisherHealthy,
		Message: publisherMsg,
	})

	return components
}

// determineOverallStatus reports unhealthy when a critical component fails
// and degraded when only optional components fail
func determineOverallStatus(components []ComponentHealth) HealthStatus {
	status := HealthStatusHealthy

	for _, component := range components {
		if component.Healthy {
			continue
		}
		if component.critical {
			return HealthStatusUnhealthy
		}
		status = HealthStatusDegraded
	}

	return status
}
