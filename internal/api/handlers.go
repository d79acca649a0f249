package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AgentTarik/gosat-api/internal/cpf"
	"github.com/AgentTarik/gosat-api/internal/envelope"
	"github.com/AgentTarik/gosat-api/internal/events"
	"github.com/AgentTarik/gosat-api/internal/gateway"
	"github.com/AgentTarik/gosat-api/internal/kafka"
	"github.com/AgentTarik/gosat-api/internal/storage"
	"github.com/AgentTarik/gosat-api/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Dispatcher forwards a payload to a partner API.
type Dispatcher interface {
	Call(ctx context.Context, dest gateway.Destination, payload map[string]any, onSuccess gateway.OnSuccess, onError gateway.OnError) envelope.Envelope
}

type Handlers struct {
	Log          *zap.Logger
	CPF          *cpf.Validator
	Gateway      Dispatcher
	LoanRequests storage.LoanRequestRepo
	V            *validator.Validate
	DBPing       func(ctx context.Context) error
	Version      string

	// Partners reports, per target name, whether a destination is configured.
	Partners     map[string]bool
	KafkaEnabled bool
	RateLimited  bool

	// Enqueuer function (send to events worker)
	Enqueue func(events.Event)
	// PollEvents reads published events back; nil when kafka is not configured.
	PollEvents func(ctx context.Context, limit int) ([]kafka.MessageView, error)
}

// respond writes env with its own code as the HTTP status.
func respond(c *gin.Context, env envelope.Envelope) {
	c.JSON(env.Code, env)
}

func fail(c *gin.Context, message any, status int) {
	respond(c, envelope.Build(message, status))
}

func (h *Handlers) validCPF(raw string) (string, bool) {
	cleaned, ok := h.CPF.Validate(raw)
	telemetry.IncCPFValidation(ok)
	return cleaned, ok
}

// cpfParam reads the catch-all cpf segment, which may itself contain slashes.
func cpfParam(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("cpf"), "/")
}

func (h *Handlers) enqueue(e events.Event) {
	if h.Enqueue != nil {
		h.Enqueue(e)
	}
}

// Index godoc
// @Summary      Service banner
// @Tags         system
// @Produce      json
// @Success      200  {object}  EnvelopeDoc
// @Router       / [get]
func (h *Handlers) Index(c *gin.Context) {
	respond(c, envelope.OK(fmt.Sprintf("API Gosat with %s", h.Version)))
}

// Health godoc
// @Summary      Liveness and dependency status
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /health [get]
func (h *Handlers) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
	defer cancel()

	db := "ok"
	if h.DBPing != nil {
		if err := h.DBPing(ctx); err != nil {
			db = "down"
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"version":       h.Version,
		"db":            db,
		"partners":      h.Partners,
		"kafka_enabled": h.KafkaEnabled,
		"rate_limit":    h.RateLimited,
	})
}
