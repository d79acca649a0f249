package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/AgentTarik/gosat-api/internal/envelope"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const MsgKafkaNotConfigured = "Kafka não configurado."

// PollLoanRequestEvents godoc
// @Summary      Lê os eventos de solicitações publicados no kafka
// @Tags         eventos
// @Produce      json
// @Security     BearerAuth
// @Param        limit       query     int  false  "Máximo de mensagens (1-1000)"  default(10)
// @Param        timeout_ms  query     int  false  "Tempo máximo de leitura"       default(1500)
// @Success      200         {object}  EnvelopeDoc
// @Failure      503         {object}  EnvelopeDoc
// @Failure      504         {object}  map[string]any
// @Router       /eventos/solicitacoes [get]
func (h *Handlers) PollLoanRequestEvents(c *gin.Context) {
	if h.PollEvents == nil {
		fail(c, MsgKafkaNotConfigured, http.StatusServiceUnavailable)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 1000 {
		limit = 10
	}
	timeoutMS, _ := strconv.Atoi(c.DefaultQuery("timeout_ms", "1500"))
	if timeoutMS < 100 {
		timeoutMS = 100
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(timeoutMS)*time.Millisecond)
	defer cancel()

	messages, err := h.PollEvents(ctx, limit)
	if err != nil {
		// partial data + error
		h.Log.Warn("poll events failed", zap.Int("received", len(messages)), zap.Error(err))
		fail(c, gin.H{
			"received": len(messages),
			"error":    err.Error(),
			"messages": messages,
		}, http.StatusGatewayTimeout)
		return
	}

	respond(c, envelope.OK(gin.H{
		"count":    len(messages),
		"messages": messages,
	}))
}
