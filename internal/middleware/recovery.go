package middleware

import (
	"io"
	"net/http"

	"github.com/AgentTarik/gosat-api/internal/envelope"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const MsgInternalError = "Erro interno do servidor."

// Recovery turns a handler panic into a logged 500 envelope.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, err any) {
		log.Error("panic recovered",
			zap.Any("panic", err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(RequestIDKey)),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, envelope.Build(MsgInternalError, http.StatusInternalServerError))
	})
}
