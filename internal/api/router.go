package api

import (
	"net/http"

	"github.com/AgentTarik/gosat-api/telemetry"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	MsgRouteNotFound    = "Rota não encontrada."
	MsgMethodNotAllowed = "Método não permitido."
)

// SetupRoutes registers every route. Partner and loan request routes run
// behind requireAuth when it is not nil.
func SetupRoutes(r *gin.Engine, h *Handlers, requireAuth gin.HandlerFunc) {
	r.HandleMethodNotAllowed = true

	r.GET("/", h.Index)
	r.GET("/health", h.Health)
	r.GET("/metrics", telemetry.MetricsHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	var guards []gin.HandlerFunc
	if requireAuth != nil {
		guards = append(guards, requireAuth)
	}

	protected := r.Group("/", guards...)
	{
		protected.GET("/consultarCpf/*cpf", h.LookupCPF)
		protected.POST("/consultarOfertas", h.LookupOffers)
		protected.POST("/ranquearOfertas", h.RankOffers)

		protected.POST("/solicitarEmprestimo", h.CreateLoanRequest)
		protected.GET("/solicitacoes", h.ListLoanRequests)
		protected.GET("/solicitacoesPorCpf/*cpf", h.ListLoanRequestsByCPF)
		protected.DELETE("/solicitacoes/:id", h.DeleteLoanRequest)

		protected.GET("/eventos/solicitacoes", h.PollLoanRequestEvents)
	}

	r.NoRoute(func(c *gin.Context) { fail(c, MsgRouteNotFound, http.StatusNotFound) })
	r.NoMethod(func(c *gin.Context) { fail(c, MsgMethodNotAllowed, http.StatusMethodNotAllowed) })
}
