package api

import (
	"net/http"

	"github.com/AgentTarik/gosat-api/internal/envelope"
	"github.com/AgentTarik/gosat-api/internal/gateway"
	"github.com/AgentTarik/gosat-api/internal/offers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Partner error messages
const (
	MsgCPFLookupFailed   = "Erro ao consultar API externa de CPF."
	MsgOfferLookupFailed = "Erro ao consultar API externa de ofertas."
)

// LookupCPF godoc
// @Summary      Consulta as instituições disponíveis para um CPF
// @Description  Valida o CPF e o encaminha para a API parceira de consulta.
// @Tags         parceiros
// @Produce      json
// @Security     BearerAuth
// @Param        cpf  path      string  true  "CPF, com ou sem pontuação"
// @Success      200  {object}  EnvelopeDoc
// @Failure      400  {object}  EnvelopeDoc
// @Failure      401  {object}  EnvelopeDoc
// @Failure      500  {object}  EnvelopeDoc
// @Router       /consultarCpf/{cpf} [get]
func (h *Handlers) LookupCPF(c *gin.Context) {
	cleaned, ok := h.validCPF(cpfParam(c))
	if !ok {
		fail(c, MsgInvalidCPF, http.StatusBadRequest)
		return
	}

	env := h.Gateway.Call(c.Request.Context(), gateway.CPFLookup,
		map[string]any{"cpf": cleaned},
		gateway.Status(http.StatusOK),
		gateway.Details(MsgCPFLookupFailed),
	)
	respond(c, env)
}

// LookupOffers godoc
// @Summary      Consulta ofertas de uma modalidade
// @Description  Valida CPF, instituição e modalidade e consulta a API parceira de ofertas.
// @Tags         parceiros
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      OfferLookupRequest  true  "Dados da consulta"
// @Success      200      {object}  EnvelopeDoc
// @Failure      400      {object}  EnvelopeDoc
// @Failure      401      {object}  EnvelopeDoc
// @Failure      500      {object}  EnvelopeDoc
// @Router       /consultarOfertas [post]
func (h *Handlers) LookupOffers(c *gin.Context) {
	var req OfferLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	cleaned, ok := h.validCPF(req.CPF)
	if !ok {
		fail(c, MsgInvalidCPF, http.StatusBadRequest)
		return
	}
	institutionID, ok := positiveNumber(req.InstitutionID)
	if !ok {
		fail(c, MsgInvalidInstitution, http.StatusBadRequest)
		return
	}
	code, ok := nonEmptyString(req.ModalityCode)
	if !ok {
		fail(c, MsgInvalidModalityCode, http.StatusBadRequest)
		return
	}

	env := h.Gateway.Call(c.Request.Context(), gateway.OfferLookup,
		map[string]any{
			"cpf":            cleaned,
			"instituicao_id": institutionID,
			"codModalidade":  code,
		},
		gateway.Status(http.StatusOK),
		gateway.Details(MsgOfferLookupFailed),
	)
	respond(c, env)
}

// RankOffers godoc
// @Summary      Ordena as ofertas das instituições
// @Description  Achata as ofertas e ordena por valorMax desc, jurosMes asc e QntParcelaMax desc.
// @Tags         ofertas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      RankOffersRequest  true  "Instituições e ofertas"
// @Success      200      {object}  EnvelopeDoc
// @Failure      400      {object}  EnvelopeDoc
// @Router       /ranquearOfertas [post]
func (h *Handlers) RankOffers(c *gin.Context) {
	var req RankOffersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, MsgInvalidJSON, http.StatusBadRequest)
		return
	}
	if err := h.V.Struct(req); err != nil {
		fail(c, fieldErrors(err), http.StatusBadRequest)
		return
	}

	ranked := offers.Rank(req.Institutions)
	h.Log.Debug("offers ranked", zap.Int("count", len(ranked)))
	respond(c, envelope.OK(ranked))
}
