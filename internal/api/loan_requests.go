package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AgentTarik/gosat-api/internal/cpf"
	"github.com/AgentTarik/gosat-api/internal/envelope"
	"github.com/AgentTarik/gosat-api/internal/events"
	"github.com/AgentTarik/gosat-api/internal/storage"
	"github.com/AgentTarik/gosat-api/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Loan request messages
const (
	MsgLoanRequestNotFound = "Solicitação não encontrada."
	MsgPersistFailed       = "Erro ao salvar a solicitação."
	MsgListFailed          = "Erro ao listar as solicitações."
	MsgDeleteFailed        = "Erro ao excluir a solicitação."
)

// CreateLoanRequest godoc
// @Summary      Registra uma solicitação de empréstimo
// @Tags         solicitacoes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      CreateLoanRequest  true  "Solicitação"
// @Success      200      {object}  EnvelopeDoc
// @Failure      400      {object}  EnvelopeDoc
// @Failure      500      {object}  EnvelopeDoc
// @Router       /solicitarEmprestimo [post]
func (h *Handlers) CreateLoanRequest(c *gin.Context) {
	var req CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		telemetry.IncLoanRequestsFailed("validation")
		fail(c, MsgInvalidJSON, http.StatusBadRequest)
		return
	}
	if err := h.V.Struct(req); err != nil {
		telemetry.IncLoanRequestsFailed("validation")
		fail(c, fieldErrors(err), http.StatusBadRequest)
		return
	}
	cleaned, _ := h.validCPF(req.CPF)

	lr, err := h.LoanRequests.Create(c.Request.Context(), storage.LoanRequest{
		CPF:          cleaned,
		Institution:  req.Institution,
		Modality:     req.Modality,
		ModalityCode: req.ModalityCode,
		Amount:       *req.Amount,
		MonthlyRate:  *req.MonthlyRate,
		Installments: *req.Installments,
	})
	if err != nil {
		if errors.Is(err, storage.ErrInvalidLoanRequest) {
			telemetry.IncLoanRequestsFailed("validation")
			fail(c, err.Error(), http.StatusBadRequest)
			return
		}
		telemetry.IncLoanRequestsFailed("db")
		h.Log.Error("create loan request failed", zap.String("cpf", cpf.Mask(cleaned)), zap.Error(err))
		fail(c, MsgPersistFailed, http.StatusInternalServerError)
		return
	}

	telemetry.IncLoanRequestsCreated()
	h.enqueue(events.Created(lr))
	respond(c, envelope.OK(lr))
}

// ListLoanRequests godoc
// @Summary      Lista todas as solicitações
// @Tags         solicitacoes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  EnvelopeDoc
// @Failure      500  {object}  EnvelopeDoc
// @Router       /solicitacoes [get]
func (h *Handlers) ListLoanRequests(c *gin.Context) {
	out, err := h.LoanRequests.List(c.Request.Context())
	if err != nil {
		h.Log.Error("list loan requests failed", zap.Error(err))
		fail(c, MsgListFailed, http.StatusInternalServerError)
		return
	}
	respond(c, envelope.OK(out))
}

// ListLoanRequestsByCPF godoc
// @Summary      Lista as solicitações de um CPF
// @Tags         solicitacoes
// @Produce      json
// @Security     BearerAuth
// @Param        cpf  path      string  true  "CPF, com ou sem pontuação"
// @Success      200  {object}  EnvelopeDoc
// @Failure      400  {object}  EnvelopeDoc
// @Failure      500  {object}  EnvelopeDoc
// @Router       /solicitacoesPorCpf/{cpf} [get]
func (h *Handlers) ListLoanRequestsByCPF(c *gin.Context) {
	cleaned, ok := h.validCPF(cpfParam(c))
	if !ok {
		fail(c, MsgInvalidCPF, http.StatusBadRequest)
		return
	}
	out, err := h.LoanRequests.ListByCPF(c.Request.Context(), cleaned)
	if err != nil {
		h.Log.Error("list loan requests by cpf failed", zap.String("cpf", cpf.Mask(cleaned)), zap.Error(err))
		fail(c, MsgListFailed, http.StatusInternalServerError)
		return
	}
	respond(c, envelope.OK(out))
}

// DeleteLoanRequest godoc
// @Summary      Exclui uma solicitação
// @Tags         solicitacoes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID da solicitação"
// @Success      200  {object}  EnvelopeDoc
// @Failure      400  {object}  EnvelopeDoc
// @Failure      404  {object}  EnvelopeDoc
// @Failure      500  {object}  EnvelopeDoc
// @Router       /solicitacoes/{id} [delete]
func (h *Handlers) DeleteLoanRequest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, MsgInvalidID, http.StatusBadRequest)
		return
	}

	if err := h.LoanRequests.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrLoanRequestNotFound) {
			fail(c, MsgLoanRequestNotFound, http.StatusNotFound)
			return
		}
		h.Log.Error("delete loan request failed", zap.Int64("id", id), zap.Error(err))
		fail(c, MsgDeleteFailed, http.StatusInternalServerError)
		return
	}

	telemetry.IncLoanRequestsDeleted()
	h.enqueue(events.Deleted(id))
	respond(c, envelope.OK(DeletedResponse{ID: id}))
}
