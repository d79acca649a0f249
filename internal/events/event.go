// Package events publishes loan request lifecycle events.
package events

import (
	"strconv"
	"time"

	"github.com/AgentTarik/gosat-api/internal/storage"

	"github.com/google/uuid"
)

type Type string

const (
	LoanRequestCreated Type = "loan_request.created"
	LoanRequestDeleted Type = "loan_request.deleted"
)

const schemaVersion = 1

// Event is the message body written to the loan requests topic.
type Event struct {
	ID          uuid.UUID    `json:"event_id"`
	Type        Type         `json:"type"`
	Version     int          `json:"version"`
	OccurredAt  time.Time    `json:"occurred_at"`
	LoanRequest loanRequestV `json:"loan_request"`
}

// loanRequestV omits empty fields so deletions carry only the id.
type loanRequestV struct {
	ID           int64      `json:"id"`
	CPF          string     `json:"cpf,omitempty"`
	Institution  string     `json:"instituicao,omitempty"`
	Modality     string     `json:"modalidade,omitempty"`
	ModalityCode string     `json:"codModalidade,omitempty"`
	Amount       float64    `json:"valor,omitempty"`
	MonthlyRate  float64    `json:"jurosMes,omitempty"`
	Installments int        `json:"parcelas,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

func Created(lr storage.LoanRequest) Event {
	created := lr.CreatedAt
	return newEvent(LoanRequestCreated, loanRequestV{
		ID:           lr.ID,
		CPF:          lr.CPF,
		Institution:  lr.Institution,
		Modality:     lr.Modality,
		ModalityCode: lr.ModalityCode,
		Amount:       lr.Amount,
		MonthlyRate:  lr.MonthlyRate,
		Installments: lr.Installments,
		CreatedAt:    &created,
	})
}

func Deleted(id int64) Event {
	return newEvent(LoanRequestDeleted, loanRequestV{ID: id})
}

func newEvent(t Type, lr loanRequestV) Event {
	return Event{
		ID:          uuid.New(),
		Type:        t,
		Version:     schemaVersion,
		OccurredAt:  time.Now().UTC(),
		LoanRequest: lr,
	}
}

// Key is the partition key: the CPF when known, else the record id.
func (e Event) Key() string {
	if e.LoanRequest.CPF != "" {
		return e.LoanRequest.CPF
	}
	return "id:" + strconv.FormatInt(e.LoanRequest.ID, 10)
}
