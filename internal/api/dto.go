package api

import "github.com/AgentTarik/gosat-api/internal/offers"

// Entrada para consulta de ofertas. instituicao_id and codModalidade are
// checked by hand so numeric strings and numbers are both accepted.
type OfferLookupRequest struct {
	CPF           string `json:"cpf"            example:"11144477735"`
	InstitutionID any    `json:"instituicao_id" swaggertype:"integer" example:"12"`
	ModalityCode  any    `json:"codModalidade"  swaggertype:"string" example:"3"`
}

// Entrada para ranquear ofertas
type RankOffersRequest struct {
	Institutions []offers.Institution `json:"instituicoes" validate:"required"`
}

// Entrada para solicitar empréstimo
type CreateLoanRequest struct {
	CPF          string   `json:"cpf"           validate:"required,cpf"                   example:"11144477735"`
	Institution  string   `json:"instituicao"   validate:"required,max=255"               example:"Banco PingApp"`
	Modality     string   `json:"modalidade"    validate:"required,max=255"               example:"crédito pessoal"`
	ModalityCode string   `json:"codModalidade" validate:"required,max=255"               example:"3"`
	Amount       *float64 `json:"valor"         validate:"required,gt=0,lte=99999999.99"  example:"5000"`
	MonthlyRate  *float64 `json:"jurosMes"      validate:"required,gte=0,lt=10"           example:"0.0495"`
	Installments *int     `json:"parcelas"      validate:"required,gt=0,lte=600"          example:"12"`
}

// Saída de exclusão
type DeletedResponse struct {
	ID int64 `json:"id"`
}

// EnvelopeDoc documents the response body shape for swagger.
type EnvelopeDoc struct {
	Success  bool `json:"success"`
	Response any  `json:"response"`
	Code     int  `json:"code"`
}
