// Package offers flattens the institutions returned by the CPF lookup partner
// into a ranked list of loan offers.
package offers

import (
	"math"
	"sort"
)

// Institution is one financial institution as returned by the partner.
type Institution struct {
	ID         int64      `json:"id"`
	Name       string     `json:"nome"`
	Modalities []Modality `json:"modalidades"`
}

type Modality struct {
	Name  string `json:"nome"`
	Code  string `json:"cod"`
	Offer *Offer `json:"oferta,omitempty"`
}

type Offer struct {
	MonthlyRate     float64 `json:"jurosMes"`
	MinAmount       float64 `json:"valorMin"`
	MaxAmount       float64 `json:"valorMax"`
	MinInstallments int     `json:"QntParcelaMin"`
	MaxInstallments int     `json:"QntParcelaMax"`
}

// Ranked is an offer with the amount and installment count suggested to the client.
type Ranked struct {
	Institution          string  `json:"instituicao"`
	Modality             string  `json:"modalidade"`
	ModalityCode         string  `json:"codModalidade"`
	MonthlyRate          float64 `json:"jurosMes"`
	MinAmount            float64 `json:"valorMin"`
	MaxAmount            float64 `json:"valorMax"`
	MinInstallments      int     `json:"QntParcelaMin"`
	MaxInstallments      int     `json:"QntParcelaMax"`
	SelectedAmount       float64 `json:"valorSelecionado"`
	SelectedInstallments int     `json:"parcelasSelecionadas"`
}

// Rank lists every modality offer, best first: highest maximum amount, then
// lowest monthly rate, then most installments. Modalities without an offer
// are skipped.
func Rank(institutions []Institution) []Ranked {
	out := []Ranked{}
	for _, inst := range institutions {
		for _, m := range inst.Modalities {
			if m.Offer == nil {
				continue
			}
			o := m.Offer
			out = append(out, Ranked{
				Institution:          inst.Name,
				Modality:             m.Name,
				ModalityCode:         m.Code,
				MonthlyRate:          o.MonthlyRate,
				MinAmount:            o.MinAmount,
				MaxAmount:            o.MaxAmount,
				MinInstallments:      o.MinInstallments,
				MaxInstallments:      o.MaxInstallments,
				SelectedAmount:       (o.MaxAmount + o.MinAmount) / 2,
				SelectedInstallments: selectInstallments(o.MinInstallments, o.MaxInstallments),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.MaxAmount != b.MaxAmount {
			return a.MaxAmount > b.MaxAmount
		}
		if a.MonthlyRate != b.MonthlyRate {
			return a.MonthlyRate < b.MonthlyRate
		}
		return a.MaxInstallments > b.MaxInstallments
	})
	return out
}

// selectInstallments picks roughly half of the average term in years, rounded
// to 6 month steps, never below the minimum.
func selectInstallments(min, max int) int {
	n := int(math.Floor(float64(max+min)/12)) * 6
	if n < min {
		return min
	}
	return n
}
