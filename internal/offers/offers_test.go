package offers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const partnerBody = `[
  {"id": 1, "nome": "Banco PingApp", "modalidades": [
    {"nome": "crédito pessoal", "cod": "3",
     "oferta": {"jurosMes": 0.0365, "valorMin": 3000, "valorMax": 7000, "QntParcelaMin": 12, "QntParcelaMax": 48}},
    {"nome": "crédito consignado", "cod": "13",
     "oferta": {"jurosMes": 0.0118, "valorMin": 10000, "valorMax": 19250, "QntParcelaMin": 24, "QntParcelaMax": 72}}
  ]},
  {"id": 2, "nome": "Financeira Assert", "modalidades": [
    {"nome": "crédito pessoal", "cod": "a50ed2ed",
     "oferta": {"jurosMes": 0.0495, "valorMin": 3000, "valorMax": 7000, "QntParcelaMin": 12, "QntParcelaMax": 60}},
    {"nome": "sem oferta", "cod": "x"}
  ]}
]`

func TestRank(t *testing.T) {
	var insts []Institution
	require.NoError(t, json.Unmarshal([]byte(partnerBody), &insts))

	got := Rank(insts)
	require.Len(t, got, 3)

	// highest valorMax first
	assert.Equal(t, "13", got[0].ModalityCode)
	assert.InDelta(t, 14625, got[0].SelectedAmount, 0.001)
	assert.Equal(t, 48, got[0].SelectedInstallments)

	// tie on valorMax: lower rate wins
	assert.Equal(t, "Banco PingApp", got[1].Institution)
	assert.Equal(t, "Financeira Assert", got[2].Institution)
	assert.Equal(t, 30, got[1].SelectedInstallments)
	assert.InDelta(t, 5000, got[1].SelectedAmount, 0.001)
}

func TestRank_TieBreaksOnInstallments(t *testing.T) {
	insts := []Institution{{
		Name: "A",
		Modalities: []Modality{
			{Code: "short", Offer: &Offer{MonthlyRate: 0.02, MaxAmount: 1000, MinInstallments: 6, MaxInstallments: 12}},
			{Code: "long", Offer: &Offer{MonthlyRate: 0.02, MaxAmount: 1000, MinInstallments: 6, MaxInstallments: 36}},
		},
	}}

	got := Rank(insts)
	require.Len(t, got, 2)
	assert.Equal(t, "long", got[0].ModalityCode)
	assert.Equal(t, "short", got[1].ModalityCode)
}

func TestSelectInstallments(t *testing.T) {
	assert.Equal(t, 30, selectInstallments(12, 48))
	assert.Equal(t, 12, selectInstallments(12, 12)) // floor(24/12)*6 = 12
	assert.Equal(t, 18, selectInstallments(18, 20)) // 18 beats floor(38/12)*6 = 18
	assert.Equal(t, 5, selectInstallments(5, 6))    // 0 < min
}

func TestRank_Empty(t *testing.T) {
	got := Rank(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
