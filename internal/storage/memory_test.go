package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(cpf string) LoanRequest {
	return LoanRequest{
		CPF:          cpf,
		Institution:  "Banco PingApp",
		Modality:     "crédito pessoal",
		ModalityCode: "3",
		Amount:       5000,
		MonthlyRate:  0.0495,
		Installments: 12,
	}
}

func TestMemoryStore_CreateAssignsIDAndTimestamps(t *testing.T) {
	s := NewMemoryStore()
	fixed := time.Date(2025, 7, 14, 2, 38, 44, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	a, err := s.Create(context.Background(), sample("11144477735"))
	require.NoError(t, err)
	b, err := s.Create(context.Background(), sample("11144477735"))
	require.NoError(t, err)

	assert.EqualValues(t, 1, a.ID)
	assert.EqualValues(t, 2, b.ID)
	assert.Equal(t, fixed, a.CreatedAt)
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	ctx := context.Background()
	_, _ = s.Create(ctx, sample("11144477735"))
	_, _ = s.Create(ctx, sample("52998224725"))
	_, _ = s.Create(ctx, sample("11144477735"))

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.EqualValues(t, []int64{3, 2, 1}, []int64{all[0].ID, all[1].ID, all[2].ID})

	byCPF, err := s.ListByCPF(ctx, "11144477735")
	require.NoError(t, err)
	require.Len(t, byCPF, 2)
	assert.EqualValues(t, 3, byCPF[0].ID)
	assert.EqualValues(t, 1, byCPF[1].ID)

	none, err := s.ListByCPF(ctx, "00000000191")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	lr, _ := s.Create(ctx, sample("11144477735"))

	require.NoError(t, s.Delete(ctx, lr.ID))
	assert.ErrorIs(t, s.Delete(ctx, lr.ID), ErrLoanRequestNotFound)
	assert.ErrorIs(t, s.Delete(ctx, 999), ErrLoanRequestNotFound)

	all, _ := s.List(ctx)
	assert.Empty(t, all)
}

func TestMemoryStore_ConcurrentCreate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Create(ctx, sample("11144477735"))
		}()
	}
	wg.Wait()

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 50)

	seen := map[int64]bool{}
	for _, lr := range all {
		assert.False(t, seen[lr.ID])
		seen[lr.ID] = true
	}
}

var _ LoanRequestRepo = (*MemoryStore)(nil)
var _ LoanRequestRepo = (*PostgresStore)(nil)
