package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	ErrLoanRequestNotFound = errors.New("loan request not found")
)

// LoanRequest is a persisted loan application.
type LoanRequest struct {
	ID           int64     `json:"id"`
	CPF          string    `json:"cpf"`
	Institution  string    `json:"instituicao"`
	Modality     string    `json:"modalidade"`
	ModalityCode string    `json:"codModalidade"`
	Amount       float64   `json:"valor"`
	MonthlyRate  float64   `json:"jurosMes"`
	Installments int       `json:"parcelas"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoanRequestRepo stores loan requests. Lists are ordered newest first.
type LoanRequestRepo interface {
	Create(ctx context.Context, lr LoanRequest) (LoanRequest, error)
	List(ctx context.Context) ([]LoanRequest, error)
	ListByCPF(ctx context.Context, cpf string) ([]LoanRequest, error)
	Delete(ctx context.Context, id int64) error
}

// MemoryStore implementa LoanRequestRepo
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]LoanRequest
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[int64]LoanRequest),
		now:   time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, lr LoanRequest) (LoanRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	lr.ID = s.nextID
	lr.CreatedAt = s.now().UTC()
	lr.UpdatedAt = lr.CreatedAt
	s.items[lr.ID] = lr
	return lr, nil
}

func (s *MemoryStore) List(_ context.Context) ([]LoanRequest, error) {
	return s.filter(func(LoanRequest) bool { return true }), nil
}

func (s *MemoryStore) ListByCPF(_ context.Context, cpf string) ([]LoanRequest, error) {
	return s.filter(func(lr LoanRequest) bool { return lr.CPF == cpf }), nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrLoanRequestNotFound
	}
	delete(s.items, id)
	return nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) filter(keep func(LoanRequest) bool) []LoanRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]LoanRequest, 0, len(s.items))
	for _, lr := range s.items {
		if keep(lr) {
			out = append(out, lr)
		}
	}
	// newest first; ids break ties between equal timestamps
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
