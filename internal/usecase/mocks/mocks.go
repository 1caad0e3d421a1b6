package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/clankbot/wagerbank/internal/domain"
	"github.com/clankbot/wagerbank/internal/usecase"
)

// MockBalanceRepository is a mock implementation of BalanceRepository.
type MockBalanceRepository struct {
	mu       sync.RWMutex
	balances map[string]*domain.Balance

	CreateTxFunc              func(ctx context.Context, tx usecase.Transaction, balance *domain.Balance) error
	GetByUserIDFunc           func(ctx context.Context, userID string) (*domain.Balance, error)
	GetByUserIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Balance, error)
	GetByUserIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, userIDs []string) ([]*domain.Balance, error)
	UpdateTxFunc              func(ctx context.Context, tx usecase.Transaction, balance *domain.Balance, updatedAt time.Time) error
	ListFunc                  func(ctx context.Context, limit, offset int) ([]*domain.Balance, error)
}

func NewMockBalanceRepository() *MockBalanceRepository {
	return &MockBalanceRepository{
		balances: make(map[string]*domain.Balance),
	}
}

func (m *MockBalanceRepository) CreateTx(ctx context.Context, tx usecase.Transaction, balance *domain.Balance) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, balance)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[balance.UserID] = balance
	return nil
}

func (m *MockBalanceRepository) GetByUserID(ctx context.Context, userID string) (*domain.Balance, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.balances[userID]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, domain.ErrBalanceNotFound
}

func (m *MockBalanceRepository) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Balance, error) {
	if m.GetByUserIDForUpdateFunc != nil {
		return m.GetByUserIDForUpdateFunc(ctx, tx, userID)
	}
	return m.GetByUserID(ctx, userID)
}

func (m *MockBalanceRepository) GetByUserIDsForUpdate(ctx context.Context, tx usecase.Transaction, userIDs []string) ([]*domain.Balance, error) {
	if m.GetByUserIDsForUpdateFunc != nil {
		return m.GetByUserIDsForUpdateFunc(ctx, tx, userIDs)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sorted := make([]string, len(userIDs))
	copy(sorted, userIDs)
	sort.Strings(sorted)
	var balances []*domain.Balance
	for _, id := range sorted {
		if b, ok := m.balances[id]; ok {
			cp := *b
			balances = append(balances, &cp)
		}
	}
	return balances, nil
}

func (m *MockBalanceRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, balance *domain.Balance, updatedAt time.Time) error {
	if m.UpdateTxFunc != nil {
		return m.UpdateTxFunc(ctx, tx, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	balance.Version++
	balance.UpdatedAt = updatedAt
	m.balances[balance.UserID] = balance
	return nil
}

func (m *MockBalanceRepository) List(ctx context.Context, limit, offset int) ([]*domain.Balance, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]*domain.Balance, 0, len(m.balances))
	for _, b := range m.balances {
		cp := *b
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		ni, nj := all[i].Current+all[i].Escrow, all[j].Current+all[j].Escrow
		if ni != nj {
			return ni > nj
		}
		return all[i].UserID < all[j].UserID
	})
	if offset >= len(all) {
		return []*domain.Balance{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.Entry

	CreateTxFunc        func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	ExistsByRefTxFunc   func(ctx context.Context, tx usecase.Transaction, userID, refType, refID string, entryType domain.EntryType) (bool, error)
	ListByUserFunc      func(ctx context.Context, userID string, limit, offset int) ([]*domain.Entry, error)
	SignedSumByUserFunc func(ctx context.Context, userID string) (int64, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

func (m *MockEntryRepository) CreateTx(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.UserID == entry.UserID && e.RefType == entry.RefType && e.RefID == entry.RefID && e.Type == entry.Type {
			return domain.ErrDuplicateEntry
		}
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockEntryRepository) ExistsByRefTx(ctx context.Context, tx usecase.Transaction, userID, refType, refID string, entryType domain.EntryType) (bool, error) {
	if m.ExistsByRefTxFunc != nil {
		return m.ExistsByRefTxFunc(ctx, tx, userID, refType, refID, entryType)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.UserID == userID && e.RefType == refType && e.RefID == refID && e.Type == entryType {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockEntryRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Entry, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.Entry
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].UserID == userID {
			entries = append(entries, m.entries[i])
		}
	}
	if offset >= len(entries) {
		return []*domain.Entry{}, nil
	}
	entries = entries[offset:]
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

func (m *MockEntryRepository) SignedSumByUser(ctx context.Context, userID string) (int64, error) {
	if m.SignedSumByUserFunc != nil {
		return m.SignedSumByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum int64
	for _, e := range m.entries {
		if e.UserID == userID {
			sum += e.SignedAmount()
		}
	}
	return sum, nil
}

// Entries returns a copy of all recorded entries for assertions.
func (m *MockEntryRepository) Entries() []*domain.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// MockWagerRepository is a mock implementation of WagerRepository.
type MockWagerRepository struct {
	mu     sync.RWMutex
	wagers map[string]*domain.Wager

	CreateTxFunc          func(ctx context.Context, tx usecase.Transaction, wager *domain.Wager) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Wager, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Wager, error)
	AddStakeTxFunc        func(ctx context.Context, tx usecase.Transaction, id string, side domain.Side, amount int64, updatedAt time.Time) error
	UpdateStatusTxFunc    func(ctx context.Context, tx usecase.Transaction, id string, status domain.WagerStatus, updatedAt time.Time) error
	SettleTxFunc          func(ctx context.Context, tx usecase.Transaction, id string, status domain.WagerStatus, outcome *domain.Outcome, settledAt time.Time) error
	ListByStatusFunc      func(ctx context.Context, status domain.WagerStatus, limit, offset int) ([]*domain.Wager, error)
	ListOpenPastCloseFunc func(ctx context.Context, now time.Time, afterID string, limit int) ([]*domain.Wager, error)
}

func NewMockWagerRepository() *MockWagerRepository {
	return &MockWagerRepository{
		wagers: make(map[string]*domain.Wager),
	}
}

func (m *MockWagerRepository) CreateTx(ctx context.Context, tx usecase.Transaction, wager *domain.Wager) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, wager)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wagers[wager.ID] = wager
	return nil
}

func (m *MockWagerRepository) GetByID(ctx context.Context, id string) (*domain.Wager, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	// Reads hand out a copy. The real repo scans every row into a fresh
	// struct, so callers may mutate what they get back without touching
	// the stored state.
	m.mu.RLock()
	defer m.mu.RUnlock()
	if w, ok := m.wagers[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, domain.ErrWagerNotFound
}

func (m *MockWagerRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Wager, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockWagerRepository) AddStakeTx(ctx context.Context, tx usecase.Transaction, id string, side domain.Side, amount int64, updatedAt time.Time) error {
	if m.AddStakeTxFunc != nil {
		return m.AddStakeTxFunc(ctx, tx, id, side, amount, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wagers[id]
	if !ok {
		return domain.ErrWagerNotFound
	}
	if side == domain.SideAgainst {
		w.TotalAgainst += amount
	} else {
		w.TotalFor += amount
	}
	w.UpdatedAt = updatedAt
	return nil
}

func (m *MockWagerRepository) UpdateStatusTx(ctx context.Context, tx usecase.Transaction, id string, status domain.WagerStatus, updatedAt time.Time) error {
	if m.UpdateStatusTxFunc != nil {
		return m.UpdateStatusTxFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wagers[id]
	if !ok {
		return domain.ErrWagerNotFound
	}
	w.Status = status
	w.UpdatedAt = updatedAt
	return nil
}

func (m *MockWagerRepository) SettleTx(ctx context.Context, tx usecase.Transaction, id string, status domain.WagerStatus, outcome *domain.Outcome, settledAt time.Time) error {
	if m.SettleTxFunc != nil {
		return m.SettleTxFunc(ctx, tx, id, status, outcome, settledAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wagers[id]
	if !ok {
		return domain.ErrWagerNotFound
	}
	w.Status = status
	w.Outcome = outcome
	w.SettledAt = &settledAt
	w.UpdatedAt = settledAt
	return nil
}

func (m *MockWagerRepository) ListByStatus(ctx context.Context, status domain.WagerStatus, limit, offset int) ([]*domain.Wager, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, status, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var wagers []*domain.Wager
	for _, w := range m.wagers {
		if w.Status == status {
			cp := *w
			wagers = append(wagers, &cp)
		}
	}
	sort.Slice(wagers, func(i, j int) bool { return wagers[i].ID < wagers[j].ID })
	if offset >= len(wagers) {
		return []*domain.Wager{}, nil
	}
	wagers = wagers[offset:]
	if limit > 0 && limit < len(wagers) {
		wagers = wagers[:limit]
	}
	return wagers, nil
}

func (m *MockWagerRepository) ListOpenPastClose(ctx context.Context, now time.Time, afterID string, limit int) ([]*domain.Wager, error) {
	if m.ListOpenPastCloseFunc != nil {
		return m.ListOpenPastCloseFunc(ctx, now, afterID, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var wagers []*domain.Wager
	for _, w := range m.wagers {
		if w.Status == domain.WagerStatusOpen && !w.ClosesAt.After(now) && w.ID > afterID {
			cp := *w
			wagers = append(wagers, &cp)
		}
	}
	sort.Slice(wagers, func(i, j int) bool { return wagers[i].ID < wagers[j].ID })
	if limit > 0 && limit < len(wagers) {
		wagers = wagers[:limit]
	}
	return wagers, nil
}

// MockParticipantRepository is a mock implementation of ParticipantRepository.
type MockParticipantRepository struct {
	mu           sync.RWMutex
	participants []*domain.Participant

	CreateTxFunc      func(ctx context.Context, tx usecase.Transaction, participant *domain.Participant) error
	ExistsTxFunc      func(ctx context.Context, tx usecase.Transaction, wagerID, userID string, side domain.Side) (bool, error)
	ListByWagerTxFunc func(ctx context.Context, tx usecase.Transaction, wagerID string) ([]*domain.Participant, error)
	ListByWagerFunc   func(ctx context.Context, wagerID string) ([]*domain.Participant, error)
	ListByUserFunc    func(ctx context.Context, userID string, limit, offset int) ([]*domain.Participant, error)
}

func NewMockParticipantRepository() *MockParticipantRepository {
	return &MockParticipantRepository{}
}

func (m *MockParticipantRepository) CreateTx(ctx context.Context, tx usecase.Transaction, participant *domain.Participant) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, participant)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.participants {
		if p.WagerID == participant.WagerID && p.UserID == participant.UserID && p.Side == participant.Side {
			return domain.ErrDuplicateParticipation
		}
	}
	m.participants = append(m.participants, participant)
	return nil
}

func (m *MockParticipantRepository) ExistsTx(ctx context.Context, tx usecase.Transaction, wagerID, userID string, side domain.Side) (bool, error) {
	if m.ExistsTxFunc != nil {
		return m.ExistsTxFunc(ctx, tx, wagerID, userID, side)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.participants {
		if p.WagerID == wagerID && p.UserID == userID && p.Side == side {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockParticipantRepository) ListByWagerTx(ctx context.Context, tx usecase.Transaction, wagerID string) ([]*domain.Participant, error) {
	if m.ListByWagerTxFunc != nil {
		return m.ListByWagerTxFunc(ctx, tx, wagerID)
	}
	return m.ListByWager(ctx, wagerID)
}

func (m *MockParticipantRepository) ListByWager(ctx context.Context, wagerID string) ([]*domain.Participant, error) {
	if m.ListByWagerFunc != nil {
		return m.ListByWagerFunc(ctx, wagerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var participants []*domain.Participant
	for _, p := range m.participants {
		if p.WagerID == wagerID {
			participants = append(participants, p)
		}
	}
	return participants, nil
}

func (m *MockParticipantRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Participant, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var participants []*domain.Participant
	for i := len(m.participants) - 1; i >= 0; i-- {
		if m.participants[i].UserID == userID {
			participants = append(participants, m.participants[i])
		}
	}
	if offset >= len(participants) {
		return []*domain.Participant{}, nil
	}
	participants = participants[offset:]
	if limit > 0 && limit < len(participants) {
		participants = participants[:limit]
	}
	return participants, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateTxFunc        func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc  func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc   func(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublishedFunc func(ctx context.Context, before time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) CreateTx(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			events = append(events, e)
		}
		if limit > 0 && len(events) == limit {
			break
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
			return nil
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	if m.DeletePublishedFunc != nil {
		return m.DeletePublishedFunc(ctx, before)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*domain.OutboxEvent
	for _, e := range m.events {
		if e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before) {
			continue
		}
		kept = append(kept, e)
	}
	m.events = kept
	return nil
}

// Events returns a copy of all recorded events for assertions.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.OutboxEvent, len(m.events))
	copy(out, m.events)
	return out
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%03d", m.counter)
}

// MockRetrier is a mock implementation of Retrier that runs the operation
// once without retrying.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}
