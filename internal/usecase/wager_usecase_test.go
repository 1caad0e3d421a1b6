package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/clankbot/wagerbank/internal/domain"
	"github.com/clankbot/wagerbank/internal/usecase"
	"github.com/clankbot/wagerbank/internal/usecase/mocks"
)

type wagerFixture struct {
	uc              *usecase.WagerUseCase
	userRepo        *mocks.MockUserRepository
	wagerRepo       *mocks.MockWagerRepository
	participantRepo *mocks.MockParticipantRepository
	balanceRepo     *mocks.MockBalanceRepository
	entryRepo       *mocks.MockEntryRepository
	outboxRepo      *mocks.MockOutboxRepository
}

func newWagerFixture(t *testing.T) *wagerFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	userRepo.EXPECT().GetByID(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Username: id}, nil
		},
	).AnyTimes()

	wagerRepo := mocks.NewMockWagerRepository()
	participantRepo := mocks.NewMockParticipantRepository()
	balanceRepo := mocks.NewMockBalanceRepository()
	entryRepo := mocks.NewMockEntryRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	txMgr := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	escrow := usecase.NewEscrowUseCase(txMgr, balanceRepo, entryRepo, outboxRepo, idGen, nil)
	uc := usecase.NewWagerUseCase(txMgr, userRepo, wagerRepo, participantRepo, balanceRepo, outboxRepo, escrow, idGen, mocks.NewMockRetrier(), nil)

	return &wagerFixture{
		uc:              uc,
		userRepo:        userRepo,
		wagerRepo:       wagerRepo,
		participantRepo: participantRepo,
		balanceRepo:     balanceRepo,
		entryRepo:       entryRepo,
		outboxRepo:      outboxRepo,
	}
}

func (f *wagerFixture) seedWager(t *testing.T, id string, status domain.WagerStatus, closesAt time.Time) *domain.Wager {
	t.Helper()
	w := &domain.Wager{
		ID:          id,
		OpenerID:    "opener",
		Statement:   "the deploy will go green",
		OddsFor:     1,
		OddsAgainst: 1,
		Status:      status,
		OpensAt:     time.Now().Add(-time.Hour),
		ClosesAt:    closesAt,
	}
	if err := f.wagerRepo.CreateTx(context.Background(), nil, w); err != nil {
		t.Fatalf("failed to seed wager: %v", err)
	}
	return w
}

func TestWagerUseCase_Open(t *testing.T) {
	f := newWagerFixture(t)

	wager, err := f.uc.Open(context.Background(), usecase.OpenWagerInput{
		OpenerID:    "alice",
		Statement:   "it will rain tomorrow",
		OddsFor:     2,
		OddsAgainst: 1,
		ClosesAt:    time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if wager.Status != domain.WagerStatusOpen {
		t.Errorf("expected open status, got %s", wager.Status)
	}
	if wager.OpensAt.IsZero() {
		t.Error("expected opens_at to default to now")
	}

	events := f.outboxRepo.Events()
	if len(events) != 1 || events[0].EventType != domain.EventTypeWagerOpened {
		t.Errorf("expected a wager.opened event, got %v", events)
	}
}

func TestWagerUseCase_OpenValidation(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		input     usecase.OpenWagerInput
		expectErr error
	}{
		{
			name: "statement too short",
			input: usecase.OpenWagerInput{
				OpenerID: "alice", Statement: "no", OddsFor: 1, OddsAgainst: 1, ClosesAt: now.Add(time.Hour),
			},
			expectErr: domain.ErrInvalidStatement,
		},
		{
			name: "odds out of range",
			input: usecase.OpenWagerInput{
				OpenerID: "alice", Statement: "a perfectly valid statement", OddsFor: 0, OddsAgainst: 1, ClosesAt: now.Add(time.Hour),
			},
			expectErr: domain.ErrInvalidOdds,
		},
		{
			name: "window inverted",
			input: usecase.OpenWagerInput{
				OpenerID: "alice", Statement: "a perfectly valid statement", OddsFor: 1, OddsAgainst: 1,
				OpensAt: now.Add(time.Hour), ClosesAt: now,
			},
			expectErr: domain.ErrInvalidWindow,
		},
		{
			name: "empty opener",
			input: usecase.OpenWagerInput{
				Statement: "a perfectly valid statement", OddsFor: 1, OddsAgainst: 1, ClosesAt: now.Add(time.Hour),
			},
			expectErr: domain.ErrInvalidUserID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWagerFixture(t)

			_, err := f.uc.Open(context.Background(), tt.input)

			if !errors.Is(err, tt.expectErr) {
				t.Errorf("expected %v, got %v", tt.expectErr, err)
			}
		})
	}
}

func TestWagerUseCase_OpenUnknownOpener(t *testing.T) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	userRepo.EXPECT().GetByID(gomock.Any(), "ghost").Return(nil, domain.ErrUserNotFound)

	txMgr := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()
	escrow := usecase.NewEscrowUseCase(txMgr, mocks.NewMockBalanceRepository(), mocks.NewMockEntryRepository(), mocks.NewMockOutboxRepository(), idGen, nil)
	uc := usecase.NewWagerUseCase(txMgr, userRepo, mocks.NewMockWagerRepository(), mocks.NewMockParticipantRepository(), mocks.NewMockBalanceRepository(), mocks.NewMockOutboxRepository(), escrow, idGen, mocks.NewMockRetrier(), nil)

	_, err := uc.Open(context.Background(), usecase.OpenWagerInput{
		OpenerID:    "ghost",
		Statement:   "a perfectly valid statement",
		OddsFor:     1,
		OddsAgainst: 1,
		ClosesAt:    time.Now().Add(time.Hour),
	})

	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestWagerUseCase_Join(t *testing.T) {
	f := newWagerFixture(t)
	f.seedWager(t, "wager-1", domain.WagerStatusOpen, time.Now().Add(time.Hour))
	seedBalance(t, f.balanceRepo, "alice", 100, 0)

	wager, err := f.uc.Join(context.Background(), usecase.JoinWagerInput{
		WagerID: "wager-1",
		UserID:  "alice",
		Side:    domain.SideFor,
		Amount:  60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if wager.TotalFor != 60 {
		t.Errorf("expected total_for 60, got %d", wager.TotalFor)
	}

	balance, err := f.balanceRepo.GetByUserID(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance.Current != 40 || balance.Escrow != 60 {
		t.Errorf("expected current 40 escrow 60, got %d %d", balance.Current, balance.Escrow)
	}

	participants, err := f.participantRepo.ListByWager(context.Background(), "wager-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(participants) != 1 || participants[0].Amount != 60 {
		t.Errorf("expected one participant with stake 60, got %v", participants)
	}

	events := f.outboxRepo.Events()
	if len(events) != 1 || events[0].EventType != domain.EventTypeWagerJoined {
		t.Errorf("expected a wager.joined event, got %v", events)
	}
}

func TestWagerUseCase_JoinRecordsStakeOnce(t *testing.T) {
	f := newWagerFixture(t)
	f.seedWager(t, "wager-1", domain.WagerStatusOpen, time.Now().Add(time.Hour))
	seedBalance(t, f.balanceRepo, "alice", 100, 0)

	if _, err := f.uc.Join(context.Background(), usecase.JoinWagerInput{
		WagerID: "wager-1",
		UserID:  "alice",
		Side:    domain.SideFor,
		Amount:  40,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := f.wagerRepo.GetByID(context.Background(), "wager-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.TotalFor != 40 || stored.TotalAgainst != 0 {
		t.Errorf("expected stored pools 40/0 after a single join, got %d/%d", stored.TotalFor, stored.TotalAgainst)
	}

	participants, err := f.participantRepo.ListByWager(context.Background(), "wager-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var staked int64
	for _, p := range participants {
		staked += p.Amount
	}
	if staked != stored.TotalFor+stored.TotalAgainst {
		t.Errorf("expected pool totals to match staked %d, got %d", staked, stored.TotalFor+stored.TotalAgainst)
	}
}

func TestWagerUseCase_GetReturnsSnapshot(t *testing.T) {
	f := newWagerFixture(t)
	f.seedWager(t, "wager-1", domain.WagerStatusOpen, time.Now().Add(time.Hour))

	first, err := f.uc.Get(context.Background(), "wager-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first.TotalFor = 999

	second, err := f.uc.Get(context.Background(), "wager-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.TotalFor != 0 {
		t.Errorf("expected a caller-side edit to stay private, got total_for %d", second.TotalFor)
	}
}

func TestWagerUseCase_JoinDuplicateSide(t *testing.T) {
	f := newWagerFixture(t)
	f.seedWager(t, "wager-1", domain.WagerStatusOpen, time.Now().Add(time.Hour))
	seedBalance(t, f.balanceRepo, "alice", 100, 0)

	input := usecase.JoinWagerInput{WagerID: "wager-1", UserID: "alice", Side: domain.SideFor, Amount: 10}

	if _, err := f.uc.Join(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := f.uc.Join(context.Background(), input)

	if !errors.Is(err, domain.ErrDuplicateParticipation) {
		t.Fatalf("expected ErrDuplicateParticipation, got %v", err)
	}

	balance, _ := f.balanceRepo.GetByUserID(context.Background(), "alice")
	if balance.Escrow != 10 {
		t.Errorf("expected escrow unchanged at 10, got %d", balance.Escrow)
	}
}

func TestWagerUseCase_JoinBothSides(t *testing.T) {
	f := newWagerFixture(t)
	f.seedWager(t, "wager-1", domain.WagerStatusOpen, time.Now().Add(time.Hour))
	seedBalance(t, f.balanceRepo, "alice", 100, 0)

	if _, err := f.uc.Join(context.Background(), usecase.JoinWagerInput{
		WagerID: "wager-1", UserID: "alice", Side: domain.SideFor, Amount: 30,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wager, err := f.uc.Join(context.Background(), usecase.JoinWagerInput{
		WagerID: "wager-1", UserID: "alice", Side: domain.SideAgainst, Amount: 20,
	})
	if err != nil {
		t.Fatalf("expected joining the other side to be allowed, got %v", err)
	}

	if wager.TotalFor != 30 || wager.TotalAgainst != 20 {
		t.Errorf("expected pools 30/20, got %d/%d", wager.TotalFor, wager.TotalAgainst)
	}

	balance, _ := f.balanceRepo.GetByUserID(context.Background(), "alice")
	if balance.Current != 50 || balance.Escrow != 50 {
		t.Errorf("expected current 50 escrow 50, got %d %d", balance.Current, balance.Escrow)
	}
}

func TestWagerUseCase_JoinInsufficientFunds(t *testing.T) {
	f := newWagerFixture(t)
	f.seedWager(t, "wager-1", domain.WagerStatusOpen, time.Now().Add(time.Hour))
	seedBalance(t, f.balanceRepo, "alice", 50, 0)

	_, err := f.uc.Join(context.Background(), usecase.JoinWagerInput{
		WagerID: "wager-1", UserID: "alice", Side: domain.SideFor, Amount: 51,
	})

	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	participants, _ := f.participantRepo.ListByWager(context.Background(), "wager-1")
	if len(participants) != 0 {
		t.Errorf("expected no participants after failed join, got %d", len(participants))
	}
}

func TestWagerUseCase_JoinClosedWager(t *testing.T) {
	f := newWagerFixture(t)
	f.seedWager(t, "wager-1", domain.WagerStatusClosed, time.Now().Add(time.Hour))
	seedBalance(t, f.balanceRepo, "alice", 100, 0)

	_, err := f.uc.Join(context.Background(), usecase.JoinWagerInput{
		WagerID: "wager-1", UserID: "alice", Side: domain.SideFor, Amount: 10,
	})

	if !errors.Is(err, domain.ErrWagerClosed) {
		t.Fatalf("expected ErrWagerClosed, got %v", err)
	}
}

func TestWagerUseCase_JoinPastCloseTime(t *testing.T) {
	// Status is still open but the close time has passed; the join window
	// is enforced by timestamp, not only by the sweep.
	f := newWagerFixture(t)
	f.seedWager(t, "wager-1", domain.WagerStatusOpen, time.Now().Add(-time.Minute))
	seedBalance(t, f.balanceRepo, "alice", 100, 0)

	_, err := f.uc.Join(context.Background(), usecase.JoinWagerInput{
		WagerID: "wager-1", UserID: "alice", Side: domain.SideFor, Amount: 10,
	})

	if !errors.Is(err, domain.ErrWagerClosed) {
		t.Fatalf("expected ErrWagerClosed, got %v", err)
	}
}

func TestWagerUseCase_JoinInvalidSide(t *testing.T) {
	f := newWagerFixture(t)

	_, err := f.uc.Join(context.Background(), usecase.JoinWagerInput{
		WagerID: "wager-1", UserID: "alice", Side: "sideways", Amount: 10,
	})

	if !errors.Is(err, domain.ErrInvalidSide) {
		t.Fatalf("expected ErrInvalidSide, got %v", err)
	}
}

func TestWagerUseCase_Close(t *testing.T) {
	f := newWagerFixture(t)
	f.seedWager(t, "wager-1", domain.WagerStatusOpen, time.Now().Add(time.Hour))

	wager, err := f.uc.Close(context.Background(), "wager-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wager.Status != domain.WagerStatusClosed {
		t.Errorf("expected closed, got %s", wager.Status)
	}

	events := f.outboxRepo.Events()
	if len(events) != 1 || events[0].EventType != domain.EventTypeWagerClosed {
		t.Errorf("expected a wager.closed event, got %v", events)
	}
}

func TestWagerUseCase_CloseIsIdempotent(t *testing.T) {
	f := newWagerFixture(t)
	f.seedWager(t, "wager-1", domain.WagerStatusClosed, time.Now().Add(time.Hour))

	wager, err := f.uc.Close(context.Background(), "wager-1")
	if err != nil {
		t.Fatalf("expected closing a closed wager to be a no-op, got %v", err)
	}
	if wager.Status != domain.WagerStatusClosed {
		t.Errorf("expected closed, got %s", wager.Status)
	}
	if events := f.outboxRepo.Events(); len(events) != 0 {
		t.Errorf("expected no event for a no-op close, got %d", len(events))
	}
}

func TestWagerUseCase_CloseSettledWager(t *testing.T) {
	f := newWagerFixture(t)
	f.seedWager(t, "wager-1", domain.WagerStatusSettled, time.Now().Add(time.Hour))

	_, err := f.uc.Close(context.Background(), "wager-1")

	if !errors.Is(err, domain.ErrAlreadySettled) {
		t.Fatalf("expected ErrAlreadySettled, got %v", err)
	}
}

func TestWagerUseCase_SweepExpired(t *testing.T) {
	f := newWagerFixture(t)
	now := time.Now()
	f.seedWager(t, "wager-expired-1", domain.WagerStatusOpen, now.Add(-time.Hour))
	f.seedWager(t, "wager-expired-2", domain.WagerStatusOpen, now.Add(-time.Minute))
	f.seedWager(t, "wager-future", domain.WagerStatusOpen, now.Add(time.Hour))
	f.seedWager(t, "wager-closed", domain.WagerStatusClosed, now.Add(-time.Hour))

	closed, err := f.uc.SweepExpired(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if closed != 2 {
		t.Errorf("expected 2 wagers closed, got %d", closed)
	}

	future, _ := f.wagerRepo.GetByID(context.Background(), "wager-future")
	if future.Status != domain.WagerStatusOpen {
		t.Errorf("expected future wager to stay open, got %s", future.Status)
	}
}

func TestWagerUseCase_ListParticipantsUnknownWager(t *testing.T) {
	f := newWagerFixture(t)

	_, err := f.uc.ListParticipants(context.Background(), "missing")

	if !errors.Is(err, domain.ErrWagerNotFound) {
		t.Fatalf("expected ErrWagerNotFound, got %v", err)
	}
}
