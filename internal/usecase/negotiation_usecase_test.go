package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"jardin_services/internal/domain/entities"
	"jardin_services/internal/session"
	"jardin_services/internal/usecase/interfaces"
	mock_interfaces "jardin_services/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type stubPayments struct {
	calls   int
	payment entities.Payment
	err     error
}

func (s *stubPayments) RequestPayment(_ context.Context, requestID, adjustmentID string, amount float64) (entities.Payment, error) {
	s.calls++
	if s.err != nil {
		return entities.Payment{}, s.err
	}
	p := s.payment
	p.RequestID, p.AdjustmentID, p.Amount = requestID, adjustmentID, amount
	return p, nil
}

func (s *stubPayments) ConfirmPayment(context.Context, string) (bool, error) { return false, nil }

func (s *stubPayments) GetLatestByRequest(context.Context, session.Session, string) (entities.Payment, error) {
	return entities.Payment{}, nil
}

func pendingAdjustment(id, providerID string, price float64) entities.PriceAdjustment {
	return entities.PriceAdjustment{
		ID:            id,
		RequestID:     "req-1",
		ClientID:      "client-1",
		ProviderID:    providerID,
		OriginalPrice: 65,
		NewPrice:      price,
		Status:        entities.AdjustmentStatusPending,
	}
}

func TestNegotiationUseCase_Accept_Guards(t *testing.T) {
	tests := []struct {
		name    string
		session session.Session
		setup   func(repo *mock_interfaces.MockIPriceAdjustmentRepository, reqRepo *mock_interfaces.MockIRequestRepository)
		wantErr error
	}{
		{
			name:    "provider cannot accept",
			session: provider1,
			wantErr: ErrForbidden,
		},
		{
			name:    "adjustment not found",
			session: client,
			setup: func(repo *mock_interfaces.MockIPriceAdjustmentRepository, _ *mock_interfaces.MockIRequestRepository) {
				repo.EXPECT().GetByID(gomock.Any(), "adj-1").Return(entities.PriceAdjustment{}, nil)
			},
			wantErr: ErrAdjustmentNotFound,
		},
		{
			name:    "not the request owner",
			session: session.Session{UserID: "client-2", Role: session.RoleClient},
			setup: func(repo *mock_interfaces.MockIPriceAdjustmentRepository, reqRepo *mock_interfaces.MockIRequestRepository) {
				repo.EXPECT().GetByID(gomock.Any(), "adj-1").Return(pendingAdjustment("adj-1", "provider-1", 85), nil)
				reqRepo.EXPECT().GetByID(gomock.Any(), "req-1").Return(pendingRequest(), nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name:    "adjustment already rejected",
			session: client,
			setup: func(repo *mock_interfaces.MockIPriceAdjustmentRepository, reqRepo *mock_interfaces.MockIRequestRepository) {
				a := pendingAdjustment("adj-1", "provider-1", 85)
				a.Status = entities.AdjustmentStatusRejected
				repo.EXPECT().GetByID(gomock.Any(), "adj-1").Return(a, nil)
				reqRepo.EXPECT().GetByID(gomock.Any(), "req-1").Return(pendingRequest(), nil)
			},
			wantErr: ErrStaleProposal,
		},
		{
			name:    "request already completed",
			session: client,
			setup: func(repo *mock_interfaces.MockIPriceAdjustmentRepository, reqRepo *mock_interfaces.MockIRequestRepository) {
				r := pendingRequest()
				r.Status = entities.RequestStatusCompleted
				repo.EXPECT().GetByID(gomock.Any(), "adj-1").Return(pendingAdjustment("adj-1", "provider-1", 85), nil)
				reqRepo.EXPECT().GetByID(gomock.Any(), "req-1").Return(r, nil)
			},
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "concurrent acceptance wins",
			session: client,
			setup: func(repo *mock_interfaces.MockIPriceAdjustmentRepository, reqRepo *mock_interfaces.MockIRequestRepository) {
				repo.EXPECT().GetByID(gomock.Any(), "adj-1").Return(pendingAdjustment("adj-1", "provider-1", 85), nil)
				reqRepo.EXPECT().GetByID(gomock.Any(), "req-1").Return(pendingRequest(), nil)
				repo.EXPECT().ListByRequestID(gomock.Any(), "req-1").Return([]entities.PriceAdjustment{pendingAdjustment("adj-1", "provider-1", 85)}, nil)
				repo.EXPECT().Accept(gomock.Any(), gomock.Any()).Return(interfaces.ErrConditionFailed)
			},
			wantErr: ErrStaleProposal,
		},
		{
			name:    "too many siblings",
			session: client,
			setup: func(repo *mock_interfaces.MockIPriceAdjustmentRepository, reqRepo *mock_interfaces.MockIRequestRepository) {
				repo.EXPECT().GetByID(gomock.Any(), "adj-1").Return(pendingAdjustment("adj-1", "provider-1", 85), nil)
				reqRepo.EXPECT().GetByID(gomock.Any(), "req-1").Return(pendingRequest(), nil)
				repo.EXPECT().ListByRequestID(gomock.Any(), "req-1").Return(nil, nil)
				repo.EXPECT().Accept(gomock.Any(), gomock.Any()).Return(interfaces.ErrTooManyAdjustments)
			},
			wantErr: interfaces.ErrTooManyAdjustments,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := mock_interfaces.NewMockIPriceAdjustmentRepository(ctrl)
			reqRepo := mock_interfaces.NewMockIRequestRepository(ctrl)
			if tt.setup != nil {
				tt.setup(repo, reqRepo)
			}
			payments := &stubPayments{}
			uc := NewNegotiationUseCase(repo, reqRepo, payments, nil, "")

			_, err := uc.Accept(context.Background(), tt.session, "adj-1")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if payments.calls != 0 {
				t.Fatalf("no checkout may be opened on failure")
			}
		})
	}
}

func TestNegotiationUseCase_Accept_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIPriceAdjustmentRepository(ctrl)
	reqRepo := mock_interfaces.NewMockIRequestRepository(ctrl)
	notifier := mock_interfaces.NewMockINotifier(ctrl)
	payments := &stubPayments{payment: entities.Payment{ID: "pay-1", CheckoutID: "chk-1", RedirectURL: "https://pay/chk-1"}}

	resolvedAt := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	uc := NewNegotiationUseCase(repo, reqRepo, payments, notifier, entities.SiblingPolicyReject)
	uc.now = func() time.Time { return resolvedAt }

	target := pendingAdjustment("adj-1", "provider-1", 85)
	sibling := pendingAdjustment("adj-2", "provider-2", 90)
	accepted := pendingRequest()
	accepted.Status = entities.RequestStatusAccepted
	accepted.ProviderID = "provider-1"
	accepted.PriceFinal = 85

	repo.EXPECT().GetByID(gomock.Any(), "adj-1").Return(target, nil)
	gomock.InOrder(
		reqRepo.EXPECT().GetByID(gomock.Any(), "req-1").Return(pendingRequest(), nil),
		reqRepo.EXPECT().GetByID(gomock.Any(), "req-1").Return(accepted, nil),
	)
	repo.EXPECT().ListByRequestID(gomock.Any(), "req-1").Return([]entities.PriceAdjustment{sibling, target}, nil)
	repo.EXPECT().Accept(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in interfaces.AdjustmentAcceptance) error {
		if in.Adjustment.ID != "adj-1" || in.Policy != entities.SiblingPolicyReject || !in.ResolvedAt.Equal(resolvedAt) {
			t.Fatalf("unexpected acceptance %+v", in)
		}
		if len(in.Siblings) != 1 || in.Siblings[0].ID != "adj-2" {
			t.Fatalf("siblings must exclude the winner, got %+v", in.Siblings)
		}
		return nil
	})
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n entities.Notification) error {
		if n.Type != entities.NotificationAdjustmentAccepted || n.RecipientID != "provider-1" {
			t.Fatalf("unexpected notification %+v", n)
		}
		return nil
	})

	result, err := uc.Accept(context.Background(), client, " adj-1 ")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if result.Request.PriceFinal != 85 || result.Adjustment.Status != entities.AdjustmentStatusAccepted {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Adjustment.ResolvedAt == nil || !result.Adjustment.ResolvedAt.Equal(resolvedAt) {
		t.Fatalf("resolved_at not set")
	}
	if payments.calls != 1 || result.Payment.CheckoutID != "chk-1" || result.Payment.Amount != 85 || result.Payment.AdjustmentID != "adj-1" {
		t.Fatalf("unexpected payment %+v (calls=%d)", result.Payment, payments.calls)
	}
}

func TestNegotiationUseCase_Accept_FreeAdjustmentSkipsCheckout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIPriceAdjustmentRepository(ctrl)
	reqRepo := mock_interfaces.NewMockIRequestRepository(ctrl)
	payments := &stubPayments{}
	uc := NewNegotiationUseCase(repo, reqRepo, payments, nil, "")

	repo.EXPECT().GetByID(gomock.Any(), "adj-1").Return(pendingAdjustment("adj-1", "provider-1", 0), nil)
	reqRepo.EXPECT().GetByID(gomock.Any(), "req-1").Return(pendingRequest(), nil).Times(2)
	repo.EXPECT().ListByRequestID(gomock.Any(), "req-1").Return(nil, nil)
	repo.EXPECT().Accept(gomock.Any(), gomock.Any()).Return(nil)

	if _, err := uc.Accept(context.Background(), client, "adj-1"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if payments.calls != 0 {
		t.Fatalf("a zero price needs no checkout")
	}
}

func TestNegotiationUseCase_Reject(t *testing.T) {
	tests := []struct {
		name    string
		session session.Session
		reason  string
		setup   func(repo *mock_interfaces.MockIPriceAdjustmentRepository)
		wantErr error
	}{
		{
			name:    "provider cannot reject",
			session: provider1,
			reason:  "Trop cher pour moi",
			wantErr: ErrForbidden,
		},
		{
			name:    "reason too short",
			session: client,
			reason:  "  non  ",
			wantErr: ErrValidation,
		},
		{
			name:    "not the owner",
			session: session.Session{UserID: "client-2", Role: session.RoleClient},
			reason:  "Trop cher pour moi",
			setup: func(repo *mock_interfaces.MockIPriceAdjustmentRepository) {
				repo.EXPECT().GetByID(gomock.Any(), "adj-1").Return(pendingAdjustment("adj-1", "provider-1", 85), nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name:    "already accepted",
			session: client,
			reason:  "Trop cher pour moi",
			setup: func(repo *mock_interfaces.MockIPriceAdjustmentRepository) {
				a := pendingAdjustment("adj-1", "provider-1", 85)
				a.Status = entities.AdjustmentStatusAccepted
				repo.EXPECT().GetByID(gomock.Any(), "adj-1").Return(a, nil)
			},
			wantErr: ErrAlreadyResolved,
		},
		{
			name:    "resolved concurrently",
			session: client,
			reason:  "Trop cher pour moi",
			setup: func(repo *mock_interfaces.MockIPriceAdjustmentRepository) {
				repo.EXPECT().GetByID(gomock.Any(), "adj-1").Return(pendingAdjustment("adj-1", "provider-1", 85), nil)
				repo.EXPECT().Reject(gomock.Any(), gomock.Any(), "Trop cher pour moi", gomock.Any()).Return(interfaces.ErrConditionFailed)
			},
			wantErr: ErrAlreadyResolved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo := mock_interfaces.NewMockIPriceAdjustmentRepository(ctrl)
			if tt.setup != nil {
				tt.setup(repo)
			}
			uc := NewNegotiationUseCase(repo, nil, nil, nil, "")

			_, err := uc.Reject(context.Background(), tt.session, "adj-1", tt.reason)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("success notifies the provider", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPriceAdjustmentRepository(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		uc := NewNegotiationUseCase(repo, nil, nil, notifier, "")

		repo.EXPECT().GetByID(gomock.Any(), "adj-1").Return(pendingAdjustment("adj-1", "provider-1", 85), nil)
		repo.EXPECT().Reject(gomock.Any(), gomock.Any(), "Trop cher pour moi", gomock.Any()).Return(nil)
		notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n entities.Notification) error {
			if n.Type != entities.NotificationAdjustmentRejected || n.RecipientID != "provider-1" {
				t.Fatalf("unexpected notification %+v", n)
			}
			return nil
		})

		a, err := uc.Reject(context.Background(), client, "adj-1", " Trop cher pour moi ")
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if a.Status != entities.AdjustmentStatusRejected || a.Reason != "Trop cher pour moi" || a.ResolvedAt == nil {
			t.Fatalf("unexpected adjustment %+v", a)
		}
	})
}
