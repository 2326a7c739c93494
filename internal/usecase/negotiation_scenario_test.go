package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"jardin_services/internal/adapter/persistence/memory"
	"jardin_services/internal/domain/entities"
	"jardin_services/internal/session"
	"jardin_services/internal/usecase/interfaces"
)

const longJustification = "Terrain en pente, il faut une débroussailleuse"

var (
	client    = session.Session{UserID: "client-1", Name: "Alice", Role: session.RoleClient}
	provider1 = session.Session{UserID: "provider-1", Name: "Paul", Role: session.RoleProvider}
	provider2 = session.Session{UserID: "provider-2", Name: "Nina", Role: session.RoleProvider}
)

// fakeGateway approves every checkout it opened once it is looked up.
type fakeGateway struct {
	mu        sync.Mutex
	checkouts map[string]interfaces.CheckoutRequest
	failOpen  bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{checkouts: map[string]interfaces.CheckoutRequest{}}
}

func (g *fakeGateway) CreateCheckout(_ context.Context, req interfaces.CheckoutRequest) (entities.Checkout, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failOpen {
		return entities.Checkout{}, errors.New("gateway down")
	}
	id := fmt.Sprintf("chk-%d", len(g.checkouts)+1)
	g.checkouts[id] = req
	return entities.Checkout{CheckoutID: id, RedirectURL: "https://pay.example/" + id}, nil
}

func (g *fakeGateway) GetPayment(_ context.Context, paymentID string) (entities.GatewayPayment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	req, ok := g.checkouts[paymentID]
	if !ok {
		return entities.GatewayPayment{ID: paymentID, Status: "rejected"}, nil
	}
	return entities.GatewayPayment{ID: paymentID, Status: "approved", ExternalReference: req.Reference, Amount: req.Amount}, nil
}

type marketplace struct {
	store       *memory.Store
	gateway     *fakeGateway
	requests    *RequestUseCase
	adjustments *PriceAdjustmentUseCase
	negotiation *NegotiationUseCase
	payments    *PaymentUseCase
}

func newMarketplace(t *testing.T, policy entities.SiblingPolicy) *marketplace {
	t.Helper()
	store := memory.NewStore()
	gateway := newFakeGateway()
	uploader := NewEvidenceUploader(store.Objects("http://localhost:8080/v1/objects"))

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	tick := 0
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	requests := NewRequestUseCase(store.Requests(), store.Payments(), uploader)
	requests.now = clock
	adjustments := NewPriceAdjustmentUseCase(store.Adjustments(), store.Requests(), uploader, nil)
	adjustments.now = clock
	payments := NewPaymentUseCase(store.Payments(), store.Requests(), store.Adjustments(), gateway, nil, PaymentSettings{
		Currency:      "EUR",
		PublicBaseURL: "http://localhost:8080",
	})
	payments.now = clock
	negotiation := NewNegotiationUseCase(store.Adjustments(), store.Requests(), payments, nil, policy)
	negotiation.now = clock

	return &marketplace{
		store:       store,
		gateway:     gateway,
		requests:    requests,
		adjustments: adjustments,
		negotiation: negotiation,
		payments:    payments,
	}
}

func (m *marketplace) postRequest(t *testing.T, price float64) entities.Request {
	t.Helper()
	r, err := m.requests.CreateRequest(context.Background(), client, CreateRequestInput{
		Title:         "Tonte de pelouse",
		Category:      "jardinage",
		Description:   "Pelouse de 200 m2 à tondre",
		Location:      entities.Location{Address: "12 rue des Lilas, Lyon"},
		Surface:       200,
		Urgency:       entities.UrgencyMedium,
		PriceOriginal: price,
	}, nil)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	return r
}

func (m *marketplace) propose(t *testing.T, s session.Session, requestID string, price float64) entities.PriceAdjustment {
	t.Helper()
	a, err := m.adjustments.Propose(context.Background(), s, ProposeAdjustmentInput{
		RequestID:     requestID,
		NewPrice:      price,
		Justification: longJustification,
	}, nil)
	if err != nil {
		t.Fatalf("propose %.2f by %s: %v", price, s.UserID, err)
	}
	return a
}

func (m *marketplace) request(t *testing.T, id string) entities.Request {
	t.Helper()
	r, err := m.store.Requests().GetByID(context.Background(), id)
	if err != nil || r.ID == "" {
		t.Fatalf("load request %s: %v", id, err)
	}
	return r
}

func TestNegotiation_WalkthroughFromProposalToPayment(t *testing.T) {
	ctx := context.Background()
	m := newMarketplace(t, entities.SiblingPolicyDelete)

	r1 := m.postRequest(t, 65)
	if r1.Status != entities.RequestStatusPending || r1.PriceFinal != 65 {
		t.Fatalf("unexpected new request %+v", r1)
	}

	a1 := m.propose(t, provider1, r1.ID, 85)
	a2 := m.propose(t, provider2, r1.ID, 90)

	pending, err := m.adjustments.ListPendingForClient(ctx, client)
	if err != nil || len(pending) != 2 {
		t.Fatalf("expected 2 pending adjustments, got %d err=%v", len(pending), err)
	}
	if pending[0].ID != a2.ID {
		t.Fatalf("expected newest first, got %s", pending[0].ID)
	}

	result, err := m.negotiation.Accept(ctx, client, a1.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if result.Request.Status != entities.RequestStatusAccepted || result.Request.PriceFinal != 85 || result.Request.ProviderID != provider1.UserID {
		t.Fatalf("unexpected request after accept %+v", result.Request)
	}
	if result.Request.PriceOriginal != 65 {
		t.Fatalf("original price must not change, got %.2f", result.Request.PriceOriginal)
	}
	if result.Adjustment.Status != entities.AdjustmentStatusAccepted || result.Adjustment.ResolvedAt == nil {
		t.Fatalf("unexpected adjustment after accept %+v", result.Adjustment)
	}
	if result.Payment.CheckoutID == "" || result.Payment.Amount != 85 || result.Payment.Status != entities.PaymentStatusPending {
		t.Fatalf("unexpected payment %+v", result.Payment)
	}

	gone, _ := m.store.Adjustments().GetByID(ctx, a2.ID)
	if gone.ID != "" {
		t.Fatalf("sibling %s should have been removed", a2.ID)
	}
	if _, err := m.negotiation.Accept(ctx, client, a2.ID); !errors.Is(err, ErrAdjustmentNotFound) {
		t.Fatalf("expected ErrAdjustmentNotFound for removed sibling, got %v", err)
	}

	// The winner can negotiate again while the request awaits payment.
	a3 := m.propose(t, provider1, r1.ID, 95)
	if a3.OriginalPrice != 65 || !a3.IsPending() {
		t.Fatalf("unexpected follow-up proposal %+v", a3)
	}

	second, err := m.negotiation.Accept(ctx, client, a3.ID)
	if err != nil {
		t.Fatalf("accept follow-up: %v", err)
	}
	paid, err := m.payments.ConfirmPayment(ctx, result.Payment.CheckoutID)
	if !errors.Is(err, ErrStaleProposal) || paid {
		t.Fatalf("payment of a superseded price must not finalize, paid=%v err=%v", paid, err)
	}
	if m.request(t, r1.ID).Status != entities.RequestStatusAccepted {
		t.Fatalf("request must stay accepted")
	}

	paid, err = m.payments.ConfirmPayment(ctx, second.Payment.CheckoutID)
	if err != nil || !paid {
		t.Fatalf("expected paid, got paid=%v err=%v", paid, err)
	}
	final := m.request(t, r1.ID)
	if final.Status != entities.RequestStatusInProgress || final.PriceFinal != 95 {
		t.Fatalf("unexpected request after payment %+v", final)
	}

	if _, err := m.adjustments.Propose(ctx, provider2, ProposeAdjustmentInput{RequestID: r1.ID, NewPrice: 50}, nil); !errors.Is(err, ErrRequestClosed) {
		t.Fatalf("expected ErrRequestClosed once in progress, got %v", err)
	}
	paid, err = m.payments.ConfirmPayment(ctx, second.Payment.CheckoutID)
	if err != nil || !paid {
		t.Fatalf("repeated confirmation should be harmless, paid=%v err=%v", paid, err)
	}
}

func TestNegotiation_ConcurrentAcceptsHaveSingleWinner(t *testing.T) {
	for _, policy := range []entities.SiblingPolicy{entities.SiblingPolicyDelete, entities.SiblingPolicyReject} {
		t.Run(string(policy), func(t *testing.T) {
			ctx := context.Background()
			m := newMarketplace(t, policy)
			r := m.postRequest(t, 65)
			a1 := m.propose(t, provider1, r.ID, 85)
			a2 := m.propose(t, provider2, r.ID, 90)

			var wg sync.WaitGroup
			errs := make([]error, 2)
			for i, id := range []string{a1.ID, a2.ID} {
				wg.Add(1)
				go func(i int, id string) {
					defer wg.Done()
					_, errs[i] = m.negotiation.Accept(ctx, client, id)
				}(i, id)
			}
			wg.Wait()

			wins := 0
			for _, err := range errs {
				switch {
				case err == nil:
					wins++
				case errors.Is(err, ErrStaleProposal), errors.Is(err, ErrAdjustmentNotFound):
				default:
					t.Fatalf("unexpected error %v", err)
				}
			}
			if wins != 1 {
				t.Fatalf("expected exactly one winner, got %d (%v)", wins, errs)
			}

			all, _ := m.store.Adjustments().ListByRequestID(ctx, r.ID)
			accepted := 0
			for _, a := range all {
				if a.Status == entities.AdjustmentStatusAccepted {
					accepted++
					if got := m.request(t, r.ID); got.PriceFinal != a.NewPrice || got.ProviderID != a.ProviderID {
						t.Fatalf("request does not carry winner price: %+v vs %+v", got, a)
					}
				}
				if a.IsPending() {
					t.Fatalf("no adjustment may stay pending, found %s", a.ID)
				}
			}
			if accepted != 1 {
				t.Fatalf("expected one accepted adjustment, got %d", accepted)
			}
		})
	}
}

func TestNegotiation_SupersededSiblingsAreKeptAsRejected(t *testing.T) {
	ctx := context.Background()
	m := newMarketplace(t, entities.SiblingPolicyReject)
	r := m.postRequest(t, 65)
	a1 := m.propose(t, provider1, r.ID, 85)
	a2 := m.propose(t, provider2, r.ID, 90)

	if _, err := m.negotiation.Accept(ctx, client, a1.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	sib, _ := m.store.Adjustments().GetByID(ctx, a2.ID)
	if sib.Status != entities.AdjustmentStatusRejected || sib.Reason != entities.SupersededReason {
		t.Fatalf("expected superseded sibling, got %+v", sib)
	}
	if _, err := m.negotiation.Accept(ctx, client, a2.ID); !errors.Is(err, ErrStaleProposal) {
		t.Fatalf("expected ErrStaleProposal, got %v", err)
	}
	// provider-2 lost its pending slot with the rejection and may propose again.
	m.propose(t, provider2, r.ID, 80)
}

func TestNegotiation_DuplicateProposalUntilResolved(t *testing.T) {
	ctx := context.Background()
	m := newMarketplace(t, entities.SiblingPolicyDelete)
	r := m.postRequest(t, 65)
	a1 := m.propose(t, provider1, r.ID, 85)

	_, err := m.adjustments.Propose(ctx, provider1, ProposeAdjustmentInput{RequestID: r.ID, NewPrice: 70, Justification: longJustification}, nil)
	if !errors.Is(err, ErrDuplicateProposal) {
		t.Fatalf("expected ErrDuplicateProposal, got %v", err)
	}
	// Another provider is not blocked.
	m.propose(t, provider2, r.ID, 90)

	if _, err := m.negotiation.Reject(ctx, client, a1.ID, "Trop cher pour moi"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	a3 := m.propose(t, provider1, r.ID, 75)
	if a3.ID == a1.ID {
		t.Fatalf("expected a new adjustment")
	}
}

func TestNegotiation_JustificationThreshold(t *testing.T) {
	ctx := context.Background()
	m := newMarketplace(t, entities.SiblingPolicyDelete)
	r := m.postRequest(t, 65)

	exactly20 := strings.Repeat("é", 20)
	only19 := "  " + strings.Repeat("x", 19) + "   "

	if _, err := m.adjustments.Propose(ctx, provider1, ProposeAdjustmentInput{RequestID: r.ID, NewPrice: 80, Justification: only19}, nil); !errors.Is(err, ErrJustificationTooShort) {
		t.Fatalf("expected ErrJustificationTooShort, got %v", err)
	}
	a, err := m.adjustments.Propose(ctx, provider1, ProposeAdjustmentInput{RequestID: r.ID, NewPrice: 80, Justification: exactly20}, nil)
	if err != nil {
		t.Fatalf("20 characters should pass: %v", err)
	}
	if a.Justification != exactly20 {
		t.Fatalf("unexpected justification %q", a.Justification)
	}

	// Lowering or keeping the price needs no justification.
	if _, err := m.adjustments.Propose(ctx, provider2, ProposeAdjustmentInput{RequestID: r.ID, NewPrice: 65}, nil); err != nil {
		t.Fatalf("same price without justification: %v", err)
	}
	if got := m.request(t, r.ID); got.PriceFinal != 65 || got.Status != entities.RequestStatusPending {
		t.Fatalf("proposals must not touch the request, got %+v", got)
	}
}

func TestNegotiation_SecondRejectionIsAlreadyResolved(t *testing.T) {
	ctx := context.Background()
	m := newMarketplace(t, entities.SiblingPolicyDelete)
	r := m.postRequest(t, 65)
	a := m.propose(t, provider1, r.ID, 85)

	rejected, err := m.negotiation.Reject(ctx, client, a.ID, "Hors budget cette année")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != entities.AdjustmentStatusRejected || rejected.Reason != "Hors budget cette année" {
		t.Fatalf("unexpected rejection %+v", rejected)
	}
	if _, err := m.negotiation.Reject(ctx, client, a.ID, "Hors budget cette année"); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
	got := m.request(t, r.ID)
	if got.Status != entities.RequestStatusPending || got.PriceFinal != 65 || got.ProviderID != "" {
		t.Fatalf("rejection must leave the request untouched, got %+v", got)
	}
}

func TestNegotiation_TerminalRequestsStayTerminal(t *testing.T) {
	ctx := context.Background()
	m := newMarketplace(t, entities.SiblingPolicyDelete)
	r := m.postRequest(t, 65)
	a := m.propose(t, provider1, r.ID, 85)

	if _, err := m.requests.UpdateStatus(ctx, client, r.ID, entities.RequestStatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := m.adjustments.Propose(ctx, provider2, ProposeAdjustmentInput{RequestID: r.ID, NewPrice: 60}, nil); !errors.Is(err, ErrRequestClosed) {
		t.Fatalf("expected ErrRequestClosed, got %v", err)
	}
	if _, err := m.negotiation.Accept(ctx, client, a.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if _, err := m.requests.UpdateStatus(ctx, client, r.ID, entities.RequestStatusCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancelled is terminal, got %v", err)
	}
	if got := m.request(t, r.ID); got.Status != entities.RequestStatusCancelled || got.PriceFinal != 65 {
		t.Fatalf("unexpected request %+v", got)
	}
}

func TestNegotiation_AcceptKeptWhenCheckoutFails(t *testing.T) {
	ctx := context.Background()
	m := newMarketplace(t, entities.SiblingPolicyDelete)
	m.gateway.failOpen = true
	r := m.postRequest(t, 65)
	a := m.propose(t, provider1, r.ID, 85)

	result, err := m.negotiation.Accept(ctx, client, a.ID)
	if !errors.Is(err, ErrPaymentGateway) {
		t.Fatalf("expected ErrPaymentGateway, got %v", err)
	}
	if result.Request.ID != r.ID || result.Request.PriceFinal != 85 || result.Payment.ID != "" {
		t.Fatalf("acceptance should be reported as committed, got %+v", result)
	}
	if got := m.request(t, r.ID); got.Status != entities.RequestStatusAccepted {
		t.Fatalf("acceptance must be kept, got %s", got.Status)
	}
	payments, _ := m.store.Payments().ListByRequestID(ctx, r.ID)
	if len(payments) != 0 {
		t.Fatalf("no payment should be stored, got %d", len(payments))
	}
}

func TestNegotiation_LaterAcceptanceSupersedesEarlierOne(t *testing.T) {
	ctx := context.Background()
	m := newMarketplace(t, entities.SiblingPolicyReject)
	r := m.postRequest(t, 65)
	a1 := m.propose(t, provider1, r.ID, 85)

	first, err := m.negotiation.Accept(ctx, client, a1.ID)
	if err != nil {
		t.Fatalf("accept first: %v", err)
	}
	a2 := m.propose(t, provider2, r.ID, 90)
	if _, err := m.negotiation.Accept(ctx, client, a2.ID); err != nil {
		t.Fatalf("accept second: %v", err)
	}

	all, _ := m.store.Adjustments().ListByRequestID(ctx, r.ID)
	accepted := 0
	for _, a := range all {
		switch {
		case a.Status == entities.AdjustmentStatusAccepted:
			accepted++
			if a.ID != a2.ID {
				t.Fatalf("only the latest acceptance may stay accepted, found %s", a.ID)
			}
		case a.ID == a1.ID:
			if a.Status != entities.AdjustmentStatusRejected || a.Reason != entities.SupersededReason {
				t.Fatalf("earlier winner should be superseded, got %+v", a)
			}
		}
	}
	if accepted != 1 {
		t.Fatalf("expected one accepted adjustment, got %d", accepted)
	}
	got := m.request(t, r.ID)
	if got.PriceFinal != 90 || got.ProviderID != provider2.UserID || got.AcceptedAdjustmentID != a2.ID {
		t.Fatalf("request must carry the latest winner, got %+v", got)
	}

	if paid, err := m.payments.ConfirmPayment(ctx, first.Payment.CheckoutID); !errors.Is(err, ErrStaleProposal) || paid {
		t.Fatalf("superseded checkout must not finalize, paid=%v err=%v", paid, err)
	}
}

func TestNegotiation_ProviderStartsOnlyOncePaid(t *testing.T) {
	ctx := context.Background()
	m := newMarketplace(t, entities.SiblingPolicyDelete)

	t.Run("negotiated price waits for the checkout", func(t *testing.T) {
		r := m.postRequest(t, 65)
		a := m.propose(t, provider1, r.ID, 85)
		result, err := m.negotiation.Accept(ctx, client, a.ID)
		if err != nil {
			t.Fatalf("accept: %v", err)
		}

		if _, err := m.requests.UpdateStatus(ctx, provider1, r.ID, entities.RequestStatusInProgress); !errors.Is(err, ErrPaymentPending) {
			t.Fatalf("expected ErrPaymentPending, got %v", err)
		}
		if got := m.request(t, r.ID); got.Status != entities.RequestStatusAccepted {
			t.Fatalf("request must stay accepted, got %s", got.Status)
		}

		if paid, err := m.payments.ConfirmPayment(ctx, result.Payment.CheckoutID); err != nil || !paid {
			t.Fatalf("confirm: paid=%v err=%v", paid, err)
		}
		if _, err := m.requests.UpdateStatus(ctx, provider1, r.ID, entities.RequestStatusCompleted); err != nil {
			t.Fatalf("complete after payment: %v", err)
		}
	})

	t.Run("free adjustment needs no checkout", func(t *testing.T) {
		r := m.postRequest(t, 65)
		a, err := m.adjustments.Propose(ctx, provider2, ProposeAdjustmentInput{RequestID: r.ID, NewPrice: 0}, nil)
		if err != nil {
			t.Fatalf("propose: %v", err)
		}
		if _, err := m.negotiation.Accept(ctx, client, a.ID); err != nil {
			t.Fatalf("accept: %v", err)
		}
		if _, err := m.requests.UpdateStatus(ctx, provider2, r.ID, entities.RequestStatusInProgress); err != nil {
			t.Fatalf("start: %v", err)
		}
	})

	t.Run("original price has no checkout", func(t *testing.T) {
		r := m.postRequest(t, 65)
		if _, err := m.requests.AcceptAsIs(ctx, provider1, r.ID); err != nil {
			t.Fatalf("accept as is: %v", err)
		}
		if _, err := m.requests.UpdateStatus(ctx, provider1, r.ID, entities.RequestStatusInProgress); err != nil {
			t.Fatalf("start: %v", err)
		}
	})
}

func TestNegotiation_ProposalAfterSiblingReadIsResolved(t *testing.T) {
	for _, policy := range []entities.SiblingPolicy{entities.SiblingPolicyDelete, entities.SiblingPolicyReject} {
		t.Run(string(policy), func(t *testing.T) {
			ctx := context.Background()
			m := newMarketplace(t, policy)
			r := m.postRequest(t, 65)
			a1 := m.propose(t, provider1, r.ID, 85)

			seen, _ := m.store.Adjustments().ListByRequestID(ctx, r.ID)
			late := m.propose(t, provider2, r.ID, 90)

			err := m.store.Adjustments().Accept(ctx, interfaces.AdjustmentAcceptance{
				Adjustment: a1,
				Siblings:   seen[1:],
				Policy:     policy,
				ResolvedAt: time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC),
			})
			if err != nil {
				t.Fatalf("accept: %v", err)
			}

			got, _ := m.store.Adjustments().GetByID(ctx, late.ID)
			if got.IsPending() {
				t.Fatalf("adjustment %s stayed pending next to the winner", late.ID)
			}
			pending, _ := m.adjustments.ListPendingForClient(ctx, client)
			if len(pending) != 0 {
				t.Fatalf("no pending adjustment expected, got %d", len(pending))
			}
		})
	}
}
