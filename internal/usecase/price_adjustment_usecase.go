package usecase

import (
	"context"
	"errors"
	"fmt"
	"jardin_services/internal/domain/entities"
	"jardin_services/internal/session"
	"jardin_services/internal/usecase/interfaces"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const adjustmentEvidenceFolder = "adjustments"

var (
	ErrAdjustmentNotFound  = errors.New("adjustment not found")
	ErrInvalidAdjustmentID = errors.New("invalid adjustment id")
	ErrRequestClosed       = errors.New("request closed for negotiation")
)

// ProposeAdjustmentInput is a provider's price-change proposal. ClientID is
// optional; when set it must match the request owner.
type ProposeAdjustmentInput struct {
	RequestID     string
	ClientID      string
	NewPrice      float64
	Justification string
}

// IPriceAdjustmentUseCase is the adjustment proposal manager.
//
// Propose enforces, in order:
//   - the request is still open for negotiation
//   - no pending proposal from the same provider on the same request
//   - a price increase carries a justification of at least 20 characters
type IPriceAdjustmentUseCase interface {
	Propose(ctx context.Context, s session.Session, in ProposeAdjustmentInput, evidence []entities.EvidenceFile) (entities.PriceAdjustment, error)
	GetByID(ctx context.Context, s session.Session, adjustmentID string) (entities.PriceAdjustment, error)
	ListByRequest(ctx context.Context, s session.Session, requestID string) ([]entities.PriceAdjustment, error)
	ListPendingForClient(ctx context.Context, s session.Session) ([]entities.PriceAdjustment, error)
}

type PriceAdjustmentUseCase struct {
	repo        interfaces.IPriceAdjustmentRepository
	requestRepo interfaces.IRequestRepository
	uploader    *EvidenceUploader
	notifier    interfaces.INotifier
	now         func() time.Time
	newID       func() string
}

var _ IPriceAdjustmentUseCase = (*PriceAdjustmentUseCase)(nil)

func NewPriceAdjustmentUseCase(repo interfaces.IPriceAdjustmentRepository, requestRepo interfaces.IRequestRepository, uploader *EvidenceUploader, notifier interfaces.INotifier) *PriceAdjustmentUseCase {
	return &PriceAdjustmentUseCase{
		repo:        repo,
		requestRepo: requestRepo,
		uploader:    uploader,
		notifier:    notifier,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

// Propose stores a pending adjustment with its evidence already resolved.
// The parent request is left untouched.
func (u *PriceAdjustmentUseCase) Propose(ctx context.Context, s session.Session, in ProposeAdjustmentInput, evidence []entities.EvidenceFile) (entities.PriceAdjustment, error) {
	if err := requireRole(s, session.RoleProvider); err != nil {
		return entities.PriceAdjustment{}, err
	}
	if math.IsNaN(in.NewPrice) || math.IsInf(in.NewPrice, 0) || in.NewPrice < 0 {
		return entities.PriceAdjustment{}, fmt.Errorf("%w: new price must be a non-negative amount", ErrValidation)
	}
	log.Printf("[adjustment][usecase] propose start request_id=%q provider_id=%s new_price=%.2f evidence=%d", in.RequestID, s.UserID, in.NewPrice, len(evidence))

	r, err := loadRequest(ctx, u.requestRepo, in.RequestID)
	if err != nil {
		return entities.PriceAdjustment{}, err
	}
	if clientID := strings.TrimSpace(in.ClientID); clientID != "" && clientID != r.ClientID {
		return entities.PriceAdjustment{}, fmt.Errorf("%w: client does not own request %s", ErrValidation, r.ID)
	}
	if !r.Status.IsOpenForNegotiation() {
		log.Printf("[adjustment][usecase] request closed request_id=%s status=%s", r.ID, r.Status)
		return entities.PriceAdjustment{}, fmt.Errorf("%w: request %s is %s", ErrRequestClosed, r.ID, r.Status)
	}

	existing, err := u.repo.FindPending(ctx, r.ID, s.UserID)
	if err != nil {
		return entities.PriceAdjustment{}, err
	}
	if existing.ID != "" {
		log.Printf("[adjustment][usecase] duplicate proposal request_id=%s provider_id=%s pending_id=%s", r.ID, s.UserID, existing.ID)
		return entities.PriceAdjustment{}, ErrDuplicateProposal
	}

	if in.NewPrice > r.PriceOriginal && entities.TrimmedLength(in.Justification) < entities.MinJustificationLength {
		return entities.PriceAdjustment{}, fmt.Errorf("%w: at least %d characters required", ErrJustificationTooShort, entities.MinJustificationLength)
	}

	id := u.newID()
	photos, videos, err := u.uploader.UploadIndexed(ctx, adjustmentEvidenceFolder, id, evidence)
	if err != nil {
		log.Printf("[adjustment][usecase] evidence upload failed adjustment_id=%s err=%v", id, err)
		return entities.PriceAdjustment{}, err
	}

	a := entities.PriceAdjustment{
		ID:            id,
		RequestID:     r.ID,
		ClientID:      r.ClientID,
		ProviderID:    s.UserID,
		ProviderName:  s.Name,
		OriginalPrice: r.PriceOriginal,
		NewPrice:      in.NewPrice,
		Justification: strings.TrimSpace(in.Justification),
		Photos:        photos,
		Videos:        videos,
		Status:        entities.AdjustmentStatusPending,
		CreatedAt:     u.now(),
	}
	created, err := u.repo.Create(ctx, a)
	if errors.Is(err, interfaces.ErrPendingAdjustmentExists) {
		log.Printf("[adjustment][usecase] duplicate proposal lost race request_id=%s provider_id=%s", r.ID, s.UserID)
		return entities.PriceAdjustment{}, ErrDuplicateProposal
	}
	if errors.Is(err, interfaces.ErrConditionFailed) {
		log.Printf("[adjustment][usecase] request closed before write request_id=%s", r.ID)
		return entities.PriceAdjustment{}, fmt.Errorf("%w: request %s changed", ErrRequestClosed, r.ID)
	}
	if err != nil {
		log.Printf("[adjustment][usecase] create failed adjustment_id=%s err=%v", id, err)
		return entities.PriceAdjustment{}, err
	}
	log.Printf("[adjustment][usecase] propose success adjustment_id=%s request_id=%s provider_id=%s", created.ID, created.RequestID, created.ProviderID)

	notify(ctx, u.notifier, entities.Notification{
		Type:         entities.NotificationAdjustmentProposed,
		RecipientID:  r.ClientID,
		RequestID:    r.ID,
		AdjustmentID: created.ID,
		Message:      fmt.Sprintf("Nouvelle proposition de prix : %.2f", created.NewPrice),
	})
	return created, nil
}

func (u *PriceAdjustmentUseCase) GetByID(ctx context.Context, s session.Session, adjustmentID string) (entities.PriceAdjustment, error) {
	if !s.Valid() {
		return entities.PriceAdjustment{}, ErrUnauthenticated
	}
	a, err := loadAdjustment(ctx, u.repo, adjustmentID)
	if err != nil {
		return entities.PriceAdjustment{}, err
	}
	if !s.IsAdmin() && a.ClientID != s.UserID && a.ProviderID != s.UserID {
		return entities.PriceAdjustment{}, ErrForbidden
	}
	return a, nil
}

// ListByRequest returns the adjustments of a request, newest first. Providers
// only see their own proposals.
func (u *PriceAdjustmentUseCase) ListByRequest(ctx context.Context, s session.Session, requestID string) ([]entities.PriceAdjustment, error) {
	if !s.Valid() {
		return nil, ErrUnauthenticated
	}
	r, err := loadRequest(ctx, u.requestRepo, requestID)
	if err != nil {
		return nil, err
	}
	if s.IsClient() && r.ClientID != s.UserID {
		return nil, ErrForbidden
	}

	items, err := u.repo.ListByRequestID(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	if !s.IsProvider() {
		return items, nil
	}
	own := make([]entities.PriceAdjustment, 0, len(items))
	for _, a := range items {
		if a.ProviderID == s.UserID {
			own = append(own, a)
		}
	}
	return own, nil
}

// ListPendingForClient collects every adjustment awaiting the caller's
// decision across all of their requests.
func (u *PriceAdjustmentUseCase) ListPendingForClient(ctx context.Context, s session.Session) ([]entities.PriceAdjustment, error) {
	if err := requireRole(s, session.RoleClient); err != nil {
		return nil, err
	}
	return u.repo.ListPendingByClientID(ctx, s.UserID)
}

func loadAdjustment(ctx context.Context, repo interfaces.IPriceAdjustmentRepository, adjustmentID string) (entities.PriceAdjustment, error) {
	adjustmentID = strings.TrimSpace(adjustmentID)
	if adjustmentID == "" {
		return entities.PriceAdjustment{}, ErrInvalidAdjustmentID
	}
	a, err := repo.GetByID(ctx, adjustmentID)
	if err != nil {
		return entities.PriceAdjustment{}, err
	}
	if a.ID == "" {
		return entities.PriceAdjustment{}, ErrAdjustmentNotFound
	}
	return a, nil
}
