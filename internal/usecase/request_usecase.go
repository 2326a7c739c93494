package usecase

import (
	"context"
	"errors"
	"fmt"
	"jardin_services/internal/domain/entities"
	"jardin_services/internal/session"
	"jardin_services/internal/usecase/interfaces"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const requestEvidenceFolder = "requests"

var (
	ErrRequestNotFound  = errors.New("request not found")
	ErrInvalidRequestID = errors.New("invalid request id")
)

// CreateRequestInput is the client payload of a new request. Server-assigned
// fields (id, status, provider, final price, creation time) are not part of it.
type CreateRequestInput struct {
	Title         string `validate:"required"`
	Category      string `validate:"required"`
	Description   string `validate:"required"`
	Location      entities.Location
	Surface       float64          `validate:"gte=0"`
	Urgency       entities.Urgency `validate:"required,oneof=low medium high"`
	IsExpress     bool
	EcoOptions    entities.EcoOptions
	PriceOriginal float64 `validate:"gt=0"`
}

// IRequestUseCase is the request entity manager: creation, lifecycle and
// rating of service requests.
type IRequestUseCase interface {
	CreateRequest(ctx context.Context, s session.Session, in CreateRequestInput, evidence []entities.EvidenceFile) (entities.Request, error)
	UpdateStatus(ctx context.Context, s session.Session, requestID string, status entities.RequestStatus) (entities.Request, error)
	AcceptAsIs(ctx context.Context, s session.Session, requestID string) (entities.Request, error)
	Rate(ctx context.Context, s session.Session, requestID string, rating int) (entities.Request, error)
	GetByID(ctx context.Context, s session.Session, requestID string) (entities.Request, error)
	ListByClient(ctx context.Context, s session.Session) ([]entities.Request, error)
	ListOpen(ctx context.Context, s session.Session) ([]entities.Request, error)
}

type RequestUseCase struct {
	repo     interfaces.IRequestRepository
	payments interfaces.IPaymentRepository
	uploader *EvidenceUploader
	validate *validator.Validate
	now      func() time.Time
}

var _ IRequestUseCase = (*RequestUseCase)(nil)

func NewRequestUseCase(repo interfaces.IRequestRepository, payments interfaces.IPaymentRepository, uploader *EvidenceUploader) *RequestUseCase {
	return &RequestUseCase{
		repo:     repo,
		payments: payments,
		uploader: uploader,
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateRequest uploads the evidence first and only then writes the request,
// so a failed upload never leaves a request pointing at missing files.
func (u *RequestUseCase) CreateRequest(ctx context.Context, s session.Session, in CreateRequestInput, evidence []entities.EvidenceFile) (entities.Request, error) {
	if err := requireRole(s, session.RoleClient); err != nil {
		return entities.Request{}, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)
	in.Location.Address = strings.TrimSpace(in.Location.Address)
	if err := u.validate.Struct(in); err != nil {
		log.Printf("[request][usecase] invalid payload client_id=%s err=%v", s.UserID, err)
		return entities.Request{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	log.Printf("[request][usecase] create start client_id=%s evidence=%d", s.UserID, len(evidence))
	urls, err := u.uploader.Upload(ctx, requestEvidenceFolder, s.UserID, evidence)
	if err != nil {
		log.Printf("[request][usecase] evidence upload failed client_id=%s err=%v", s.UserID, err)
		return entities.Request{}, err
	}

	now := u.now()
	r := entities.Request{
		ID:            uuid.NewString(),
		ClientID:      s.UserID,
		Title:         in.Title,
		Category:      in.Category,
		Description:   in.Description,
		Location:      in.Location,
		Surface:       in.Surface,
		Urgency:       in.Urgency,
		IsExpress:     in.IsExpress,
		EcoOptions:    in.EcoOptions,
		Evidence:      urls,
		PriceOriginal: in.PriceOriginal,
		PriceFinal:    in.PriceOriginal,
		Status:        entities.RequestStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	created, err := u.repo.Create(ctx, r)
	if err != nil {
		log.Printf("[request][usecase] create failed client_id=%s err=%v", s.UserID, err)
		return entities.Request{}, err
	}
	log.Printf("[request][usecase] create success request_id=%s client_id=%s price=%.2f", created.ID, created.ClientID, created.PriceOriginal)
	return created, nil
}

// UpdateStatus pushes a request along its lifecycle.
//
// Clients may cancel their own requests. The assigned provider may start and
// complete the mission, but a request accepted at a negotiated price only
// starts once its checkout is approved. Admins may apply any legal transition.
func (u *RequestUseCase) UpdateStatus(ctx context.Context, s session.Session, requestID string, status entities.RequestStatus) (entities.Request, error) {
	if !s.Valid() {
		return entities.Request{}, ErrUnauthenticated
	}
	r, err := u.load(ctx, requestID)
	if err != nil {
		return entities.Request{}, err
	}

	switch {
	case s.IsAdmin():
	case s.IsClient() && r.ClientID == s.UserID && status == entities.RequestStatusCancelled:
	case s.IsProvider() && r.HasProvider(s.UserID) && (status == entities.RequestStatusInProgress || status == entities.RequestStatusCompleted):
	default:
		log.Printf("[request][usecase] status change forbidden request_id=%s user_id=%s role=%s to=%s", r.ID, s.UserID, s.Role, status)
		return entities.Request{}, ErrForbidden
	}

	if s.IsProvider() && r.Status == entities.RequestStatusAccepted && status == entities.RequestStatusInProgress {
		unpaid, err := u.awaitsPayment(ctx, r)
		if err != nil {
			return entities.Request{}, err
		}
		if unpaid {
			log.Printf("[request][usecase] start refused, checkout not approved request_id=%s adjustment_id=%s", r.ID, r.AcceptedAdjustmentID)
			return entities.Request{}, fmt.Errorf("%w: request %s awaits payment", ErrPaymentPending, r.ID)
		}
	}

	return advanceRequestStatus(ctx, u.repo, r, status)
}

// awaitsPayment reports whether r was accepted through a priced adjustment
// whose checkout has not been approved yet.
func (u *RequestUseCase) awaitsPayment(ctx context.Context, r entities.Request) (bool, error) {
	if r.AcceptedAdjustmentID == "" || r.PriceFinal <= 0 {
		return false, nil
	}
	payments, err := u.payments.ListByRequestID(ctx, r.ID)
	if err != nil {
		return false, err
	}
	for _, p := range payments {
		if p.AdjustmentID == r.AcceptedAdjustmentID && p.Status == entities.PaymentStatusApproved {
			return false, nil
		}
	}
	return true, nil
}

// AcceptAsIs lets a provider take a pending request at its original price.
func (u *RequestUseCase) AcceptAsIs(ctx context.Context, s session.Session, requestID string) (entities.Request, error) {
	if err := requireRole(s, session.RoleProvider); err != nil {
		return entities.Request{}, err
	}
	r, err := u.load(ctx, requestID)
	if err != nil {
		return entities.Request{}, err
	}
	if !r.Status.CanTransitionTo(entities.RequestStatusAccepted) {
		return entities.Request{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, entities.RequestStatusAccepted)
	}

	updated, err := u.repo.AssignProvider(ctx, r.ID, s.UserID, s.Name)
	if errors.Is(err, interfaces.ErrConditionFailed) {
		return entities.Request{}, fmt.Errorf("%w: request %s is no longer pending", ErrInvalidTransition, r.ID)
	}
	if err != nil {
		return entities.Request{}, err
	}
	if updated.ID == "" {
		return entities.Request{}, ErrRequestNotFound
	}
	log.Printf("[request][usecase] accepted as-is request_id=%s provider_id=%s", updated.ID, s.UserID)
	return updated, nil
}

// Rate records the caller's rating once the mission is completed.
func (u *RequestUseCase) Rate(ctx context.Context, s session.Session, requestID string, rating int) (entities.Request, error) {
	if !s.Valid() {
		return entities.Request{}, ErrUnauthenticated
	}
	if rating < 1 || rating > 5 {
		return entities.Request{}, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	r, err := u.load(ctx, requestID)
	if err != nil {
		return entities.Request{}, err
	}

	var field interfaces.RatingField
	switch {
	case s.IsClient() && r.ClientID == s.UserID:
		field = interfaces.RatingByClient
	case s.IsProvider() && r.HasProvider(s.UserID):
		field = interfaces.RatingByProvider
	default:
		return entities.Request{}, ErrForbidden
	}
	if r.Status != entities.RequestStatusCompleted {
		return entities.Request{}, fmt.Errorf("%w: request %s is not completed", ErrValidation, r.ID)
	}

	updated, err := u.repo.SetRating(ctx, r.ID, field, rating)
	if errors.Is(err, interfaces.ErrConditionFailed) {
		return entities.Request{}, fmt.Errorf("%w: request %s is not completed", ErrValidation, r.ID)
	}
	if err != nil {
		return entities.Request{}, err
	}
	if updated.ID == "" {
		return entities.Request{}, ErrRequestNotFound
	}
	return updated, nil
}

func (u *RequestUseCase) GetByID(ctx context.Context, s session.Session, requestID string) (entities.Request, error) {
	if !s.Valid() {
		return entities.Request{}, ErrUnauthenticated
	}
	r, err := u.load(ctx, requestID)
	if err != nil {
		return entities.Request{}, err
	}
	if !canView(s, r) {
		return entities.Request{}, ErrForbidden
	}
	return r, nil
}

func (u *RequestUseCase) ListByClient(ctx context.Context, s session.Session) ([]entities.Request, error) {
	if err := requireRole(s, session.RoleClient); err != nil {
		return nil, err
	}
	return u.repo.ListByClientID(ctx, s.UserID)
}

// ListOpen returns the pending requests providers can take or negotiate.
func (u *RequestUseCase) ListOpen(ctx context.Context, s session.Session) ([]entities.Request, error) {
	if !s.Valid() {
		return nil, ErrUnauthenticated
	}
	if s.IsClient() {
		return nil, ErrForbidden
	}
	return u.repo.ListByStatus(ctx, entities.RequestStatusPending)
}

func (u *RequestUseCase) load(ctx context.Context, requestID string) (entities.Request, error) {
	return loadRequest(ctx, u.repo, requestID)
}

func loadRequest(ctx context.Context, repo interfaces.IRequestRepository, requestID string) (entities.Request, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return entities.Request{}, ErrInvalidRequestID
	}
	r, err := repo.GetByID(ctx, requestID)
	if err != nil {
		return entities.Request{}, err
	}
	if r.ID == "" {
		return entities.Request{}, ErrRequestNotFound
	}
	return r, nil
}

// advanceRequestStatus applies a lifecycle transition guarded by the status
// the caller read. A concurrent change makes the write fail.
func advanceRequestStatus(ctx context.Context, repo interfaces.IRequestRepository, r entities.Request, to entities.RequestStatus) (entities.Request, error) {
	if !r.Status.CanTransitionTo(to) {
		log.Printf("[request][usecase] illegal transition request_id=%s from=%s to=%s", r.ID, r.Status, to)
		return entities.Request{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, to)
	}

	updated, err := repo.UpdateStatus(ctx, r.ID, r.Status, to)
	if errors.Is(err, interfaces.ErrConditionFailed) {
		log.Printf("[request][usecase] concurrent status change request_id=%s expected=%s", r.ID, r.Status)
		return entities.Request{}, fmt.Errorf("%w: request %s changed concurrently", ErrInvalidTransition, r.ID)
	}
	if err != nil {
		return entities.Request{}, err
	}
	if updated.ID == "" {
		return entities.Request{}, ErrRequestNotFound
	}
	log.Printf("[request][usecase] status updated request_id=%s from=%s to=%s", r.ID, r.Status, updated.Status)
	return updated, nil
}

func canView(s session.Session, r entities.Request) bool {
	switch {
	case s.IsAdmin():
		return true
	case s.IsClient():
		return r.ClientID == s.UserID
	case s.IsProvider():
		return r.Status.IsOpenForNegotiation() || r.HasProvider(s.UserID)
	}
	return false
}

func requireRole(s session.Session, role session.Role) error {
	if !s.Valid() {
		return ErrUnauthenticated
	}
	if s.Role != role {
		return ErrForbidden
	}
	return nil
}
