package memory

import (
	"context"
	"errors"
	"jardin_services/internal/domain/entities"
	"jardin_services/internal/usecase/interfaces"
	"time"
)

var errDuplicateID = errors.New("item already exists")

type RequestRepository struct {
	s *Store
}

var _ interfaces.IRequestRepository = (*RequestRepository)(nil)

func (r *RequestRepository) Create(_ context.Context, req entities.Request) (entities.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.requests[req.ID]; ok {
		return entities.Request{}, errDuplicateID
	}
	r.s.requests[req.ID] = cloneRequest(req)
	return req, nil
}

func (r *RequestRepository) GetByID(_ context.Context, id string) (entities.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return cloneRequest(r.s.requests[id]), nil
}

func (r *RequestRepository) ListByClientID(_ context.Context, clientID string) ([]entities.Request, error) {
	return r.list(func(req entities.Request) bool { return req.ClientID == clientID }), nil
}

func (r *RequestRepository) ListByStatus(_ context.Context, status entities.RequestStatus) ([]entities.Request, error) {
	return r.list(func(req entities.Request) bool { return req.Status == status }), nil
}

func (r *RequestRepository) list(match func(entities.Request) bool) []entities.Request {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := make([]entities.Request, 0)
	for _, req := range r.s.requests {
		if match(req) {
			items = append(items, cloneRequest(req))
		}
	}
	newestFirst(items, func(req entities.Request) int64 { return req.CreatedAt.UnixNano() })
	return items
}

func (r *RequestRepository) UpdateStatus(_ context.Context, id string, from, to entities.RequestStatus) (entities.Request, error) {
	return r.update(id, func(req *entities.Request) error {
		if req.Status != from {
			return interfaces.ErrConditionFailed
		}
		req.Status = to
		return nil
	})
}

func (r *RequestRepository) AssignProvider(_ context.Context, id, providerID, providerName string) (entities.Request, error) {
	return r.update(id, func(req *entities.Request) error {
		if req.Status != entities.RequestStatusPending {
			return interfaces.ErrConditionFailed
		}
		req.ProviderID = providerID
		req.ProviderName = providerName
		req.PriceFinal = req.PriceOriginal
		req.Status = entities.RequestStatusAccepted
		return nil
	})
}

func (r *RequestRepository) SetRating(_ context.Context, id string, field interfaces.RatingField, rating int) (entities.Request, error) {
	return r.update(id, func(req *entities.Request) error {
		if req.Status != entities.RequestStatusCompleted {
			return interfaces.ErrConditionFailed
		}
		v := rating
		switch field {
		case interfaces.RatingByClient:
			req.ClientRate = &v
		case interfaces.RatingByProvider:
			req.ProviderRate = &v
		default:
			return errors.New("unknown rating field")
		}
		return nil
	})
}

func (r *RequestRepository) update(id string, apply func(*entities.Request) error) (entities.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok {
		return entities.Request{}, nil
	}
	if err := apply(&req); err != nil {
		return entities.Request{}, err
	}
	req.UpdatedAt = time.Now().UTC()
	r.s.requests[id] = req
	return cloneRequest(req), nil
}
