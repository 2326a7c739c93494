// Package memory is an in-process store implementing every repository
// interface. It backs STORE_DRIVER=memory and the scenario tests.
//
// A single mutex guards all collections, so each multi-item write is atomic
// with respect to every other operation of the same Store.
package memory

import (
	"jardin_services/internal/domain/entities"
	"sort"
	"sync"
)

type Store struct {
	mu          sync.Mutex
	requests    map[string]entities.Request
	adjustments map[string]entities.PriceAdjustment
	locks       map[string]string
	payments    map[string]entities.Payment
	objects     map[string]object
}

func NewStore() *Store {
	return &Store{
		requests:    map[string]entities.Request{},
		adjustments: map[string]entities.PriceAdjustment{},
		locks:       map[string]string{},
		payments:    map[string]entities.Payment{},
		objects:     map[string]object{},
	}
}

func (s *Store) Requests() *RequestRepository {
	return &RequestRepository{s: s}
}

func (s *Store) Adjustments() *PriceAdjustmentRepository {
	return &PriceAdjustmentRepository{s: s}
}

func (s *Store) Payments() *PaymentRepository {
	return &PaymentRepository{s: s}
}

func newestFirst[T any](items []T, createdAt func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]) > createdAt(items[j])
	})
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneRequest(r entities.Request) entities.Request {
	r.Evidence = cloneStrings(r.Evidence)
	if r.ClientRate != nil {
		v := *r.ClientRate
		r.ClientRate = &v
	}
	if r.ProviderRate != nil {
		v := *r.ProviderRate
		r.ProviderRate = &v
	}
	return r
}

func cloneAdjustment(a entities.PriceAdjustment) entities.PriceAdjustment {
	a.Photos = cloneStrings(a.Photos)
	a.Videos = cloneStrings(a.Videos)
	if a.ResolvedAt != nil {
		v := *a.ResolvedAt
		a.ResolvedAt = &v
	}
	return a
}
