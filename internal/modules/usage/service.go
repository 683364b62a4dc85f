package usage

import "context"

// Service orchestrates the monthly plan-generation quota.
type Service struct {
	store *Store
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Consume deducts one plan generation from the client's monthly allowance.
// If the client row does not exist yet it is initialised and the deduction
// retried once. Returns ErrQuotaExceeded when the allowance is exhausted.
func (s *Service) Consume(ctx context.Context, clientKey string) error {
	err := s.store.Consume(ctx, clientKey)
	if err != ErrQuotaExceeded {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureClient(ctx, clientKey); initErr != nil {
		return initErr
	}
	return s.store.Consume(ctx, clientKey)
}
