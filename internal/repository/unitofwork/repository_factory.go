package unitofwork

import "context"

// RepositoryFactory is what services depend on; tests swap in a fake
// returning in-memory repositories.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
