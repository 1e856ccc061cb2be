package unitofwork

import "context"

// RepositoryFactory builds a UnitOfWork bound to a request context.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
