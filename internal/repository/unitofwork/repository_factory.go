package unitofwork

import "context"

// RepositoryFactory opens units of work bound to the given context.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
