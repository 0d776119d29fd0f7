package employee

import "context"

type StoreAPI interface {
	Get(ctx context.Context, id int64) (Employee, error)
	List(ctx context.Context, activeOnly bool) ([]Employee, error)
	Create(ctx context.Context, in CreateInput, passwordHash string) (int64, error)
	CredentialsByEmail(ctx context.Context, email string) (Credentials, error)
	SetExternalSellerID(ctx context.Context, id int64, externalSellerID *int64) error
	Deactivate(ctx context.Context, id int64) error
}
