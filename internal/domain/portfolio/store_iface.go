package portfolio

import "context"

type StoreAPI interface {
	Get(ctx context.Context, id int64) (Customer, error)
	List(ctx context.Context, search string, activeOnly bool, limit, offset int) ([]Customer, error)
	Create(ctx context.Context, c Customer) (int64, error)
	Update(ctx context.Context, c Customer) error
	UpsertByTaxID(ctx context.Context, c Customer) (int64, bool, error)
	Deactivate(ctx context.Context, id int64) error
}
