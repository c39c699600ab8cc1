package domain

import "context"

// TxManager runs fn inside one database transaction. Repositories called
// with the ctx passed to fn join that transaction; any error returned by
// fn rolls it back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
