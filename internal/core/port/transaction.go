package port

import "context"

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// Intent tells the transaction manager which database a unit of work needs.
// Query work may be served by a read replica.
type Intent int

const (
	IntentCommand Intent = iota
	IntentQuery
)

func (i Intent) String() string {
	if i == IntentQuery {
		return "query"
	}
	return "command"
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, intent Intent, fn func(ctx context.Context) error) error
}
