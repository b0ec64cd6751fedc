package probe_result

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRowBuilder(ctx context.Context, builder sq.Sqlizer) (pgx.Row, error)
	QueryBuilder(ctx context.Context, builder sq.Sqlizer) (pgx.Rows, error)
}
