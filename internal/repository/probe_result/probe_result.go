package probe_result

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"retrier/internal/entities"
)

const table = "probe_results"

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Save(ctx context.Context, result entities.ProbeResult) (int64, error) {
	model := FromDomain(&result)

	builder := qb.
		Insert(table).
		Columns("target", "kind", "success", "attempts", "detail", "error", "duration_ms", "checked_at").
		Values(model.Target, model.Kind, model.Success, model.Attempts, model.Detail, model.Error, model.DurationMs, model.CheckedAt).
		Suffix("RETURNING id")

	row, err := r.querier.QueryRowBuilder(ctx, builder)
	if err != nil {
		return 0, fmt.Errorf("unexpected probe result repository save error: %w", err)
	}

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("unexpected probe result repository save error: %w", err)
	}

	return id, nil
}

// Prune оставляет keep последних результатов цели и возвращает число удалённых строк.
func (r *Repository) Prune(ctx context.Context, target string, keep int) (int64, error) {
	builder := qb.
		Delete(table).
		Where(sq.Eq{"target": target}).
		Where(sq.Expr(
			"id NOT IN (SELECT id FROM "+table+" WHERE target = ? ORDER BY checked_at DESC, id DESC LIMIT ?)",
			target, keep,
		))

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("unexpected probe result repository prune error: %w", err)
	}

	tag, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("unexpected probe result repository prune error: %w", err)
	}

	return tag.RowsAffected(), nil
}

// GetLatest возвращает последний результат по каждой цели, упорядоченно по имени цели.
func (r *Repository) GetLatest(ctx context.Context) ([]entities.ProbeResult, error) {
	builder := qb.
		Select(columns...).
		Options("DISTINCT ON (target)").
		From(table).
		OrderBy("target", "checked_at DESC", "id DESC")

	models, err := r.selectMany(ctx, builder)
	if err != nil {
		return nil, fmt.Errorf("unexpected probe result repository getlatest error: %w", err)
	}

	return ToDomainList(models), nil
}

// GetByTarget возвращает до limit последних результатов цели, новые первыми.
func (r *Repository) GetByTarget(ctx context.Context, target string, limit int) ([]entities.ProbeResult, error) {
	builder := qb.
		Select(columns...).
		From(table).
		Where(sq.Eq{"target": target}).
		OrderBy("checked_at DESC", "id DESC").
		Limit(uint64(limit))

	models, err := r.selectMany(ctx, builder)
	if err != nil {
		return nil, fmt.Errorf("unexpected probe result repository getbytarget error: %w", err)
	}

	return ToDomainList(models), nil
}

func (r *Repository) selectMany(ctx context.Context, builder sq.Sqlizer) ([]ProbeResultDB, error) {
	rows, err := r.querier.QueryBuilder(ctx, builder)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (ProbeResultDB, error) {
		var m ProbeResultDB
		err := row.Scan(m.scanTargets()...)
		return m, err
	})
}
