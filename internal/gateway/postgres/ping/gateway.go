package ping

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Checker проверяет доступность postgres через Ping.
type Checker struct {
	db    pinger
	close func()
}

func New(db pinger) *Checker {
	return &Checker{db: db}
}

// Dial создаёт отдельный маленький пул для dsn. Соединения открываются лениво.
func Dial(dsn string) (*Checker, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 1
	cfg.MinConns = 0

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}

	return &Checker{db: pool, close: pool.Close}, nil
}

func (c *Checker) Check(ctx context.Context) (string, error) {
	if err := c.db.Ping(ctx); err != nil {
		return "", fmt.Errorf("postgres ping: %w", err)
	}
	return "pong", nil
}

func (c *Checker) Close() error {
	if c.close != nil {
		c.close()
	}
	return nil
}
