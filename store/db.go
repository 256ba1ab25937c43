package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

var ErrNotFound = errors.New("record not found")

type Config struct {
	DSN          string        `envconfig:"DSN" split_words:"true" required:"true"`
	MaxOpenConns int           `envconfig:"MAX_OPEN_CONNS" split_words:"true" default:"20"`
	MaxIdleConns int           `envconfig:"MAX_IDLE_CONNS" split_words:"true" default:"10"`
	ConnLifetime time.Duration `envconfig:"CONN_LIFETIME" split_words:"true" default:"1h"`
}

// Open connects to Postgres and returns a bun DB handle.
func Open(cfg Config) (*bun.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("database dsn is required")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.ConnLifetime)

	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// CreateSchema creates every table this service owns. Safe to run repeatedly.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*Lead)(nil),
		(*Note)(nil),
		(*LeadInteraction)(nil),
		(*Client)(nil),
		(*ClientInteraction)(nil),
		(*Document)(nil),
		(*Resource)(nil),
		(*PortfolioItem)(nil),
		(*Testimonial)(nil),
		(*PortfolioStats)(nil),
		(*PricingCategory)(nil),
		(*PricingPlan)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().WithForeignKeys().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	return nil
}
