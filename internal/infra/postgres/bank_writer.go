package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"aitekka-quiz/internal/domain"
	"aitekka-quiz/internal/infra/postgres/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

type bankRow struct {
	bun.BaseModel `bun:"table:question_banks"`

	ID   string `bun:"id,pk"`
	Data string `bun:"data,type:jsonb,notnull"`
}

// OpenDB opens a bun handle for dsn. The caller must close it.
func OpenDB(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// Migrate applies all pending migrations and returns the applied group.
func Migrate(ctx context.Context, db *bun.DB) (*migrate.MigrationGroup, error) {
	migrator := migrate.NewMigrator(db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("init migrations: %w", err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return group, nil
}

// BankWriter stores question banks as JSONB rows.
type BankWriter struct {
	db *bun.DB
}

func NewBankWriter(db *bun.DB) *BankWriter {
	return &BankWriter{db: db}
}

// SaveBank validates bank and upserts it by id.
func (w *BankWriter) SaveBank(ctx context.Context, bank domain.Bank) error {
	if err := bank.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(bank)
	if err != nil {
		return fmt.Errorf("marshal bank: %w", err)
	}
	row := &bankRow{ID: bank.ID, Data: string(data)}
	_, err = w.db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = now()").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("save bank %q: %w", bank.ID, err)
	}
	return nil
}
