package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/etnz/fxql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// schema creates the tables used by Postgres. Amounts are numeric so that
// they are stored exactly as parsed.
const schema = `
CREATE TABLE IF NOT EXISTS fxql_batches (
	id         uuid PRIMARY KEY,
	created_at timestamptz NOT NULL
);
CREATE TABLE IF NOT EXISTS fxql_entries (
	batch_id             uuid NOT NULL REFERENCES fxql_batches(id) ON DELETE CASCADE,
	entry_id             integer NOT NULL,
	source_currency      char(3) NOT NULL,
	destination_currency char(3) NOT NULL,
	buy_price            numeric,
	sell_price           numeric,
	cap_amount           numeric,
	PRIMARY KEY (batch_id, entry_id)
);`

// Postgres stores batches in PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a store backed by pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the tables if they do not exist yet.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save records entries as a new batch, in a single transaction.
func (p *Postgres) Save(ctx context.Context, entries []fxql.Entry) (Batch, error) {
	b := Batch{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		Entries:   append([]fxql.Entry(nil), entries...),
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return Batch{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	if _, err := tx.Exec(ctx, `INSERT INTO fxql_batches (id, created_at) VALUES ($1, $2)`, pgUUID(b.ID), b.CreatedAt); err != nil {
		return Batch{}, fmt.Errorf("failed to insert batch: %w", err)
	}

	for _, e := range entries {
		_, err := tx.Exec(ctx, `
INSERT INTO fxql_entries (batch_id, entry_id, source_currency, destination_currency, buy_price, sell_price, cap_amount)
VALUES ($1, $2, $3, $4, $5::text::numeric, $6::text::numeric, $7::text::numeric)`,
			pgUUID(b.ID), e.EntryID, e.SourceCurrency, e.DestinationCurrency,
			numericText(e.BuyPrice), numericText(e.SellPrice), numericText(e.CapAmount))
		if err != nil {
			return Batch{}, fmt.Errorf("failed to insert entry %d: %w", e.EntryID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Batch{}, fmt.Errorf("failed to commit batch: %w", err)
	}
	return b, nil
}

// Load returns the batch with the given id, entries in EntryId order.
func (p *Postgres) Load(ctx context.Context, id uuid.UUID) (Batch, error) {
	b := Batch{ID: id}
	err := p.pool.QueryRow(ctx, `SELECT created_at FROM fxql_batches WHERE id = $1`, pgUUID(id)).Scan(&b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Batch{}, ErrNotFound
	}
	if err != nil {
		return Batch{}, fmt.Errorf("failed to load batch %s: %w", id, err)
	}

	rows, err := p.pool.Query(ctx, `
SELECT entry_id, source_currency, destination_currency, buy_price::text, sell_price::text, cap_amount::text
FROM fxql_entries WHERE batch_id = $1 ORDER BY entry_id`, pgUUID(id))
	if err != nil {
		return Batch{}, fmt.Errorf("failed to load entries of batch %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return Batch{}, err
		}
		b.Entries = append(b.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return Batch{}, fmt.Errorf("failed to read entries of batch %s: %w", id, err)
	}
	return b, nil
}

func scanEntry(rows pgx.Rows) (fxql.Entry, error) {
	var e fxql.Entry
	var buy, sell, capAmount *string
	if err := rows.Scan(&e.EntryID, &e.SourceCurrency, &e.DestinationCurrency, &buy, &sell, &capAmount); err != nil {
		return e, fmt.Errorf("failed to scan entry: %w", err)
	}
	var err error
	if e.BuyPrice, err = parseNumeric(buy); err != nil {
		return e, err
	}
	if e.SellPrice, err = parseNumeric(sell); err != nil {
		return e, err
	}
	if e.CapAmount, err = parseNumeric(capAmount); err != nil {
		return e, err
	}
	return e, nil
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

// numericText returns the text of a valid decimal, or nil for SQL NULL.
func numericText(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.String()
	return &s
}

func parseNumeric(s *string) (decimal.NullDecimal, error) {
	if s == nil {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid numeric %q: %w", *s, err)
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}
