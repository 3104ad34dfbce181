package gradelog

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/stockgrade/internal/grading"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the schema migrations rooted at the migrations directory
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// History list bounds
const (
	DefaultListLimit = 30
	MaxListLimit     = 365
)

// Entry is one recorded grade computation
type Entry struct {
	ID           int64     `json:"id"`
	Symbol       string    `json:"symbol"`
	Timeframe    string    `json:"timeframe"`
	Score        int       `json:"score"`
	Grade        string    `json:"grade"`
	SharpeRatio  float64   `json:"sharpeRatio"`
	ROE          float64   `json:"roe"`
	PEGRatio     float64   `json:"pegRatio"`
	CurrentRatio float64   `json:"currentRatio"`
	DebtToEquity float64   `json:"debtToEquity"`
	ComputedAt   time.Time `json:"computedAt"`
}

// Repository stores grade history in PostgreSQL
// ⭐ SSOT: grade_history 테이블 접근은 여기서만
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new grade history repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Record appends one grade computation
func (r *Repository) Record(ctx context.Context, symbol, timeframe string, in grading.Inputs, res grading.Result) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO grade_history (
			symbol, timeframe, score, grade,
			sharpe_ratio, roe, peg_ratio, current_ratio, debt_to_equity
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		symbol, timeframe, res.Score, res.Grade,
		in.SharpeRatio, in.ROE, in.PEGRatio, in.CurrentRatio, in.DebtToEquity,
	)
	if err != nil {
		return fmt.Errorf("inserting grade history: %w", err)
	}
	return nil
}

// List returns up to limit entries for symbol, newest first
func (r *Repository) List(ctx context.Context, symbol string, limit int) ([]Entry, error) {
	limit = ClampLimit(limit)

	rows, err := r.pool.Query(ctx, `
		SELECT id, symbol, timeframe, score, grade,
		       sharpe_ratio, roe, peg_ratio, current_ratio, debt_to_equity, computed_at
		FROM grade_history
		WHERE symbol = $1
		ORDER BY computed_at DESC, id DESC
		LIMIT $2
	`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("querying grade history: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.Symbol, &e.Timeframe, &e.Score, &e.Grade,
			&e.SharpeRatio, &e.ROE, &e.PEGRatio, &e.CurrentRatio, &e.DebtToEquity, &e.ComputedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning grade history: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating grade history: %w", err)
	}

	return entries, nil
}

// ClampLimit bounds a list limit to [1, MaxListLimit]; non-positive gets the default
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
