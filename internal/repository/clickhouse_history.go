package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"MarketPulse/internal/domain/models"
	pkgch "MarketPulse/pkg/clickhouse"
	applogger "MarketPulse/pkg/logger"
)

// CHHistory persists selected movers in ClickHouse.
type CHHistory struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewCHHistory(ch *pkgch.Client, table string) *CHHistory {
	return &CHHistory{db: ch.DB(), table: ch.Table(table), l: applogger.Nop()}
}

// SetLogger injects a structured logger.
func (s *CHHistory) SetLogger(l *applogger.Logger) { s.l = l }

// Schema is the DDL for the mover table.
func (s *CHHistory) Schema() []string {
	return []string{fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            recorded_at    DateTime64(3, 'UTC'),
            symbol         LowCardinality(String),
            price          Float64,
            change_percent Float64,
            risk_level     LowCardinality(String)
        ) ENGINE = MergeTree
        ORDER BY (recorded_at, symbol)
        TTL toDateTime(recorded_at) + INTERVAL 90 DAY
    `, s.table)}
}

func (s *CHHistory) Append(ctx context.Context, rec models.MoverRecord) error {
	q := fmt.Sprintf("INSERT INTO %s (recorded_at, symbol, price, change_percent, risk_level) VALUES (?, ?, ?, ?, ?)", s.table)
	if _, err := s.db.ExecContext(ctx, q, rec.RecordedAt.UTC(), rec.Symbol, rec.Price, rec.ChangePercent, rec.RiskLevel); err != nil {
		return fmt.Errorf("insert mover: %w", err)
	}
	return nil
}

func (s *CHHistory) Recent(ctx context.Context, limit int) ([]models.MoverRecord, error) {
	start := time.Now()
	const qtpl = `
        SELECT recorded_at, symbol, price, change_percent, risk_level
        FROM %s
        ORDER BY recorded_at DESC
        LIMIT ?
    `
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(qtpl, s.table), limit)
	if err != nil {
		s.l.Error("clickhouse recent_movers query error",
			applogger.String("table", s.table),
			applogger.Int("limit", limit),
			applogger.Error(err),
		)
		return nil, fmt.Errorf("recent movers: %w", err)
	}
	defer rows.Close()

	out := make([]models.MoverRecord, 0, limit)
	for rows.Next() {
		var r models.MoverRecord
		if err := rows.Scan(&r.RecordedAt, &r.Symbol, &r.Price, &r.ChangePercent, &r.RiskLevel); err != nil {
			return nil, fmt.Errorf("scan mover: %w", err)
		}
		r.RecordedAt = r.RecordedAt.UTC()
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	s.l.Debug("clickhouse recent_movers ok",
		applogger.String("table", s.table),
		applogger.Int("rows", len(out)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return out, nil
}
