package introspect

import (
	"context"
	"database/sql"
	"fmt"
)

type SlowQuery struct {
	Query     string
	Calls     int64
	TotalTime float64 // milliseconds
	MeanTime  float64 // milliseconds
	Rows      int64
}

type ColumnStat struct {
	Table       string
	Column      string
	NDistinct   float64
	Correlation *float64
}

// PerformanceReport is the best-effort result of Analyze. Note explains
// why a section is empty.
type PerformanceReport struct {
	SlowQueries []SlowQuery
	TableStats  []ColumnStat
	Note        string
}

// Slow-query threshold for pg_stat_statements, in milliseconds.
const slowQueryThreshold = 100

// Analyze collects slow statements from pg_stat_statements and column
// statistics from pg_stats. It never fails on a missing extension or
// missing privileges; the report carries a note instead.
func (in *Introspector) Analyze(ctx context.Context) (*PerformanceReport, error) {
	report := &PerformanceReport{}

	slow, err := in.slowQueries(ctx)
	if err != nil {
		report.Note = fmt.Sprintf("slow query statistics not available (pg_stat_statements on PostgreSQL 13+ is required): %v", err)
		return report, nil
	}
	report.SlowQueries = slow

	stats, err := in.columnStats(ctx)
	if err != nil {
		report.SlowQueries = nil
		report.Note = fmt.Sprintf("table statistics not available: %v", err)
		return report, nil
	}
	report.TableStats = stats

	return report, nil
}

func (in *Introspector) slowQueries(ctx context.Context) ([]SlowQuery, error) {
	slowQuery := `
	SELECT query, calls, total_exec_time, mean_exec_time, rows
	FROM pg_stat_statements
	WHERE mean_exec_time > $1
	ORDER BY mean_exec_time DESC
	LIMIT 10;
	`

	rows, err := in.q.QueryContext(ctx, slowQuery, slowQueryThreshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SlowQuery
	for rows.Next() {
		var s SlowQuery
		if err := rows.Scan(&s.Query, &s.Calls, &s.TotalTime, &s.MeanTime, &s.Rows); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (in *Introspector) columnStats(ctx context.Context) ([]ColumnStat, error) {
	statsQuery := `
	SELECT tablename, attname, n_distinct, correlation
	FROM pg_stats
	WHERE schemaname = $1
	ORDER BY tablename, attname;
	`

	rows, err := in.q.QueryContext(ctx, statsQuery, in.schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ColumnStat
	for rows.Next() {
		var (
			s           ColumnStat
			correlation sql.NullFloat64
		)
		if err := rows.Scan(&s.Table, &s.Column, &s.NDistinct, &correlation); err != nil {
			return nil, err
		}
		if correlation.Valid {
			c := correlation.Float64
			s.Correlation = &c
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
