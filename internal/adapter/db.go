package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/nhlcentral/stats-api/internal/models"
)

var fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "nhl_adapter_fetch_duration_seconds",
	Help:    "Duration of one logical adapter fetch, connection acquisition included",
	Buckets: prometheus.DefBuckets,
}, []string{"variant"})

// Dialect selects placeholder style. Queries are written with ? and
// rebound for Postgres.
type Dialect int

const (
	DialectPostgres Dialect = iota
	DialectMySQL
)

// Open maps a configured driver name to a database/sql pool. The pool is
// lazy: an unreachable database fails the first request that touches it,
// not startup.
func Open(driver, dsn string) (*sql.DB, Dialect, error) {
	switch driver {
	case "pgx", "postgres":
		db, err := sql.Open("pgx", dsn)
		return db, DialectPostgres, err
	case "mysql":
		db, err := sql.Open("mysql", dsn)
		return db, DialectMySQL, err
	}
	return nil, 0, fmt.Errorf("unknown database driver %q", driver)
}

// rebind rewrites ? placeholders to $1..$n for Postgres. Quoted literals
// are left alone.
func rebind(d Dialect, query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// inClause expands to "?, ?, ..." for IN lists; n must be positive.
func inClause(n int) string {
	if n <= 0 {
		return "NULL"
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// ClampLimit bounds a caller-supplied row limit to [1, 500], defaulting to
// 50 when unset or unparseable.
func ClampLimit(raw string) int {
	limit := 50
	if raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 500 {
		limit = 500
	}
	return limit
}

// dbAdapter carries what every concrete adapter shares: the pool, its
// placeholder dialect and the cache namespace.
type dbAdapter struct {
	db        *sql.DB
	dialect   Dialect
	namespace string
	logger    *zap.SugaredLogger
}

func (a *dbAdapter) Namespace() string { return a.namespace }

// withConn runs one logical fetch on a dedicated connection. The
// connection is released on every exit path; queries run inside share it,
// and a failure is fatal for the single request with no retry.
func (a *dbAdapter) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	start := time.Now()
	defer func() {
		fetchDuration.WithLabelValues(a.namespace).Observe(time.Since(start).Seconds())
	}()

	conn, err := a.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()
	return fn(conn)
}

// readRows scans an arbitrary result set into ordered raw rows, coercing
// driver values into the nullable scalar model.
func (a *dbAdapter) readRows(ctx context.Context, conn *sql.Conn, query string, args ...any) ([]models.RawRow, error) {
	rows, err := conn.QueryContext(ctx, rebind(a.dialect, query), args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	out := make([]models.RawRow, 0)
	for rows.Next() {
		dest := make([]any, len(cols))
		for i := range dest {
			dest[i] = new(any)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		row := models.NewRawRow()
		for i, c := range cols {
			row.Set(c, models.FromAny(*dest[i].(*any)))
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (a *dbAdapter) readInt(ctx context.Context, conn *sql.Conn, query string, args ...any) (int64, error) {
	var n int64
	if err := conn.QueryRowContext(ctx, rebind(a.dialect, query), args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("query scalar: %w", err)
	}
	return n, nil
}

func (a *dbAdapter) readStrings(ctx context.Context, conn *sql.Conn, query string, args ...any) ([]string, error) {
	rows, err := conn.QueryContext(ctx, rebind(a.dialect, query), args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s sql.NullString
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if s.Valid {
			out = append(out, s.String)
		}
	}
	return out, rows.Err()
}
