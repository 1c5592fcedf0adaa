package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "github.com/mattn/go-sqlite3"    // driver: sqlite3 (cgo)
	_ "modernc.org/sqlite"             // driver: sqlite (pure Go)
)

type Driver string

const (
	DriverSQLite     Driver = "sqlite3"
	DriverSQLitePure Driver = "sqlite"
	DriverPostgres   Driver = "postgres"
)

const defaultListLimit = 50

// Store persists quizzes and results. It implements quiz.QuizRepository and
// quiz.ResultRepository (and therefore quiz.ResultSink).
type Store struct {
	db     *sql.DB
	driver Driver
}

// Open connects to the database for driver, applying per-driver defaults
// for an empty dsn, and makes sure the schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*Store, error) {
	var driverName string
	switch driver {
	case "", DriverSQLite:
		driver = DriverSQLite
		driverName = "sqlite3"
		if strings.TrimSpace(dsn) == "" {
			dsn = "quiz.db"
		}
	case DriverSQLitePure:
		driverName = "sqlite"
		if strings.TrimSpace(dsn) == "" {
			dsn = "file:quiz.db?_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		driverName = "pgx"
		if strings.TrimSpace(dsn) == "" {
			dsn = "postgres://localhost:5432/study_quiz?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	if driver != DriverPostgres {
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &Store{db: db, driver: driver}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for idx := 0; idx < len(query); idx++ {
		if query[idx] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[idx])
	}
	return b.String()
}
