// Package journal keeps an append-only record of the order requests the desk
// sends, stored in DuckDB and mirrored to a parquet file.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/mt5-dashboard/internal/logger"
	"github.com/rxtech-lab/mt5-dashboard/internal/types"
	"github.com/rxtech-lab/mt5-dashboard/pkg/errors"
	"go.uber.org/zap"
)

const tableName = "journal"

var columns = []string{
	"id", "created_at", "kind", "symbol", "side", "volume", "price", "sl", "tp", "comment",
	"position_ticket", "retcode", "order_ticket", "result_comment", "error",
}

// Query narrows Entries. Zero fields match everything.
type Query struct {
	Comment string
	Symbol  string
	Kind    types.JournalKind
	// Limit caps the number of rows, newest first. Zero means no limit.
	Limit uint64
}

// Journal stores entries in an in-memory DuckDB database. When outputPath is
// set, existing rows are loaded from it on Initialize and the table is exported
// back after every write.
type Journal struct {
	db         *sql.DB
	outputPath string
	sq         squirrel.StatementBuilderType
	log        *logger.Logger
	mu         sync.Mutex
}

// NewJournal creates a journal. An empty outputPath keeps it in memory only.
func NewJournal(outputPath string, log *logger.Logger) *Journal {
	if log == nil {
		log = logger.NewNop()
	}

	return &Journal{
		db:         nil,
		outputPath: outputPath,
		sq:         squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		log:        log,
		mu:         sync.Mutex{},
	}
}

// Initialize opens the database and loads any existing parquet file.
func (j *Journal) Initialize() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.outputPath != "" {
		if err := os.MkdirAll(filepath.Dir(j.outputPath), 0755); err != nil {
			return errors.Wrap(errors.ErrCodeJournalFailed, "failed to create journal directory", err)
		}
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeJournalFailed, "failed to open DuckDB connection", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS journal (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMP,
			kind TEXT,
			symbol TEXT,
			side TEXT,
			volume DOUBLE,
			price DOUBLE,
			sl DOUBLE,
			tp DOUBLE,
			comment TEXT,
			position_ticket UBIGINT,
			retcode INTEGER,
			order_ticket UBIGINT,
			result_comment TEXT,
			error TEXT
		)
	`)
	if err != nil {
		db.Close()

		return errors.Wrap(errors.ErrCodeJournalFailed, "failed to create journal table", err)
	}

	j.db = db

	if j.outputPath == "" {
		return nil
	}

	if _, err := os.Stat(j.outputPath); err == nil {
		_, err = j.db.Exec(fmt.Sprintf(`
			INSERT INTO journal
			SELECT * FROM read_parquet('%s')
			ON CONFLICT (id) DO NOTHING
		`, escapePath(j.outputPath)))
		if err != nil {
			j.log.Warn("existing journal could not be loaded, starting fresh",
				zap.String("path", j.outputPath),
				zap.Error(err),
			)
		}
	}

	return nil
}

// Record stores entry and exports the table.
func (j *Journal) Record(ctx context.Context, entry types.JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.db == nil {
		return errors.New(errors.ErrCodeJournalFailed, "journal not initialized")
	}

	query, args, err := j.sq.
		Insert(tableName).
		Columns(columns...).
		Values(
			entry.ID, entry.Time, string(entry.Kind), entry.Symbol, entry.Side.String(),
			entry.Volume, entry.Price, entry.SL, entry.TP, entry.Comment,
			entry.Position, entry.Retcode, entry.Order, entry.ResultComment, entry.Error,
		).
		ToSql()
	if err != nil {
		return errors.Wrap(errors.ErrCodeJournalFailed, "failed to build insert", err)
	}

	if _, err := j.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(errors.ErrCodeJournalFailed, "failed to insert journal entry", err)
	}

	return j.exportToParquet()
}

// Entries returns entries matching q, newest first.
func (j *Journal) Entries(ctx context.Context, q Query) ([]types.JournalEntry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.db == nil {
		return nil, errors.New(errors.ErrCodeJournalFailed, "journal not initialized")
	}

	builder := j.sq.Select(columns...).From(tableName).OrderBy("created_at DESC", "id")

	if q.Comment != "" {
		builder = builder.Where(squirrel.Eq{"comment": q.Comment})
	}

	if q.Symbol != "" {
		builder = builder.Where(squirrel.Eq{"symbol": q.Symbol})
	}

	if q.Kind != "" {
		builder = builder.Where(squirrel.Eq{"kind": string(q.Kind)})
	}

	if q.Limit > 0 {
		builder = builder.Limit(q.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query journal", err)
	}
	defer rows.Close()

	entries := make([]types.JournalEntry, 0)

	for rows.Next() {
		var (
			entry types.JournalEntry
			kind  string
			side  string
		)

		err := rows.Scan(
			&entry.ID, &entry.Time, &kind, &entry.Symbol, &side,
			&entry.Volume, &entry.Price, &entry.SL, &entry.TP, &entry.Comment,
			&entry.Position, &entry.Retcode, &entry.Order, &entry.ResultComment, &entry.Error,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan journal row", err)
		}

		entry.Kind = types.JournalKind(kind)

		if entry.Side, err = types.ParseOrderType(side); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating journal rows", err)
	}

	return entries, nil
}

// Count returns the number of stored entries.
func (j *Journal) Count(ctx context.Context) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.db == nil {
		return 0, errors.New(errors.ErrCodeJournalFailed, "journal not initialized")
	}

	query, args, err := j.sq.Select("COUNT(*)").From(tableName).ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	var count int
	if err := j.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count journal entries", err)
	}

	return count, nil
}

// OutputPath returns the parquet file path.
func (j *Journal) OutputPath() string {
	return j.outputPath
}

// Close releases database resources.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.db != nil {
		if err := j.db.Close(); err != nil {
			return errors.Wrap(errors.ErrCodeJournalFailed, "failed to close journal", err)
		}

		j.db = nil
	}

	return nil
}

func (j *Journal) exportToParquet() error {
	if j.outputPath == "" {
		return nil
	}

	_, err := j.db.Exec(fmt.Sprintf(`
		COPY (SELECT * FROM journal ORDER BY created_at ASC)
		TO '%s' (FORMAT PARQUET)
	`, escapePath(j.outputPath)))
	if err != nil {
		return errors.Wrap(errors.ErrCodeJournalFailed, "failed to export journal to parquet", err)
	}

	return nil
}

func escapePath(path string) string {
	return strings.ReplaceAll(path, "'", "''")
}
