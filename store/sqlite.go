package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/geoknoesis/prov-go/rdf"
)

//go:embed schema.sql
var schemaSQL string

// defaultGraph is the graph column value of statements outside any context.
const defaultGraph = ""

// SQLite is a Store persisted in a SQLite database. Terms are stored in
// their N-Quads form.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite creates or opens the database at path. Use ":memory:" for a
// throwaway store.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// SQLite allows one writer; a single connection also keeps ":memory:"
	// databases alive across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

type sqliteTx struct {
	ctx  context.Context
	stmt *sql.Stmt
}

func (tx *sqliteTx) Add(q rdf.Quad) error {
	if err := validate(q); err != nil {
		return err
	}
	_, err := tx.stmt.ExecContext(tx.ctx, graphKey(q.G), rdf.FormatTerm(q.S), rdf.FormatTerm(q.P), rdf.FormatTerm(q.O))
	if err != nil {
		return fmt.Errorf("add statement: %w", err)
	}
	return nil
}

// Update runs fn inside a database transaction.
func (s *SQLite) Update(ctx context.Context, fn func(Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO quads (graph, subject, predicate, object)
		VALUES (?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("update: prepare: %w", err)
	}
	defer stmt.Close()

	if err := fn(&sqliteTx{ctx: ctx, stmt: stmt}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update: commit: %w", err)
	}
	return nil
}

// Context returns the statements of graph in insertion order.
func (s *SQLite) Context(ctx context.Context, graph rdf.Term) ([]rdf.Quad, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT subject, predicate, object FROM quads
		WHERE graph = ?
		ORDER BY seq
	`, graphKey(graph))
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	var quads []rdf.Quad
	for rows.Next() {
		var subject, predicate, object string
		if err := rows.Scan(&subject, &predicate, &object); err != nil {
			return nil, fmt.Errorf("scan statement: %w", err)
		}
		q, err := decodeRow(subject, predicate, object)
		if err != nil {
			return nil, err
		}
		q.G = graph
		quads = append(quads, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate statements: %w", err)
	}
	return quads, nil
}

// Graphs lists named graphs sorted by their N-Quads form.
func (s *SQLite) Graphs(ctx context.Context) ([]rdf.Term, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT graph FROM quads
		WHERE graph <> ?
		ORDER BY graph
	`, defaultGraph)
	if err != nil {
		return nil, fmt.Errorf("query graphs: %w", err)
	}
	defer rows.Close()

	var graphs []rdf.Term
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan graph: %w", err)
		}
		g, err := rdf.ParseTerm(key)
		if err != nil {
			return nil, fmt.Errorf("decode graph %q: %w", key, err)
		}
		graphs = append(graphs, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate graphs: %w", err)
	}
	return graphs, nil
}

func graphKey(g rdf.Term) string {
	if g == nil {
		return defaultGraph
	}
	return rdf.FormatTerm(g)
}

func decodeRow(subject, predicate, object string) (rdf.Quad, error) {
	s, err := rdf.ParseTerm(subject)
	if err != nil {
		return rdf.Quad{}, fmt.Errorf("decode subject %q: %w", subject, err)
	}
	p, err := rdf.ParseTerm(predicate)
	if err != nil {
		return rdf.Quad{}, fmt.Errorf("decode predicate %q: %w", predicate, err)
	}
	iri, ok := p.(rdf.IRI)
	if !ok {
		return rdf.Quad{}, fmt.Errorf("decode predicate %q: not an IRI", predicate)
	}
	o, err := rdf.ParseTerm(object)
	if err != nil {
		return rdf.Quad{}, fmt.Errorf("decode object %q: %w", object, err)
	}
	return rdf.Quad{S: s, P: iri, O: o}, nil
}
