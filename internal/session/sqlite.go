package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"golang.org/x/oauth2"
)

const sessionsDDL = `CREATE TABLE IF NOT EXISTS Sessions (
	SessionId    TEXT PRIMARY KEY,
	Token        TEXT,
	OAuthState   TEXT NOT NULL DEFAULT '',
	CreationTime TIMESTAMP NOT NULL,
	LastSeenTime TIMESTAMP NOT NULL
)`

// SqliteStore persists sessions in a local SQLite database so signed-in
// users survive server restarts.
type SqliteStore struct {
	db *sql.DB
}

// NewSqliteStore opens (or creates) the session database at the given path
// and ensures the schema exists.
func NewSqliteStore(path string) (*SqliteStore, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(sessionsDDL); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SqliteStore{db: db}, nil
}

// NewSqliteStoreWithDB wires a store onto an existing connection.
func NewSqliteStoreWithDB(db *sql.DB) (*SqliteStore, error) {
	if _, err := db.Exec(sessionsDDL); err != nil {
		return nil, err
	}
	return &SqliteStore{db: db}, nil
}

func (s *SqliteStore) Close() error { return s.db.Close() }

func (s *SqliteStore) Get(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT SessionId, Token, OAuthState FROM Sessions WHERE SessionId = ?`, id)

	var sess Session
	var tokenJSON sql.NullString
	if err := row.Scan(&sess.ID, &tokenJSON, &sess.OAuthState); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if tokenJSON.Valid && tokenJSON.String != "" {
		var tok oauth2.Token
		if err := json.Unmarshal([]byte(tokenJSON.String), &tok); err == nil {
			sess.Token = &tok
		}
	}
	return &sess, nil
}

func (s *SqliteStore) Create(ctx context.Context) (*Session, error) {
	sess := &Session{ID: uuid.New().String()}
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO Sessions (SessionId, Token, OAuthState, CreationTime, LastSeenTime) VALUES (?,?,?,?,?)`,
		sess.ID, "", "", now, now)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SqliteStore) Save(ctx context.Context, sess *Session) error {
	var tokenJSON string
	if sess.Token != nil {
		b, err := json.Marshal(sess.Token)
		if err != nil {
			return err
		}
		tokenJSON = string(b)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE Sessions SET Token = ?, OAuthState = ?, LastSeenTime = ? WHERE SessionId = ?`,
		tokenJSON, sess.OAuthState, time.Now().UTC(), sess.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SqliteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM Sessions WHERE SessionId = ?`, id)
	return err
}
