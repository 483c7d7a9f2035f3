// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

// Package tagstore persists the tags a user assigns during a session
// so they reappear the next time the same chunk is opened. Grounded on
// the teacher's internal/backend, which drives a
// [zombiezen.com/go/sqlite/sqlitemigration.Pool] off an embedded SQL
// schema in exactly this shape.
package tagstore

import (
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"zombiezen.com/go/log"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitemigration"
	"zombiezen.com/go/sqlite/sqlitex"
)

//go:embed sql/*.sql
//go:embed sql/schema/*.sql
var rawSQLFiles embed.FS

func sqlFiles() fs.FS {
	sub, err := fs.Sub(rawSQLFiles, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}

var schemaState struct {
	init   sync.Once
	schema sqlitemigration.Schema
	err    error
}

func loadSchema() sqlitemigration.Schema {
	schemaState.init.Do(func() {
		for i := 1; ; i++ {
			migration, err := fs.ReadFile(sqlFiles(), fmt.Sprintf("schema/%02d.sql", i))
			if errors.Is(err, fs.ErrNotExist) {
				break
			}
			if err != nil {
				schemaState.err = err
				return
			}
			schemaState.schema.Migrations = append(schemaState.schema.Migrations, string(migration))
		}
	})
	if schemaState.err != nil {
		panic(schemaState.err)
	}
	return schemaState.schema
}

// Store is a handle to a tag database at a fixed path, usually
// luadis/tags.db under the XDG cache directory.
type Store struct {
	db *sqlitemigration.Pool
}

// Open returns a Store backed by the database at path. The schema is
// migrated lazily on first use; callers must call [Store.Close] when
// done.
func Open(path string) *Store {
	return &Store{
		db: sqlitemigration.NewPool(path, loadSchema(), sqlitemigration.Options{
			Flags:       sqlite.OpenCreate | sqlite.OpenReadWrite,
			PrepareConn: prepareConn,
			OnError: func(err error) {
				log.Errorf(context.Background(), "tagstore migration: %v", err)
			},
		}),
	}
}

func prepareConn(conn *sqlite.Conn) error {
	if err := sqlitex.ExecuteTransient(conn, "PRAGMA journal_mode = wal;", nil); err != nil {
		return err
	}
	return sqlitex.ExecuteTransient(conn, "PRAGMA foreign_keys = on;", nil)
}

// Close releases the underlying database connections.
func (s *Store) Close() error {
	return s.db.Close()
}

// ChunkHash returns the identity a tag database keys tags under for
// the given chunk bytes: its hex-encoded SHA-256 digest, so that tags
// assigned against one compiled chunk never leak onto another chunk
// that merely shares a file name.
func ChunkHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Tag is one persisted (kind, address, name) assignment.
type Tag struct {
	Kind    string
	Address int
	Name    string
}

// SetTag persists that the artifact of the given kind at address
// should be retagged with name the next time chunkHash is opened.
func (s *Store) SetTag(ctx context.Context, chunkHash, kind string, address int, name string) error {
	conn, err := s.db.Get(ctx)
	if err != nil {
		return fmt.Errorf("tagstore: set tag: %w", err)
	}
	defer s.db.Put(conn)

	err = sqlitex.ExecuteFS(conn, sqlFiles(), "upsert_tag.sql", &sqlitex.ExecOptions{
		Named: map[string]any{
			":chunk_hash": chunkHash,
			":kind":       kind,
			":address":    int64(address),
			":tag":        name,
		},
	})
	if err != nil {
		return fmt.Errorf("tagstore: set tag %s@0x%x=%s: %w", kind, address, name, err)
	}
	return nil
}

// List returns every tag persisted for chunkHash, ordered by address.
func (s *Store) List(ctx context.Context, chunkHash string) ([]Tag, error) {
	conn, err := s.db.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("tagstore: list: %w", err)
	}
	defer s.db.Put(conn)

	var tags []Tag
	err = sqlitex.ExecuteFS(conn, sqlFiles(), "list_tags.sql", &sqlitex.ExecOptions{
		Named: map[string]any{":chunk_hash": chunkHash},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			tags = append(tags, Tag{
				Kind:    stmt.GetText("kind"),
				Address: int(stmt.GetInt64("address")),
				Name:    stmt.GetText("tag"),
			})
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("tagstore: list: %w", err)
	}
	return tags, nil
}
