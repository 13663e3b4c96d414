package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// StoredItem is one persisted item: the submitted id/name plus the
// identifiers of its uploaded images, in submission order.
type StoredItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	ImageIDs []string `json:"imageId"`
}

// StoredBox is the persisted box record. ID is the caller-supplied
// logical identifier and is unique across boxes.
type StoredBox struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Items []StoredItem `json:"items"`
}

// BoxStore persists box records. The backing store enforces uniqueness
// of the box id.
type BoxStore interface {
	Insert(ctx context.Context, box StoredBox) error
}

type pgBoxStore struct {
	db *sql.DB
}

// NewPGBoxStore returns a BoxStore backed by the boxes table.
func NewPGBoxStore(db *sql.DB) BoxStore {
	return &pgBoxStore{db: db}
}

func (s *pgBoxStore) Insert(ctx context.Context, box StoredBox) error {
	items, err := json.Marshal(box.Items)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBoxInsert, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO boxes (id, name, items) VALUES ($1, $2, $3)`,
		box.ID, box.Name, items,
	)
	if err != nil {
		// 23505 = unique_violation on the primary key.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: %s", ErrDuplicateBox, box.ID)
		}
		return fmt.Errorf("%w: %v", ErrBoxInsert, err)
	}
	return nil
}
