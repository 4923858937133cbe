package adapters

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// SQLXAdapter runs statements on a sqlx.DB. Transactions are opened with BeginTxx.
type SQLXAdapter struct {
	SQLAdapter
	sqlxDB *sqlx.DB
}

// NewSQLXAdapter creates an adapter on top of db.
func NewSQLXAdapter(db *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{SQLAdapter: SQLAdapter{db: db}, sqlxDB: db}
}

// BeginTx starts a transaction on the sqlx.DB.
func (s *SQLXAdapter) BeginTx(ctx context.Context) (DBTx, error) {
	tx, err := s.sqlxDB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &stdTx{tx: tx.Tx}, nil
}
