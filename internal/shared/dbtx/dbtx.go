// Package dbtx lets gorm repositories join a transaction that a service opened
// on the underlying *sql.DB.
package dbtx

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Bind returns a gorm handle for ctx whose statements run on tx when tx is
// non-nil, and on the pool otherwise.
func Bind(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	conn := db.WithContext(ctx)
	if tx != nil {
		// WithContext cloned the statement, so the parent handle keeps its pool.
		conn.Statement.ConnPool = tx
	}
	return conn
}
