// internal/email/store.go
//
// Email persistence helpers.
//
// Context
// -------
// One table, one insert.  Uniqueness lives in the database (unique key on
// the normalized address); the store translates the driver's duplicate-key
// error into the tagged ErrDuplicate sentinel so the handler can switch on
// it explicitly instead of sniffing error strings.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package email

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// ErrDuplicate reports a capture attempt for an already-recorded address.
var ErrDuplicate = errors.New("email already exists")

// mysqlDupEntry is the server error number for a unique-key violation.
const mysqlDupEntry = 1062

// Store runs queries against the email table.
type Store struct {
	db *sqlx.DB
}

// NewStore returns a Store bound to db.
func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

// Insert writes one capture record.  The address must already be
// normalized and validated; created_at is filled by the database.
func (s *Store) Insert(ctx context.Context, address, ipAddress, location string) error {
	const q = `INSERT INTO email (email, ip_address, location) VALUES (?, ?, ?)`

	_, err := s.db.ExecContext(ctx, q, address, ipAddress, location)
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDupEntry {
		return ErrDuplicate
	}
	return err
}
