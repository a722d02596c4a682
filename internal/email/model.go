// internal/email/model.go
//
// Persistence model for captured visitor emails.
package email

import "time"

// Record is one captured email.  The address is stored normalized
// (trimmed, lowercased) and carries a unique index; CreatedAt is set by
// the database and never updated.
type Record struct {
	ID        int64     `db:"id"         json:"id"`
	Email     string    `db:"email"      json:"email"`
	IPAddress string    `db:"ip_address" json:"ipAddress"`
	Location  string    `db:"location"   json:"location"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
