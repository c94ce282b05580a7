package models

import "time"

// Person is the persons table row.
type Person struct {
	PersonID  string   `db:"person_id"`
	FirstName string   `db:"first_name"`
	LastName  string   `db:"last_name"`
	Address   string   `db:"address"`
	Birthdate string   `db:"birthdate"`
	Extra     []string `db:"extra"` // columns beyond the core five, kept verbatim
}

// OffenseAudit is one row of the append-only demerit_audit table.
type OffenseAudit struct {
	PersonID    string    `db:"person_id"`
	Points      int       `db:"points"`
	OffenseDate string    `db:"offense_date"`
	RecordedAt  time.Time `db:"recorded_at"`
}
