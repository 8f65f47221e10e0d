package models

import "time"

// Student represents a roster record. Students form a separate identity
// namespace from users: StudentID is an institutional identifier, not a
// reference to users.id.
type Student struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	StudentID string    `db:"student_id" json:"student_id"`
	Major     string    `db:"major" json:"major"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
