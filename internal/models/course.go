package models

import "time"

// DefaultCredits is assigned when a course is created without a credit value.
const DefaultCredits = 3

// Course represents a course owned by an instructor.
type Course struct {
	ID           int64     `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Code         string    `db:"code" json:"code"`
	Description  string    `db:"description" json:"description"`
	Credits      int       `db:"credits" json:"credits"`
	InstructorID int64     `db:"instructor_id" json:"instructor_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
