package models

import "time"

// Enrollment joins a student to a course. The (student_id, course_id) pair is
// unique: a student cannot enroll twice in the same course.
type Enrollment struct {
	ID         int64     `db:"id" json:"id"`
	StudentID  int64     `db:"student_id" json:"student_id"`
	CourseID   int64     `db:"course_id" json:"course_id"`
	EnrolledAt time.Time `db:"enrolled_at" json:"enrolled_at"`
	Grade      *string   `db:"grade" json:"grade,omitempty"`
}
