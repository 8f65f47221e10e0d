package dto

import "github.com/campushq/course-api/internal/models"

// DashboardStats is the aggregate payload shown on every role's landing page.
// MyCourses depends on the caller: courses owned for instructors, enrollments
// for students, zero for admins.
type DashboardStats struct {
	TotalCourses  int `json:"total_courses"`
	TotalStudents int `json:"total_students"`
	MyCourses     int `json:"my_courses"`
}

// EnrollmentForm carries the roster and catalogue used to build the
// enroll-student form.
type EnrollmentForm struct {
	Students []models.Student `json:"students"`
	Courses  []models.Course  `json:"courses"`
}
