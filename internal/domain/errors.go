// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrNoCourseSelected is returned when a study operation that requires an
	// active course is invoked before any course has been selected.
	ErrNoCourseSelected = errors.New("no course selected")

	// ErrEmptyCourse is returned when a card is requested from a course that
	// has no cards. This is an expected outcome, not a failure: the session
	// stays ready and the caller may retry once cards exist.
	ErrEmptyCourse = errors.New("course has no cards")

	// ErrNoCardSelected is returned when reveal, edit, or delete is invoked
	// while no card is currently displayed.
	ErrNoCardSelected = errors.New("no card selected")

	// ErrEmptyCard is returned when a card create or edit would leave the
	// question, answer, and both image lists all empty.
	ErrEmptyCard = errors.New("card must have text or at least one image")

	// ErrDuplicateCourse is returned when creating a course whose name already
	// exists. Informational: the existing course is left untouched.
	ErrDuplicateCourse = errors.New("course already exists")

	// ErrCourseNotFound is returned when an operation names a course that
	// does not exist.
	ErrCourseNotFound = errors.New("course not found")

	// ErrCourseNameEmpty is returned when a course name is empty or blank.
	ErrCourseNameEmpty = errors.New("course name cannot be empty")

	// ErrCardOutOfRange is returned when a positional card reference no
	// longer resolves within its course.
	ErrCardOutOfRange = errors.New("card index out of range")
)
