// Package store defines the persistence collaborator consumed by the study
// engine. The engine performs no I/O of its own; it calls SaveAll as a side
// effect of every structural mutation and loads the full course set once at
// startup.
package store

import (
	"context"

	"github.com/phrazzld/studydeck/internal/domain"
)

// CourseStore defines the interface for course persistence.
//
// Courses are always persisted wholesale: the engine owns the in-memory
// state and writes the complete snapshot after each structural mutation
// (course created, card appended, edited, or deleted). The slice order is
// course creation order and must be preserved by implementations.
type CourseStore interface {
	// LoadAll returns every persisted course in creation order.
	// A store with no persisted data returns an empty slice and no error.
	LoadAll(ctx context.Context) ([]domain.Course, error)

	// SaveAll replaces the persisted state with the given snapshot.
	// Implementations must apply the snapshot atomically: a failed save
	// leaves the previously persisted state intact.
	SaveAll(ctx context.Context, courses []domain.Course) error
}
