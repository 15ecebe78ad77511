package study

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/studydeck/internal/domain"
)

// fakeStore is an in-memory CourseStore that records every save so tests can
// assert the save-after-structural-mutation contract.
type fakeStore struct {
	courses   []domain.Course
	saveCount int
	failSaves bool
}

var errSaveFailed = errors.New("fake store: save failed")

func (f *fakeStore) LoadAll(ctx context.Context) ([]domain.Course, error) {
	return f.courses, nil
}

func (f *fakeStore) SaveAll(ctx context.Context, courses []domain.Course) error {
	if f.failSaves {
		return errSaveFailed
	}
	f.saveCount++
	f.courses = courses
	return nil
}

// newTestRegistry builds a registry over a fresh fake store preloaded with
// the given courses.
func newTestRegistry(t *testing.T, courses ...domain.Course) (*Registry, *fakeStore) {
	t.Helper()

	fs := &fakeStore{courses: courses}
	reg, err := NewRegistry(context.Background(), fs)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg, fs
}

func bioCourse() domain.Course {
	return domain.Course{
		Name: "Bio",
		Cards: []domain.Card{
			{Question: "Q1", Answer: "A1"},
			{Question: "Q2", Answer: "A2"},
		},
	}
}
