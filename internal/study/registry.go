package study

import (
	"context"
	"fmt"
	"strings"

	"github.com/phrazzld/studydeck/internal/domain"
	"github.com/phrazzld/studydeck/internal/store"
)

// Registry owns the name→cards and name→bag mappings and the invariant that
// every course has exactly one shuffle bag. All card-sequence mutation goes
// through the registry so that the matching bag invalidation can never be
// skipped: deletes shrink the index space and invalidate; appends invalidate
// so new cards surface on the very next pass; in-place edits leave the bag
// valid.
//
// The registry persists through the CourseStore collaborator after every
// structural mutation. In-memory state is the source of truth; a failed save
// is reported to the caller but does not roll the mutation back, and the next
// successful save persists the full snapshot.
type Registry struct {
	store   store.CourseStore
	courses map[string][]domain.Card
	order   []string
	bags    map[string]*ShuffleBag
}

// NewRegistry builds a registry seeded from the store's persisted courses.
func NewRegistry(ctx context.Context, cs store.CourseStore) (*Registry, error) {
	loaded, err := cs.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading courses: %w", err)
	}

	r := &Registry{
		store:   cs,
		courses: make(map[string][]domain.Card, len(loaded)),
		order:   make([]string, 0, len(loaded)),
		bags:    make(map[string]*ShuffleBag, len(loaded)),
	}
	for _, course := range loaded {
		r.courses[course.Name] = course.Cards
		r.order = append(r.order, course.Name)
		r.bags[course.Name] = NewShuffleBag()
	}

	return r, nil
}

// Get returns the card sequence for the named course and whether it exists.
// The returned slice is the registry's own backing storage, not a copy;
// callers must not mutate it directly.
func (r *Registry) Get(name string) ([]domain.Card, bool) {
	cards, ok := r.courses[name]
	return cards, ok
}

// List returns the course names in creation order.
func (r *Registry) List() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Bag returns the shuffle bag bound to the named course, creating an empty
// one if the course exists but has no bag yet.
func (r *Registry) Bag(name string) *ShuffleBag {
	bag, ok := r.bags[name]
	if !ok {
		bag = NewShuffleBag()
		r.bags[name] = bag
	}
	return bag
}

// InvalidateBag clears the named course's bag so the next draw starts a
// fresh pass.
func (r *Registry) InvalidateBag(name string) {
	r.Bag(name).Invalidate()
}

// CreateCourse adds an empty course with a fresh empty bag.
// Returns ErrCourseNameEmpty for blank names. Returns ErrDuplicateCourse if
// the name already exists; the existing course and its bag are untouched.
func (r *Registry) CreateCourse(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrCourseNameEmpty
	}

	if _, exists := r.courses[name]; exists {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateCourse, name)
	}

	r.courses[name] = []domain.Card{}
	r.order = append(r.order, name)
	r.bags[name] = NewShuffleBag()

	return r.save(ctx)
}

// CreateCard validates the card and appends it to the named course.
// The course's bag is invalidated so the new card joins the next pass
// immediately rather than waiting for the current pass to exhaust.
func (r *Registry) CreateCard(ctx context.Context, courseName string, card domain.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}

	cards, ok := r.courses[courseName]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrCourseNotFound, courseName)
	}

	r.courses[courseName] = append(cards, card)
	r.InvalidateBag(courseName)

	return r.save(ctx)
}

// UpdateCard replaces the card at the given position in place. Edits are not
// structural: the index space is unchanged, so the bag stays valid and the
// current pass continues.
func (r *Registry) UpdateCard(ctx context.Context, courseName string, index int, card domain.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}

	cards, ok := r.courses[courseName]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrCourseNotFound, courseName)
	}
	if index < 0 || index >= len(cards) {
		return fmt.Errorf("%w: index %d, course size %d", domain.ErrCardOutOfRange, index, len(cards))
	}

	cards[index] = card

	return r.save(ctx)
}

// RemoveCard deletes the card at the given position. Indices of all cards
// after it shift down by one, so the course's bag is invalidated.
func (r *Registry) RemoveCard(ctx context.Context, courseName string, index int) error {
	cards, ok := r.courses[courseName]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrCourseNotFound, courseName)
	}
	if index < 0 || index >= len(cards) {
		return fmt.Errorf("%w: index %d, course size %d", domain.ErrCardOutOfRange, index, len(cards))
	}

	r.courses[courseName] = append(cards[:index], cards[index+1:]...)
	r.InvalidateBag(courseName)

	return r.save(ctx)
}

// save persists the complete course snapshot in creation order.
func (r *Registry) save(ctx context.Context) error {
	snapshot := make([]domain.Course, 0, len(r.order))
	for _, name := range r.order {
		snapshot = append(snapshot, domain.Course{Name: name, Cards: r.courses[name]})
	}

	if err := r.store.SaveAll(ctx, snapshot); err != nil {
		return fmt.Errorf("saving courses: %w", err)
	}
	return nil
}
