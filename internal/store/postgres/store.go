// Package postgres implements the course store on PostgreSQL. Courses and
// cards live in two tables ordered by explicit position columns so the
// engine's positional card identity survives the round trip.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phrazzld/studydeck/internal/domain"
	"github.com/phrazzld/studydeck/internal/store"
)

// PostgresCourseStore implements the store.CourseStore interface using a
// PostgreSQL database as the storage backend.
type PostgresCourseStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresCourseStore creates a new PostgreSQL implementation of the
// CourseStore interface. The pool must be initialized and managed by the
// caller. If logger is nil, the default logger is used.
func NewPostgresCourseStore(pool *pgxpool.Pool, logger *slog.Logger) *PostgresCourseStore {
	if pool == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("pool cannot be nil for PostgresCourseStore")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCourseStore{
		pool:   pool,
		logger: logger.With(slog.String("component", "course_store")),
	}
}

// Ensure PostgresCourseStore implements store.CourseStore
var _ store.CourseStore = (*PostgresCourseStore)(nil)

// LoadAll retrieves every course with its cards, both in position order.
func (s *PostgresCourseStore) LoadAll(ctx context.Context) ([]domain.Course, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name FROM courses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying courses: %w", err)
	}

	type courseRow struct {
		id   int64
		name string
	}
	var courseRows []courseRow
	for rows.Next() {
		var cr courseRow
		if err := rows.Scan(&cr.id, &cr.name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning course row: %w", err)
		}
		courseRows = append(courseRows, cr)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courses: %w", err)
	}

	courses := make([]domain.Course, 0, len(courseRows))
	for _, cr := range courseRows {
		cards, err := s.loadCards(ctx, cr.id)
		if err != nil {
			return nil, err
		}
		courses = append(courses, domain.Course{Name: cr.name, Cards: cards})
	}

	return courses, nil
}

func (s *PostgresCourseStore) loadCards(ctx context.Context, courseID int64) ([]domain.Card, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT question, answer, question_imgs, answer_imgs
		 FROM cards WHERE course_id = $1 ORDER BY position`, courseID)
	if err != nil {
		return nil, fmt.Errorf("querying cards for course %d: %w", courseID, err)
	}
	defer rows.Close()

	cards := []domain.Card{}
	for rows.Next() {
		var card domain.Card
		if err := rows.Scan(
			&card.Question, &card.Answer,
			&card.QuestionImages, &card.AnswerImages,
		); err != nil {
			return nil, fmt.Errorf("scanning card row: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cards: %w", err)
	}

	return cards, nil
}

// SaveAll replaces the persisted state with the given snapshot inside a
// single transaction, so a failed save leaves the previous state intact.
func (s *PostgresCourseStore) SaveAll(ctx context.Context, courses []domain.Course) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
			s.logger.Error("failed to roll back save transaction",
				slog.String("error", rbErr.Error()))
		}
	}()

	// Snapshot semantics: clear and rewrite. Cards go via the course
	// cascade.
	if _, err := tx.Exec(ctx, `DELETE FROM courses`); err != nil {
		return fmt.Errorf("clearing courses: %w", err)
	}

	for coursePos, course := range courses {
		var courseID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO courses (name, position) VALUES ($1, $2) RETURNING id`,
			course.Name, coursePos,
		).Scan(&courseID)
		if err != nil {
			return fmt.Errorf("inserting course %q: %w", course.Name, err)
		}

		for cardPos, card := range course.Cards {
			_, err := tx.Exec(ctx,
				`INSERT INTO cards
				 (course_id, position, question, answer, question_imgs, answer_imgs)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				courseID, cardPos, card.Question, card.Answer,
				imagePaths(card.QuestionImages), imagePaths(card.AnswerImages))
			if err != nil {
				return fmt.Errorf("inserting card %d of course %q: %w",
					cardPos, course.Name, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}

	return nil
}

// imagePaths normalizes a nil image slice to an empty one so the JSONB
// columns never store SQL NULL.
func imagePaths(paths []string) []string {
	if paths == nil {
		return []string{}
	}
	return paths
}
