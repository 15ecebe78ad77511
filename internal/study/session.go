package study

import (
	"context"
	"fmt"

	"github.com/phrazzld/studydeck/internal/domain"
)

// State identifies where the session is in its study cycle.
type State int

const (
	// StateIdle means no course is selected.
	StateIdle State = iota
	// StateAwaitingDraw means a course is selected but no card is shown.
	StateAwaitingDraw
	// StateQuestionShown means a card's question is displayed, answer hidden.
	StateQuestionShown
	// StateAnswerShown means both sides of the current card are displayed.
	StateAnswerShown
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingDraw:
		return "awaiting_draw"
	case StateQuestionShown:
		return "question_shown"
	case StateAnswerShown:
		return "answer_shown"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// CardView is what the session exposes to the host for display. The answer
// fields are populated only once the answer has been revealed. Seen and
// DeckSize mirror the bag's pass counters at the time of the draw.
type CardView struct {
	Question       string   `json:"question"`
	QuestionImages []string `json:"question_imgs"`
	Answer         string   `json:"answer,omitempty"`
	AnswerImages   []string `json:"answer_imgs,omitempty"`
	AnswerShown    bool     `json:"answer_shown"`
	Seen           int      `json:"seen"`
	DeckSize       int      `json:"deck_size"`
}

// Session is a stateful cursor over one course. It holds only the active
// course name and the index of the card currently on screen, never a copy of
// card data, so edits and deletes are immediately visible.
//
// A Session is replaced wholesale when a different course is selected and is
// not safe for concurrent use; the host must serialize calls.
type Session struct {
	registry *Registry
	state    State
	course   string
	current  int // index of the displayed card, -1 when none
}

// NewSession creates an idle session bound to the registry.
func NewSession(registry *Registry) *Session {
	return &Session{
		registry: registry,
		state:    StateIdle,
		current:  -1,
	}
}

// State returns the session's current state.
func (s *Session) State() State {
	return s.state
}

// ActiveCourse returns the selected course name, empty when idle.
func (s *Session) ActiveCourse() string {
	return s.course
}

// Progress reports the pass counters of the active course's bag. Both are
// zero when idle or before the first draw of a pass.
func (s *Session) Progress() (seen, deckSize int) {
	if s.course == "" {
		return 0, 0
	}
	return s.registry.Bag(s.course).Progress()
}

// SelectCourse binds the session to the named course and resets it for a
// fresh pass: the course's bag is invalidated, the cursor is cleared, and the
// session moves to AwaitingDraw. Selecting an unknown course returns
// ErrCourseNotFound and leaves the session idle. Any previously selected
// course's bag persists untouched for later resumption.
func (s *Session) SelectCourse(name string) error {
	if _, ok := s.registry.Get(name); !ok {
		s.state = StateIdle
		s.course = ""
		s.current = -1
		return fmt.Errorf("%w: %q", domain.ErrCourseNotFound, name)
	}

	s.state = StateAwaitingDraw
	s.course = name
	s.current = -1
	s.registry.InvalidateBag(name)

	return nil
}

// Next draws the next card of the pass and displays its question, hiding any
// previously revealed answer. Returns ErrNoCourseSelected from idle and
// ErrEmptyCourse when the active course has no cards; in the latter case the
// session stays in AwaitingDraw with no card displayed.
func (s *Session) Next() (CardView, error) {
	if s.state == StateIdle {
		return CardView{}, domain.ErrNoCourseSelected
	}

	cards, _ := s.registry.Get(s.course)
	if len(cards) == 0 {
		s.state = StateAwaitingDraw
		s.current = -1
		return CardView{}, domain.ErrEmptyCourse
	}

	bag := s.registry.Bag(s.course)
	s.current = bag.Draw(len(cards))
	s.state = StateQuestionShown

	return s.view(cards[s.current], false), nil
}

// Reveal displays the answer of the current card. Returns ErrNoCardSelected
// if no card has been drawn, or if the cursor no longer resolves within the
// course (defensive; invalidation discipline prevents this).
func (s *Session) Reveal() (CardView, error) {
	cards, err := s.currentCards()
	if err != nil {
		return CardView{}, err
	}

	s.state = StateAnswerShown

	return s.view(cards[s.current], true), nil
}

// DeleteCurrent removes the displayed card from the course. The course's
// index space shrinks, so the bag is invalidated and the cursor cleared; the
// session returns to AwaitingDraw.
func (s *Session) DeleteCurrent(ctx context.Context) error {
	if _, err := s.currentCards(); err != nil {
		return err
	}

	if err := s.registry.RemoveCard(ctx, s.course, s.current); err != nil {
		return err
	}

	s.current = -1
	s.state = StateAwaitingDraw

	return nil
}

// EditCurrent mutates the displayed card in place and re-displays it in the
// session's current state. Edits are not structural, so the pass continues
// uninterrupted. Returns ErrEmptyCard if all four fields would be empty.
func (s *Session) EditCurrent(
	ctx context.Context,
	question, answer string,
	questionImages, answerImages []string,
) (CardView, error) {
	if _, err := s.currentCards(); err != nil {
		return CardView{}, err
	}

	card, err := domain.NewCard(question, answer, questionImages, answerImages)
	if err != nil {
		return CardView{}, err
	}

	if err := s.registry.UpdateCard(ctx, s.course, s.current, card); err != nil {
		return CardView{}, err
	}

	return s.view(card, s.state == StateAnswerShown), nil
}

// CreateCourse delegates course creation to the registry. The session's own
// state is unaffected, even when the new course shares the active name.
func (s *Session) CreateCourse(ctx context.Context, name string) error {
	return s.registry.CreateCourse(ctx, name)
}

// CreateCard validates and appends a card to the named course via the
// registry. The target course need not be the active one.
func (s *Session) CreateCard(
	ctx context.Context,
	courseName, question, answer string,
	questionImages, answerImages []string,
) error {
	card, err := domain.NewCard(question, answer, questionImages, answerImages)
	if err != nil {
		return err
	}
	return s.registry.CreateCard(ctx, courseName, card)
}

// currentCards returns the active course's cards after checking that the
// cursor points at a live card.
func (s *Session) currentCards() ([]domain.Card, error) {
	if s.current < 0 {
		return nil, domain.ErrNoCardSelected
	}

	cards, ok := s.registry.Get(s.course)
	if !ok || s.current >= len(cards) {
		return nil, fmt.Errorf("%w: stale card reference", domain.ErrNoCardSelected)
	}

	return cards, nil
}

// view assembles the display payload for a card, including the answer side
// only when revealed.
func (s *Session) view(card domain.Card, revealed bool) CardView {
	seen, deckSize := s.registry.Bag(s.course).Progress()
	view := CardView{
		Question:       card.Question,
		QuestionImages: card.QuestionImages,
		AnswerShown:    revealed,
		Seen:           seen,
		DeckSize:       deckSize,
	}
	if revealed {
		view.Answer = card.Answer
		view.AnswerImages = card.AnswerImages
	}
	return view
}
