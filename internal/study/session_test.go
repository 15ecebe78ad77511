package study

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/studydeck/internal/domain"
)

func newBioSession(t *testing.T) (*Session, *fakeStore) {
	t.Helper()
	reg, fs := newTestRegistry(t, bioCourse())
	session := NewSession(reg)
	if err := session.SelectCourse("Bio"); err != nil {
		t.Fatalf("SelectCourse: %v", err)
	}
	return session, fs
}

func TestSessionNextFromIdle(t *testing.T) {
	t.Parallel()
	reg, _ := newTestRegistry(t, bioCourse())
	session := NewSession(reg)

	_, err := session.Next()
	if !errors.Is(err, domain.ErrNoCourseSelected) {
		t.Errorf("Expected ErrNoCourseSelected, got %v", err)
	}
	if session.State() != StateIdle {
		t.Errorf("Expected session to remain idle, got %v", session.State())
	}
}

func TestSessionSelectUnknownCourse(t *testing.T) {
	t.Parallel()
	session, _ := newBioSession(t)

	err := session.SelectCourse("Ghost")
	if !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("Expected ErrCourseNotFound, got %v", err)
	}
	if session.State() != StateIdle || session.ActiveCourse() != "" {
		t.Errorf("Expected idle session after bad selection, got %v / %q",
			session.State(), session.ActiveCourse())
	}
}

func TestSessionRevealRequiresDrawnCard(t *testing.T) {
	t.Parallel()
	session, _ := newBioSession(t)

	_, err := session.Reveal()
	if !errors.Is(err, domain.ErrNoCardSelected) {
		t.Errorf("Expected ErrNoCardSelected before any Next, got %v", err)
	}
}

func TestSessionEmptyCourse(t *testing.T) {
	t.Parallel()
	reg, _ := newTestRegistry(t, domain.Course{Name: "Empty"})
	session := NewSession(reg)
	if err := session.SelectCourse("Empty"); err != nil {
		t.Fatalf("SelectCourse: %v", err)
	}

	_, err := session.Next()
	if !errors.Is(err, domain.ErrEmptyCourse) {
		t.Fatalf("Expected ErrEmptyCourse, got %v", err)
	}
	if session.State() != StateAwaitingDraw {
		t.Errorf("Expected AwaitingDraw after empty draw, got %v", session.State())
	}
}

// TestSessionStudyScenario walks the full two-card study cycle: each card's
// question appears exactly once per pass with its paired answer, counters
// track the pass, and the pass restarts after exhaustion.
func TestSessionStudyScenario(t *testing.T) {
	t.Parallel()
	session, _ := newBioSession(t)

	answers := map[string]string{"Q1": "A1", "Q2": "A2"}

	first, err := session.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if session.State() != StateQuestionShown {
		t.Fatalf("Expected QuestionShown, got %v", session.State())
	}
	if first.AnswerShown || first.Answer != "" {
		t.Error("Expected answer hidden after Next")
	}
	if first.Seen != 1 || first.DeckSize != 2 {
		t.Errorf("Expected counters (1, 2), got (%d, %d)", first.Seen, first.DeckSize)
	}

	revealed, err := session.Reveal()
	if err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	if session.State() != StateAnswerShown {
		t.Fatalf("Expected AnswerShown, got %v", session.State())
	}
	if revealed.Answer != answers[first.Question] {
		t.Errorf("Expected paired answer %q for %q, got %q",
			answers[first.Question], first.Question, revealed.Answer)
	}

	second, err := session.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if second.Question == first.Question {
		t.Errorf("Expected the other card on the second draw, got %q twice", second.Question)
	}
	if second.AnswerShown {
		t.Error("Expected answer cleared by Next")
	}
	if second.Seen != 2 || second.DeckSize != 2 {
		t.Errorf("Expected counters (2, 2), got (%d, %d)", second.Seen, second.DeckSize)
	}

	// Third draw starts a new pass.
	third, err := session.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if _, ok := answers[third.Question]; !ok {
		t.Errorf("Expected a known question on the new pass, got %q", third.Question)
	}
	if third.Seen != 1 || third.DeckSize != 2 {
		t.Errorf("Expected counters (1, 2) on the new pass, got (%d, %d)", third.Seen, third.DeckSize)
	}
}

// TestSessionNoRepeatProperty draws a full pass on a larger course and checks
// that every question appears exactly once.
func TestSessionNoRepeatProperty(t *testing.T) {
	t.Parallel()

	course := domain.Course{Name: "Chem"}
	questions := []string{"Q0", "Q1", "Q2", "Q3", "Q4", "Q5", "Q6"}
	for _, q := range questions {
		course.Cards = append(course.Cards, domain.Card{Question: q, Answer: "A"})
	}

	reg, _ := newTestRegistry(t, course)
	session := NewSession(reg)
	if err := session.SelectCourse("Chem"); err != nil {
		t.Fatalf("SelectCourse: %v", err)
	}

	drawn := make(map[string]bool, len(questions))
	for range questions {
		view, err := session.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if drawn[view.Question] {
			t.Fatalf("Question %q repeated within one pass", view.Question)
		}
		drawn[view.Question] = true
	}

	if len(drawn) != len(questions) {
		t.Errorf("Expected %d distinct questions, got %d", len(questions), len(drawn))
	}
}

func TestSessionDeleteCurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	course := domain.Course{
		Name: "Hist",
		Cards: []domain.Card{
			{Question: "Q0", Answer: "A0"},
			{Question: "Q1", Answer: "A1"},
			{Question: "Q2", Answer: "A2"},
		},
	}
	reg, fs := newTestRegistry(t, course)
	session := NewSession(reg)
	if err := session.SelectCourse("Hist"); err != nil {
		t.Fatalf("SelectCourse: %v", err)
	}

	// Draw two cards, delete the second drawn, then keep drawing: no index
	// may escape the shrunken course and no question may repeat within the
	// fresh pass.
	session.Next()
	second, err := session.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}

	if err := session.DeleteCurrent(ctx); err != nil {
		t.Fatalf("DeleteCurrent: %v", err)
	}
	if session.State() != StateAwaitingDraw {
		t.Errorf("Expected AwaitingDraw after delete, got %v", session.State())
	}

	cards, _ := reg.Get("Hist")
	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards after delete, got %d", len(cards))
	}
	for _, c := range cards {
		if c.Question == second.Question {
			t.Errorf("Expected %q removed from the course", second.Question)
		}
	}

	drawn := make(map[string]bool, 2)
	for i := 0; i < 2; i++ {
		view, err := session.Next()
		if err != nil {
			t.Fatalf("Next after delete: %v", err)
		}
		if view.Question == second.Question {
			t.Errorf("Deleted question %q drawn again", second.Question)
		}
		if drawn[view.Question] {
			t.Errorf("Question %q repeated within the post-delete pass", view.Question)
		}
		drawn[view.Question] = true
	}

	if fs.saveCount != 1 {
		t.Errorf("Expected exactly 1 save (the delete), got %d", fs.saveCount)
	}
}

func TestSessionDeleteWithoutCard(t *testing.T) {
	t.Parallel()
	session, _ := newBioSession(t)

	err := session.DeleteCurrent(context.Background())
	if !errors.Is(err, domain.ErrNoCardSelected) {
		t.Errorf("Expected ErrNoCardSelected, got %v", err)
	}
}

func TestSessionEditCurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	session, _ := newBioSession(t)

	drawn, err := session.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if _, err := session.Reveal(); err != nil {
		t.Fatalf("Reveal: %v", err)
	}

	view, err := session.EditCurrent(ctx, "edited question", "edited answer", nil, nil)
	if err != nil {
		t.Fatalf("EditCurrent: %v", err)
	}

	// Edit re-displays in the current state: answer stays revealed.
	if session.State() != StateAnswerShown {
		t.Errorf("Expected state preserved by edit, got %v", session.State())
	}
	if view.Question != "edited question" || view.Answer != "edited answer" {
		t.Errorf("Expected edited card re-displayed, got %+v", view)
	}

	// The pass continues: counters are untouched by the in-place edit.
	if view.Seen != drawn.Seen || view.DeckSize != drawn.DeckSize {
		t.Errorf("Expected counters (%d, %d) preserved, got (%d, %d)",
			drawn.Seen, drawn.DeckSize, view.Seen, view.DeckSize)
	}
}

func TestSessionEditCurrentEmptyRejected(t *testing.T) {
	t.Parallel()
	session, _ := newBioSession(t)

	before, err := session.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}

	_, err = session.EditCurrent(context.Background(), "", "", nil, nil)
	if !errors.Is(err, domain.ErrEmptyCard) {
		t.Fatalf("Expected ErrEmptyCard, got %v", err)
	}

	// Rejection applies nothing: the displayed card is unchanged.
	view, err := session.Reveal()
	if err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	if view.Question != before.Question {
		t.Errorf("Expected card unchanged after rejected edit, got %q", view.Question)
	}
}

func TestSessionEditWithoutCard(t *testing.T) {
	t.Parallel()
	session, _ := newBioSession(t)

	_, err := session.EditCurrent(context.Background(), "q", "a", nil, nil)
	if !errors.Is(err, domain.ErrNoCardSelected) {
		t.Errorf("Expected ErrNoCardSelected, got %v", err)
	}
}

func TestSessionReselectRestartsPass(t *testing.T) {
	t.Parallel()
	session, _ := newBioSession(t)

	session.Next()

	if err := session.SelectCourse("Bio"); err != nil {
		t.Fatalf("SelectCourse: %v", err)
	}

	if session.State() != StateAwaitingDraw {
		t.Errorf("Expected AwaitingDraw after reselect, got %v", session.State())
	}
	if seen, size := session.Progress(); seen != 0 || size != 0 {
		t.Errorf("Expected zeroed progress after reselect, got (%d, %d)", seen, size)
	}
	if _, err := session.Reveal(); !errors.Is(err, domain.ErrNoCardSelected) {
		t.Errorf("Expected cleared cursor after reselect, got %v", err)
	}
}

func TestSessionCreateCourseDelegation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	session, _ := newBioSession(t)

	if err := session.CreateCourse(ctx, "Math"); err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	err := session.CreateCourse(ctx, "Math")
	if !errors.Is(err, domain.ErrDuplicateCourse) {
		t.Errorf("Expected ErrDuplicateCourse on second creation, got %v", err)
	}

	// Creating courses never disturbs the active session.
	if session.ActiveCourse() != "Bio" || session.State() != StateAwaitingDraw {
		t.Errorf("Expected session untouched, got %q / %v",
			session.ActiveCourse(), session.State())
	}
}

func TestSessionCreateCardEmptyRejected(t *testing.T) {
	t.Parallel()
	session, _ := newBioSession(t)

	err := session.CreateCard(context.Background(), "Bio", "", "", []string{}, []string{})
	if !errors.Is(err, domain.ErrEmptyCard) {
		t.Fatalf("Expected ErrEmptyCard, got %v", err)
	}

	cards, _ := session.registry.Get("Bio")
	if len(cards) != 2 {
		t.Errorf("Expected card sequence length unchanged, got %d", len(cards))
	}
}
