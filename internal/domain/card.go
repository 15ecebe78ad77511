package domain

import "strings"

// Card represents a single question/answer study item. Image fields hold
// opaque filesystem paths; the engine never opens or validates them — a path
// that no longer resolves is a display-time concern for the presentation
// layer.
//
// Cards have no stable identity of their own: a card is identified purely by
// its position within its course's card sequence.
type Card struct {
	Question       string   `json:"question"`
	Answer         string   `json:"answer"`
	QuestionImages []string `json:"question_imgs"`
	AnswerImages   []string `json:"answer_imgs"`
}

// NewCard creates a Card from its four fields.
// Returns ErrEmptyCard if the card would carry neither text nor images.
func NewCard(question, answer string, questionImages, answerImages []string) (Card, error) {
	card := Card{
		Question:       strings.TrimSpace(question),
		Answer:         strings.TrimSpace(answer),
		QuestionImages: questionImages,
		AnswerImages:   answerImages,
	}

	if err := card.Validate(); err != nil {
		return Card{}, err
	}

	return card, nil
}

// Validate checks that the card carries at least one of question text, answer
// text, or an image reference. Returns ErrEmptyCard otherwise.
func (c Card) Validate() error {
	if strings.TrimSpace(c.Question) == "" &&
		strings.TrimSpace(c.Answer) == "" &&
		len(c.QuestionImages) == 0 &&
		len(c.AnswerImages) == 0 {
		return ErrEmptyCard
	}
	return nil
}
