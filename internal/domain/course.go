package domain

// Course is a named, ordered collection of cards. Card order is insertion
// order and is significant: it is the index space the study session's shuffle
// bag permutes.
type Course struct {
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}
