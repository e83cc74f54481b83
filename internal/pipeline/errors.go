package pipeline

import "errors"

// Step execution errors.
// Wrapped with %w where the failure carries a path or size, so callers
// can branch with errors.Is while users still see the specifics.
var (
	// ErrArticleNotFound is returned when the article document path does
	// not exist.
	ErrArticleNotFound = errors.New("article document not found")

	// ErrArticleTooLarge is returned when the article document exceeds
	// the configured size limit.
	ErrArticleTooLarge = errors.New("article document too large")

	// ErrNoLoadedArticle is returned by steps that need a decoded
	// article before one was loaded.
	ErrNoLoadedArticle = errors.New("no article loaded: run the load_article step first")

	// ErrNoAxisResults is returned by the score step when analysis has
	// not run.
	ErrNoAxisResults = errors.New("no axis results: run the analyze step first")
)
