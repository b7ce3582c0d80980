package ports

import "context"

// PipelineRunner is the inbound contract for one question-answering request:
// fetch and index the document at documentURL, then answer every question.
// Either all answers are returned, in question order, or none.
type PipelineRunner interface {
	Run(ctx context.Context, documentURL string, questions []string) ([]string, error)
}
