package usecase

import "github.com/docqa-labs/docqa/internal/core/domain"

// Observer receives pipeline progress events, used for metrics wiring.
type Observer interface {
	DocumentIndexed(format domain.Format, chunks int)
	IndexCacheLookup(hit bool)
	NoContextAnswer()
}

type nopObserver struct{}

func (nopObserver) DocumentIndexed(domain.Format, int) {}
func (nopObserver) IndexCacheLookup(bool)              {}
func (nopObserver) NoContextAnswer()                   {}
