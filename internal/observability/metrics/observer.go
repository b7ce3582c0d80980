package metrics

import "github.com/docqa-labs/docqa/internal/core/domain"

// PipelineObserver forwards pipeline progress events into the registry.
type PipelineObserver struct {
	metrics *HTTPServerMetrics
	service string
}

func (m *HTTPServerMetrics) PipelineObserver(service string) *PipelineObserver {
	return &PipelineObserver{metrics: m, service: service}
}

func (o *PipelineObserver) DocumentIndexed(format domain.Format, chunks int) {
	o.metrics.RecordDocumentIndexed(o.service, string(format), chunks)
}

func (o *PipelineObserver) IndexCacheLookup(hit bool) {
	o.metrics.RecordIndexCacheLookup(o.service, hit)
}

func (o *PipelineObserver) NoContextAnswer() {
	o.metrics.RecordNoContextAnswer(o.service)
}
