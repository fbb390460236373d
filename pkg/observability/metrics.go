package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Sumatoshi-tech/obofang/pkg/obo"
)

const (
	metricRunsTotal      = "obofang.parse.runs.total"
	metricTermsTotal     = "obofang.parse.terms.total"
	metricRelationsTotal = "obofang.parse.relations.total"
	metricDroppedTotal   = "obofang.parse.dropped.total"
	metricBytesTotal     = "obofang.parse.bytes.total"
	metricParseDuration  = "obofang.parse.duration.seconds"

	attrStatus      = "status"
	attrCompression = "compression"

	// StatusOK marks a parse that produced a result set.
	StatusOK = "ok"
	// StatusError marks a parse that failed.
	StatusError = "error"
)

// durationBucketBoundaries covers small slims parsed in milliseconds up to
// full ontologies with cross-references that take minutes.
var durationBucketBoundaries = []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300}

// ParseMetrics holds the OTel instruments recorded once per parsed file.
type ParseMetrics struct {
	runs      metric.Int64Counter
	terms     metric.Int64Counter
	relations metric.Int64Counter
	dropped   metric.Int64Counter
	bytes     metric.Int64Counter
	duration  metric.Float64Histogram
}

// NewParseMetrics creates the parse instruments from mt.
func NewParseMetrics(mt metric.Meter) (*ParseMetrics, error) {
	runs, err := mt.Int64Counter(metricRunsTotal,
		metric.WithDescription("Parsed files by outcome"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRunsTotal, err)
	}

	terms, err := mt.Int64Counter(metricTermsTotal,
		metric.WithDescription("Terms accepted into result sets"),
		metric.WithUnit("{term}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricTermsTotal, err)
	}

	relations, err := mt.Int64Counter(metricRelationsTotal,
		metric.WithDescription("Parent edges over accepted terms"),
		metric.WithUnit("{edge}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRelationsTotal, err)
	}

	dropped, err := mt.Int64Counter(metricDroppedTotal,
		metric.WithDescription("Term stanzas dropped for lacking an id or a name"),
		metric.WithUnit("{stanza}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricDroppedTotal, err)
	}

	bytesTotal, err := mt.Int64Counter(metricBytesTotal,
		metric.WithDescription("Raw input bytes consumed"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricBytesTotal, err)
	}

	duration, err := mt.Float64Histogram(metricParseDuration,
		metric.WithDescription("Wall time of one parse"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricParseDuration, err)
	}

	return &ParseMetrics{
		runs:      runs,
		terms:     terms,
		relations: relations,
		dropped:   dropped,
		bytes:     bytesTotal,
		duration:  duration,
	}, nil
}

// RecordSuccess records a finished parse. A nil receiver is a no-op.
func (pm *ParseMetrics) RecordSuccess(ctx context.Context, compression string, stats obo.Stats) {
	if pm == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String(attrCompression, compression))

	pm.runs.Add(ctx, 1, metric.WithAttributes(attribute.String(attrStatus, StatusOK)))
	pm.terms.Add(ctx, int64(stats.Terms), attrs)
	pm.relations.Add(ctx, int64(stats.Relations), attrs)
	pm.dropped.Add(ctx, int64(stats.Dropped), attrs)
	pm.bytes.Add(ctx, stats.Bytes, attrs)
	pm.duration.Record(ctx, stats.Elapsed.Seconds(), attrs)
}

// RecordFailure records a parse that returned an error after elapsed.
func (pm *ParseMetrics) RecordFailure(ctx context.Context, elapsed time.Duration) {
	if pm == nil {
		return
	}

	pm.runs.Add(ctx, 1, metric.WithAttributes(attribute.String(attrStatus, StatusError)))
	pm.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String(attrStatus, StatusError)))
}
