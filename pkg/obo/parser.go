package obo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/obofang/pkg/source"
)

// tracerName is the default OTel tracer name for the parser.
const tracerName = "obofang"

// Config controls a Parser. The zero value parses with default flags, no
// progress reporting and no logging.
type Config struct {
	// Flags selects optional decoders.
	Flags Flags

	// Observer, when set, receives throttled progress.
	Observer Observer

	// ProgressInterval is the minimum time between progress updates.
	// Zero means DefaultProgressInterval; negative reports every line.
	ProgressInterval time.Duration

	// Logger receives diagnostics for skipped lines and dropped records.
	// When nil, diagnostics are discarded.
	Logger *slog.Logger

	// Tracer creates the parse span. When nil, falls back to otel.Tracer("obofang").
	Tracer trace.Tracer
}

// Positioner is implemented by inputs that know their total size and how many
// raw bytes have been consumed. *source.Source implements it.
type Positioner interface {
	Size() int64
	Offset() int64
}

// Parser parses OBO input. A Parser holds only configuration; every call
// builds fresh state, so one Parser may be used for many files, though not
// concurrently when an Observer is shared.
type Parser struct {
	config Config
}

// NewParser creates a Parser.
func NewParser(config Config) *Parser {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}

	if config.ProgressInterval == 0 {
		config.ProgressInterval = DefaultProgressInterval
	}

	return &Parser{config: config}
}

func (parser *Parser) tracer() trace.Tracer {
	if parser.config.Tracer != nil {
		return parser.config.Tracer
	}

	return otel.Tracer(tracerName)
}

// ParseFile opens path, detecting compression by content, and parses it.
func (parser *Parser) ParseFile(ctx context.Context, path string) (*ResultSet, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ontology: %w", err)
	}

	defer src.Close()

	rs, err := parser.parse(ctx, path, src)
	if err != nil {
		return nil, err
	}

	rs.Compression = src.Compression().String()

	parser.config.Logger.InfoContext(ctx, "parsed ontology",
		"path", path,
		"compression", rs.Compression,
		"terms", rs.Stats.Terms,
		"relations", rs.Stats.Relations,
		"elapsed", rs.Stats.Elapsed,
	)

	return rs, nil
}

// Parse parses r. Progress totals are known only when r implements Positioner.
func (parser *Parser) Parse(ctx context.Context, r io.Reader) (*ResultSet, error) {
	return parser.parse(ctx, "", r)
}

func (parser *Parser) parse(ctx context.Context, path string, r io.Reader) (*ResultSet, error) {
	start := time.Now()

	ctx, span := parser.tracer().Start(ctx, "obo.parse",
		trace.WithAttributes(
			attribute.String("obo.path", path),
			attribute.String("obo.flags", parser.config.Flags.String()),
		))
	defer span.End()

	pos, ok := r.(Positioner)
	if !ok {
		counter := &countingReader{reader: r}
		pos, r = counter, counter
	}

	logger := parser.config.Logger
	if path != "" {
		logger = logger.With("path", path)
	}

	result := newResultSet(path, NewIDPool())
	sp := newStanzaParser(ctx, logger, parser.config.Flags, result)
	scanner := NewScanner(r)
	scanner.progress = newProgressReporter(parser.config.Observer, parser.config.ProgressInterval,
		pos.Offset, result.Terms.Len)

	scanner.progress.init(pos.Size())

	err := parser.run(ctx, scanner, sp)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	sp.finishRecord()

	maps.Insert(result.Namespaces, sp.namespaces.All())
	result.Stats.Terms = result.Terms.Len()
	result.Stats.Lines = scanner.LineNum()
	result.Stats.Bytes = pos.Offset()
	result.Stats.Elapsed = time.Since(start)

	total := pos.Size()
	if total <= 0 {
		total = result.Stats.Bytes
	}

	scanner.progress.finish(total, result.Stats.Terms)

	span.SetAttributes(
		attribute.Int("obo.terms", result.Stats.Terms),
		attribute.Int("obo.relations", result.Stats.Relations),
		attribute.Int("obo.dropped", result.Stats.Dropped),
		attribute.Int64("obo.bytes", result.Stats.Bytes),
	)

	return result, nil
}

// run drives the scanner until end of input or the first fatal error.
func (parser *Parser) run(ctx context.Context, scanner *Scanner, sp *stanzaParser) error {
	for {
		line, err := scanner.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("read line %d: %w", scanner.LineNum()+1, err)
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("parse aborted at line %d: %w", scanner.LineNum(), ctxErr)
		}

		lineErr := sp.handleLine(line, scanner.LineNum())
		if lineErr != nil {
			return lineErr
		}
	}
}

// ParseFile parses the file at path with the given config.
func ParseFile(ctx context.Context, path string, config Config) (*ResultSet, error) {
	return NewParser(config).ParseFile(ctx, path)
}

// countingReader tracks consumed bytes for readers without a Positioner.
type countingReader struct {
	reader io.Reader
	n      int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.reader.Read(p)
	cr.n += int64(n)

	return n, err //nolint:wrapcheck // io.Reader contract.
}

func (cr *countingReader) Size() int64   { return 0 }
func (cr *countingReader) Offset() int64 { return cr.n }
