package obo

import (
	"context"
	"log/slog"
)

type stanzaKind uint8

const (
	stanzaNone stanzaKind = iota
	stanzaTerm
	stanzaTypedef
)

func (kind stanzaKind) String() string {
	switch kind {
	case stanzaTerm:
		return "Term"
	case stanzaTypedef:
		return "Typedef"
	default:
		return "none"
	}
}

// stanzaParser is the state machine behind a parse. It consumes logical
// lines and owns the in-progress record.
type stanzaParser struct {
	ctx        context.Context //nolint:containedctx // scoped to one parse, used for logging only.
	logger     *slog.Logger
	flags      Flags
	ids        *IDPool
	namespaces *Pool[Namespace]
	result     *ResultSet
	state      stanzaKind
	rec        record
	keyBuf     [32]byte
}

func newStanzaParser(ctx context.Context, logger *slog.Logger, flags Flags, result *ResultSet) *stanzaParser {
	return &stanzaParser{
		ctx:        ctx,
		logger:     logger,
		flags:      flags,
		ids:        result.ids,
		namespaces: NewPool[Namespace](),
		result:     result,
	}
}

// handleLine processes one logical line. Only malformed stanza headers fail.
func (sp *stanzaParser) handleLine(line []byte, lineNum int) error {
	if line[0] == '[' {
		return sp.openStanza(line, lineNum)
	}

	keyEnd := indexUnescaped(line, ':')
	if keyEnd < 0 {
		sp.skip("no key", lineNum)

		return nil
	}

	value := line[keyEnd+1:]
	if comment := indexComment(value); comment >= 0 {
		value = value[:comment]
	}

	value = trimRightSpace(trimLeftSpace(value))
	if len(value) == 0 {
		sp.skip("no value", lineNum)

		return nil
	}

	key := trimRightSpace(line[:keyEnd])

	switch sp.state {
	case stanzaNone:
		sp.headerValue(key, value)
	case stanzaTerm:
		sp.termValue(key, value, lineNum)
	case stanzaTypedef:
	}

	return nil
}

func (sp *stanzaParser) openStanza(line []byte, lineNum int) error {
	sp.finishRecord()

	if line[len(line)-1] != ']' {
		return newParseError(ErrUnclosedStanza, line, lineNum)
	}

	sp.result.Stats.Stanzas++

	token := line[1 : len(line)-1]

	switch {
	case equalFold(token, "term"):
		sp.state = stanzaTerm
	case equalFold(token, "typedef"):
		sp.state = stanzaTypedef
	default:
		return newParseError(ErrUnknownStanza, line, lineNum)
	}

	return nil
}

// finishRecord closes the open stanza: a complete term record becomes a Term,
// anything else is discarded. The accumulator is always reset.
func (sp *stanzaParser) finishRecord() {
	defer sp.rec.reset()

	switch sp.state {
	case stanzaNone:
		return
	case stanzaTypedef:
		sp.result.Stats.Typedefs++

		return
	case stanzaTerm:
	}

	rec := &sp.rec

	if !rec.hasName && rec.id != nil {
		rec.setName(rec.id.String())
	}

	if rec.id == nil || !rec.hasName {
		sp.result.Stats.Dropped++
		sp.logger.WarnContext(sp.ctx, "dropping incomplete stanza",
			"stanza", sp.state.String(),
			"id", idText(rec.id),
			"name", rec.name,
		)

		return
	}

	if sp.result.Terms.put(rec.term()) {
		sp.result.Stats.Duplicates++
	}

	sp.result.Stats.Relations += len(rec.parents)
}

func (sp *stanzaParser) skip(reason string, lineNum int) {
	sp.result.Stats.Skipped++
	sp.logger.DebugContext(sp.ctx, "skipping line", "reason", reason, "line", lineNum)
}

func idText(id *TermID) string {
	if id == nil {
		return ""
	}

	return id.String()
}
