package obo

import "bytes"

// headerValue decodes a key/value pair of the header section.
func (sp *stanzaParser) headerValue(key, value []byte) {
	lower, ok := foldKey(sp.keyBuf[:], key)
	if !ok {
		return
	}

	switch string(lower) {
	case "format-version":
		sp.result.FormatVersion = string(value)
	case "date":
		sp.result.Date = string(value)
	case "subsetdef":
		subset := parseSubset(value)
		if _, exists := sp.result.Subsets[subset.Name]; !exists {
			sp.result.Subsets[subset.Name] = subset
		}
	}
}

// termValue decodes a key/value pair of a [Term] stanza. Malformed values are
// counted and skipped.
func (sp *stanzaParser) termValue(key, value []byte, lineNum int) {
	lower, ok := foldKey(sp.keyBuf[:], key)
	if !ok {
		return
	}

	rec := &sp.rec

	switch string(lower) {
	case "id":
		id := sp.readID(value, lineNum)
		if id == nil {
			return
		}

		rec.id = id
		if sp.flags.Has(NameFromID) {
			rec.setName(id.String())
		}
	case "name":
		rec.setName(decodeText(value))
	case "is_a":
		if id := sp.readID(value, lineNum); id != nil {
			rec.parents = append(rec.parents, ParentEdge{ID: id, Relation: RelationIsA})
		}
	case "relationship":
		sp.readRelationship(value, lineNum)
	case "synonym":
		if sp.flags.Has(IgnoreSynonyms) {
			return
		}

		text, found := quoted(value)
		if !found {
			sp.skip("unquoted synonym", lineNum)

			return
		}

		rec.synonyms = append(rec.synonyms, string(text))
	case "def":
		if !sp.flags.Has(KeepDefinitions) {
			return
		}

		text, found := quoted(value)
		if !found {
			sp.skip("unquoted definition", lineNum)

			return
		}

		rec.definition = string(bytes.ReplaceAll(text, []byte{'\\'}, nil))
	case "namespace":
		rec.namespace = sp.namespace(decodeText(value))
	case "equivalent_to":
		if id := sp.readID(value, lineNum); id != nil {
			rec.equivalents = append(rec.equivalents, id)
		}
	case "alt_id":
		if id := sp.readID(value, lineNum); id != nil {
			rec.alternatives = append(rec.alternatives, id)
		}
	case "xref":
		if sp.flags.Has(KeepXrefs) {
			sp.readXref(value, lineNum)
		}
	case "is_obsolete":
		rec.obsolete = equalFold(value, "true")
	case "subset":
		if subset, found := sp.result.Subsets[decodeText(value)]; found {
			rec.subsets = append(rec.subsets, subset)
		} else {
			sp.skip("undeclared subset", lineNum)
		}
	case "intersection_of":
		if sp.flags.Has(KeepIntersections) {
			rec.intersections = append(rec.intersections, decodeText(value))
		}
	}
}

// readID interns the first token of value as a TermID.
func (sp *stanzaParser) readID(value []byte, lineNum int) *TermID {
	id, err := sp.ids.Intern(firstToken(value))
	if err != nil {
		sp.skip(err.Error(), lineNum)

		return nil
	}

	return id
}

// readRelationship decodes `<relation> <target-id> [annotation]`.
func (sp *stanzaParser) readRelationship(value []byte, lineNum int) {
	typeEnd := indexUnescaped(value, ' ')
	if typeEnd < 0 {
		sp.skip("relationship without target", lineNum)

		return
	}

	idStart := skipBlanks(value, typeEnd)
	if idStart < 0 {
		sp.skip("relationship without target", lineNum)

		return
	}

	target := value[idStart:]
	if idEnd := indexUnescapedAny(target, " [!"); idEnd >= 0 {
		target = target[:idEnd]
	}

	id, err := sp.ids.Intern(target)
	if err != nil {
		sp.skip(err.Error(), lineNum)

		return
	}

	sp.rec.parents = append(sp.rec.parents, ParentEdge{
		ID:       id,
		Relation: relationFromToken(value[:typeEnd]),
	})
}

// readXref decodes `<db>:<id>`.
func (sp *stanzaParser) readXref(value []byte, lineNum int) {
	dbEnd := indexUnescaped(value, ':')
	if dbEnd < 0 {
		sp.skip("xref without separator", lineNum)

		return
	}

	idStart := skipBlanks(value, dbEnd+1)
	if idStart < 0 {
		sp.skip("xref without id", lineNum)

		return
	}

	sp.rec.xrefs = append(sp.rec.xrefs, Xref{
		Database: decodeText(value[:dbEnd]),
		ID:       decodeText(value[idStart:]),
	})
}

// namespace returns the shared Namespace named name.
func (sp *stanzaParser) namespace(name string) *Namespace {
	if namespace, ok := sp.namespaces.Lookup(name); ok {
		return namespace
	}

	namespace := &Namespace{Name: name}
	sp.namespaces.Insert(name, namespace)

	return namespace
}
