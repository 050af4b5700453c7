// Copyright Altrinid, 2026. All rights reserved.

// Package model reads IFC models in the STEP physical file format
// (ISO 10303-21) far enough to expose elements, their top-level attributes,
// and their property and quantity sets. It performs no schema validation
// and never writes back to the source file.
// See docs/ARCHITECTURE.md § Model Reading.
package model

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Entity class names the reader resolves relationships through.
const (
	entContained   = "IFCRELCONTAINEDINSPATIALSTRUCTURE"
	entDefines     = "IFCRELDEFINESBYPROPERTIES"
	entPropertySet = "IFCPROPERTYSET"
	entQuantitySet = "IFCELEMENTQUANTITY"
	entSingleValue = "IFCPROPERTYSINGLEVALUE"
)

// Model is an in-memory view of one STEP file's DATA section. It is built
// once per run and read sequentially.
type Model struct {
	schema    string
	entities  map[int]*entity
	rooted    []*entity     // file order, every instance carrying a GlobalId
	contained map[int]int   // element id → spatial structure id
	propDefs  map[int][]int // object id → property definition ids
}

// Open reads and indexes the STEP file at path.
func Open(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model %s: %w", path, err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading model %s: %w", path, err)
	}
	return m, nil
}

// Decode parses a STEP physical file from r and builds the relationship
// indexes element views resolve through.
func Decode(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	stmts := splitStatements(string(data))
	if len(stmts) == 0 || stmts[0] != "ISO-10303-21" {
		return nil, fmt.Errorf("not a STEP physical file (missing ISO-10303-21 header)")
	}

	m := &Model{
		entities:  make(map[int]*entity),
		contained: make(map[int]int),
		propDefs:  make(map[int][]int),
	}

	inData := false
	for _, stmt := range stmts[1:] {
		switch {
		case stmt == "":
			continue
		case stmt == "DATA":
			inData = true
		case stmt == "ENDSEC":
			inData = false
		case inData && strings.HasPrefix(stmt, "#"):
			e, err := parseInstance(stmt)
			if err != nil {
				return nil, fmt.Errorf("instance %s: %w", stmtLabel(stmt), err)
			}
			if _, dup := m.entities[e.id]; dup {
				return nil, fmt.Errorf("duplicate instance #%d", e.id)
			}
			m.entities[e.id] = e
			m.index(e)
		case strings.HasPrefix(stmt, "FILE_SCHEMA"):
			m.schema = parseSchema(stmt)
		}
	}
	return m, nil
}

// index records the entity in the rooted list and, for the relationship
// classes the reader understands, in the lookup maps. Forward references
// are fine: targets resolve lazily when an element view is read.
func (m *Model) index(e *entity) {
	if _, ok := globalID(e); ok {
		m.rooted = append(m.rooted, e)
	}

	switch e.name {
	case entContained:
		// (GlobalId, OwnerHistory, Name, Description, RelatedElements, RelatingStructure)
		structure, ok := e.refAt(5)
		if !ok {
			return
		}
		for _, rel := range e.listAt(4) {
			if rel.kind == kindRef {
				m.contained[rel.ref] = structure
			}
		}
	case entDefines:
		// (GlobalId, OwnerHistory, Name, Description, RelatedObjects, RelatingPropertyDefinition)
		def, ok := e.refAt(5)
		if !ok {
			return
		}
		for _, obj := range e.listAt(4) {
			if obj.kind == kindRef {
				m.propDefs[obj.ref] = append(m.propDefs[obj.ref], def)
			}
		}
	}
}

// Schema returns the schema identifier from the file header (e.g. "IFC4"),
// or "" when the header carried none.
func (m *Model) Schema() string {
	return m.schema
}

// ClassCount is the number of instances of one entity class.
type ClassCount struct {
	Name  string
	Count int
}

// ClassCounts returns the rooted entity classes present in the model,
// sorted by name.
func (m *Model) ClassCounts() []ClassCount {
	counts := make(map[string]int)
	for _, e := range m.rooted {
		counts[e.name]++
	}
	out := make([]ClassCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, ClassCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// parseSchema pulls the schema identifier out of FILE_SCHEMA(('IFC4')).
func parseSchema(stmt string) string {
	open := strings.IndexByte(stmt, '(')
	if open < 0 {
		return ""
	}
	p := &parser{s: stmt[open:]}
	v, err := p.parseValue()
	if err != nil {
		return ""
	}
	return firstString(v)
}

func firstString(p param) string {
	if p.kind == kindString {
		return p.text
	}
	for _, item := range p.list {
		if s := firstString(item); s != "" {
			return s
		}
	}
	return ""
}

// stmtLabel returns the "#id" prefix of an instance statement for error
// messages.
func stmtLabel(stmt string) string {
	if eq := strings.IndexByte(stmt, '='); eq > 0 {
		return strings.TrimSpace(stmt[:eq])
	}
	if len(stmt) > 16 {
		return stmt[:16]
	}
	return stmt
}
