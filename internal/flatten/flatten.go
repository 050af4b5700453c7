// Copyright Altrinid, 2026. All rights reserved.

// Package flatten turns element views into rectangular tabular records.
// The column set of a batch is the union of the base columns, the requested
// extra attributes, and every "{group}:{key}" pair seen across the batch.
// See docs/ARCHITECTURE.md § Flattening.
package flatten

import (
	"strings"

	"github.com/altrinid/IFC-Extractor/pkg/types"
)

// Base column names, fixed and always first in the output.
const (
	ColGlobalID = "GlobalId"
	ColEntity   = "Entity"
	ColName     = "Name"
	ColLevel    = "Level"
)

// BaseColumns lists the fixed leading columns of every export.
var BaseColumns = []string{ColGlobalID, ColEntity, ColName, ColLevel}

// Wildcard matches every element class.
const Wildcard = "*"

// ClassFilter selects which element classes are retained. The zero value
// matches everything.
type ClassFilter struct {
	names map[string]struct{}
}

// NewClassFilter builds a filter from class names. An empty list or the
// single name "*" matches every class. Matching is case-insensitive, so
// "IfcWall" retains entities stored as "IFCWALL".
func NewClassFilter(classes []string) ClassFilter {
	f := ClassFilter{}
	for _, c := range classes {
		c = strings.TrimSpace(c)
		if c == Wildcard {
			return ClassFilter{}
		}
		if c == "" {
			continue
		}
		if f.names == nil {
			f.names = make(map[string]struct{}, len(classes))
		}
		f.names[strings.ToLower(c)] = struct{}{}
	}
	return f
}

// Match reports whether elements of the given class are retained.
func (f ClassFilter) Match(class string) bool {
	if f.names == nil {
		return true
	}
	_, ok := f.names[strings.ToLower(class)]
	return ok
}

// Options adjust a flatten run.
type Options struct {
	// Limit caps the number of elements taken after class filtering;
	// 0 means unlimited. Elements skipped as unreadable still count
	// against the limit.
	Limit int
}

// Summary counts the outcome of a flatten run.
type Summary struct {
	Rows    int
	Skipped int
}

// Total returns the number of elements processed after filtering.
func (s Summary) Total() int {
	return s.Rows + s.Skipped
}

// Table is a rectangular result: every record has a value, possibly blank,
// for every column.
type Table struct {
	Columns []string
	Records []types.Record
}

// snapshot holds one element read in full during the union pass, so the
// fill pass never touches the host model again. Reading each element once
// keeps the skip count consistent between the two passes.
type snapshot struct {
	base   map[string]string
	groups []types.PropertyGroup
}

// Flatten filters elements by class, computes the union of all column names,
// and emits one record per readable element. Base columns come first, then
// the requested extra attributes in the given order, then every
// "{group}:{key}" pair in first-encounter order; ordering is never sorted,
// so repeated runs over the same input produce identical output. Elements
// whose property groups cannot be read are skipped and counted, never fatal.
func Flatten(elements []types.Element, filter ClassFilter, extras []string, opts Options) (*Table, Summary) {
	var summary Summary

	columns := make([]string, 0, len(BaseColumns)+len(extras))
	seen := make(map[string]struct{})
	addColumn := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		columns = append(columns, name)
	}
	for _, c := range BaseColumns {
		addColumn(c)
	}
	for _, attr := range extras {
		addColumn(attr)
	}

	// Union pass: read each retained element once, growing the column
	// list as new group/key pairs appear.
	var snaps []snapshot
	taken := 0
	for _, el := range elements {
		if !filter.Match(el.EntityType()) {
			continue
		}
		if opts.Limit > 0 && taken >= opts.Limit {
			break
		}
		taken++

		groups, err := el.PropertyGroups()
		if err != nil {
			summary.Skipped++
			continue
		}

		snap := snapshot{
			base: map[string]string{
				ColGlobalID: el.GlobalID(),
				ColEntity:   el.EntityType(),
				ColName:     el.Name(),
				ColLevel:    el.Level(),
			},
			groups: groups,
		}
		for _, attr := range extras {
			// A missing attribute leaves the cell blank, never errors.
			if v, ok := el.Attribute(attr); ok {
				snap.base[attr] = v
			}
		}
		for _, g := range groups {
			for _, p := range g.Props {
				addColumn(g.Name + ":" + p.Name)
			}
		}
		snaps = append(snaps, snap)
	}

	// Fill pass: emit rectangular records; columns an element lacks
	// stay blank.
	records := make([]types.Record, 0, len(snaps))
	for _, snap := range snaps {
		rec := make(types.Record, len(columns))
		for _, c := range columns {
			rec[c] = ""
		}
		for k, v := range snap.base {
			rec[k] = v
		}
		for _, g := range snap.groups {
			for _, p := range g.Props {
				rec[g.Name+":"+p.Name] = p.Value
			}
		}
		records = append(records, rec)
		summary.Rows++
	}

	return &Table{Columns: columns, Records: records}, summary
}
