// Copyright Altrinid, 2026. All rights reserved.

package flatten

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altrinid/IFC-Extractor/pkg/types"
)

// fakeElement is an in-memory types.Element for flattener tests.
type fakeElement struct {
	id     string
	class  string
	name   string
	level  string
	attrs  map[string]string
	groups []types.PropertyGroup
	err    error
}

func (f *fakeElement) GlobalID() string   { return f.id }
func (f *fakeElement) EntityType() string { return f.class }
func (f *fakeElement) Name() string       { return f.name }
func (f *fakeElement) Level() string      { return f.level }

func (f *fakeElement) Attribute(name string) (string, bool) {
	v, ok := f.attrs[name]
	return v, ok
}

func (f *fakeElement) PropertyGroups() ([]types.PropertyGroup, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.groups, nil
}

func group(name string, pairs ...string) types.PropertyGroup {
	g := types.PropertyGroup{Name: name}
	for i := 0; i+1 < len(pairs); i += 2 {
		g.Props = append(g.Props, types.Property{Name: pairs[i], Value: pairs[i+1]})
	}
	return g
}

func TestFlattenColumnUnion(t *testing.T) {
	elements := []types.Element{
		&fakeElement{id: "1", class: "Wall", name: "W1",
			groups: []types.PropertyGroup{group("Pset_A", "x", "1")}},
		&fakeElement{id: "2", class: "Door", name: "D1"},
	}

	table, summary := Flatten(elements, NewClassFilter([]string{Wildcard}), nil, Options{})

	assert.Equal(t, []string{"GlobalId", "Entity", "Name", "Level", "Pset_A:x"}, table.Columns)
	require.Len(t, table.Records, 2)
	assert.Equal(t, Summary{Rows: 2}, summary)

	assert.Equal(t, "1", table.Records[0]["Pset_A:x"])
	assert.Equal(t, "", table.Records[1]["Pset_A:x"], "missing group value stays blank")

	// Rectangular: every record has every column.
	for _, rec := range table.Records {
		assert.Len(t, rec, len(table.Columns))
	}
}

func TestFlattenClassFilter(t *testing.T) {
	elements := []types.Element{
		&fakeElement{id: "1", class: "IFCWALL", name: "W1"},
		&fakeElement{id: "2", class: "IFCDOOR", name: "D1"},
		&fakeElement{id: "3", class: "IFCWALL", name: "W2"},
	}

	tests := []struct {
		name    string
		classes []string
		wantIDs []string
	}{
		{"wildcard", []string{"*"}, []string{"1", "2", "3"}},
		{"empty list matches all", nil, []string{"1", "2", "3"}},
		{"single class case-insensitive", []string{"IfcWall"}, []string{"1", "3"}},
		{"multiple classes", []string{"IfcDoor", "IfcWall"}, []string{"1", "2", "3"}},
		{"unmatched class yields no rows", []string{"IfcWindow"}, nil},
		{"wildcard among names wins", []string{"IfcWall", "*"}, []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, summary := Flatten(elements, NewClassFilter(tt.classes), nil, Options{})
			var ids []string
			for _, rec := range table.Records {
				ids = append(ids, rec[ColGlobalID])
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Zero(t, summary.Skipped)
		})
	}
}

func TestFlattenExtraAttributes(t *testing.T) {
	elements := []types.Element{
		&fakeElement{id: "1", class: "Wall", name: "W1",
			attrs:  map[string]string{"Tag": "W-01", "PredefinedType": "STANDARD"},
			groups: []types.PropertyGroup{group("Pset_A", "x", "1")}},
		&fakeElement{id: "2", class: "Door", name: "D1",
			attrs: map[string]string{"Tag": "D-01"}},
	}

	table, _ := Flatten(elements, ClassFilter{}, []string{"PredefinedType", "Tag"}, Options{})

	// Extras sit between the base columns and the group columns, in the
	// requested order.
	assert.Equal(t, []string{
		"GlobalId", "Entity", "Name", "Level",
		"PredefinedType", "Tag", "Pset_A:x",
	}, table.Columns)

	assert.Equal(t, "STANDARD", table.Records[0]["PredefinedType"])
	assert.Equal(t, "D-01", table.Records[1]["Tag"])
	assert.Equal(t, "", table.Records[1]["PredefinedType"],
		"missing extra attribute yields a blank cell, not an error")
	require.Len(t, table.Records, 2, "missing attribute must not drop the row")
}

func TestFlattenFirstSeenColumnOrder(t *testing.T) {
	elements := []types.Element{
		&fakeElement{id: "1", class: "Wall",
			groups: []types.PropertyGroup{group("Pset_B", "z", "9", "a", "8")}},
		&fakeElement{id: "2", class: "Wall",
			groups: []types.PropertyGroup{group("Pset_A", "m", "7"), group("Pset_B", "a", "6")}},
	}

	table, _ := Flatten(elements, ClassFilter{}, nil, Options{})

	// First-encounter order, never sorted; repeated keys appear once.
	assert.Equal(t, []string{
		"GlobalId", "Entity", "Name", "Level",
		"Pset_B:z", "Pset_B:a", "Pset_A:m",
	}, table.Columns)

	// Identical input produces identical output.
	again, _ := Flatten(elements, ClassFilter{}, nil, Options{})
	assert.Equal(t, table.Columns, again.Columns)
	assert.Equal(t, table.Records, again.Records)
}

func TestFlattenSkipsUnreadableElements(t *testing.T) {
	elements := []types.Element{
		&fakeElement{id: "1", class: "Wall", name: "W1"},
		&fakeElement{id: "2", class: "Wall", err: errors.New("dangling property definition #99")},
		&fakeElement{id: "3", class: "Wall", name: "W3"},
	}

	table, summary := Flatten(elements, ClassFilter{}, nil, Options{})

	assert.Equal(t, Summary{Rows: 2, Skipped: 1}, summary)
	assert.Equal(t, 3, summary.Total())
	require.Len(t, table.Records, 2)
	assert.Equal(t, "1", table.Records[0][ColGlobalID])
	assert.Equal(t, "3", table.Records[1][ColGlobalID])
}

func TestFlattenLimit(t *testing.T) {
	elements := []types.Element{
		&fakeElement{id: "1", class: "Wall"},
		&fakeElement{id: "2", class: "Door"},
		&fakeElement{id: "3", class: "Wall"},
		&fakeElement{id: "4", class: "Wall"},
	}

	// The limit counts elements taken after class filtering.
	table, summary := Flatten(elements, NewClassFilter([]string{"Wall"}), nil, Options{Limit: 2})

	assert.Equal(t, 2, summary.Rows)
	require.Len(t, table.Records, 2)
	assert.Equal(t, "1", table.Records[0][ColGlobalID])
	assert.Equal(t, "3", table.Records[1][ColGlobalID])
}

func TestFlattenEmptyBatch(t *testing.T) {
	table, summary := Flatten(nil, ClassFilter{}, []string{"Tag"}, Options{})

	assert.Equal(t, []string{"GlobalId", "Entity", "Name", "Level", "Tag"}, table.Columns,
		"header is stable even with no rows")
	assert.Empty(t, table.Records)
	assert.Zero(t, summary.Total())
}

func TestFlattenColumnsAppearOnce(t *testing.T) {
	elements := []types.Element{
		&fakeElement{id: "1", class: "Wall",
			attrs:  map[string]string{"Tag": "W-01"},
			groups: []types.PropertyGroup{group("Pset_A", "x", "1"), group("Pset_A", "x", "2")}},
	}

	// "Tag" requested twice and "Pset_A:x" seen twice: each column once.
	table, _ := Flatten(elements, ClassFilter{}, []string{"Tag", "Tag"}, Options{})

	seen := make(map[string]int)
	for _, c := range table.Columns {
		seen[c]++
	}
	for c, n := range seen {
		assert.Equal(t, 1, n, "column %s repeated", c)
	}
}
