// Copyright Altrinid, 2026. All rights reserved.

// Package types defines shared data structures for the extraction pipeline.
// See docs/ARCHITECTURE.md § Data Structures.
package types

// Element is a read-only view of one model object (wall, door, storey, etc.)
// for the duration of an export run. Implementations source base attributes
// and property groups from the host model; consumers never mutate them.
type Element interface {
	// GlobalID returns the element's globally unique identifier.
	GlobalID() string

	// EntityType returns the element's class name (e.g. "IfcWall").
	EntityType() string

	// Name returns a display name for the element. Implementations fall
	// back to the global ID, the Tag attribute, or a synthetic
	// "{class}_{id}" label when the element carries no name.
	Name() string

	// Level returns the name of the containing building storey, or ""
	// when the element has no spatial container.
	Level() string

	// Attribute looks up a top-level attribute by name. The second
	// return is false when the attribute does not exist on this element
	// or holds no scalar value.
	Attribute(name string) (string, bool)

	// PropertyGroups returns the property and quantity sets attached to
	// the element. A non-nil error marks the whole element unreadable;
	// callers skip such elements and count them.
	PropertyGroups() ([]PropertyGroup, error)
}

// Property is one key-value entry inside a PropertyGroup.
type Property struct {
	Name  string
	Value string
}

// PropertyGroup is a named bundle of properties attached to an element:
// a property set (Pset) or quantity set (Qto). Props preserve source order.
type PropertyGroup struct {
	Name  string
	Props []Property
}

// Record is one flattened output row, mapping column name to cell value.
// Grouped properties use "{group}:{key}" column names.
type Record map[string]string
