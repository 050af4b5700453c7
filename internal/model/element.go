package model

import (
	"fmt"
	"strings"

	"github.com/altrinid/IFC-Extractor/pkg/types"
)

// attrIndex maps the top-level attribute names the extractor understands to
// their positions in the nine-slot IfcElement layout shared by the common
// building element classes. An instance with fewer parameters simply lacks
// the attribute.
var attrIndex = map[string]int{
	"GlobalId":       0,
	"Name":           2,
	"Description":    3,
	"ObjectType":     4,
	"Tag":            7,
	"PredefinedType": 8,
}

// classAttrIndex overrides attrIndex for classes that insert extra
// attributes ahead of PredefinedType.
var classAttrIndex = map[string]map[string]int{
	"IFCDOOR": {
		"OverallHeight":  8,
		"OverallWidth":   9,
		"PredefinedType": 10,
	},
	"IFCWINDOW": {
		"OverallHeight":  8,
		"OverallWidth":   9,
		"PredefinedType": 10,
	},
}

// stepElement adapts one parsed entity to the types.Element view.
type stepElement struct {
	m *Model
	e *entity
}

// Elements returns a view for every rooted entity, in file order. Class
// selection is the flattener's job; the model hands out the whole file.
func (m *Model) Elements() []types.Element {
	out := make([]types.Element, len(m.rooted))
	for i, e := range m.rooted {
		out[i] = &stepElement{m: m, e: e}
	}
	return out
}

func (el *stepElement) GlobalID() string {
	gid, _ := globalID(el.e)
	return gid
}

func (el *stepElement) EntityType() string {
	return el.e.name
}

func (el *stepElement) Name() string {
	return displayName(el.e)
}

// Level resolves the containing spatial structure through
// IfcRelContainedInSpatialStructure. A missing or dangling containment
// yields "", not an error.
func (el *stepElement) Level() string {
	sid, ok := el.m.contained[el.e.id]
	if !ok {
		return ""
	}
	s, ok := el.m.entities[sid]
	if !ok {
		return ""
	}
	return displayName(s)
}

func (el *stepElement) Attribute(name string) (string, bool) {
	pos, ok := classAttrIndex[el.e.name][name]
	if !ok {
		pos, ok = attrIndex[name]
	}
	if !ok || pos >= len(el.e.params) {
		return "", false
	}
	return el.e.params[pos].scalar()
}

// PropertyGroups collects the element's property and quantity sets through
// IfcRelDefinesByProperties. A dangling definition reference makes the
// whole element unreadable.
func (el *stepElement) PropertyGroups() ([]types.PropertyGroup, error) {
	var groups []types.PropertyGroup
	for _, id := range el.m.propDefs[el.e.id] {
		def, ok := el.m.entities[id]
		if !ok {
			return nil, fmt.Errorf("dangling property definition #%d", id)
		}
		switch def.name {
		case entPropertySet:
			groups = append(groups, el.propertySet(def))
		case entQuantitySet:
			groups = append(groups, el.quantitySet(def))
		}
	}
	return groups, nil
}

// propertySet flattens an IfcPropertySet:
// (GlobalId, OwnerHistory, Name, Description, HasProperties).
// Only single-value properties are read; unset values produce no entry.
func (el *stepElement) propertySet(def *entity) types.PropertyGroup {
	name, _ := def.scalarAt(2)
	g := types.PropertyGroup{Name: name}
	for _, ref := range def.listAt(4) {
		if ref.kind != kindRef {
			continue
		}
		p, ok := el.m.entities[ref.ref]
		if !ok || p.name != entSingleValue {
			continue
		}
		// IfcPropertySingleValue: (Name, Description, NominalValue, Unit)
		pname, _ := p.scalarAt(0)
		if pname == "" {
			continue
		}
		if v, ok := p.scalarAt(2); ok {
			g.Props = append(g.Props, types.Property{Name: pname, Value: v})
		}
	}
	return g
}

// quantitySet flattens an IfcElementQuantity:
// (GlobalId, OwnerHistory, Name, Description, MethodOfMeasurement, Quantities).
// Each simple quantity stores its value in the fourth slot regardless of
// measure kind (length, area, volume, count, weight, time).
func (el *stepElement) quantitySet(def *entity) types.PropertyGroup {
	name, _ := def.scalarAt(2)
	g := types.PropertyGroup{Name: name}
	for _, ref := range def.listAt(5) {
		if ref.kind != kindRef {
			continue
		}
		q, ok := el.m.entities[ref.ref]
		if !ok || !strings.HasPrefix(q.name, "IFCQUANTITY") {
			continue
		}
		qname, _ := q.scalarAt(0)
		if qname == "" {
			continue
		}
		if v, ok := q.scalarAt(3); ok {
			g.Props = append(g.Props, types.Property{Name: qname, Value: v})
		}
	}
	return g
}

// displayName falls back through Name, GlobalId, and Tag before
// synthesizing a label from the class name and instance id.
func displayName(e *entity) string {
	if v, ok := e.scalarAt(2); ok && v != "" {
		return v
	}
	if gid, ok := globalID(e); ok {
		return gid
	}
	if v, ok := e.scalarAt(7); ok && v != "" {
		return v
	}
	return fmt.Sprintf("%s_%d", e.name, e.id)
}
