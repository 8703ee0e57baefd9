package models

// CollectionType marks whether a field was produced while unwrapping an array.
type CollectionType string

const (
	CollectionNone CollectionType = "NONE"
	CollectionList CollectionType = "LIST"
)

// FieldStatus tells whether a field's value could be mapped to a FieldType.
type FieldStatus string

const (
	StatusSupported   FieldStatus = "SUPPORTED"
	StatusUnsupported FieldStatus = "UNSUPPORTED"
)

// FieldType is the scalar type tag of a leaf field. The zero value means
// no type was asserted.
type FieldType string

const (
	TypeNone       FieldType = ""
	TypeInteger    FieldType = "INTEGER"
	TypeLong       FieldType = "LONG"
	TypeBigInteger FieldType = "BIG_INTEGER"
	TypeShort      FieldType = "SHORT"
	TypeFloat      FieldType = "FLOAT"
	TypeDouble     FieldType = "DOUBLE"
	TypeDecimal    FieldType = "DECIMAL"
	TypeString     FieldType = "STRING"
	TypeBoolean    FieldType = "BOOLEAN"
)

// FieldBase holds the attributes shared by complex and leaf nodes.
type FieldBase struct {
	Name       string
	Path       string
	Collection CollectionType
	Status     FieldStatus
}

// Base returns the shared attributes of the node.
func (f *FieldBase) Base() *FieldBase { return f }

// IsList reports whether the field was produced while unwrapping an array.
func (f *FieldBase) IsList() bool { return f.Collection == CollectionList }

// Node is a field of a schema document: either a *ComplexNode or a *LeafNode.
type Node interface {
	Base() *FieldBase
	node()
}

// ComplexNode is an object-shaped field owning an ordered list of children.
type ComplexNode struct {
	FieldBase
	Fields []Node
}

func (*ComplexNode) node() {}

// Append attaches children in order.
func (c *ComplexNode) Append(children ...Node) {
	c.Fields = append(c.Fields, children...)
}

// LeafNode is a scalar-shaped field.
type LeafNode struct {
	FieldBase
	Type  FieldType
	Value any // sample value taken from the example document
}

func (*LeafNode) node() {}

// Document is the root of an inferred schema.
type Document struct {
	Fields []Node
}

// Append attaches top-level fields in order.
func (d *Document) Append(fields ...Node) {
	d.Fields = append(d.Fields, fields...)
}

// Factory creates schema model values.
type Factory interface {
	NewDocument() *Document
	NewComplexNode(name string) *ComplexNode
	NewLeafNode(name string) *LeafNode
}

// DefaultFactory creates nodes with NONE collection and SUPPORTED status.
type DefaultFactory struct{}

// NewDocument returns an empty document.
func (DefaultFactory) NewDocument() *Document {
	return &Document{Fields: make([]Node, 0)}
}

// NewComplexNode returns a complex node with an empty child list.
func (DefaultFactory) NewComplexNode(name string) *ComplexNode {
	return &ComplexNode{
		FieldBase: FieldBase{Name: name, Collection: CollectionNone, Status: StatusSupported},
		Fields:    make([]Node, 0),
	}
}

// NewLeafNode returns a leaf node without a type tag.
func (DefaultFactory) NewLeafNode(name string) *LeafNode {
	return &LeafNode{
		FieldBase: FieldBase{Name: name, Collection: CollectionNone, Status: StatusSupported},
	}
}

// Walk visits every node of doc depth-first, parents before children.
// depth is 0 for top-level fields. Returning false from fn skips the
// node's children.
func Walk(doc *Document, fn func(n Node, depth int) bool) {
	if doc == nil {
		return
	}
	for _, n := range doc.Fields {
		walkNode(n, 0, fn)
	}
}

func walkNode(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	if c, ok := n.(*ComplexNode); ok {
		for _, child := range c.Fields {
			walkNode(child, depth+1, fn)
		}
	}
}

// Count returns the number of nodes in doc.
func Count(doc *Document) int {
	total := 0
	Walk(doc, func(Node, int) bool {
		total++
		return true
	})
	return total
}
