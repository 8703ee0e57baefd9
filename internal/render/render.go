// Package render encodes schema documents as text trees, JSON or YAML.
package render

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/models"
	"gopkg.in/yaml.v3"
)

// Node kinds used as the discriminator in JSON and YAML output.
const (
	KindComplex = "complex"
	KindLeaf    = "leaf"
)

// NodeView is the serialisable projection of a schema node.
type NodeView struct {
	Kind       string     `json:"kind" yaml:"kind"`
	Name       string     `json:"name" yaml:"name"`
	Path       string     `json:"path" yaml:"path"`
	Collection string     `json:"collection" yaml:"collection"`
	Status     string     `json:"status" yaml:"status"`
	Type       string     `json:"type,omitempty" yaml:"type,omitempty"`
	Value      any        `json:"value,omitempty" yaml:"value,omitempty"`
	Fields     []NodeView `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// DocumentView is the serialisable projection of a schema document.
type DocumentView struct {
	Fields []NodeView `json:"fields" yaml:"fields"`
}

// View projects doc into its serialisable form.
func View(doc *models.Document) DocumentView {
	view := DocumentView{Fields: make([]NodeView, 0)}
	if doc == nil {
		return view
	}
	for _, n := range doc.Fields {
		view.Fields = append(view.Fields, nodeView(n))
	}
	return view
}

func nodeView(n models.Node) NodeView {
	base := n.Base()
	v := NodeView{
		Name:       base.Name,
		Path:       base.Path,
		Collection: string(base.Collection),
		Status:     string(base.Status),
	}
	switch node := n.(type) {
	case *models.ComplexNode:
		v.Kind = KindComplex
		for _, child := range node.Fields {
			v.Fields = append(v.Fields, nodeView(child))
		}
	case *models.LeafNode:
		v.Kind = KindLeaf
		v.Type = string(node.Type)
		v.Value = sampleValue(node.Value)
	}
	return v
}

// sampleValue keeps arbitrary-precision samples exact by emitting their text.
func sampleValue(v any) any {
	switch s := v.(type) {
	case *big.Int:
		return s.String()
	case *big.Float:
		return s.Text('g', -1)
	default:
		return v
	}
}

// JSON encodes doc as indented JSON.
func JSON(doc *models.Document) ([]byte, error) {
	data, err := json.MarshalIndent(View(doc), "", "  ")
	if err != nil {
		return nil, errors.NewRenderError("failed to encode schema as JSON", err)
	}
	return append(data, '\n'), nil
}

// YAML encodes doc as YAML.
func YAML(doc *models.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(View(doc)); err != nil {
		return nil, errors.NewRenderError("failed to encode schema as YAML", err)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.NewRenderError("failed to encode schema as YAML", err)
	}
	return buf.Bytes(), nil
}

// Tree renders doc as an indented outline, one field per line:
//
//	/user  object
//	  /user/tags<>  STRING list
func Tree(doc *models.Document) string {
	var b strings.Builder
	models.Walk(doc, func(n models.Node, depth int) bool {
		base := n.Base()
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(base.Path)
		switch node := n.(type) {
		case *models.ComplexNode:
			b.WriteString("  object")
		case *models.LeafNode:
			typ := string(node.Type)
			if typ == "" {
				typ = "?"
			}
			b.WriteString("  " + typ)
		}
		if base.IsList() {
			b.WriteString(" list")
		}
		if base.Status == models.StatusUnsupported {
			b.WriteString(" unsupported")
		}
		b.WriteString("\n")
		return true
	})
	return b.String()
}

// Render encodes doc in the named format: tree, json or yaml.
func Render(doc *models.Document, format string) ([]byte, error) {
	switch format {
	case "tree":
		return []byte(Tree(doc)), nil
	case "json":
		return JSON(doc)
	case "yaml":
		return YAML(doc)
	default:
		return nil, errors.NewRenderError(fmt.Sprintf("cannot render format '%s'", format), errors.ErrUnknownFormat)
	}
}
