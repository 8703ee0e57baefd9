// Package inspector infers a schema document from one example JSON document.
//
// Objects become complex fields, scalars become typed leaf fields, and arrays
// are unwrapped: every element is inspected as if it were the value of the
// enclosing key, and the fields of all object elements are appended to the
// first element's field list. Paths are slash-delimited and carry a "<>"
// marker for each level of array unwrapping.
package inspector

import (
	"fmt"
	"strings"

	"github.com/mcncl/jsonshape/internal/config"
	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/models"
	"github.com/mcncl/jsonshape/internal/parser"
)

// Options configures an Inspector.
type Options struct {
	// MaxDepth bounds container nesting; 0 disables the check.
	MaxDepth int
	// IncludeSamples stores the example value on every leaf.
	IncludeSamples bool
	// KeepElementNodes attaches the complex field of every object element of an
	// array to the parent. When false only the first element's field is attached
	// and later elements only contribute children to it.
	KeepElementNodes bool
	// Numbers controls numeric subtype detection during decoding.
	Numbers parser.Options
	// Factory creates schema nodes. Defaults to models.DefaultFactory.
	Factory models.Factory
	// OnDiagnostic, when set, receives each diagnostic as it is raised.
	OnDiagnostic func(Diagnostic)
}

// DefaultOptions returns the options matching NewInspector.
func DefaultOptions() Options {
	return Options{
		IncludeSamples:   true,
		KeepElementNodes: true,
		Factory:          models.DefaultFactory{},
	}
}

// Result is the outcome of a successful inspection.
type Result struct {
	Document    *models.Document
	Diagnostics []Diagnostic
}

// Inspector builds schema documents. It holds no per-call state and is safe
// for concurrent use.
type Inspector struct {
	opts Options
}

// NewInspector creates a new Inspector with default options.
func NewInspector() *Inspector {
	return NewInspectorWithOptions(DefaultOptions())
}

// NewInspectorWithOptions creates a new Inspector with custom options.
func NewInspectorWithOptions(opts Options) *Inspector {
	if opts.Factory == nil {
		opts.Factory = models.DefaultFactory{}
	}
	return &Inspector{opts: opts}
}

// NewInspectorWithConfig creates a new Inspector from loaded configuration.
func NewInspectorWithConfig(cfg *config.Config, onDiagnostic func(Diagnostic)) *Inspector {
	return NewInspectorWithOptions(Options{
		MaxDepth:         cfg.Inspection.MaxDepth,
		IncludeSamples:   cfg.Inspection.IncludeSamples,
		KeepElementNodes: cfg.Inspection.KeepElementNodes,
		Numbers: parser.Options{
			BigIntegerForInts:   cfg.Numbers.BigIntegerForInts,
			BigDecimalForFloats: cfg.Numbers.BigDecimalForFloats,
		},
		OnDiagnostic: onDiagnostic,
	})
}

// Inspect decodes a JSON instance document and builds its schema. The
// document root must be an object or an array. On error no document is
// returned.
func (in *Inspector) Inspect(instance string) (*Result, error) {
	if strings.TrimSpace(instance) == "" {
		return nil, errors.NewInputError("JSON instance cannot be empty", errors.ErrEmptyInput)
	}
	root, err := parser.ParseString(instance, in.opts.Numbers)
	if err != nil {
		return nil, err
	}
	return in.InspectValue(root)
}

// InspectValue builds the schema of an already decoded document.
func (in *Inspector) InspectValue(root models.Value) (*Result, error) {
	w := &walk{
		opts: in.opts,
		doc:  in.opts.Factory.NewDocument(),
	}

	switch root.Kind {
	case models.KindObject:
		if err := w.checkDepth("/", 1); err != nil {
			return nil, err
		}
		for _, m := range root.Members {
			if err := w.member(nil, m.Key, m.Value, 2); err != nil {
				return nil, err
			}
		}
	case models.KindArray:
		if err := w.array(nil, "", root, 1); err != nil {
			return nil, err
		}
	default:
		return nil, errors.NewInputError(
			fmt.Sprintf("JSON root must be object or array, got %s", root.Kind),
			errors.ErrInvalidRoot,
		)
	}

	return &Result{Document: w.doc, Diagnostics: w.diagnostics}, nil
}

// walk is the state of a single inspection.
type walk struct {
	opts        Options
	doc         *models.Document
	diagnostics []Diagnostic
}

// member inspects the value stored under key. depth is the nesting level the
// value occupies if it is a container.
func (w *walk) member(parent *models.ComplexNode, key string, v models.Value, depth int) error {
	switch v.Kind {
	case models.KindObject:
		_, err := w.object(parent, key, v, false, true, depth)
		return err
	case models.KindArray:
		return w.array(parent, key, v, depth)
	default:
		w.leaf(parent, key, v, false)
		return nil
	}
}

// object creates the complex field for obj, attaches it before visiting its
// members, and returns it.
func (w *walk) object(parent *models.ComplexNode, key string, obj models.Value, isArray, attach bool, depth int) (*models.ComplexNode, error) {
	node := w.opts.Factory.NewComplexNode(key)
	node.Status = models.StatusSupported
	assignPath(&node.FieldBase, parent, key, isArray)

	if err := w.checkDepth(node.Path, depth); err != nil {
		return nil, err
	}
	if attach {
		w.attach(parent, node)
	}

	for _, m := range obj.Members {
		if err := w.member(node, m.Key, m.Value, depth+1); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// array unwraps arr under key. Object elements are unioned into the first
// object element's field; scalar elements each become a leaf.
func (w *walk) array(parent *models.ComplexNode, key string, arr models.Value, depth int) error {
	path := BuildPath(parentPath(parent), key)
	if len(arr.Elements) == 0 {
		w.diagnose(CodeEmptyArray, path, "ignoring empty JSON array")
		return nil
	}
	if err := w.checkDepth(path, depth); err != nil {
		return err
	}

	var representative *models.ComplexNode
	for i, element := range arr.Elements {
		switch element.Kind {
		case models.KindObject:
			attach := representative == nil || w.opts.KeepElementNodes
			node, err := w.object(parent, key, element, true, attach, depth+1)
			if err != nil {
				return err
			}
			if representative == nil {
				representative = node
			} else {
				representative.Append(node.Fields...)
			}
		case models.KindArray:
			return errors.NewInspectionError(
				fmt.Sprintf("nested JSON array at element %d of '%s'", i, ListPath(path)),
				errors.ErrNestedArray,
			)
		default:
			w.leaf(parent, key, element, true)
		}
	}
	return nil
}

// leaf creates and attaches a typed scalar field.
func (w *walk) leaf(parent *models.ComplexNode, key string, v models.Value, isArray bool) {
	field := w.opts.Factory.NewLeafNode(key)
	assignPath(&field.FieldBase, parent, key, isArray)
	w.attach(parent, field)

	c := Classify(v)
	field.Type = c.Type
	field.Status = c.Status
	if w.opts.IncludeSamples {
		field.Value = c.Sample
	}

	switch {
	case c.Status == models.StatusUnsupported:
		w.diagnose(CodeUnsupportedValue, field.Path, fmt.Sprintf("%s value has no supported field type", v.Kind))
	case v.Kind == models.KindNull:
		w.diagnose(CodeNullValue, field.Path, "null value, field type unknown")
	}
}

func (w *walk) attach(parent *models.ComplexNode, n models.Node) {
	if parent != nil {
		parent.Append(n)
		return
	}
	w.doc.Append(n)
}

func (w *walk) checkDepth(path string, depth int) error {
	if w.opts.MaxDepth > 0 && depth > w.opts.MaxDepth {
		return errors.NewInspectionError(
			fmt.Sprintf("'%s' is nested %d levels deep, limit is %d", path, depth, w.opts.MaxDepth),
			errors.ErrMaxDepthExceeded,
		)
	}
	return nil
}

func (w *walk) diagnose(code DiagnosticCode, path, message string) {
	d := Diagnostic{Code: code, Path: path, Message: message}
	w.diagnostics = append(w.diagnostics, d)
	if w.opts.OnDiagnostic != nil {
		w.opts.OnDiagnostic(d)
	}
}
