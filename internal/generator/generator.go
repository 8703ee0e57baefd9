package generator

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/models"
)

// DefaultRootName is the default name for the root struct if not specified.
const DefaultRootName = "Root"

// StructDef is a generated Go struct.
type StructDef struct {
	Name   string
	Fields []FieldDef
}

// FieldDef is a single field of a generated struct.
type FieldDef struct {
	GoName  string
	GoType  string
	JSONTag string
	Comment string
}

// Generator turns schema documents into Go struct skeletons
type Generator struct {
	structNames map[string]int
	structs     []*StructDef
	imports     map[string]struct{}
	aliases     []string
}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) reset() {
	g.structNames = make(map[string]int)
	g.structs = nil
	g.imports = make(map[string]struct{})
	g.aliases = nil
}

// group collects same-named sibling fields. Union-by-append and per-element
// scalar leaves produce several nodes per name; they become one Go field.
type group struct {
	name  string
	nodes []models.Node
}

func (gr group) isComplex() bool {
	for _, n := range gr.nodes {
		if _, ok := n.(*models.ComplexNode); ok {
			return true
		}
	}
	return false
}

func (gr group) isList() bool {
	for _, n := range gr.nodes {
		if n.Base().IsList() {
			return true
		}
	}
	return false
}

// children merges the child lists of every complex node in the group.
func (gr group) children() []models.Node {
	var out []models.Node
	for _, n := range gr.nodes {
		if c, ok := n.(*models.ComplexNode); ok {
			out = append(out, c.Fields...)
		}
	}
	return out
}

func (gr group) leafTypes() []models.FieldType {
	var out []models.FieldType
	for _, n := range gr.nodes {
		if l, ok := n.(*models.LeafNode); ok && l.Type != models.TypeNone {
			out = append(out, l.Type)
		}
	}
	return out
}

func groupByName(nodes []models.Node) []group {
	index := make(map[string]int)
	var groups []group
	for _, n := range nodes {
		name := n.Base().Name
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, group{name: name})
		}
		groups[i].nodes = append(groups[i].nodes, n)
	}
	return groups
}

// GenerateStructs generates Go struct definitions for doc
func (g *Generator) GenerateStructs(doc *models.Document, packageName, rootName string) (string, error) {
	if doc == nil {
		return "", errors.NewGenerateError("schema document is nil", nil)
	}
	if packageName == "" {
		packageName = "main"
	}
	if rootName == "" {
		rootName = DefaultRootName
	}
	rootName = goName(rootName)
	g.reset()

	groups := groupByName(doc.Fields)
	if len(groups) == 1 && groups[0].name == "" {
		// Array at the document root.
		root := groups[0]
		if root.isComplex() {
			g.defineStruct(rootName, root.children())
			g.aliases = append(g.aliases, fmt.Sprintf("type %sList []*%s", rootName, rootName))
		} else {
			g.aliases = append(g.aliases, fmt.Sprintf("type %s []%s", rootName, g.leafType(mergeTypes(root.leafTypes()))))
		}
	} else {
		g.defineStruct(rootName, doc.Fields)
	}

	return g.write(packageName), nil
}

// defineStruct registers a struct for fields and returns its final name.
func (g *Generator) defineStruct(suggestedName string, fields []models.Node) string {
	def := &StructDef{Name: g.generateUniqueStructName(suggestedName)}
	g.structs = append(g.structs, def)

	fieldNames := make(map[string]int)
	for _, gr := range groupByName(fields) {
		fieldName := goName(gr.name)
		if n := fieldNames[fieldName]; n > 0 {
			fieldNames[fieldName] = n + 1
			fieldName = fmt.Sprintf("%s%d", fieldName, n)
		} else {
			fieldNames[fieldName] = 1
		}

		var goType string
		optional := true
		if gr.isComplex() {
			structName := g.defineStruct(def.Name+fieldName, gr.children())
			goType = "*" + structName
		} else {
			goType = g.leafType(mergeTypes(gr.leafTypes()))
			optional = goType == "any" || strings.HasPrefix(goType, "*")
		}
		if gr.isList() {
			goType = "[]" + goType
			optional = true
		}

		field := FieldDef{GoName: fieldName, GoType: goType}
		if validTagName(gr.name) {
			tag := gr.name
			if optional {
				tag += ",omitempty"
			}
			field.JSONTag = fmt.Sprintf("`json:\"%s\"`", tag)
		} else {
			// encoding/json cannot name this key in a tag
			field.JSONTag = "`json:\"-\"`"
			field.Comment = "key " + strconv.Quote(gr.name)
		}
		def.Fields = append(def.Fields, field)
	}
	return def.Name
}

// leafType converts a field type to a Go type, recording imports.
func (g *Generator) leafType(t models.FieldType) string {
	switch t {
	case models.TypeInteger:
		return "int32"
	case models.TypeLong:
		return "int64"
	case models.TypeShort:
		return "int16"
	case models.TypeFloat:
		return "float32"
	case models.TypeDouble:
		return "float64"
	case models.TypeBigInteger:
		g.imports["math/big"] = struct{}{}
		return "*big.Int"
	case models.TypeDecimal:
		g.imports["math/big"] = struct{}{}
		return "*big.Float"
	case models.TypeString:
		return "string"
	case models.TypeBoolean:
		return "bool"
	default:
		return "any"
	}
}

// mergeTypes picks one type for same-named leaves. Mixed integer widths widen
// to the largest; integers mixed with floating point become DOUBLE (DECIMAL
// if a decimal is present); anything else without agreement has no type.
func mergeTypes(types []models.FieldType) models.FieldType {
	if len(types) == 0 {
		return models.TypeNone
	}
	same := true
	for _, t := range types[1:] {
		if t != types[0] {
			same = false
			break
		}
	}
	if same {
		return types[0]
	}

	best := models.TypeNone
	bestRank := 0
	for _, t := range types {
		rank, numeric := numericRank[t]
		if !numeric {
			return models.TypeNone
		}
		if rank > bestRank {
			best, bestRank = t, rank
		}
	}
	if bestRank < numericRank[models.TypeFloat] {
		return best
	}
	for _, t := range types {
		if t == models.TypeDecimal {
			return models.TypeDecimal
		}
	}
	return models.TypeDouble
}

var numericRank = map[models.FieldType]int{
	models.TypeShort:      1,
	models.TypeInteger:    2,
	models.TypeLong:       3,
	models.TypeBigInteger: 4,
	models.TypeFloat:      5,
	models.TypeDouble:     6,
	models.TypeDecimal:    7,
}

// generateUniqueStructName ensures that the struct name is unique by appending a number if needed.
func (g *Generator) generateUniqueStructName(baseName string) string {
	name := baseName
	count := g.structNames[baseName]
	if count > 0 {
		name = fmt.Sprintf("%s%d", baseName, count)
	}
	g.structNames[baseName] = count + 1
	return name
}

// validTagName reports whether key can be used as the name in a json struct
// tag, using the same character set encoding/json accepts.
func validTagName(key string) bool {
	if key == "" {
		return false
	}
	for _, c := range key {
		switch {
		case strings.ContainsRune("!#$%&()*+-./:;<=>?@[]^_{|}~ ", c):
		case !unicode.IsLetter(c) && !unicode.IsDigit(c):
			return false
		}
	}
	return true
}

// goName converts a JSON key to a Go-style PascalCase identifier.
func goName(jsonKey string) string {
	name := strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, strcase.ToCamel(jsonKey))
	if name == "" {
		return "Field"
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "F" + name
	}
	return name
}

func (g *Generator) write(packageName string) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("package %s\n", packageName))

	if len(g.imports) > 0 {
		imports := make([]string, 0, len(g.imports))
		for imp := range g.imports {
			imports = append(imports, imp)
		}
		sort.Strings(imports)

		buf.WriteString("\nimport (\n")
		for _, imp := range imports {
			buf.WriteString(fmt.Sprintf("\t\"%s\"\n", imp))
		}
		buf.WriteString(")\n")
	}

	for _, structDef := range g.structs {
		buf.WriteString("\n")
		buf.WriteString(fmt.Sprintf("type %s struct {\n", structDef.Name))

		// Calculate the maximum width for field names and types for proper alignment
		maxNameWidth := 0
		maxTypeWidth := 0
		for _, field := range structDef.Fields {
			if len(field.GoName) > maxNameWidth {
				maxNameWidth = len(field.GoName)
			}
			if len(field.GoType) > maxTypeWidth {
				maxTypeWidth = len(field.GoType)
			}
		}

		for _, field := range structDef.Fields {
			buf.WriteString(fmt.Sprintf("\t%-*s %-*s %s",
				maxNameWidth, field.GoName,
				maxTypeWidth, field.GoType,
				field.JSONTag))
			if field.Comment != "" {
				buf.WriteString(" // " + field.Comment)
			}
			buf.WriteString("\n")
		}
		buf.WriteString("}\n")
	}

	for _, alias := range g.aliases {
		buf.WriteString("\n" + alias + "\n")
	}

	return buf.String()
}
