package generator

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/formatter"
	"github.com/mcncl/jsonshape/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(name string, typ models.FieldType) *models.LeafNode {
	n := models.DefaultFactory{}.NewLeafNode(name)
	n.Type = typ
	return n
}

func listLeaf(name string, typ models.FieldType) *models.LeafNode {
	n := leaf(name, typ)
	n.Collection = models.CollectionList
	return n
}

func complexNode(name string, children ...models.Node) *models.ComplexNode {
	n := models.DefaultFactory{}.NewComplexNode(name)
	n.Append(children...)
	return n
}

func listComplex(name string, children ...models.Node) *models.ComplexNode {
	n := complexNode(name, children...)
	n.Collection = models.CollectionList
	return n
}

func document(fields ...models.Node) *models.Document {
	doc := models.DefaultFactory{}.NewDocument()
	doc.Append(fields...)
	return doc
}

func TestGenerateStructs_SimpleObject(t *testing.T) {
	doc := document(
		leaf("name", models.TypeString),
		leaf("age", models.TypeInteger),
		leaf("active", models.TypeBoolean),
	)

	generator := NewGenerator()
	result, err := generator.GenerateStructs(doc, "main", "Person")

	require.NoError(t, err)
	expectedCode := `package main

type Person struct {
	Name   string ` + "`json:\"name\"`" + `
	Age    int32  ` + "`json:\"age\"`" + `
	Active bool   ` + "`json:\"active\"`" + `
}
`

	assert.Equal(t, expectedCode, result)
}

func TestGenerateStructs_NestedStructs(t *testing.T) {
	doc := document(
		leaf("id", models.TypeInteger),
		complexNode("profile",
			leaf("email", models.TypeString),
			leaf("score", models.TypeDouble),
		),
	)

	generator := NewGenerator()
	result, err := generator.GenerateStructs(doc, "main", "User")

	require.NoError(t, err)
	expectedCode := `package main

type User struct {
	Id      int32        ` + "`json:\"id\"`" + `
	Profile *UserProfile ` + "`json:\"profile,omitempty\"`" + `
}

type UserProfile struct {
	Email string  ` + "`json:\"email\"`" + `
	Score float64 ` + "`json:\"score\"`" + `
}
`

	assert.Equal(t, expectedCode, result)
}

func TestGenerateStructs_WithImports(t *testing.T) {
	doc := document(
		leaf("amount", models.TypeDecimal),
		leaf("total", models.TypeBigInteger),
	)

	generator := NewGenerator()
	result, err := generator.GenerateStructs(doc, "main", "")

	require.NoError(t, err)
	expectedCode := `package main

import (
	"math/big"
)

type Root struct {
	Amount *big.Float ` + "`json:\"amount,omitempty\"`" + `
	Total  *big.Int   ` + "`json:\"total,omitempty\"`" + `
}
`

	assert.Equal(t, expectedCode, result)
}

func TestGenerateStructs_ListFieldsAreUnioned(t *testing.T) {
	doc := document(
		listComplex("items", leaf("id", models.TypeInteger)),
		listComplex("items", leaf("id", models.TypeLong), leaf("label", models.TypeString)),
		listLeaf("tags", models.TypeString),
		listLeaf("tags", models.TypeString),
	)

	generator := NewGenerator()
	result, err := generator.GenerateStructs(doc, "main", "Root")

	require.NoError(t, err)
	expectedCode := `package main

type Root struct {
	Items []*RootItems ` + "`json:\"items,omitempty\"`" + `
	Tags  []string     ` + "`json:\"tags,omitempty\"`" + `
}

type RootItems struct {
	Id    int64  ` + "`json:\"id\"`" + `
	Label string ` + "`json:\"label\"`" + `
}
`

	assert.Equal(t, expectedCode, result)
}

func TestGenerateStructs_RootArrayOfObjects(t *testing.T) {
	doc := document(
		listComplex("", leaf("id", models.TypeInteger)),
		listComplex("", leaf("id", models.TypeInteger)),
	)

	generator := NewGenerator()
	result, err := generator.GenerateStructs(doc, "main", "Root")

	require.NoError(t, err)
	expectedCode := `package main

type Root struct {
	Id int32 ` + "`json:\"id\"`" + `
}

type RootList []*Root
`

	assert.Equal(t, expectedCode, result)
}

func TestGenerateStructs_RootArrayOfScalars(t *testing.T) {
	doc := document(
		listLeaf("", models.TypeInteger),
		listLeaf("", models.TypeLong),
	)

	generator := NewGenerator()
	result, err := generator.GenerateStructs(doc, "main", "Root")

	require.NoError(t, err)
	assert.Equal(t, "package main\n\ntype Root []int64\n", result)
}

func TestGenerateStructs_UntypedLeaves(t *testing.T) {
	doc := document(
		leaf("gone", models.TypeNone),
		leaf("mixed", models.TypeString),
		leaf("mixed", models.TypeInteger),
	)

	generator := NewGenerator()
	result, err := generator.GenerateStructs(doc, "main", "Root")

	require.NoError(t, err)
	assert.Contains(t, result, "Gone  any `json:\"gone,omitempty\"`")
	assert.Contains(t, result, "Mixed any `json:\"mixed,omitempty\"`")
}

func TestGenerateStructs_UniqueNames(t *testing.T) {
	doc := document(
		leaf("user_id", models.TypeInteger),
		leaf("userId", models.TypeInteger),
		complexNode("a_b", leaf("x", models.TypeString)),
		complexNode("a", complexNode("b", leaf("y", models.TypeString))),
	)

	generator := NewGenerator()
	result, err := generator.GenerateStructs(doc, "main", "Root")

	require.NoError(t, err)
	assert.Contains(t, result, "UserId  ")
	assert.Contains(t, result, "UserId1 ")
	assert.Contains(t, result, "type RootAB struct")
	assert.Contains(t, result, "type RootA struct")
	assert.Contains(t, result, "type RootAB1 struct")
}

func TestGenerateStructs_KeysOutsideTagSyntax(t *testing.T) {
	doc := document(
		leaf("ok", models.TypeString),
		leaf("a`b", models.TypeInteger),
		leaf(`say "hi"`, models.TypeString),
		leaf("x,y", models.TypeBoolean),
		complexNode("", leaf("inner", models.TypeString)),
	)

	generator := NewGenerator()
	result, err := generator.GenerateStructs(doc, "main", "Root")
	require.NoError(t, err)

	assert.Contains(t, result, "`json:\"ok\"`")
	assert.Equal(t, 4, strings.Count(result, "`json:\"-\"`"))
	assert.Contains(t, result, `// key "a`+"`"+`b"`)
	assert.Contains(t, result, `// key "say \"hi\""`)
	assert.Contains(t, result, `// key "x,y"`)
	assert.Contains(t, result, `// key ""`)
	assert.NotContains(t, result, "json:\"a`b")

	formatted, err := formatter.NewFormatter().Format(result)
	require.NoError(t, err, result)
	assert.Contains(t, formatted, "type Root struct")
}

func TestValidTagName(t *testing.T) {
	for _, key := range []string{"id", "user_id", "a-b", "a.b", "$ref", "名前", "with space"} {
		assert.True(t, validTagName(key), key)
	}
	for _, key := range []string{"", "a,b", `a"b`, "a`b", `a\b`, "a\nb"} {
		assert.False(t, validTagName(key), key)
	}
}

func TestGenerateStructs_PackageName(t *testing.T) {
	generator := NewGenerator()

	result, err := generator.GenerateStructs(document(leaf("a", models.TypeString)), "models", "Root")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result, "package models\n"))

	result, err = generator.GenerateStructs(document(leaf("a", models.TypeString)), "", "Root")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result, "package main\n"))
}

func TestGenerateStructs_GeneratorIsReusable(t *testing.T) {
	generator := NewGenerator()

	_, err := generator.GenerateStructs(document(leaf("amount", models.TypeDecimal)), "main", "Root")
	require.NoError(t, err)

	result, err := generator.GenerateStructs(document(leaf("name", models.TypeString)), "main", "Root")
	require.NoError(t, err)
	assert.NotContains(t, result, "math/big")
	assert.Equal(t, 1, strings.Count(result, "type Root struct"))
}

func TestGenerateStructs_EmptyDocument(t *testing.T) {
	generator := NewGenerator()
	result, err := generator.GenerateStructs(document(), "main", "Root")

	require.NoError(t, err)
	assert.Equal(t, "package main\n\ntype Root struct {\n}\n", result)
}

func TestGenerateStructs_NilDocument(t *testing.T) {
	generator := NewGenerator()
	_, err := generator.GenerateStructs(nil, "main", "Root")

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, &errors.AppError{Type: errors.ErrorTypeGenerate}))
}

func TestMergeTypes(t *testing.T) {
	tests := []struct {
		name     string
		types    []models.FieldType
		expected models.FieldType
	}{
		{"empty", nil, models.TypeNone},
		{"single", []models.FieldType{models.TypeString}, models.TypeString},
		{"same", []models.FieldType{models.TypeLong, models.TypeLong}, models.TypeLong},
		{"widen integers", []models.FieldType{models.TypeShort, models.TypeInteger}, models.TypeInteger},
		{"big integer wins", []models.FieldType{models.TypeBigInteger, models.TypeInteger}, models.TypeBigInteger},
		{"integer and double", []models.FieldType{models.TypeInteger, models.TypeDouble}, models.TypeDouble},
		{"float and integer", []models.FieldType{models.TypeFloat, models.TypeInteger}, models.TypeDouble},
		{"decimal wins", []models.FieldType{models.TypeLong, models.TypeDecimal}, models.TypeDecimal},
		{"string and integer", []models.FieldType{models.TypeString, models.TypeInteger}, models.TypeNone},
		{"boolean and string", []models.FieldType{models.TypeBoolean, models.TypeString}, models.TypeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mergeTypes(tt.types))
		})
	}
}

func TestGoName(t *testing.T) {
	assert.Equal(t, "FirstName", goName("first_name"))
	assert.Equal(t, "UserId", goName("userId"))
	assert.Equal(t, "Field", goName(""))
	assert.True(t, strings.HasPrefix(goName("2fa"), "F2"))
	assert.Equal(t, "Ab", goName("a`b"))
	assert.Equal(t, "Xy", goName("x,y"))
	assert.Equal(t, "Field", goName(`"`))
}
