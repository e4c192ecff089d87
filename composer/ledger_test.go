package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestTypeOwnersLastWriterWins(t *testing.T) {
	owners := make(typeOwners)

	owners.SetService("Product", "A")
	owners.SetService("Product", "B")

	svc, ok := owners.Service("Product")
	assert.True(t, ok)
	assert.Equal(t, "B", svc)

	owners.SetField("Product", "price", "B")
	owners.SetField("Product", "price", "C")

	svc, ok = owners.FieldService("Product", "price")
	assert.True(t, ok)
	assert.Equal(t, "C", svc)
}

func TestTypeOwnersUnknownType(t *testing.T) {
	owners := make(typeOwners)

	_, ok := owners.Service("Missing")
	assert.False(t, ok)

	_, ok = owners.FieldService("Missing", "field")
	assert.False(t, ok)

	owners.ensure("Phantom")

	svc, ok := owners.Service("Phantom")
	assert.True(t, ok)
	assert.Empty(t, svc)
}

func TestDefinitionLedgerOrder(t *testing.T) {
	ld := newDefinitionLedger()

	a1 := &ast.Definition{Kind: ast.Object, Name: "A"}
	b := &ast.Definition{Kind: ast.Object, Name: "B"}
	a2 := &ast.Definition{Kind: ast.Object, Name: "A"}

	ld.Append(a1)
	ld.Append(b)
	ld.Append(a2)

	assert.True(t, ld.Has("A"))
	assert.False(t, ld.Has("C"))

	// names in insertion order, declarations within a name in input order
	assert.Equal(t, ast.DefinitionList{a1, a2, b}, ld.Concat())
}

func TestBuildLedgersSkipsEmptyExtensions(t *testing.T) {
	frag := mustParseFragment(t, "A", `
		extend type Product @key(fields: "sku")
		extend type Product { price: Int! }
	`)

	ld := buildLedgers([]*ServiceFragment{frag})

	// both nodes queued for replay
	assert.Len(t, ld.extensions.nodes["Product"], 2)

	// the field-less extension contributed no ownership
	assert.Len(t, ld.owners["Product"].Fields, 1)

	svc, ok := ld.owners.FieldService("Product", "price")
	assert.True(t, ok)
	assert.Equal(t, "A", svc)
}

func TestBuildLedgersCollectsDirectives(t *testing.T) {
	a := mustParseFragment(t, "A", `
		directive @tag(name: String!) on FIELD_DEFINITION
		type Product { sku: String! }
	`)
	b := mustParseFragment(t, "B", `
		directive @tag(name: String!) on FIELD_DEFINITION | OBJECT
		type Vendor { id: ID! }
	`)

	ld := buildLedgers([]*ServiceFragment{a, b})

	// last declaration wins
	assert.Len(t, ld.directives["tag"].Locations, 2)
}
