package weld

import (
	"testing"

	"github.com/buildbuildio/weld/composer"

	"github.com/stretchr/testify/assert"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

func TestComposeEndToEnd(t *testing.T) {
	res, err := Compose([]*composer.ServiceFragment{
		MustParseFragment("catalog", `
			type Product @key(fields: "sku") {
				sku: String!
				name: String!
			}

			extend type Query {
				product(sku: String!): Product
			}
		`),
		MustParseFragment("reviews", `
			extend type Product {
				reviews: [Review!]! @requires(fields: "sku")
			}

			type Review {
				body: String!
			}
		`),
	})

	assert.NoError(t, err)
	assert.Empty(t, res.Errors)

	svc, ok := res.Metadata.ServiceOf("Product")
	assert.True(t, ok)
	assert.Equal(t, "catalog", svc)

	svc, ok = res.Metadata.FieldServiceOf("Product", "reviews")
	assert.True(t, ok)
	assert.Equal(t, "reviews", svc)

	sdl := FormatSchema(res.Schema)
	assert.Contains(t, sdl, "type Product")

	// the printed supergraph parses back
	_, gqlErr := parser.ParseSchema(&ast.Source{Name: "supergraph", Input: sdl})
	assert.Nil(t, gqlErr)
}

func TestComposeReportsStructuralErrors(t *testing.T) {
	res, err := Compose([]*composer.ServiceFragment{
		MustParseFragment("A", `type Product { name: String! }`),
		MustParseFragment("B", `extend type Product { name: String! }`),
	})

	assert.NoError(t, err)
	assert.Len(t, res.Errors, 1)
	assert.NotNil(t, res.Schema.Types["Product"])
}

type fixedComposer struct {
	res *composer.Result
}

func (c *fixedComposer) Compose([]*composer.ServiceFragment) (*composer.Result, error) {
	return c.res, nil
}

func TestWithComposer(t *testing.T) {
	want := &composer.Result{Metadata: make(composer.Metadata)}

	res, err := Compose(nil, WithComposer(&fixedComposer{res: want}))
	assert.NoError(t, err)
	assert.Same(t, want, res)
}

func TestParseFragment(t *testing.T) {
	frag, err := ParseFragment("A", `type Product { sku: String! }`)
	assert.NoError(t, err)
	assert.Equal(t, "A", frag.Name)
	assert.Len(t, frag.TypeDefs.Definitions, 1)

	_, err = ParseFragment("A", `type Product {`)
	assert.Error(t, err)

	assert.Panics(t, func() {
		MustParseFragment("A", `type Product {`)
	})
}
