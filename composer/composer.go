// Package composer merges schema fragments authored by independent services
// into one schema, recording which service owns every type and field so a
// downstream planner can route sub-queries to the right place.
package composer

import (
	"errors"

	"github.com/buildbuildio/weld/gqlerrors"

	"github.com/vektah/gqlparser/v2/ast"
)

// ServiceFragment is one service's contribution to the composed schema.
// TypeDefs is consumed as-is and must not be mutated by the caller during
// composition.
type ServiceFragment struct {
	Name     string
	TypeDefs *ast.SchemaDocument
}

// Result is the outcome of composing a fragment list. Errors holds the
// structural collisions found while merging; a non-empty list commonly
// accompanies a still-usable schema, so consumers must inspect both.
type Result struct {
	Schema   *ast.Schema
	Metadata Metadata
	Errors   gqlerrors.ErrorList
}

// Composer is an interface for structs that are capable of taking a list of
// service fragments and returning something that resembles a composition of
// those fragments.
type Composer interface {
	Compose([]*ServiceFragment) (*Result, error)
}

var errNoFragments = errors.New("no service fragments to compose")

type FederationComposerFunc func(fragments []*ServiceFragment) (*Result, error)

func (FederationComposerFunc) Compose(fragments []*ServiceFragment) (*Result, error) {
	if len(fragments) == 0 {
		return nil, errNoFragments
	}

	ld := buildLedgers(fragments)
	ld.synthesizeMissingBases()

	schema, errs := assembleSchema(ld)
	md := annotateSchema(schema, ld.owners)

	return &Result{
		Schema:   schema,
		Metadata: md,
		Errors:   errs,
	}, nil
}
