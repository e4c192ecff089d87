package composer

import (
	"github.com/buildbuildio/weld/directives"

	"github.com/samber/lo"
	"github.com/vektah/gqlparser/v2/ast"
)

// stripExternalFields returns def without the fields annotated @external.
// Such fields declare a dependency on a field resolved elsewhere, not a new
// field, so merging them would raise spurious collisions against the owning
// service's real declaration. The input node is never mutated: when anything
// is stripped a shallow copy with a rebuilt field list is returned.
func stripExternalFields(def *ast.Definition) *ast.Definition {
	if len(def.Fields) == 0 {
		return def
	}

	kept := lo.Filter(def.Fields, func(f *ast.FieldDefinition, _ int) bool {
		return f.Directives.ForName(directives.ExternalDirectiveName) == nil
	})

	if len(kept) == len(def.Fields) {
		return def
	}

	stripped := *def
	stripped.Fields = kept
	return &stripped
}
