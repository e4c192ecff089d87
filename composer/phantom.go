package composer

import (
	"github.com/vektah/gqlparser/v2/ast"
)

// synthesizeMissingBases fabricates an empty base declaration for every type
// that only ever appeared in extensions, so schema assembly has a definition
// to attach those extensions to. The phantom takes the kind of the first
// extension seen. No service owns such a type: picking one of the extending
// services would be a guess, so ownership stays unknown.
func (ld *ledgers) synthesizeMissingBases() {
	ld.extensions.ForEach(func(name string, exts []*ast.Definition) {
		if ld.definitions.Has(name) {
			return
		}

		first := exts[0]
		ld.definitions.Append(&ast.Definition{
			Kind:     first.Kind,
			Name:     name,
			Position: first.Position,
		})
		ld.owners.ensure(name)
	})
}
