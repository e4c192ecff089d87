// Package directives declares the composition directives recognized by the
// schema composer. The set is fixed: services may use these directives
// without declaring them, and every composed schema has them registered.
package directives

import "github.com/vektah/gqlparser/v2/ast"

const (
	KeyDirectiveName      = "key"
	ExternalDirectiveName = "external"
	RequiresDirectiveName = "requires"
	ProvidesDirectiveName = "provides"

	// FieldsArgument is the argument carrying a field-selection string on
	// key, requires and provides.
	FieldsArgument = "fields"
)

var blankPos = &ast.Position{Src: &ast.Source{Name: "directives/directives.go", BuiltIn: true}}

func fieldsArgument() ast.ArgumentDefinitionList {
	return ast.ArgumentDefinitionList{
		&ast.ArgumentDefinition{
			Name: FieldsArgument,
			Type: &ast.Type{
				NamedType: "String",
				NonNull:   true,
			},
			Position: blankPos,
		},
	}
}

// Key marks an object type as addressable by the given field set.
var Key = &ast.DirectiveDefinition{
	Name:      KeyDirectiveName,
	Arguments: fieldsArgument(),
	Locations: []ast.DirectiveLocation{
		ast.LocationObject,
		ast.LocationInterface,
	},
	Position: blankPos,
}

// External marks a field as owned by another service; it is declared only to
// satisfy a dependency and is stripped before merging.
var External = &ast.DirectiveDefinition{
	Name: ExternalDirectiveName,
	Locations: []ast.DirectiveLocation{
		ast.LocationFieldDefinition,
	},
	Position: blankPos,
}

// Requires names fields of the parent type the declaring service needs
// resolved before it can resolve this field.
var Requires = &ast.DirectiveDefinition{
	Name:      RequiresDirectiveName,
	Arguments: fieldsArgument(),
	Locations: []ast.DirectiveLocation{
		ast.LocationFieldDefinition,
	},
	Position: blankPos,
}

// Provides names fields of the returned type the declaring service is able
// to resolve itself, sparing a round trip to the owner.
var Provides = &ast.DirectiveDefinition{
	Name:      ProvidesDirectiveName,
	Arguments: fieldsArgument(),
	Locations: []ast.DirectiveLocation{
		ast.LocationFieldDefinition,
	},
	Position: blankPos,
}

// Registry returns the full composition directive set, in declaration order.
func Registry() ast.DirectiveDefinitionList {
	return ast.DirectiveDefinitionList{Key, External, Requires, Provides}
}
