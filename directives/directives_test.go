package directives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestRegistry(t *testing.T) {
	reg := Registry()

	assert.Len(t, reg, 4)

	names := make([]string, 0, len(reg))
	for _, dd := range reg {
		names = append(names, dd.Name)
	}
	assert.Equal(t, []string{"key", "external", "requires", "provides"}, names)
}

func TestFieldsArguments(t *testing.T) {
	for _, dd := range []*ast.DirectiveDefinition{Key, Requires, Provides} {
		arg := dd.Arguments.ForName(FieldsArgument)
		assert.NotNil(t, arg, dd.Name)
		assert.Equal(t, "String", arg.Type.NamedType)
		assert.True(t, arg.Type.NonNull)
	}

	assert.Empty(t, External.Arguments)
}

func TestLocations(t *testing.T) {
	assert.Contains(t, Key.Locations, ast.LocationObject)
	assert.Contains(t, External.Locations, ast.LocationFieldDefinition)
	assert.Contains(t, Requires.Locations, ast.LocationFieldDefinition)
	assert.Contains(t, Provides.Locations, ast.LocationFieldDefinition)
}
