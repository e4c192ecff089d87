package common

import (
	"strings"

	"github.com/samber/lo"
	"github.com/vektah/gqlparser/v2/ast"
)

// IsBuiltinName reports whether name belongs to the introspection namespace.
func IsBuiltinName(name string) bool {
	return strings.HasPrefix(name, "__")
}

func IsEqual[T comparable](a []T, b []T) bool {
	if len(a) != len(b) {
		return false
	}

	for i, v := range a {
		if b[i] != v {
			return false
		}
	}
	return true
}

// SelectionSetToFields extracts from selection set all data as fields array
// parent definition can be null if we don't want to check anything specific
// if passed don't add fields which're not represented in parent definition
func SelectionSetToFields(selectionSet ast.SelectionSet, parentDef *ast.Definition) []*ast.Field {
	var result []*ast.Field
	for _, s := range selectionSet {
		switch s := s.(type) {
		case *ast.Field:
			if parentDef != nil && !lo.ContainsBy(parentDef.Fields, func(fd *ast.FieldDefinition) bool {
				return fd.Name == s.Name
			}) {
				continue
			}
			result = append(result, s)
		case *ast.InlineFragment:
			if parentDef != nil && s.TypeCondition != parentDef.Name {
				continue
			}
			result = append(result, SelectionSetToFields(s.SelectionSet, parentDef)...)
		}
	}

	return result
}
