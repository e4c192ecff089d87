package composer

import (
	"encoding/json"
	"sort"

	"github.com/buildbuildio/weld/common"
	"github.com/buildbuildio/weld/format"

	"github.com/samber/lo"
	"github.com/vektah/gqlparser/v2/ast"
)

// FieldMetadata carries the federation annotations of a single field or enum
// value. Requires and Provides stay nil when the corresponding directive is
// absent; absence and an empty selection set are different things.
type FieldMetadata struct {
	Service  string
	Requires ast.SelectionSet
	Provides ast.SelectionSet
}

type TypeMetadata struct {
	// Service owning the base declaration. Empty when the base had to be
	// synthesized because the type only ever appeared in extensions.
	Service string
	// Keys holds one parsed selection set per @key occurrence on the type.
	Keys []ast.SelectionSet
	// Fields covers fields contributed via extensions plus any field
	// carrying @provides; base-declared fields without annotations have no
	// entry.
	Fields map[string]*FieldMetadata
}

// Metadata represents a typename:fieldname:annotations mapping. It is built
// alongside the composed schema as a side table; AST nodes are never
// annotated in place.
type Metadata map[string]*TypeMetadata

// Type returns the entry for typename, creating it when absent.
func (m Metadata) Type(typename string) *TypeMetadata {
	if m[typename] == nil {
		m[typename] = &TypeMetadata{Fields: make(map[string]*FieldMetadata)}
	}
	return m[typename]
}

// Field returns the entry for typename.fieldname, creating it when absent.
func (m Metadata) Field(typename, fieldname string) *FieldMetadata {
	t := m.Type(typename)
	if t.Fields[fieldname] == nil {
		t.Fields[fieldname] = &FieldMetadata{}
	}
	return t.Fields[fieldname]
}

// ServiceOf reports the service owning typename's base declaration, ok=false
// when the type is unknown or has no owner.
func (m Metadata) ServiceOf(typename string) (res string, ok bool) {
	if m[typename] == nil || m[typename].Service == "" {
		return "", false
	}
	return m[typename].Service, true
}

// FieldServiceOf reports the service that contributed typename.fieldname via
// an extension.
func (m Metadata) FieldServiceOf(typename, fieldname string) (res string, ok bool) {
	if m[typename] == nil {
		return "", false
	}
	f := m[typename].Fields[fieldname]
	if f == nil || f.Service == "" {
		return "", false
	}
	return f.Service, true
}

// Services returns every distinct service name recorded anywhere in the
// metadata, sorted.
func (m Metadata) Services() []string {
	u := make(map[string]struct{})
	for _, t := range m {
		if t.Service != "" {
			u[t.Service] = struct{}{}
		}
		for _, f := range t.Fields {
			if f.Service != "" {
				u[f.Service] = struct{}{}
			}
		}
	}

	services := lo.Keys(u)
	sort.Strings(services)

	return services
}

// KeyFields flattens each @key of typename to its top-level field names, the
// form a planner needs to build a routing query.
func (m Metadata) KeyFields(typename string) [][]string {
	if m[typename] == nil {
		return nil
	}

	return lo.Map(m[typename].Keys, func(ss ast.SelectionSet, _ int) []string {
		return lo.Map(common.SelectionSetToFields(ss, nil), func(f *ast.Field, _ int) string {
			return f.Name
		})
	})
}

func marshalSelectionSet(ss ast.SelectionSet) string {
	if len(ss) == 0 {
		return ""
	}
	return format.DebugFormatSelectionSet(ss)
}

func (t *TypeMetadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Service string                    `json:"Service"`
		Keys    []string                  `json:"Keys,omitempty"`
		Fields  map[string]*FieldMetadata `json:"Fields,omitempty"`
	}{
		Service: t.Service,
		Keys: lo.Map(t.Keys, func(ss ast.SelectionSet, _ int) string {
			return marshalSelectionSet(ss)
		}),
		Fields: t.Fields,
	})
}

func (f *FieldMetadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Service  string `json:"Service"`
		Requires string `json:"Requires,omitempty"`
		Provides string `json:"Provides,omitempty"`
	}{
		Service:  f.Service,
		Requires: marshalSelectionSet(f.Requires),
		Provides: marshalSelectionSet(f.Provides),
	})
}
