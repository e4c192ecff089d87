package composer

import (
	"github.com/vektah/gqlparser/v2/ast"
)

// definitionLedger is an insertion-ordered multimap from type name to the
// declaration nodes every service contributed under that name. Iteration
// order is the order names were first seen, so assembly output is stable
// across runs.
type definitionLedger struct {
	order []string
	nodes map[string][]*ast.Definition
}

func newDefinitionLedger() *definitionLedger {
	return &definitionLedger{nodes: make(map[string][]*ast.Definition)}
}

func (l *definitionLedger) Append(def *ast.Definition) {
	if _, ok := l.nodes[def.Name]; !ok {
		l.order = append(l.order, def.Name)
	}
	l.nodes[def.Name] = append(l.nodes[def.Name], def)
}

func (l *definitionLedger) Has(name string) bool {
	_, ok := l.nodes[name]
	return ok
}

// Concat flattens the ledger into one definition list, names in insertion
// order, declarations within a name in service-input order.
func (l *definitionLedger) Concat() ast.DefinitionList {
	var out ast.DefinitionList
	for _, name := range l.order {
		out = append(out, l.nodes[name]...)
	}
	return out
}

func (l *definitionLedger) ForEach(fn func(name string, defs []*ast.Definition)) {
	for _, name := range l.order {
		fn(name, l.nodes[name])
	}
}

// ownerProps records who resolves a type: the service holding the base
// declaration, plus a fieldname:service mapping for fields contributed via
// extensions. Base-declared fields never appear in Fields.
type ownerProps struct {
	// Service is empty when no base declaration exists anywhere, i.e. the
	// type was synthesized from extensions only.
	Service string
	Fields  map[string]string
}

// typeOwners represents a typename:fieldname:service ownership mapping.
// Writes follow a last-writer-wins rule: the ledger of declaration nodes
// keeps full history, this map only tracks the current winner.
type typeOwners map[string]*ownerProps

func (t typeOwners) ensure(typename string) *ownerProps {
	if t[typename] == nil {
		t[typename] = &ownerProps{Fields: make(map[string]string)}
	}
	return t[typename]
}

func (t typeOwners) SetService(typename, service string) {
	t.ensure(typename).Service = service
}

func (t typeOwners) SetField(typename, fieldname, service string) {
	t.ensure(typename).Fields[fieldname] = service
}

func (t typeOwners) Service(typename string) (res string, ok bool) {
	if t[typename] == nil {
		return "", false
	}
	return t[typename].Service, true
}

func (t typeOwners) FieldService(typename, fieldname string) (res string, ok bool) {
	if t[typename] == nil {
		return "", false
	}
	res, ok = t[typename].Fields[fieldname]
	return
}

type ledgers struct {
	definitions *definitionLedger
	extensions  *definitionLedger
	owners      typeOwners
	// directives holds directive definitions declared by the fragments
	// themselves, last declaration winning.
	directives map[string]*ast.DirectiveDefinition
}

// buildLedgers scans fragments once, in input order, stripping @external
// fields and partitioning declarations into base definitions and extensions.
// For ownership both loops overwrite repeatedly, so the last base
// declaration of a type and the last extension declaring a given field win.
func buildLedgers(fragments []*ServiceFragment) *ledgers {
	ld := &ledgers{
		definitions: newDefinitionLedger(),
		extensions:  newDefinitionLedger(),
		owners:      make(typeOwners),
		directives:  make(map[string]*ast.DirectiveDefinition),
	}

	for _, frag := range fragments {
		for _, def := range frag.TypeDefs.Definitions {
			def = stripExternalFields(def)
			ld.definitions.Append(def)
			ld.owners.SetService(def.Name, frag.Name)
		}

		for _, ext := range frag.TypeDefs.Extensions {
			ext = stripExternalFields(ext)

			ld.owners.ensure(ext.Name)

			switch ext.Kind {
			case ast.Object, ast.InputObject:
				for _, f := range ext.Fields {
					ld.owners.SetField(ext.Name, f.Name, frag.Name)
				}
			case ast.Enum:
				for _, v := range ext.EnumValues {
					ld.owners.SetField(ext.Name, v.Name, frag.Name)
				}
			}

			ld.extensions.Append(ext)
		}

		for _, dd := range frag.TypeDefs.Directives {
			ld.directives[dd.Name] = dd
		}
	}

	return ld
}
