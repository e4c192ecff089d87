package composer

import (
	"fmt"

	"github.com/buildbuildio/weld/directives"

	"github.com/samber/lo"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// annotateSchema walks the ownership ledger against the assembled schema and
// builds the metadata side table: owning service per type, @key selection
// sets on object types, @provides per field and @requires per
// extension-contributed field. It raises no errors.
func annotateSchema(schema *ast.Schema, owners typeOwners) Metadata {
	md := make(Metadata)

	for typename, props := range owners {
		def := schema.Types[typename]
		if def == nil {
			continue
		}

		tm := md.Type(typename)
		tm.Service = props.Service

		isObject := def.Kind == ast.Object

		if isObject {
			keys := lo.Filter(def.Directives, func(d *ast.Directive, _ int) bool {
				return d.Name == directives.KeyDirectiveName
			})
			for _, d := range keys {
				if ss, ok := directiveFieldSet(d); ok {
					tm.Keys = append(tm.Keys, ss)
				}
			}

			for _, f := range def.Fields {
				d := f.Directives.ForName(directives.ProvidesDirectiveName)
				if d == nil {
					continue
				}
				if ss, ok := directiveFieldSet(d); ok {
					md.Field(typename, f.Name).Provides = ss
				}
			}
		}

		for fieldname, service := range props.Fields {
			fm := md.Field(typename, fieldname)
			fm.Service = service

			if !isObject {
				continue
			}

			f := def.Fields.ForName(fieldname)
			if f == nil {
				continue
			}
			if d := f.Directives.ForName(directives.RequiresDirectiveName); d != nil {
				if ss, ok := directiveFieldSet(d); ok {
					fm.Requires = ss
				}
			}
		}
	}

	return md
}

// directiveFieldSet parses d's fields argument into a selection set. A
// missing or non-string argument yields ok=false and the occurrence is
// dropped from the metadata: validating directive arguments is the job of
// the SDL layer upstream of composition, not of this walk.
func directiveFieldSet(d *ast.Directive) (ast.SelectionSet, bool) {
	arg := d.Arguments.ForName(directives.FieldsArgument)
	if arg == nil || arg.Value == nil || arg.Value.Kind != ast.StringValue {
		return nil, false
	}

	return parseFieldSet(arg.Value.Raw)
}

// parseFieldSet parses a fields string like "sku vendor { id }" by wrapping
// it in a synthetic query.
func parseFieldSet(fields string) (ast.SelectionSet, bool) {
	doc, err := parser.ParseQuery(&ast.Source{
		Name:  "fields argument",
		Input: fmt.Sprintf("{ %s }", fields),
	})
	if err != nil || len(doc.Operations) == 0 {
		return nil, false
	}

	return doc.Operations[0].SelectionSet, true
}
