package composer

import (
	"strings"

	"github.com/buildbuildio/weld/common"
	"github.com/buildbuildio/weld/directives"
	"github.com/buildbuildio/weld/gqlerrors"

	"github.com/samber/lo"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

var defaultScalars = []string{"Int", "Float", "String", "Boolean", "ID"}

// assembleSchema builds the composed schema in two passes: every base
// declaration first, then every extension. Each pass validates its document
// before merging and the collected errors are informational: the merge
// always proceeds, so the returned schema reflects the union of all
// declarations even when collisions were reported.
func assembleSchema(ld *ledgers) (*ast.Schema, gqlerrors.ErrorList) {
	schema := emptySchema()

	for name, dd := range ld.directives {
		schema.Directives[name] = dd
	}

	var errs gqlerrors.ErrorList

	defs := ld.definitions.Concat()
	errs = gqlerrors.ExtendErrorList(errs, validateDefinitions(schema, defs))
	for _, def := range defs {
		mergeDefinition(schema, def)
	}

	exts := ld.extensions.Concat()
	errs = gqlerrors.ExtendErrorList(errs, validateExtensions(schema, exts))
	for _, ext := range exts {
		mergeExtension(schema, ext)
	}

	bindRootTypes(schema)
	rebuildDerivedMaps(schema)

	return schema, errs
}

// emptySchema returns a schema holding only the default scalars and the
// composition directive registry, the starting point both merge passes
// extend.
func emptySchema() *ast.Schema {
	schema := &ast.Schema{
		Types:         make(map[string]*ast.Definition),
		Directives:    make(map[string]*ast.DirectiveDefinition),
		PossibleTypes: make(map[string][]*ast.Definition),
		Implements:    make(map[string][]*ast.Definition),
	}

	for _, name := range defaultScalars {
		schema.Types[name] = &ast.Definition{
			Kind:    ast.Scalar,
			Name:    name,
			BuiltIn: true,
		}
	}

	for _, dd := range directives.Registry() {
		schema.Directives[dd.Name] = dd
	}

	return schema
}

// validateDefinitions reports every re-declaration of a type name and every
// member declared twice within one node. Collisions with the seeded builtin
// scalars are not reported: builtins are contributed by no service, so there
// is nobody to blame.
func validateDefinitions(schema *ast.Schema, defs ast.DefinitionList) gqlerror.List {
	var errs gqlerror.List

	seen := make(map[string]*ast.Definition)
	for _, def := range defs {
		if prev, ok := seen[def.Name]; ok {
			errs = append(errs, gqlerror.ErrorPosf(def.Position, "There can be only one type named %q.", def.Name))

			if def.Kind == ast.Union && prev.Kind == ast.Union && !common.IsEqual(prev.Types, def.Types) {
				errs = append(errs, gqlerror.ErrorPosf(def.Position, "union collision: %s conflicting types %v(%v)", def.Name, prev.Types, def.Types))
			}
		} else if existing := schema.Types[def.Name]; existing != nil && !existing.BuiltIn {
			errs = append(errs, gqlerror.ErrorPosf(def.Position, "There can be only one type named %q.", def.Name))
		}
		seen[def.Name] = def

		errs = append(errs, validateUniqueMembers(def)...)
	}

	return errs
}

func validateUniqueMembers(def *ast.Definition) gqlerror.List {
	var errs gqlerror.List

	fields := make(map[string]struct{})
	for _, f := range def.Fields {
		if _, ok := fields[f.Name]; ok {
			errs = append(errs, gqlerror.ErrorPosf(f.Position, "Field %s.%s can only be defined once.", def.Name, f.Name))
		}
		fields[f.Name] = struct{}{}
	}

	values := make(map[string]struct{})
	for _, v := range def.EnumValues {
		if _, ok := values[v.Name]; ok {
			errs = append(errs, gqlerror.ErrorPosf(v.Position, "Enum value %s.%s can only be defined once.", def.Name, v.Name))
		}
		values[v.Name] = struct{}{}
	}

	return errs
}

// validateExtensions runs against the schema populated by the first pass.
// The member set of each target type is tracked across extensions, so both
// base-versus-extension and extension-versus-extension collisions surface.
func validateExtensions(schema *ast.Schema, exts ast.DefinitionList) gqlerror.List {
	var errs gqlerror.List

	seen := make(map[string]map[string]struct{})
	members := func(typename string) map[string]struct{} {
		set, ok := seen[typename]
		if ok {
			return set
		}
		set = make(map[string]struct{})
		if def := schema.Types[typename]; def != nil {
			for _, f := range def.Fields {
				set[f.Name] = struct{}{}
			}
			for _, v := range def.EnumValues {
				set[v.Name] = struct{}{}
			}
		}
		seen[typename] = set
		return set
	}

	for _, ext := range exts {
		set := members(ext.Name)

		for _, f := range ext.Fields {
			if _, ok := set[f.Name]; ok {
				errs = append(errs, gqlerror.ErrorPosf(f.Position, "Field %s.%s already exists in the schema. It cannot also be defined in this type extension.", ext.Name, f.Name))
			}
			set[f.Name] = struct{}{}
		}

		for _, v := range ext.EnumValues {
			if _, ok := set[v.Name]; ok {
				errs = append(errs, gqlerror.ErrorPosf(v.Position, "Enum value %s.%s already exists in the schema. It cannot also be defined in this type extension.", ext.Name, v.Name))
			}
			set[v.Name] = struct{}{}
		}
	}

	return errs
}

func mergeDefinition(schema *ast.Schema, def *ast.Definition) {
	existing := schema.Types[def.Name]
	if existing == nil || existing.BuiltIn {
		schema.Types[def.Name] = cloneDefinition(def)
		return
	}

	mergeInto(existing, def)
}

func mergeExtension(schema *ast.Schema, ext *ast.Definition) {
	existing := schema.Types[ext.Name]
	if existing == nil {
		schema.Types[ext.Name] = cloneDefinition(ext)
		return
	}

	mergeInto(existing, ext)
}

// cloneDefinition copies def deeply enough that later merges never write
// into the caller's fragment AST.
func cloneDefinition(def *ast.Definition) *ast.Definition {
	cp := *def
	cp.Fields = append(ast.FieldList{}, def.Fields...)
	cp.EnumValues = append(ast.EnumValueList{}, def.EnumValues...)
	cp.Directives = append(ast.DirectiveList{}, def.Directives...)
	cp.Interfaces = append([]string{}, def.Interfaces...)
	cp.Types = append([]string{}, def.Types...)
	return &cp
}

// mergeInto folds src into dst: same-named fields and enum values are
// replaced (last applied wins), new ones are appended, interface and union
// member lists grow by the members not yet present. Directive occurrences
// accumulate so the annotator sees every @key regardless of which
// declaration carried it.
func mergeInto(dst, src *ast.Definition) {
	for _, f := range src.Fields {
		dst.Fields = upsertField(dst.Fields, f)
	}

	for _, v := range src.EnumValues {
		dst.EnumValues = upsertEnumValue(dst.EnumValues, v)
	}

	for _, iface := range src.Interfaces {
		if !lo.Contains(dst.Interfaces, iface) {
			dst.Interfaces = append(dst.Interfaces, iface)
		}
	}

	for _, member := range src.Types {
		if !lo.Contains(dst.Types, member) {
			dst.Types = append(dst.Types, member)
		}
	}

	dst.Directives = append(dst.Directives, src.Directives...)

	if src.Description != "" && src.Description != dst.Description {
		if dst.Description == "" {
			dst.Description = src.Description
		} else {
			dst.Description = strings.Join([]string{dst.Description, src.Description}, "\n\n")
		}
	}
}

func upsertField(list ast.FieldList, f *ast.FieldDefinition) ast.FieldList {
	for i, existing := range list {
		if existing.Name == f.Name {
			list[i] = f
			return list
		}
	}
	return append(list, f)
}

func upsertEnumValue(list ast.EnumValueList, v *ast.EnumValueDefinition) ast.EnumValueList {
	for i, existing := range list {
		if existing.Name == v.Name {
			list[i] = v
			return list
		}
	}
	return append(list, v)
}

// bindRootTypes wires the conventional root operation names. Renaming roots
// via a schema block is not supported, same as the rest of the pipeline.
func bindRootTypes(schema *ast.Schema) {
	schema.Query = schema.Types["Query"]
	schema.Mutation = schema.Types["Mutation"]
	schema.Subscription = schema.Types["Subscription"]
}

func rebuildDerivedMaps(schema *ast.Schema) {
	schema.PossibleTypes = make(map[string][]*ast.Definition)
	schema.Implements = make(map[string][]*ast.Definition)

	for _, def := range schema.Types {
		if common.IsBuiltinName(def.Name) {
			continue
		}

		switch def.Kind {
		case ast.Union:
			for _, member := range def.Types {
				if memberDef := schema.Types[member]; memberDef != nil {
					schema.PossibleTypes[def.Name] = append(schema.PossibleTypes[def.Name], memberDef)
					schema.Implements[member] = append(schema.Implements[member], def)
				}
			}
		case ast.Object:
			schema.PossibleTypes[def.Name] = append(schema.PossibleTypes[def.Name], def)
			for _, iface := range def.Interfaces {
				if ifaceDef := schema.Types[iface]; ifaceDef != nil {
					schema.PossibleTypes[iface] = append(schema.PossibleTypes[iface], def)
					schema.Implements[def.Name] = append(schema.Implements[def.Name], ifaceDef)
				}
			}
		}
	}
}
