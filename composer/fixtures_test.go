package composer

import (
	"encoding/json"
	"testing"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

var federationComposer FederationComposerFunc

type testFragment struct {
	name string
	sdl  string
}

func mustParseFragment(t *testing.T, name, sdl string) *ServiceFragment {
	t.Helper()

	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: sdl})
	if err != nil {
		t.Fatalf("parse %s: %s", name, err)
	}

	return &ServiceFragment{Name: name, TypeDefs: doc}
}

func mustCompose(t *testing.T, fragments ...testFragment) *Result {
	t.Helper()

	var inps []*ServiceFragment
	for _, f := range fragments {
		inps = append(inps, mustParseFragment(t, f.name, f.sdl))
	}

	res, err := federationComposer.Compose(inps)
	if err != nil {
		t.Fatalf("compose: %s", err)
	}

	return res
}

func marshalMetadata(t *testing.T, md Metadata) string {
	t.Helper()

	b, err := json.Marshal(md)
	if err != nil {
		t.Fatalf("marshal metadata: %s", err)
	}

	return string(b)
}
