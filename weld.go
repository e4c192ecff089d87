// Package weld composes GraphQL schema fragments authored by independent
// services into one schema, together with a metadata table recording which
// service owns each type and field. Downstream planners use the metadata to
// route sub-queries; weld itself executes nothing and opens no connections.
package weld

import (
	"bytes"

	"github.com/buildbuildio/weld/composer"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
)

type config struct {
	composer composer.Composer
}

type Option func(*config)

// WithComposer substitutes the composition strategy.
func WithComposer(c composer.Composer) Option {
	return func(cfg *config) {
		cfg.composer = c
	}
}

// Compose merges fragments in input order. Order matters: when two fragments
// declare the same type or field, the later one becomes the recorded owner.
// Structural collisions are returned inside Result.Errors, not as the error
// value; callers must inspect both.
func Compose(fragments []*composer.ServiceFragment, opts ...Option) (*composer.Result, error) {
	var fc composer.FederationComposerFunc
	cfg := &config{composer: fc}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg.composer.Compose(fragments)
}

// ParseFragment parses sdl as the schema fragment contributed by service
// name. Parsing is the caller's responsibility in the composition contract;
// this helper keeps it to one call.
func ParseFragment(name, sdl string) (*composer.ServiceFragment, error) {
	doc, gqlErr := parser.ParseSchema(&ast.Source{Name: name, Input: sdl})
	if gqlErr != nil {
		return nil, gqlErr
	}

	return &composer.ServiceFragment{Name: name, TypeDefs: doc}, nil
}

func MustParseFragment(name, sdl string) *composer.ServiceFragment {
	frag, err := ParseFragment(name, sdl)
	if err != nil {
		panic(err)
	}
	return frag
}

// FormatSchema renders the composed schema as SDL.
func FormatSchema(schema *ast.Schema) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchema(schema)
	return buf.String()
}
