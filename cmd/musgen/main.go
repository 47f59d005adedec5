package main

import (
	"os"
	"reflect"
	"strings"

	musgen "github.com/mus-format/musgen-go/mus"
	genops "github.com/mus-format/musgen-go/options/generate"
	"github.com/poiesic/corpora/core"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	// If we're in the core subpackage, cd up to project root
	if strings.HasSuffix(cwd, "core") {
		if err := os.Chdir(".."); err != nil {
			panic(err)
		}
	}
	g, err := musgen.NewCodeGenerator(
		genops.WithPkgPath("github.com/poiesic/corpora/core"),
	)
	if err != nil {
		panic(err)
	}

	for _, t := range []reflect.Type{
		reflect.TypeFor[core.ID](),
		reflect.TypeFor[core.FieldKind](),
	} {
		if err := g.AddDefinedType(t); err != nil {
			panic(err)
		}
	}

	for _, t := range []reflect.Type{
		// annotations
		reflect.TypeFor[core.Token](),
		reflect.TypeFor[core.Dependency](),
		reflect.TypeFor[core.Sentence](),
		reflect.TypeFor[core.Mention](),
		reflect.TypeFor[core.CorefChain](),
		reflect.TypeFor[core.Annotation](),
		// index records
		reflect.TypeFor[core.Field](),
		reflect.TypeFor[core.Record](),
		reflect.TypeFor[core.Posting](),
		reflect.TypeFor[core.TermVectorEntry](),
		reflect.TypeFor[core.TermVector](),
	} {
		if err := g.AddStruct(t); err != nil {
			panic(err)
		}
	}

	bs, err := g.Generate()
	if err != nil {
		panic(err)
	}

	err = os.WriteFile("./core/records_mus.gen.go", bs, 0644)
	if err != nil {
		panic(err)
	}
}
