//go:build js && wasm

package main

import (
	"context"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/cottand/jgenerics/classmodel"
	"github.com/cottand/jgenerics/cmd"
	"github.com/cottand/jgenerics/generics"
)

func main() {
	js.Global().Set("CheckQueries", js.FuncOf(checkQueries))

	// wait indefinitely so that Go does not terminate execution
	// and the function remains available
	<-make(chan struct{})
}

// checkQueries takes a YAML query file and, optionally, a YAML class model,
// and returns one line per query
func checkQueries(_ js.Value, args []js.Value) any {
	if len(args) == 0 {
		return "expected a query file"
	}
	registry := classmodel.NewCoreRegistry()
	if len(args) > 1 {
		if err := registry.Load("model.yaml", []byte(args[1].String())); err != nil {
			return err.Error()
		}
	}
	file, err := cmd.ParseQueryFile([]byte(args[0].String()))
	if err != nil {
		return err.Error()
	}
	engine := generics.NewEngine(generics.DefaultSettings())
	results, err := cmd.RunQueries(context.Background(), engine, registry, file.Queries, 1)
	if err != nil {
		return err.Error()
	}
	sb := &strings.Builder{}
	for _, res := range results {
		switch {
		case res.Err != nil:
			_, _ = fmt.Fprintf(sb, "%s: error: %v\n", res.Query, res.Err)
		default:
			_, _ = fmt.Fprintf(sb, "%s: %s\n", res.Query, res.Output)
		}
	}
	return sb.String()
}
