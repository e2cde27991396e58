package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cottand/jgenerics/classmodel"
	"github.com/cottand/jgenerics/generics"
	"github.com/cottand/jgenerics/types"
)

var DescribeCmd = &cobra.Command{
	Use:          "describe 'ArrayList<String>'",
	Short:        "Show a type's declaration and the ancestors it instantiates",
	RunE:         runDescribe,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	describeFlags   *engineFlags
	describeMethods *bool
)

func init() {
	describeFlags = bindEngineFlags(DescribeCmd)
	describeMethods = DescribeCmd.Flags().Bool("methods", false, "also list the methods visible on the type")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	registry, err := describeFlags.registry()
	if err != nil {
		return err
	}
	t, err := registry.Parse(args[0])
	if err != nil {
		return err
	}
	engine := generics.NewEngine(describeFlags.settings())
	return Describe(cmd.OutOrStdout(), engine, registry, t, *describeMethods)
}

// Describe writes the declaration of t, then every ancestor declaration as
// parameterised by t and, when methods is set, every method visible on t
// with its signature as seen from t.
func Describe(w io.Writer, e *generics.Engine, r *classmodel.Registry, t *types.TypeRef, methods bool) error {
	_, _ = fmt.Fprintln(w, types.Describe(t))
	ancestors := r.AncestorNames(t)
	for _, name := range ancestors {
		decl := r.MustLookup(name)
		ancestor := decl
		if decl.IsGeneric() {
			found, err := e.FindParameterizedType(decl, t)
			if err != nil {
				return err
			}
			if found != nil {
				ancestor = found
			}
		}
		_, _ = fmt.Fprintf(w, "  %s\n", ancestor)
	}
	if !methods {
		return nil
	}
	owners := append([]string{t.Declaration().Name()}, ancestors...)
	for _, owner := range owners {
		for _, m := range r.Methods(owner) {
			resolved, err := e.ResolveMethod(t, m)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(w, "  %s\n", resolved.String())
		}
	}
	return nil
}
