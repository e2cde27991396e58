package cmd

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/cottand/jgenerics/classmodel"
	"github.com/cottand/jgenerics/generics"
	"github.com/cottand/jgenerics/types"
)

// QueryFile is the YAML form of a batch of engine queries:
//
//	model: [shapes.yaml]
//	queries:
//	  - compatible: {slot: "? extends Number", candidate: Integer}
//	    expect: "true"
//	  - parameterize: {hint: ArrayList<String>, target: Collection}
//	    expect: Collection<String>
type QueryFile struct {
	// Model lists class models to load, relative to the query file
	Model   []string `yaml:"model"`
	Queries []Query  `yaml:"queries"`
}

// Query holds exactly one operation. When Expect is set the rendered
// result must equal it.
type Query struct {
	Compatible   *CompatibleQuery   `yaml:"compatible"`
	Parameterize *ParameterizeQuery `yaml:"parameterize"`
	Find         *FindQuery         `yaml:"find"`
	DeclMap      *DeclMapQuery      `yaml:"declmap"`
	Method       *MethodQuery       `yaml:"method"`
	Expect       *string            `yaml:"expect"`
}

type CompatibleQuery struct {
	Slot      string `yaml:"slot"`
	Candidate string `yaml:"candidate"`
	// Params declares type parameters that Slot and Candidate may mention
	Params []string `yaml:"params"`
}

type ParameterizeQuery struct {
	Hint   string `yaml:"hint"`
	Target string `yaml:"target"`
}

type FindQuery struct {
	Decl     string `yaml:"decl"`
	Receiver string `yaml:"receiver"`
}

type DeclMapQuery struct {
	Decl     string `yaml:"decl"`
	Receiver string `yaml:"receiver"`
	Exact    bool   `yaml:"exact"`
}

type MethodQuery struct {
	Receiver string `yaml:"receiver"`
	Name     string `yaml:"name"`
}

// Result is the outcome of one query
type Result struct {
	Query  string
	Output string
	// Err is set when the query could not be evaluated
	Err error
	// Mismatch is set when Output differs from the expected value
	Mismatch bool
}

func (r Result) Failed() bool {
	return r.Err != nil || r.Mismatch
}

// ParseQueryFile decodes a YAML query file
func ParseQueryFile(content []byte) (*QueryFile, error) {
	var f QueryFile
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("could not decode queries: %w", err)
	}
	return &f, nil
}

// RunQueries evaluates queries concurrently against a single engine, using
// at most jobs goroutines (no limit when jobs <= 0).
// Results are in the order of queries.
func RunQueries(ctx context.Context, e *generics.Engine, r *classmodel.Registry, queries []Query, jobs int) ([]Result, error) {
	results := make([]Result, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, q := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = q.evaluate(e, r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (q Query) evaluate(e *generics.Engine, r *classmodel.Registry) Result {
	var res Result
	res.Query, res.Output, res.Err = q.run(e, r)
	if res.Err == nil && q.Expect != nil && *q.Expect != res.Output {
		res.Mismatch = true
	}
	return res
}

func (q Query) run(e *generics.Engine, r *classmodel.Registry) (desc string, out string, err error) {
	switch {
	case q.Compatible != nil:
		c := q.Compatible
		desc = fmt.Sprintf("compatible %s <- %s", c.Slot, c.Candidate)
		_, scope, err := r.ParseParams(c.Params, nil)
		if err != nil {
			return desc, "", err
		}
		slot, err := r.ParseSlot(c.Slot, scope)
		if err != nil {
			return desc, "", err
		}
		candidate, err := r.ParseIn(c.Candidate, scope)
		if err != nil {
			return desc, "", err
		}
		ok, err := e.IsCompatibleWith(slot, candidate)
		return desc, strconv.FormatBool(ok), err

	case q.Parameterize != nil:
		p := q.Parameterize
		desc = fmt.Sprintf("parameterize %s as %s", p.Hint, p.Target)
		hint, err := r.Parse(p.Hint)
		if err != nil {
			return desc, "", err
		}
		target, err := r.Parse(p.Target)
		if err != nil {
			return desc, "", err
		}
		t, err := e.ParameterizeType(hint, target)
		if err != nil {
			return desc, "", err
		}
		return desc, t.String(), nil

	case q.Find != nil:
		f := q.Find
		desc = fmt.Sprintf("find %s in %s", f.Decl, f.Receiver)
		decl, receiver, err := lookupPair(r, f.Decl, f.Receiver)
		if err != nil {
			return desc, "", err
		}
		t, err := e.FindParameterizedType(decl, receiver)
		if err != nil || t == nil {
			return desc, "none", err
		}
		return desc, t.String(), nil

	case q.DeclMap != nil:
		d := q.DeclMap
		desc = fmt.Sprintf("declmap %s in %s", d.Decl, d.Receiver)
		decl, receiver, err := lookupPair(r, d.Decl, d.Receiver)
		if err != nil {
			return desc, "", err
		}
		var b generics.Bindings
		if d.Exact {
			desc += " (exact)"
			b, err = e.DeclaringActualMapExact(decl, receiver)
		} else {
			b, err = e.DeclaringActualMap(decl, receiver)
		}
		if err != nil {
			return desc, "", err
		}
		return desc, b.Spec().String(), nil

	case q.Method != nil:
		m := q.Method
		desc = fmt.Sprintf("method %s.%s", m.Receiver, m.Name)
		receiver, err := r.Parse(m.Receiver)
		if err != nil {
			return desc, "", err
		}
		method, ok := r.FindMethod(receiver, m.Name)
		if !ok {
			return desc, "", fmt.Errorf("%s has no method %s", receiver, m.Name)
		}
		resolved, err := e.ResolveMethod(receiver, method)
		if err != nil {
			return desc, "", err
		}
		return desc, resolved.String(), nil
	}
	return "empty query", "", fmt.Errorf("query names no operation")
}

func lookupPair(r *classmodel.Registry, declName, receiverExpr string) (*types.TypeRef, *types.TypeRef, error) {
	decl, ok := r.Lookup(declName)
	if !ok {
		return nil, nil, fmt.Errorf("unknown type %s", declName)
	}
	receiver, err := r.Parse(receiverExpr)
	if err != nil {
		return nil, nil, err
	}
	return decl, receiver, nil
}
