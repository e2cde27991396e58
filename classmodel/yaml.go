package classmodel

import (
	"io/fs"

	set "github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/cottand/jgenerics/types"
)

// modelFile is the YAML form of a class model:
//
//	types:
//	  - name: ArrayList
//	    params: [E]
//	    extends: AbstractList<E>
//	    implements: [List<E>, RandomAccess]
//	    methods:
//	      - name: get
//	        returns: E
type modelFile struct {
	Types []declSpec `yaml:"types"`
}

type declSpec struct {
	Name      string   `yaml:"name"`
	Interface bool     `yaml:"interface"`
	Params    []string `yaml:"params"`
	// Extends is the superclass of a class, or the superinterfaces of an interface
	Extends       stringList   `yaml:"extends"`
	Implements    stringList   `yaml:"implements"`
	InCompilation bool         `yaml:"inCompilation"`
	Methods       []methodSpec `yaml:"methods"`
}

type methodSpec struct {
	Name       string     `yaml:"name"`
	TypeParams []string   `yaml:"typeParams"`
	Params     stringList `yaml:"params"`
	// Returns is empty or void for methods returning nothing
	Returns string `yaml:"returns"`
}

// stringList accepts either a single scalar or a sequence of scalars
type stringList []string

func (l *stringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*l = stringList{node.Value}
		return nil
	}
	var items []string
	if err := node.Decode(&items); err != nil {
		return err
	}
	*l = items
	return nil
}

// LoadFS loads the YAML class models at paths in fsys, in order
func (r *Registry) LoadFS(fsys fs.FS, paths ...string) error {
	for _, path := range paths {
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return errors.Wrapf(err, "could not read class model")
		}
		if err := r.Load(path, content); err != nil {
			return err
		}
	}
	return nil
}

// Load adds the declarations of a YAML class model to r.
// Declarations may refer to each other, and to those already in r, in any
// order. Either every declaration of the file is added or none is.
func (r *Registry) Load(filename string, content []byte) error {
	var model modelFile
	if err := yaml.Unmarshal(content, &model); err != nil {
		return errors.Wrapf(err, "could not decode class model %s", filename)
	}
	staged := r.Clone()
	if err := staged.define(model.Types); err != nil {
		return errors.Wrapf(err, "invalid class model %s", filename)
	}
	r.decls, r.methods = staged.decls, staged.methods
	logger.Debug("loaded class model", "file", filename, "types", len(model.Types))
	return nil
}

func (r *Registry) define(specs []declSpec) error {
	builders := make([]*types.Builder, len(specs))
	for i, spec := range specs {
		if spec.Name == "" {
			return errors.Errorf("declaration #%d has no name", i+1)
		}
		b := types.NewClass(spec.Name)
		if spec.Interface {
			b = types.NewInterface(spec.Name)
		}
		if spec.InCompilation {
			b.InCompilation()
		}
		if err := r.Define(b.Ref()); err != nil {
			return err
		}
		builders[i] = b
	}

	// arity must be known everywhere before any bound or supertype is parsed
	for i, spec := range specs {
		bare := make([]*types.Slot, len(spec.Params))
		for j, d := range spec.Params {
			name, err := paramName(d)
			if err != nil {
				return errors.Wrapf(err, "in %s", spec.Name)
			}
			bare[j] = types.PlaceholderOf(name)
		}
		builders[i].Params(bare...)
	}

	scopes := make([]Scope, len(specs))
	for i, spec := range specs {
		params, scope, err := r.ParseParams(spec.Params, nil)
		if err != nil {
			return errors.Wrapf(err, "in %s", spec.Name)
		}
		builders[i].Params(params...)
		scopes[i] = scope
	}

	for i, spec := range specs {
		if err := r.defineSupertypes(builders[i], spec, scopes[i]); err != nil {
			return errors.Wrapf(err, "in %s", spec.Name)
		}
	}
	if err := checkAcyclic(builders); err != nil {
		return err
	}

	for i, spec := range specs {
		decl := builders[i].Build()
		for _, m := range spec.Methods {
			method, err := r.parseMethod(decl, m, scopes[i])
			if err != nil {
				return errors.Wrapf(err, "in %s", spec.Name)
			}
			if err := r.DefineMethod(method); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Registry) defineSupertypes(b *types.Builder, spec declSpec, scope Scope) error {
	parseAll := func(exprs []string) ([]*types.TypeRef, error) {
		var ret []*types.TypeRef
		for _, expr := range exprs {
			t, err := r.ParseIn(expr, scope)
			if err != nil {
				return nil, err
			}
			if t.IsPlaceholder() || t.IsArray() {
				return nil, errors.Errorf("%s cannot be a supertype", t)
			}
			ret = append(ret, t)
		}
		return ret, nil
	}
	extends, err := parseAll(spec.Extends)
	if err != nil {
		return err
	}
	implements, err := parseAll(spec.Implements)
	if err != nil {
		return err
	}

	if spec.Interface {
		if len(implements) > 0 {
			return errors.New("an interface extends its superinterfaces, it does not implement them")
		}
		for _, t := range extends {
			if !t.IsInterface() {
				return errors.Errorf("interface cannot extend class %s", t)
			}
		}
		b.Implements(extends...)
		return nil
	}

	switch {
	case len(extends) > 1:
		return errors.Errorf("a class extends at most one class, found %d", len(extends))
	case len(extends) == 1 && extends[0].IsInterface():
		return errors.Errorf("class cannot extend interface %s", extends[0])
	case len(extends) == 1:
		b.Extends(extends[0])
	}
	for _, t := range implements {
		if !t.IsInterface() {
			return errors.Errorf("class cannot implement class %s", t)
		}
	}
	b.Implements(implements...)
	return nil
}

// checkAcyclic rejects a hierarchy where a declaration is its own ancestor.
// Previously loaded declarations are acyclic, so only the new ones can close a cycle.
func checkAcyclic(builders []*types.Builder) error {
	done := set.New[*types.TypeRef](len(builders))
	onPath := set.New[*types.TypeRef](8)

	var visit func(d *types.TypeRef) error
	visit = func(d *types.TypeRef) error {
		if done.Contains(d) {
			return nil
		}
		if !onPath.Insert(d) {
			return errors.Errorf("%s is its own supertype", d.Name())
		}
		supers := d.Interfaces()
		if s := d.Superclass(); s != nil {
			supers = append([]*types.TypeRef{s}, supers...)
		}
		for _, s := range supers {
			if err := visit(s.Declaration()); err != nil {
				return err
			}
		}
		onPath.Remove(d)
		done.Insert(d)
		return nil
	}
	for _, b := range builders {
		if err := visit(b.Ref()); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) parseMethod(owner *types.TypeRef, spec methodSpec, classScope Scope) (*types.Method, error) {
	if spec.Name == "" {
		return nil, errors.New("method has no name")
	}
	typeParams, scope, err := r.ParseParams(spec.TypeParams, classScope)
	if err != nil {
		return nil, errors.Wrapf(err, "in method %s", spec.Name)
	}
	m := &types.Method{Name: spec.Name, Owner: owner, TypeParams: typeParams}
	for _, expr := range spec.Params {
		p, err := r.ParseIn(expr, scope)
		if err != nil {
			return nil, errors.Wrapf(err, "in method %s", spec.Name)
		}
		m.Params = append(m.Params, p)
	}
	if spec.Returns != "" && spec.Returns != "void" {
		if m.Return, err = r.ParseIn(spec.Returns, scope); err != nil {
			return nil, errors.Wrapf(err, "in method %s", spec.Name)
		}
	}
	return m, nil
}
