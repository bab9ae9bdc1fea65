package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// CompileFilter compiles a boolean node-filter expression into a NodeFilter.
// The expression sees the candidate node as:
//
//	kind       node kind name, e.g. "element"
//	name       node name (qualified)
//	local      local name
//	namespace  namespace URI
//	value      node value
//	attr(n)    attribute value by qualified name, "" if absent
//
// A true result accepts the node, false skips it. Evaluation errors skip the
// node as well (and are traced), so a broken expression degrades to an empty
// traversal rather than a panic mid-walk.
func CompileFilter(code string) (NodeFilter, error) {
	prog, err := expr.Compile(code, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	return &exprFilter{prog: prog}, nil
}

type exprFilter struct {
	prog *vm.Program
}

func (f *exprFilter) AcceptNode(n *Node) FilterResult {
	env := map[string]interface{}{
		"kind":      n.kind.String(),
		"name":      n.name,
		"local":     n.LocalName(),
		"namespace": n.namespace,
		"value":     n.value,
		"attr": func(name string) string {
			for _, a := range n.attributes {
				if a.name == name {
					return a.value
				}
			}
			return ""
		},
	}
	out, err := expr.Run(f.prog, env)
	if err != nil {
		tracer().Errorf("filter expression failed on %v: %v", n, err)
		return FilterSkip
	}
	if ok, _ := out.(bool); ok {
		return FilterAccept
	}
	return FilterSkip
}
