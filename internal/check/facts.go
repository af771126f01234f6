package check

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

func nodeText(n *sitter.Node, source []byte) string {
	return string(source[n.StartByte():n.EndByte()])
}

func nodePos(n *sitter.Node) (line, col int) {
	pos := n.StartPosition()
	return int(pos.Row) + 1, int(pos.Column)
}

func nodeAt(n *sitter.Node, name string) Node {
	line, col := nodePos(n)
	return Node{Name: name, Line: line, Col: col}
}

// isScopeBoundary reports whether the node opens a nested scope the
// per-definition walks must not descend into.
func isScopeBoundary(kind string) bool {
	switch kind {
	case "function_definition", "class_definition", "decorated_definition":
		return true
	}
	return false
}

// functionFacts are the documentable facts of one function body.
type functionFacts struct {
	returns []Node
	yields  []Node
	raises  []Node
}

// collectFunctionFacts walks the body of a function, without descending
// into nested definitions, and records every value-carrying return and
// yield plus every raise statement.
func collectFunctionFacts(body *sitter.Node, source []byte) functionFacts {
	var facts functionFacts
	walkFunctionBody(body, source, &facts)
	return facts
}

func walkFunctionBody(n *sitter.Node, source []byte, facts *functionFacts) {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		kind := child.Kind()

		if isScopeBoundary(kind) {
			continue
		}

		switch kind {
		case "return_statement":
			if value := firstExpression(child); value != nil {
				facts.returns = append(facts.returns, nodeAt(child, ""))
			}
			continue
		case "yield":
			if value := firstExpression(child); value != nil {
				facts.yields = append(facts.yields, nodeAt(child, ""))
			}
			// A yield expression cannot contain further statements.
			continue
		case "raise_statement":
			facts.raises = append(facts.raises, raisedException(child, source))
			continue
		}

		walkFunctionBody(child, source, facts)
	}
}

// firstExpression returns the first named child that is an expression, or
// nil when the statement carries no value. The "from" cause of a raise and
// comments are not values.
func firstExpression(n *sitter.Node) *sitter.Node {
	cause := n.ChildByFieldName("cause")
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child.Kind() == "comment" {
			continue
		}
		if cause != nil && child.Id() == cause.Id() {
			continue
		}
		return child
	}
	return nil
}

// raisedException resolves the raise operand to an exception name: a plain
// identifier, the final attribute of a dotted name, or the callee of a
// call. Anything else, including a bare raise, is an unnamed re-raise
// (empty Name) at the raise statement's position.
func raisedException(raise *sitter.Node, source []byte) Node {
	operand := firstExpression(raise)
	if operand == nil {
		return nodeAt(raise, "")
	}

	if operand.Kind() == "call" {
		if callee := operand.ChildByFieldName("function"); callee != nil {
			operand = callee
		}
	}

	switch operand.Kind() {
	case "identifier":
		return nodeAt(operand, nodeText(operand, source))
	case "attribute":
		if attr := operand.ChildByFieldName("attribute"); attr != nil {
			return nodeAt(operand, nodeText(attr, source))
		}
	}
	return nodeAt(raise, "")
}

// collectParams returns the documentable parameters of a function in
// order: positional, positional-only, keyword-only, *vararg, **kwarg.
// Parameters named self or cls are excluded from the positional groups.
func collectParams(parameters *sitter.Node, source []byte) []Node {
	var positional, posOnly, kwOnly, varargs, kwargs []Node

	// Parameters before a "/" separator are positional-only.
	slashIndex := -1
	for i := uint(0); i < parameters.NamedChildCount(); i++ {
		if parameters.NamedChild(i).Kind() == "positional_separator" {
			slashIndex = int(i)
			break
		}
	}

	afterStar := false
	for i := uint(0); i < parameters.NamedChildCount(); i++ {
		child := parameters.NamedChild(i)
		switch child.Kind() {
		case "positional_separator":
			// "/"
		case "keyword_separator":
			afterStar = true
		case "list_splat_pattern":
			afterStar = true
			if name := namedIdentifier(child, source); name != nil {
				varargs = append(varargs, *name)
			}
		case "dictionary_splat_pattern":
			if name := namedIdentifier(child, source); name != nil {
				kwargs = append(kwargs, *name)
			}
		default:
			name := parameterName(child, source)
			if name == nil {
				continue
			}
			switch {
			case afterStar:
				kwOnly = append(kwOnly, *name)
			case slashIndex >= 0 && int(i) < slashIndex:
				if !classSelfCls[name.Name] {
					posOnly = append(posOnly, *name)
				}
			default:
				if !classSelfCls[name.Name] {
					positional = append(positional, *name)
				}
			}
		}
	}

	params := make([]Node, 0, len(positional)+len(posOnly)+len(kwOnly)+len(varargs)+len(kwargs))
	params = append(params, positional...)
	params = append(params, posOnly...)
	params = append(params, kwOnly...)
	params = append(params, varargs...)
	params = append(params, kwargs...)
	return params
}

// parameterName unwraps identifier, typed, defaulted and typed-defaulted
// parameters to the identifier that names them.
func parameterName(param *sitter.Node, source []byte) *Node {
	switch param.Kind() {
	case "identifier":
		n := nodeAt(param, nodeText(param, source))
		return &n
	case "typed_parameter":
		return namedIdentifier(param, source)
	case "default_parameter", "typed_default_parameter":
		if name := param.ChildByFieldName("name"); name != nil {
			return parameterName(name, source)
		}
	}
	return nil
}

// namedIdentifier finds the first identifier child.
func namedIdentifier(n *sitter.Node, source []byte) *Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child.Kind() == "identifier" {
			node := nodeAt(child, nodeText(child, source))
			return &node
		}
	}
	return nil
}
