package check

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// classFacts splits a class's attribute targets by where they were
// assigned. Class-body targets (including property methods) demand
// documentation; method-body targets merely legitimize it.
type classFacts struct {
	classTargets  []Node
	methodTargets []Node
}

// collectClassFacts gathers attribute targets from the class body: direct
// assignments at any control-flow depth, property-decorated methods, and
// self/cls assignments at the first level of each method body. Nested
// classes are not entered.
func collectClassFacts(body *sitter.Node, source []byte) classFacts {
	var facts classFacts
	walkClassLevel(body, source, &facts)
	return facts
}

func walkClassLevel(n *sitter.Node, source []byte, facts *classFacts) {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "class_definition":
			continue
		case "function_definition":
			visitMethod(child, nil, source, facts)
			continue
		case "decorated_definition":
			def := child.ChildByFieldName("definition")
			if def != nil && def.Kind() == "function_definition" {
				visitMethod(def, decoratorExpressions(child), source, facts)
			}
			continue
		case "assignment", "augmented_assignment":
			// Chained assignments are followed here, so do not recurse.
			facts.classTargets = append(facts.classTargets, classAssignTargets(child, source)...)
			continue
		}

		walkClassLevel(child, source, facts)
	}
}

// visitMethod records a property-decorated method as a class attribute and
// collects receiver assignments from the method body.
func visitMethod(def *sitter.Node, decorators []*sitter.Node, source []byte, facts *classFacts) {
	for _, decorator := range decorators {
		if isPropertyDecorator(decorator, source) {
			if name := def.ChildByFieldName("name"); name != nil {
				facts.classTargets = append(facts.classTargets, nodeAt(def, nodeText(name, source)))
			}
			break
		}
	}

	body := def.ChildByFieldName("body")
	if body == nil {
		return
	}
	walkMethodBody(body, source, facts)
}

func walkMethodBody(n *sitter.Node, source []byte, facts *classFacts) {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if isScopeBoundary(child.Kind()) {
			continue
		}
		switch child.Kind() {
		case "assignment", "augmented_assignment":
			facts.methodTargets = append(facts.methodTargets, methodAssignTargets(child, source)...)
			continue
		}
		walkMethodBody(child, source, facts)
	}
}

// assignmentTargets yields every left-hand side of an assignment,
// following chained assignments (a = b = 1) nested in the right side.
func assignmentTargets(assign *sitter.Node) []*sitter.Node {
	var targets []*sitter.Node
	for assign != nil {
		if left := assign.ChildByFieldName("left"); left != nil {
			targets = append(targets, left)
		}
		right := assign.ChildByFieldName("right")
		if right != nil && right.Kind() == "assignment" {
			assign = right
			continue
		}
		break
	}
	return targets
}

// classAssignTargets resolves class-body assignment targets to attribute
// names. A dotted target is flattened to its outermost name; tuple and
// subscript targets are not attributes.
func classAssignTargets(assign *sitter.Node, source []byte) []Node {
	var out []Node
	for _, target := range assignmentTargets(assign) {
		for target.Kind() == "attribute" {
			object := target.ChildByFieldName("object")
			if object == nil {
				break
			}
			target = object
		}
		if target.Kind() == "identifier" {
			out = append(out, nodeAt(target, nodeText(target, source)))
		}
	}
	return out
}

// methodAssignTargets resolves method-body assignment targets of the form
// self.x / cls.x (chains flattened to the first attribute on the
// receiver).
func methodAssignTargets(assign *sitter.Node, source []byte) []Node {
	var out []Node
	for _, target := range assignmentTargets(assign) {
		for target.Kind() == "attribute" {
			object := target.ChildByFieldName("object")
			attr := target.ChildByFieldName("attribute")
			if object == nil || attr == nil {
				break
			}
			if object.Kind() == "identifier" && classSelfCls[nodeText(object, source)] {
				out = append(out, nodeAt(target, nodeText(attr, source)))
				break
			}
			target = object
		}
	}
	return out
}

// isPropertyDecorator reports whether the decorator expression marks a
// property: property, cached_property or functools.cached_property, bare
// or called.
func isPropertyDecorator(expr *sitter.Node, source []byte) bool {
	if expr.Kind() == "call" {
		if callee := expr.ChildByFieldName("function"); callee != nil {
			expr = callee
		}
	}
	switch nodeText(expr, source) {
	case "property", "cached_property", "functools.cached_property":
		return true
	}
	return false
}

// decoratorExpressions returns the expression of each decorator on a
// decorated definition.
func decoratorExpressions(decorated *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := uint(0); i < decorated.NamedChildCount(); i++ {
		child := decorated.NamedChild(i)
		if child.Kind() != "decorator" {
			continue
		}
		if child.NamedChildCount() > 0 {
			out = append(out, child.NamedChild(0))
		}
	}
	return out
}
