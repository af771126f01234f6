package check

import (
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"doccomplete/internal/docstring"
)

// Run checks every function, method and class definition in the parsed
// file and returns the problems in visitation order.
func Run(root *sitter.Node, source []byte, filename string, patterns *Patterns) []Problem {
	v := &visitor{
		source:   source,
		patterns: patterns,
		fileType: patterns.ClassifyFile(filepath.Base(filename)),
	}
	v.walk(root)
	return v.problems
}

type visitor struct {
	source   []byte
	patterns *Patterns
	fileType FileType
	problems []Problem
}

// walk visits definitions depth-first in pre-order. Nested definitions
// are checked independently, including inside skipped functions.
func (v *visitor) walk(n *sitter.Node) {
	switch n.Kind() {
	case "decorated_definition":
		if def := n.ChildByFieldName("definition"); def != nil {
			switch def.Kind() {
			case "function_definition":
				v.checkFunction(def, decoratorExpressions(n))
			case "class_definition":
				v.checkClass(def)
			}
			if body := def.ChildByFieldName("body"); body != nil {
				v.walk(body)
			}
		}
		return
	case "function_definition":
		v.checkFunction(n, nil)
		if body := n.ChildByFieldName("body"); body != nil {
			v.walk(body)
		}
		return
	case "class_definition":
		v.checkClass(n)
		if body := n.ChildByFieldName("body"); body != nil {
			v.walk(body)
		}
		return
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		v.walk(n.Child(i))
	}
}

func (v *visitor) checkFunction(def *sitter.Node, decorators []*sitter.Node) {
	if v.skipFunction(def, decorators) {
		return
	}

	body := def.ChildByFieldName("body")
	if body == nil {
		return
	}

	docstrNode, text, ok := findDocstring(body, v.source)
	if !ok {
		v.problems = append(v.problems, problemAt(nodeAt(def, ""), CodeDocstrMissing, msgDocstrMissing))
		return
	}

	doc := docstring.Parse(text)
	facts := collectFunctionFacts(body, v.source)

	var params []Node
	if parameters := def.ChildByFieldName("parameters"); parameters != nil {
		params = collectParams(parameters, v.source)
	}

	v.problems = append(v.problems, checkArgs(doc, docstrNode, params)...)
	v.problems = append(v.problems, checkReturns(doc, docstrNode, facts.returns)...)
	v.problems = append(v.problems, checkYields(doc, docstrNode, facts.yields)...)
	v.problems = append(v.problems, checkRaises(doc, docstrNode, facts.raises)...)
}

func (v *visitor) checkClass(def *sitter.Node) {
	body := def.ChildByFieldName("body")
	if body == nil {
		return
	}

	docstrNode, text, ok := findDocstring(body, v.source)
	if !ok {
		v.problems = append(v.problems, problemAt(nodeAt(def, ""), CodeDocstrMissing, msgDocstrMissing))
		return
	}

	doc := docstring.Parse(text)
	facts := collectClassFacts(body, v.source)
	v.problems = append(v.problems, checkAttrs(doc, docstrNode, facts)...)
}

// skipFunction applies the gating: overload-decorated functions are never
// checked, test functions in test files and fixture-decorated functions
// in test or fixture files are skipped.
func (v *visitor) skipFunction(def *sitter.Node, decorators []*sitter.Node) bool {
	for _, decorator := range decorators {
		name := decoratorName(decorator, v.source)
		if name == "overload" || strings.HasSuffix(name, ".overload") {
			return true
		}
	}

	if v.fileType == FileTest {
		if name := def.ChildByFieldName("name"); name != nil {
			if v.patterns.testFunction.MatchString(nodeText(name, v.source)) {
				return true
			}
		}
	}

	if v.fileType == FileTest || v.fileType == FileFixture {
		for _, decorator := range decorators {
			if v.patterns.fixtureDecorator.MatchString(decoratorName(decorator, v.source)) {
				return true
			}
		}
	}

	return false
}

// decoratorName resolves a decorator expression to its dotted name,
// unwrapping a call to its callee. Unnameable shapes yield "".
func decoratorName(expr *sitter.Node, source []byte) string {
	if expr.Kind() == "call" {
		if callee := expr.ChildByFieldName("function"); callee != nil {
			expr = callee
		}
	}
	switch expr.Kind() {
	case "identifier", "attribute":
		return nodeText(expr, source)
	}
	return ""
}

// findDocstring returns the docstring node and text when the first
// statement of the body is a plain string expression. F-strings with
// interpolation do not count.
func findDocstring(body *sitter.Node, source []byte) (Node, string, bool) {
	var first *sitter.Node
	for i := uint(0); i < body.NamedChildCount(); i++ {
		child := body.NamedChild(i)
		if child.Kind() == "comment" {
			continue
		}
		first = child
		break
	}
	if first == nil || first.Kind() != "expression_statement" || first.NamedChildCount() == 0 {
		return Node{}, "", false
	}

	str := first.NamedChild(0)
	switch str.Kind() {
	case "string":
		for i := uint(0); i < str.NamedChildCount(); i++ {
			if str.NamedChild(i).Kind() == "interpolation" {
				return Node{}, "", false
			}
		}
	case "concatenated_string":
	default:
		return Node{}, "", false
	}

	return nodeAt(str, ""), stringLiteralText(str, source), true
}

// stringLiteralText extracts the content between the string delimiters.
// Concatenated literals are joined.
func stringLiteralText(str *sitter.Node, source []byte) string {
	if str.Kind() == "concatenated_string" {
		var out string
		for i := uint(0); i < str.NamedChildCount(); i++ {
			child := str.NamedChild(i)
			if child.Kind() == "string" {
				out += stringLiteralText(child, source)
			}
		}
		return out
	}

	var start, end uint
	for i := uint(0); i < str.ChildCount(); i++ {
		child := str.Child(i)
		switch child.Kind() {
		case "string_start":
			start = child.EndByte()
		case "string_end":
			end = child.StartByte()
		}
	}
	if end <= start {
		return ""
	}
	return string(source[start:end])
}
