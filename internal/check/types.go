// Package check implements the docstring completeness rules. It takes a
// parsed Python tree and emits coded, positioned problems for every
// function, method and class definition whose docstring does not match the
// facts extracted from its body.
package check

// Problem is a single finding. Line is 1-based, Col is 0-based.
type Problem struct {
	Line int
	Col  int
	Code string
	Msg  string
}

// Node is a named source fact (a parameter, a raised exception, an
// attribute target) with the position of its name.
type Node struct {
	Name string
	Line int
	Col  int
}

// FileType classifies a file by its basename for skip gating.
type FileType int

const (
	FileDefault FileType = iota
	FileTest
	FileFixture
)

const (
	CodeDocstrMissing = "DCO010"

	CodeArgsSectionMissing    = "DCO020"
	CodeArgsSectionUnexpected = "DCO021"
	CodeMultArgsSections      = "DCO022"
	CodeArgMissing            = "DCO023"
	CodeArgUnexpected         = "DCO024"
	CodeArgDuplicated         = "DCO025"

	CodeReturnsSectionMissing    = "DCO030"
	CodeReturnsSectionUnexpected = "DCO031"
	CodeMultReturnsSections      = "DCO032"

	CodeYieldsSectionMissing    = "DCO040"
	CodeYieldsSectionUnexpected = "DCO041"
	CodeMultYieldsSections      = "DCO042"

	CodeRaisesSectionMissing    = "DCO050"
	CodeRaisesSectionUnexpected = "DCO051"
	CodeMultRaisesSections      = "DCO052"
	CodeExcMissing              = "DCO053"
	CodeExcUnexpected           = "DCO054"
	CodeReRaiseUndocumented     = "DCO055"
	CodeExcDuplicated           = "DCO056"

	CodeAttrsSectionMissing    = "DCO060"
	CodeAttrsSectionUnexpected = "DCO061"
	CodeMultAttrsSections      = "DCO062"
	CodeAttrMissing            = "DCO063"
	CodeAttrUnexpected         = "DCO064"
	CodeAttrDuplicated         = "DCO065"
)

const (
	msgDocstrMissing = CodeDocstrMissing + " docstring should be defined for a function/ method/ class"

	msgArgsSectionMissing    = CodeArgsSectionMissing + " a function/ method with arguments should have the arguments section in the docstring"
	msgArgsSectionUnexpected = CodeArgsSectionUnexpected + " a function/ method without arguments should not have the arguments section in the docstring"
	msgMultArgsSections      = CodeMultArgsSections + " a docstring should only contain a single arguments section, found %s"
	msgArgMissing            = CodeArgMissing + " %q argument should be described in the docstring"
	msgArgUnexpected         = CodeArgUnexpected + " %q argument should not be described in the docstring"
	msgArgDuplicated         = CodeArgDuplicated + " %q argument documented multiple times"

	msgReturnsSectionMissing    = CodeReturnsSectionMissing + " function/ method that returns a value should have the returns section in the docstring"
	msgReturnsSectionUnexpected = CodeReturnsSectionUnexpected + " function/ method that does not return a value should not have the returns section in the docstring"
	msgMultReturnsSections      = CodeMultReturnsSections + " a docstring should only contain a single returns section, found %s"

	msgYieldsSectionMissing    = CodeYieldsSectionMissing + " function/ method that yields a value should have the yields section in the docstring"
	msgYieldsSectionUnexpected = CodeYieldsSectionUnexpected + " function/ method that does not yield a value should not have the yields section in the docstring"
	msgMultYieldsSections      = CodeMultYieldsSections + " a docstring should only contain a single yields section, found %s"

	msgRaisesSectionMissing    = CodeRaisesSectionMissing + " a function/ method that raises an exception should have the raises section in the docstring"
	msgRaisesSectionUnexpected = CodeRaisesSectionUnexpected + " a function/ method that does not raise an exception should not have the raises section in the docstring"
	msgMultRaisesSections      = CodeMultRaisesSections + " a docstring should only contain a single raises section, found %s"
	msgExcMissing              = CodeExcMissing + " %q exception should be described in the docstring"
	msgExcUnexpected           = CodeExcUnexpected + " %q exception should not be described in the docstring"
	msgReRaiseUndocumented     = CodeReRaiseUndocumented + " a function/ method that re-raises exceptions should describe at least one exception in the raises section of the docstring"
	msgExcDuplicated           = CodeExcDuplicated + " %q exception documented multiple times"

	msgAttrsSectionMissing    = CodeAttrsSectionMissing + " a class with attributes should have the attributes section in the docstring"
	msgAttrsSectionUnexpected = CodeAttrsSectionUnexpected + " a function/ method without attributes should not have the attributes section in the docstring"
	msgMultAttrsSections      = CodeMultAttrsSections + " a docstring should only contain a single attributes section, found %s"
	msgAttrMissing            = CodeAttrMissing + " %q attribute/ property should be described in the docstring"
	msgAttrUnexpected         = CodeAttrUnexpected + " %q attribute should not be described in the docstring"
	msgAttrDuplicated         = CodeAttrDuplicated + " %q attribute documented multiple times"
)

// classSelfCls are parameter names never treated as documentable arguments.
var classSelfCls = map[string]bool{"self": true, "cls": true}

const unusedPrefix = "_"

func problemAt(n Node, code, msg string) Problem {
	return Problem{Line: n.Line, Col: n.Col, Code: code, Msg: msg}
}

func contains(names []string, name string) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}

// duplicated returns the names occurring more than once, once each, in
// first-appearance order.
func duplicated(names []string) []string {
	counts := make(map[string]int, len(names))
	for _, name := range names {
		counts[name]++
	}

	var out []string
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if counts[name] > 1 && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
