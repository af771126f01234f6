package check

import (
	"fmt"
	"strings"

	"doccomplete/internal/docstring"
)

// checkAttrs verifies the attrs section of a class docstring. Public
// class-body targets (including properties) must be documented; targets
// assigned in methods or prefixed with an underscore only legitimize the
// section and its entries.
func checkAttrs(doc docstring.Docstring, docstrNode Node, facts classFacts) []Problem {
	var problems []Problem

	var publicClassTargets []Node
	for _, target := range facts.classTargets {
		if !strings.HasPrefix(target.Name, unusedPrefix) {
			publicClassTargets = append(publicClassTargets, target)
		}
	}

	allTargets := make([]Node, 0, len(facts.classTargets)+len(facts.methodTargets))
	allTargets = append(allTargets, facts.classTargets...)
	allTargets = append(allTargets, facts.methodTargets...)

	if len(publicClassTargets) > 0 && doc.Attrs == nil {
		problems = append(problems, problemAt(docstrNode, CodeAttrsSectionMissing, msgAttrsSectionMissing))
	}

	if len(allTargets) == 0 && doc.Attrs != nil {
		problems = append(problems, problemAt(docstrNode, CodeAttrsSectionUnexpected, msgAttrsSectionUnexpected))
	}

	if len(allTargets) > 0 && doc.Attrs != nil {
		if len(doc.AttrsSections) > 1 {
			problems = append(problems, problemAt(docstrNode, CodeMultAttrsSections,
				fmt.Sprintf(msgMultAttrsSections, strings.Join(doc.AttrsSections, ","))))
		}

		for _, target := range publicClassTargets {
			if !contains(doc.Attrs, target.Name) {
				problems = append(problems, problemAt(target, CodeAttrMissing,
					fmt.Sprintf(msgAttrMissing, target.Name)))
			}
		}

		for _, name := range unexpectedEntries(doc.Attrs, allTargets) {
			problems = append(problems, problemAt(docstrNode, CodeAttrUnexpected,
				fmt.Sprintf(msgAttrUnexpected, name)))
		}

		for _, name := range duplicated(doc.Attrs) {
			problems = append(problems, problemAt(docstrNode, CodeAttrDuplicated,
				fmt.Sprintf(msgAttrDuplicated, name)))
		}

		if len(publicClassTargets) == 0 && len(doc.Attrs) == 0 {
			problems = append(problems, problemAt(docstrNode, CodeAttrsSectionUnexpected, msgAttrsSectionUnexpected))
		}
	}

	return problems
}
