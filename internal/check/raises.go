package check

import (
	"fmt"
	"strings"

	"doccomplete/internal/docstring"
)

// checkRaises verifies the raises section against the function's raise
// statements. An unnamed point is a bare re-raise (or an operand no name
// can be derived from); while any is present, documented exceptions that
// are never raised are not reported.
func checkRaises(doc docstring.Docstring, docstrNode Node, raisePoints []Node) []Problem {
	var problems []Problem

	hasUnnamed := false
	allUnnamed := len(raisePoints) > 0
	for _, point := range raisePoints {
		if point.Name == "" {
			hasUnnamed = true
		} else {
			allUnnamed = false
		}
	}

	if len(raisePoints) > 0 && doc.Raises == nil {
		problems = append(problems, problemAt(docstrNode, CodeRaisesSectionMissing, msgRaisesSectionMissing))
	}

	switch {
	case len(raisePoints) == 0 && doc.Raises != nil:
		problems = append(problems, problemAt(docstrNode, CodeRaisesSectionUnexpected, msgRaisesSectionUnexpected))
	case allUnnamed && len(doc.Raises) == 0:
		problems = append(problems, problemAt(docstrNode, CodeReRaiseUndocumented, msgReRaiseUndocumented))
	case len(raisePoints) > 0 && doc.Raises != nil:
		if len(doc.RaisesSections) > 1 {
			problems = append(problems, problemAt(docstrNode, CodeMultRaisesSections,
				fmt.Sprintf(msgMultRaisesSections, strings.Join(doc.RaisesSections, ","))))
		}

		for _, point := range raisePoints {
			if point.Name != "" && !contains(doc.Raises, point.Name) {
				problems = append(problems, problemAt(point, CodeExcMissing,
					fmt.Sprintf(msgExcMissing, point.Name)))
			}
		}

		if !hasUnnamed {
			var named []Node
			for _, point := range raisePoints {
				if point.Name != "" {
					named = append(named, point)
				}
			}
			for _, name := range unexpectedEntries(doc.Raises, named) {
				problems = append(problems, problemAt(docstrNode, CodeExcUnexpected,
					fmt.Sprintf(msgExcUnexpected, name)))
			}
		}

		for _, name := range duplicated(doc.Raises) {
			problems = append(problems, problemAt(docstrNode, CodeExcDuplicated,
				fmt.Sprintf(msgExcDuplicated, name)))
		}
	}

	return problems
}
