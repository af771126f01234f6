package check

import (
	"fmt"
	"strings"

	"doccomplete/internal/docstring"
)

// checkReturns verifies the returns section against the function's
// value-carrying return statements. Section-missing is reported once per
// return point, at the point.
func checkReturns(doc docstring.Docstring, docstrNode Node, returnPoints []Node) []Problem {
	var problems []Problem

	if len(returnPoints) > 0 && !doc.Returns {
		for _, point := range returnPoints {
			problems = append(problems, problemAt(point, CodeReturnsSectionMissing, msgReturnsSectionMissing))
		}
	}

	if len(returnPoints) > 0 && len(doc.ReturnsSections) > 1 {
		problems = append(problems, problemAt(docstrNode, CodeMultReturnsSections,
			fmt.Sprintf(msgMultReturnsSections, strings.Join(doc.ReturnsSections, ","))))
	}

	if len(returnPoints) == 0 && doc.Returns {
		problems = append(problems, problemAt(docstrNode, CodeReturnsSectionUnexpected, msgReturnsSectionUnexpected))
	}

	return problems
}

// checkYields mirrors checkReturns for yield points.
func checkYields(doc docstring.Docstring, docstrNode Node, yieldPoints []Node) []Problem {
	var problems []Problem

	if len(yieldPoints) > 0 && !doc.Yields {
		for _, point := range yieldPoints {
			problems = append(problems, problemAt(point, CodeYieldsSectionMissing, msgYieldsSectionMissing))
		}
	}

	if len(yieldPoints) > 0 && len(doc.YieldsSections) > 1 {
		problems = append(problems, problemAt(docstrNode, CodeMultYieldsSections,
			fmt.Sprintf(msgMultYieldsSections, strings.Join(doc.YieldsSections, ","))))
	}

	if len(yieldPoints) == 0 && doc.Yields {
		problems = append(problems, problemAt(docstrNode, CodeYieldsSectionUnexpected, msgYieldsSectionUnexpected))
	}

	return problems
}
