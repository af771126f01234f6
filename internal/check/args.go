package check

import (
	"fmt"
	"sort"
	"strings"

	"doccomplete/internal/docstring"
)

// checkArgs compares the function's parameters against the docstring's
// arguments section.
func checkArgs(doc docstring.Docstring, docstrNode Node, params []Node) []Problem {
	var problems []Problem

	var used []Node
	for _, param := range params {
		if !strings.HasPrefix(param.Name, unusedPrefix) {
			used = append(used, param)
		}
	}

	switch {
	case len(used) > 0 && doc.Args == nil:
		problems = append(problems, problemAt(docstrNode, CodeArgsSectionMissing, msgArgsSectionMissing))
	case len(used) == 0 && len(params) == 0 && doc.Args != nil:
		problems = append(problems, problemAt(docstrNode, CodeArgsSectionUnexpected, msgArgsSectionUnexpected))
	case doc.Args != nil:
		if len(doc.ArgsSections) > 1 {
			problems = append(problems, problemAt(docstrNode, CodeMultArgsSections,
				fmt.Sprintf(msgMultArgsSections, strings.Join(doc.ArgsSections, ","))))
		}

		for _, param := range used {
			if !contains(doc.Args, param.Name) {
				problems = append(problems, problemAt(param, CodeArgMissing,
					fmt.Sprintf(msgArgMissing, param.Name)))
			}
		}

		for _, name := range unexpectedEntries(doc.Args, params) {
			problems = append(problems, problemAt(docstrNode, CodeArgUnexpected,
				fmt.Sprintf(msgArgUnexpected, name)))
		}

		for _, name := range duplicated(doc.Args) {
			problems = append(problems, problemAt(docstrNode, CodeArgDuplicated,
				fmt.Sprintf(msgArgDuplicated, name)))
		}

		// Everything documented but nothing to document: the section
		// itself is the problem.
		if len(used) == 0 && len(params) > 0 && len(doc.Args) == 0 {
			problems = append(problems, problemAt(docstrNode, CodeArgsSectionUnexpected, msgArgsSectionUnexpected))
		}
	}

	return problems
}

// unexpectedEntries returns the documented names with no matching fact,
// sorted and deduplicated.
func unexpectedEntries(documented []string, facts []Node) []string {
	known := make(map[string]bool, len(facts))
	for _, fact := range facts {
		known[fact.Name] = true
	}

	seen := make(map[string]bool, len(documented))
	var out []string
	for _, name := range documented {
		if !known[name] && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
