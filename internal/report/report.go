// Package report renders check findings as text or SARIF.
package report

import (
	"doccomplete/internal/check"
)

// FileProblems groups the findings of one file.
type FileProblems struct {
	Path     string
	Problems []check.Problem
}

// Total counts the findings across all files.
func Total(files []FileProblems) int {
	total := 0
	for _, file := range files {
		total += len(file.Problems)
	}
	return total
}
