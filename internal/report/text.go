package report

import (
	"fmt"
	"io"
)

// WriteText prints findings in the familiar path:line:column format.
// Columns are stored 0-based and displayed 1-based.
func WriteText(w io.Writer, files []FileProblems) error {
	for _, file := range files {
		for _, problem := range file.Problems {
			_, err := fmt.Fprintf(w, "%s:%d:%d: %s\n", file.Path, problem.Line, problem.Col+1, problem.Msg)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
