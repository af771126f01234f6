// Package docstring parses a documentation comment into its sections and
// sub-entries. It is a pure text transformation with no knowledge of the
// syntax tree.
package docstring

import (
	"regexp"
	"strings"
)

// Docstring is the structured view of a docstring, keyed by concern. A nil
// entry slice means the concern's section is absent; a non-nil empty slice
// means the section exists but documents nothing. The *Sections lists hold
// every header spelling that matched the concern, in encounter order, so
// callers can detect duplicated sections.
type Docstring struct {
	Args            []string
	ArgsSections    []string
	Attrs           []string
	AttrsSections   []string
	Returns         bool
	ReturnsSections []string
	Yields          bool
	YieldsSections  []string
	Raises          []string
	RaisesSections  []string
}

// section is one parsed block: a header word (empty for a free-text block)
// and the sub-entry names found inside it.
type section struct {
	name string
	subs []string
}

var sectionNames = map[string][]string{
	"args":    {"args", "arguments", "parameters"},
	"attrs":   {"attrs", "attributes"},
	"returns": {"return", "returns"},
	"yields":  {"yield", "yields"},
	"raises":  {"raises", "raise"},
}

var (
	sectionStartPattern = regexp.MustCompile(`^\s*(\w+):`)
	subEntryPattern     = regexp.MustCompile(`^\s*(\w+)( \(.*\))?:`)
)

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// getSections splits the docstring lines into blocks. A block starts at the
// first non-blank line and runs until a blank line or end of input. A block
// whose first line matches "word:" is a named section; any other block is an
// unnamed free-text section. Inside a block, lines matching
// "word (annotation)?:" contribute sub-entries.
func getSections(lines []string) []section {
	var sections []section

	i := 0
	for i < len(lines) {
		if isBlank(lines[i]) {
			i++
			continue
		}

		var sect section
		if m := sectionStartPattern.FindStringSubmatch(lines[i]); m != nil {
			sect.name = m[1]
		}
		i++

		for i < len(lines) && !isBlank(lines[i]) {
			if m := subEntryPattern.FindStringSubmatch(lines[i]); m != nil {
				sect.subs = append(sect.subs, m[1])
			}
			i++
		}

		sections = append(sections, sect)
	}

	return sections
}

func matchesConcern(concern, name string) bool {
	lower := strings.ToLower(name)
	for _, synonym := range sectionNames[concern] {
		if lower == synonym {
			return true
		}
	}
	return false
}

// firstSection returns the first section classified under the concern, or
// nil if none matched.
func firstSection(concern string, sections []section) *section {
	for i := range sections {
		if sections[i].name != "" && matchesConcern(concern, sections[i].name) {
			return &sections[i]
		}
	}
	return nil
}

// allSectionNames returns every header spelling classified under the
// concern, in encounter order.
func allSectionNames(concern string, sections []section) []string {
	var names []string
	for _, sect := range sections {
		if sect.name != "" && matchesConcern(concern, sect.name) {
			names = append(names, sect.name)
		}
	}
	return names
}

// entries converts a found section into its entry list, keeping the
// present-but-empty vs absent distinction.
func entries(sect *section) []string {
	if sect == nil {
		return nil
	}
	if sect.subs == nil {
		return []string{}
	}
	return sect.subs
}

// Parse converts raw docstring text into the structured Docstring model.
func Parse(text string) Docstring {
	sections := getSections(strings.Split(text, "\n"))

	return Docstring{
		Args:            entries(firstSection("args", sections)),
		ArgsSections:    allSectionNames("args", sections),
		Attrs:           entries(firstSection("attrs", sections)),
		AttrsSections:   allSectionNames("attrs", sections),
		Returns:         firstSection("returns", sections) != nil,
		ReturnsSections: allSectionNames("returns", sections),
		Yields:          firstSection("yields", sections) != nil,
		YieldsSections:  allSectionNames("yields", sections),
		Raises:          entries(firstSection("raises", sections)),
		RaisesSections:  allSectionNames("raises", sections),
	}
}
