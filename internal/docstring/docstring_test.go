package docstring

import (
	"reflect"
	"testing"
)

func TestParseSynonyms(t *testing.T) {
	for _, header := range []string{"Args", "Arguments", "Parameters", "args", "ARGUMENTS"} {
		doc := Parse(header + ":\n    first:\n    second:\n")
		want := []string{"first", "second"}
		if !reflect.DeepEqual(doc.Args, want) {
			t.Errorf("header %q: got args %v, want %v", header, doc.Args, want)
		}
		if len(doc.ArgsSections) != 1 || doc.ArgsSections[0] != header {
			t.Errorf("header %q: got sections %v", header, doc.ArgsSections)
		}
	}
}

func TestParseRaiseSingular(t *testing.T) {
	doc := Parse("Raise:\n    ValueError:\n")
	if !reflect.DeepEqual(doc.Raises, []string{"ValueError"}) {
		t.Errorf("got raises %v", doc.Raises)
	}
}

func TestParseAbsentVersusEmpty(t *testing.T) {
	absent := Parse("Just a description.\n")
	if absent.Args != nil {
		t.Errorf("absent section: got %v, want nil", absent.Args)
	}
	if len(absent.ArgsSections) != 0 {
		t.Errorf("absent section: got headers %v", absent.ArgsSections)
	}

	empty := Parse("Args:\n")
	if empty.Args == nil || len(empty.Args) != 0 {
		t.Errorf("empty section: got %v, want non-nil empty", empty.Args)
	}
	if !reflect.DeepEqual(empty.ArgsSections, []string{"Args"}) {
		t.Errorf("empty section: got headers %v", empty.ArgsSections)
	}
}

func TestParseDuplicateSections(t *testing.T) {
	doc := Parse("Args:\n    first:\n\nArgs:\n    second:\n")
	if !reflect.DeepEqual(doc.ArgsSections, []string{"Args", "Args"}) {
		t.Errorf("got headers %v", doc.ArgsSections)
	}
	// Entries come from the first matching section only.
	if !reflect.DeepEqual(doc.Args, []string{"first"}) {
		t.Errorf("got args %v", doc.Args)
	}
}

func TestParseBlockEndsAtBlankLine(t *testing.T) {
	doc := Parse("Args:\n    first:\n\n    second:\n")
	if !reflect.DeepEqual(doc.Args, []string{"first"}) {
		t.Errorf("got args %v, want entries before the blank line only", doc.Args)
	}
}

func TestParseLeadingDescription(t *testing.T) {
	doc := Parse("Do something useful.\n    detail: not a section entry\n\nArgs:\n    value:\n")
	if !reflect.DeepEqual(doc.Args, []string{"value"}) {
		t.Errorf("got args %v", doc.Args)
	}
}

func TestParseAnnotatedEntries(t *testing.T) {
	doc := Parse("Args:\n    count (int): how many.\n    name (str, optional): who.\n")
	if !reflect.DeepEqual(doc.Args, []string{"count", "name"}) {
		t.Errorf("got args %v", doc.Args)
	}
}

func TestParseDuplicateEntriesPreserved(t *testing.T) {
	doc := Parse("Raises:\n    ValueError:\n    ValueError:\n")
	if !reflect.DeepEqual(doc.Raises, []string{"ValueError", "ValueError"}) {
		t.Errorf("got raises %v", doc.Raises)
	}
}

func TestParseAllConcerns(t *testing.T) {
	doc := Parse(`Summary line.

Args:
    value:

Attrs:
    name:

Returns:
    The result.

Yields:
    Items.

Raises:
    KeyError:
`)
	if !reflect.DeepEqual(doc.Args, []string{"value"}) {
		t.Errorf("args: %v", doc.Args)
	}
	if !reflect.DeepEqual(doc.Attrs, []string{"name"}) {
		t.Errorf("attrs: %v", doc.Attrs)
	}
	if !doc.Returns || !doc.Yields {
		t.Errorf("returns=%v yields=%v, want both true", doc.Returns, doc.Yields)
	}
	if !reflect.DeepEqual(doc.Raises, []string{"KeyError"}) {
		t.Errorf("raises: %v", doc.Raises)
	}
}
