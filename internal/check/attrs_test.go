package check

import "testing"

func TestAttrsSectionMissing(t *testing.T) {
	problems := runSource(t, "mod.py", `class Foo:
    """Summary."""

    VALUE = 1
`)
	assertCodes(t, problems, CodeAttrsSectionMissing)
	if problems[0].Line != 2 || problems[0].Col != 4 {
		t.Errorf("position = %d:%d, want 2:4", problems[0].Line, problems[0].Col)
	}
}

func TestAttrsDocumented(t *testing.T) {
	problems := runSource(t, "mod.py", `class Foo:
    """Summary.

    Attrs:
        VALUE:
    """

    VALUE = 1
`)
	assertCodes(t, problems)
}

func TestAttrsAnnotatedAndAugmented(t *testing.T) {
	problems := runSource(t, "mod.py", `class Foo:
    """Summary.

    Attrs:
        count:
        total:
    """

    count: int = 0
    total = 0
    total += 1
`)
	assertCodes(t, problems)
}

func TestAttrMissingPosition(t *testing.T) {
	problems := runSource(t, "mod.py", `class Foo:
    """Summary.

    Attrs:
        VALUE:
    """

    VALUE = 1
    OTHER = 2
`)
	assertCodes(t, problems, CodeAttrMissing)
	if problems[0].Line != 9 || problems[0].Col != 4 {
		t.Errorf("position = %d:%d, want 9:4", problems[0].Line, problems[0].Col)
	}
}

func TestAttrUnexpected(t *testing.T) {
	problems := runSource(t, "mod.py", `class Foo:
    """Summary.

    Attrs:
        VALUE:
        OTHER:
    """

    VALUE = 1
`)
	assertCodes(t, problems, CodeAttrUnexpected)
}

func TestAttrDuplicated(t *testing.T) {
	problems := runSource(t, "mod.py", `class Foo:
    """Summary.

    Attrs:
        VALUE:
        VALUE:
    """

    VALUE = 1
`)
	assertCodes(t, problems, CodeAttrDuplicated)
}

func TestAttrsSectionUnexpected(t *testing.T) {
	problems := runSource(t, "mod.py", `class Foo:
    """Summary.

    Attrs:
        VALUE:
    """
`)
	assertCodes(t, problems, CodeAttrsSectionUnexpected)
}

func TestAttrsEmptySectionPrivateOnly(t *testing.T) {
	problems := runSource(t, "mod.py", `class Foo:
    """Summary.

    Attrs:
    """

    _internal = 1
`)
	assertCodes(t, problems, CodeAttrsSectionUnexpected)
}

func TestAttrsPrivateNotRequired(t *testing.T) {
	problems := runSource(t, "mod.py", `class Foo:
    """Summary."""

    _internal = 1
`)
	assertCodes(t, problems)
}

func TestAttrsPropertyCountsAsAttribute(t *testing.T) {
	problems := runSource(t, "mod.py", `class Foo:
    """Summary.

    Attrs:
        name:
    """

    @property
    def name(self):
        """Summary.

        Returns:
            The name.
        """
        return "foo"
`)
	assertCodes(t, problems)
}

func TestAttrsCachedPropertyCountsAsAttribute(t *testing.T) {
	problems := runSource(t, "mod.py", `class Foo:
    """Summary."""

    @functools.cached_property
    def name(self):
        """Summary.

        Returns:
            The name.
        """
        return "foo"
`)
	assertCodes(t, problems, CodeAttrsSectionMissing)
}

func TestAttrsMethodAssignLegitimizesEntry(t *testing.T) {
	problems := runSource(t, "mod.py", `class Foo:
    """Summary.

    Attrs:
        value:
    """

    def __init__(self):
        """Summary."""
        self.value = 1
`)
	assertCodes(t, problems)
}

func TestAttrsMethodAssignDoesNotForceSection(t *testing.T) {
	problems := runSource(t, "mod.py", `class Foo:
    """Summary."""

    def __init__(self):
        """Summary."""
        self.value = 1
`)
	assertCodes(t, problems)
}

func TestAttrsNestedClassNotCounted(t *testing.T) {
	problems := runSource(t, "mod.py", `class Foo:
    """Summary."""

    class Meta:
        """Summary.

        Attrs:
            ordering:
        """

        ordering = "name"
`)
	assertCodes(t, problems)
}

func TestAttrsConditionalAssignmentCounted(t *testing.T) {
	problems := runSource(t, "mod.py", `import sys

class Foo:
    """Summary."""

    if sys.platform == "linux":
        SEP = "/"
`)
	assertCodes(t, problems, CodeAttrsSectionMissing)
}

func TestAttrsMultipleSections(t *testing.T) {
	problems := runSource(t, "mod.py", `class Foo:
    """Summary.

    Attrs:
        VALUE:

    Attributes:
        VALUE:
    """

    VALUE = 1
`)
	assertCodes(t, problems, CodeMultAttrsSections)
}
