package check

import (
	"testing"

	"doccomplete/internal/parser"
)

// runSource parses the source and runs the checks with default patterns.
func runSource(t *testing.T, filename, source string) []Problem {
	t.Helper()

	p := parser.NewParser(parser.NewGrammarLoader())
	file, err := p.Parse(filename, []byte(source))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer file.Close()

	return Run(file.Root(), file.Source, filename, MustCompilePatterns(DefaultSettings()))
}

func codes(problems []Problem) []string {
	out := make([]string, 0, len(problems))
	for _, problem := range problems {
		out = append(out, problem.Code)
	}
	return out
}

func assertCodes(t *testing.T, problems []Problem, want ...string) {
	t.Helper()
	got := codes(problems)
	if len(got) != len(want) {
		t.Fatalf("got codes %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got codes %v, want %v", got, want)
		}
	}
}

func TestRunDocumentedFunction(t *testing.T) {
	problems := runSource(t, "mod.py", `def foo(x):
    """Summary.

    Args:
        x:
    """
`)
	assertCodes(t, problems)
}

func TestRunMissingDocstring(t *testing.T) {
	problems := runSource(t, "mod.py", "def foo():\n    pass\n")
	assertCodes(t, problems, CodeDocstrMissing)
	if problems[0].Line != 1 || problems[0].Col != 0 {
		t.Errorf("position = %d:%d, want 1:0", problems[0].Line, problems[0].Col)
	}
}

func TestRunMissingDocstringAsync(t *testing.T) {
	problems := runSource(t, "mod.py", "async def foo():\n    pass\n")
	assertCodes(t, problems, CodeDocstrMissing)
}

func TestRunMissingDocstringClass(t *testing.T) {
	problems := runSource(t, "mod.py", "class Foo:\n    pass\n")
	assertCodes(t, problems, CodeDocstrMissing)
}

func TestRunDecoratedClassPosition(t *testing.T) {
	problems := runSource(t, "mod.py", "@dataclass\nclass Foo:\n    pass\n")
	assertCodes(t, problems, CodeDocstrMissing)
	if problems[0].Line != 2 || problems[0].Col != 0 {
		t.Errorf("position = %d:%d, want 2:0", problems[0].Line, problems[0].Col)
	}
}

func TestRunCheckOrder(t *testing.T) {
	problems := runSource(t, "mod.py", `def foo(x):
    """Summary."""
    return x
`)
	assertCodes(t, problems, CodeArgsSectionMissing, CodeReturnsSectionMissing)
}

func TestRunFStringIsNotADocstring(t *testing.T) {
	problems := runSource(t, "mod.py", "def foo():\n    f\"\"\"Summary {foo}.\"\"\"\n")
	assertCodes(t, problems, CodeDocstrMissing)
}

func TestRunNestedDefinitionsChecked(t *testing.T) {
	problems := runSource(t, "mod.py", `def outer():
    """Summary."""
    def inner():
        pass
`)
	assertCodes(t, problems, CodeDocstrMissing)
	if problems[0].Line != 3 {
		t.Errorf("line = %d, want 3", problems[0].Line)
	}
}

func TestRunTestFunctionSkipped(t *testing.T) {
	problems := runSource(t, "test_mod.py", "def test_foo():\n    pass\n")
	assertCodes(t, problems)
}

func TestRunHelperInTestFileChecked(t *testing.T) {
	problems := runSource(t, "test_mod.py", "def helper():\n    pass\n")
	assertCodes(t, problems, CodeDocstrMissing)
}

func TestRunTestPatternNotAppliedOutsideTestFiles(t *testing.T) {
	problems := runSource(t, "mod.py", "def test_foo():\n    pass\n")
	assertCodes(t, problems, CodeDocstrMissing)
}

func TestRunFixtureSkippedInConftest(t *testing.T) {
	problems := runSource(t, "conftest.py", `import pytest

@pytest.fixture
def data():
    pass
`)
	assertCodes(t, problems)
}

func TestRunFixtureSkippedInTestFile(t *testing.T) {
	problems := runSource(t, "test_mod.py", `import pytest

@pytest.fixture(scope="module")
def data():
    pass
`)
	assertCodes(t, problems)
}

func TestRunFixtureNotSkippedInDefaultFile(t *testing.T) {
	problems := runSource(t, "mod.py", `import pytest

@pytest.fixture
def data():
    pass
`)
	assertCodes(t, problems, CodeDocstrMissing)
}

func TestRunOverloadSkipped(t *testing.T) {
	for _, source := range []string{
		"@overload\ndef foo(x): ...\n",
		"@typing.overload\ndef foo(x): ...\n",
	} {
		problems := runSource(t, "mod.py", source)
		assertCodes(t, problems)
	}
}

func TestRunNestedInsideSkippedChecked(t *testing.T) {
	problems := runSource(t, "test_mod.py", `def test_outer():
    def inner():
        pass
`)
	assertCodes(t, problems, CodeDocstrMissing)
	if problems[0].Line != 2 || problems[0].Col != 4 {
		t.Errorf("position = %d:%d, want 2:4", problems[0].Line, problems[0].Col)
	}
}

func TestRunModuleLevelStatementsIgnored(t *testing.T) {
	problems := runSource(t, "mod.py", "x = 1\nprint(x)\n")
	assertCodes(t, problems)
}

func TestRunConcatenatedDocstring(t *testing.T) {
	problems := runSource(t, "mod.py", `def foo():
    "Summary." " More."
`)
	assertCodes(t, problems)
}
