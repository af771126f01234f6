package check

import (
	"fmt"
	"regexp"
)

const (
	DefaultTestFilenamePattern     = `test_.*\.py`
	DefaultTestFunctionPattern     = `test_.*`
	DefaultFixtureFilenamePattern  = `conftest\.py`
	DefaultFixtureDecoratorPattern = `(^|\.)fixture$`
)

// Settings are the raw, user-configurable skip patterns.
type Settings struct {
	TestFilenamePattern     string
	TestFunctionPattern     string
	FixtureFilenamePattern  string
	FixtureDecoratorPattern string
}

// DefaultSettings returns the pytest-flavoured defaults.
func DefaultSettings() Settings {
	return Settings{
		TestFilenamePattern:     DefaultTestFilenamePattern,
		TestFunctionPattern:     DefaultTestFunctionPattern,
		FixtureFilenamePattern:  DefaultFixtureFilenamePattern,
		FixtureDecoratorPattern: DefaultFixtureDecoratorPattern,
	}
}

// Patterns are the compiled skip patterns threaded into every check run.
// Filename and function patterns match anchored at the start; the
// decorator pattern searches anywhere, case-insensitively.
type Patterns struct {
	testFilename     *regexp.Regexp
	testFunction     *regexp.Regexp
	fixtureFilename  *regexp.Regexp
	fixtureDecorator *regexp.Regexp
}

// Compile validates and compiles the settings.
func (s Settings) Compile() (*Patterns, error) {
	testFilename, err := regexp.Compile(`^(?:` + s.TestFilenamePattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("compiling test filename pattern: %w", err)
	}
	testFunction, err := regexp.Compile(`^(?:` + s.TestFunctionPattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("compiling test function pattern: %w", err)
	}
	fixtureFilename, err := regexp.Compile(`^(?:` + s.FixtureFilenamePattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("compiling fixture filename pattern: %w", err)
	}
	fixtureDecorator, err := regexp.Compile(`(?i)` + s.FixtureDecoratorPattern)
	if err != nil {
		return nil, fmt.Errorf("compiling fixture decorator pattern: %w", err)
	}

	return &Patterns{
		testFilename:     testFilename,
		testFunction:     testFunction,
		fixtureFilename:  fixtureFilename,
		fixtureDecorator: fixtureDecorator,
	}, nil
}

// MustCompilePatterns compiles settings known to be valid, such as the
// defaults.
func MustCompilePatterns(s Settings) *Patterns {
	patterns, err := s.Compile()
	if err != nil {
		panic(err)
	}
	return patterns
}

// DefaultPatterns returns the compiled defaults.
func DefaultPatterns() *Patterns {
	return MustCompilePatterns(DefaultSettings())
}

// ClassifyFile types a file by its basename. Test wins over fixture.
func (p *Patterns) ClassifyFile(basename string) FileType {
	if p.testFilename.MatchString(basename) {
		return FileTest
	}
	if p.fixtureFilename.MatchString(basename) {
		return FileFixture
	}
	return FileDefault
}
