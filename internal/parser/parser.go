// Package parser turns Python source into a tree-sitter syntax tree.
package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

var ErrUnsupported = errors.New("unsupported language")

type Parser struct {
	loader *GrammarLoader
}

// ParsedFile holds a parsed source file. Close must be called to release
// the tree.
type ParsedFile struct {
	Path   string
	Source []byte
	tree   *sitter.Tree
}

func (f *ParsedFile) Root() *sitter.Node {
	return f.tree.RootNode()
}

func (f *ParsedFile) Close() {
	f.tree.Close()
}

func NewParser(loader *GrammarLoader) *Parser {
	return &Parser{loader: loader}
}

// Parse parses in-memory content.
func (p *Parser) Parse(path string, content []byte) (*ParsedFile, error) {
	lang := detectLanguage(path)
	if lang == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}

	grammar := p.loader.Language(lang)
	if grammar == nil {
		return nil, fmt.Errorf("grammar not loaded: %s", lang)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(grammar); err != nil {
		return nil, fmt.Errorf("setting language %s: %w", lang, err)
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse failed: %s", path)
	}

	return &ParsedFile{Path: path, Source: content, tree: tree}, nil
}

// ParseFile reads and parses a file from disk.
func (p *Parser) ParseFile(path string) (*ParsedFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return p.Parse(path, content)
}

func detectLanguage(path string) string {
	switch filepath.Ext(path) {
	case ".py":
		return "python"
	default:
		return ""
	}
}
