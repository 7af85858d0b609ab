package model

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

// json mirrors encoding/json behavior so stored data stays readable by any JSON consumer.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ParseError indicates stored data exists but cannot be decoded into a book list.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse stored books: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EncodeBooks serializes books in their persisted form.
// A nil list is written as an empty array, never as null.
func EncodeBooks(books []Book) ([]byte, error) {
	if books == nil {
		books = []Book{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		return nil, fmt.Errorf("failed to encode books: %w", err)
	}
	return data, nil
}

// DecodeBooks parses the persisted form of a book list.
// A stored null decodes to an empty list.
func DecodeBooks(data []byte) ([]Book, error) {
	var books []Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, &ParseError{Err: err}
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// EditableBook is the subset of a Book a user may change in $EDITOR.
type EditableBook struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Year   string `yaml:"year"`
}

// MarshalEditable renders a book as a commented YAML document for interactive editing.
func MarshalEditable(b Book) ([]byte, error) {
	editable := EditableBook{
		Title:  b.Title,
		Author: b.Author,
		Year:   fmt.Sprintf("%d", b.Year),
	}
	content, err := yaml.Marshal(&editable)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal book: %w", err)
	}

	header := fmt.Sprintf("# Editing book %d\n# Save and close editor to apply changes. Exit without saving to cancel.\n\n", b.ID)
	return append([]byte(header), content...), nil
}

// UnmarshalEditable parses the YAML produced by MarshalEditable after the user edited it.
// Year is kept as text so the caller can report a non-numeric value properly.
func UnmarshalEditable(data []byte) (*EditableBook, error) {
	var editable EditableBook
	if err := yaml.Unmarshal(data, &editable); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return &editable, nil
}

// MarshalBooksYAML renders a book list as a YAML sequence, used for human-readable dumps.
func MarshalBooksYAML(books []Book) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for _, b := range books {
		doc.Content = append(doc.Content, buildBookNode(&b))
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode books: %w", err)
	}
	return data, nil
}

// buildBookNode creates a yaml.Node for a Book with a stable key order.
func buildBookNode(b *Book) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	addScalar(node, "id", fmt.Sprintf("%d", b.ID), "!!int")
	addScalar(node, "title", b.Title, "!!str")
	addScalar(node, "author", b.Author, "!!str")
	addScalar(node, "year", fmt.Sprintf("%d", b.Year), "!!int")
	addScalar(node, "is_complete", fmt.Sprintf("%t", b.IsComplete), "!!bool")
	return node
}

func addScalar(node *yaml.Node, key, value, tag string) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: tag},
	)
}
