// Package parser converts raw interchange content into field records.
//
// Each format has its own tokenizer and extractor behind the shared Parser
// interface. Extraction maximizes information recovery: mapped segments get
// named fields, everything else degrades to generic per-element fields, and
// only structurally broken XML aborts a parse.
package parser

import (
	"github.com/dgallion1/edigest/internal/interchange"
	"github.com/dgallion1/edigest/internal/mapping"
)

// Parser converts raw content into a ParseResult.
type Parser interface {
	Parse(content []byte) (*interchange.ParseResult, error)
}

// Confidence levels for extracted fields: mapped positions are trusted more
// than generic fallback extraction.
const (
	mappedConfidence  = 0.9
	genericConfidence = 0.8
)

// ForFormat returns the parser for a detected format.
func ForFormat(f interchange.Format, maps *mapping.Set) (Parser, error) {
	switch f {
	case interchange.FormatEDI:
		return &EDIParser{table: maps.EDI}, nil
	case interchange.FormatEdifact:
		return &EdifactParser{table: maps.Edifact}, nil
	case interchange.FormatXML:
		return &XMLParser{maps: maps}, nil
	default:
		return nil, &interchange.UnsupportedFormatError{Format: f}
	}
}

func newParseResult() *interchange.ParseResult {
	return &interchange.ParseResult{
		SegmentsSeen: make(map[string]bool),
	}
}
