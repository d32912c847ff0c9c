package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/dgallion1/edigest/internal/interchange"
	"github.com/dgallion1/edigest/internal/mapping"
	"golang.org/x/net/html/charset"
)

// XMLParser extracts field records from XML documents. Segments here are
// elements: each element contributes one field per attribute and one for its
// non-empty text content, so extraction coverage is total by construction.
// Non-well-formed markup aborts the parse — there is no meaningful generic
// tokenization of broken XML.
type XMLParser struct {
	maps *mapping.Set
}

func (p *XMLParser) Parse(content []byte) (*interchange.ParseResult, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))
	// Handles declared non-UTF-8 encodings (e.g. ISO-8859-1 interchanges).
	dec.CharsetReader = charset.NewReaderLabel

	result := newParseResult()

	type frame struct {
		tag      string
		position int
		text     strings.Builder
	}
	var stack []*frame
	elementCount := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, malformed(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			f := &frame{tag: t.Name.Local, position: elementCount}
			stack = append(stack, f)
			result.SegmentsSeen[f.tag] = true
			result.RawSegmentCount++
			elementCount++

			for _, attr := range t.Attr {
				if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
					continue
				}
				result.Fields = append(result.Fields, interchange.FieldRecord{
					Name:        f.tag + "." + attr.Name.Local,
					Value:       attr.Value,
					SegmentType: f.tag,
					Position:    f.position,
					Confidence:  p.confidence(f.tag),
				})
			}

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if text := strings.TrimSpace(f.text.String()); text != "" {
				result.Fields = append(result.Fields, interchange.FieldRecord{
					Name:        f.tag,
					Value:       text,
					SegmentType: f.tag,
					Position:    f.position,
					Confidence:  p.confidence(f.tag),
				})
			}
		}
	}

	if elementCount == 0 {
		return nil, malformed(errors.New("no root element"))
	}
	if len(stack) != 0 {
		return nil, malformed(errors.New("unclosed element " + stack[len(stack)-1].tag))
	}
	return result, nil
}

// confidence is full for allow-listed business elements; everything else
// still contributes, at the generic level.
func (p *XMLParser) confidence(tag string) float64 {
	if p.maps.IsBusinessElement(tag) {
		return 1.0
	}
	return genericConfidence
}

func malformed(err error) error {
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		return &interchange.MalformedInputError{Format: interchange.FormatXML, Line: syn.Line, Err: err}
	}
	return &interchange.MalformedInputError{Format: interchange.FormatXML, Err: err}
}
