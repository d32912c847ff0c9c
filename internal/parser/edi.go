package parser

import (
	"fmt"
	"strings"

	"github.com/dgallion1/edigest/internal/interchange"
	"github.com/dgallion1/edigest/internal/mapping"
)

// X12 delimiter conventions: the element separator sits at a fixed offset in
// the ISA header and the segment terminator follows its last fixed-width
// element (ISA is 106 characters including the terminator).
const (
	isaElementSepOffset = 3
	isaTerminatorOffset = 105
)

// EDIParser tokenizes and extracts ANSI X12 content.
type EDIParser struct {
	table mapping.Table
}

func (p *EDIParser) Parse(content []byte) (*interchange.ParseResult, error) {
	elemSep, segTerm := EDIDelimiters(content)

	result := newParseResult()
	position := 0

	for _, raw := range strings.Split(string(content), string(segTerm)) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		elements := strings.Split(raw, string(elemSep))
		tag := elements[0]
		if tag == "" {
			continue
		}

		seg := interchange.Segment{Tag: tag, Elements: elements, Position: position}
		result.SegmentsSeen[tag] = true
		result.RawSegmentCount++
		result.Fields = append(result.Fields, extractSegment(seg, p.table)...)
		position++
	}

	return result, nil
}

// EDIDelimiters reads the element separator and segment terminator from the
// ISA header, falling back to the X12 defaults when the header is absent,
// truncated, or carries implausible delimiter bytes. The validator shares
// this discovery so both stages tokenize identically.
func EDIDelimiters(content []byte) (elemSep, segTerm byte) {
	elemSep, segTerm = '*', '~'
	if len(content) > isaElementSepOffset && string(content[:3]) == "ISA" {
		if c := content[isaElementSepOffset]; isDelimiter(c) {
			elemSep = c
		}
		if len(content) > isaTerminatorOffset {
			if c := content[isaTerminatorOffset]; isDelimiter(c) || c == '\n' {
				segTerm = c
			}
		}
	}
	return elemSep, segTerm
}

func isDelimiter(b byte) bool {
	if b >= '0' && b <= '9' || b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' {
		return false
	}
	return b > ' ' && b < 0x7f
}

// extractSegment maps a segment's positional elements to named fields.
// Segments with no mapping, elements beyond the mapped positions, and
// segments too short to trust positionally all take the generic path —
// partial extraction beats total failure.
func extractSegment(seg interchange.Segment, table mapping.Table) []interchange.FieldRecord {
	specs, mapped := table[seg.Tag]
	if mapped && wellFormed(seg, specs) {
		return extractMapped(seg, specs)
	}
	return extractGeneric(seg)
}

// wellFormed reports whether the segment carries enough elements for its
// positional mapping to be trustworthy: at least half the mapped positions.
func wellFormed(seg interchange.Segment, specs []mapping.Field) bool {
	return len(seg.Elements)-1 >= (len(specs)+1)/2
}

func extractMapped(seg interchange.Segment, specs []mapping.Field) []interchange.FieldRecord {
	var fields []interchange.FieldRecord
	for i, element := range seg.Elements[1:] {
		value := strings.TrimSpace(element)
		if value == "" {
			continue
		}
		if i < len(specs) {
			fields = append(fields, interchange.FieldRecord{
				Name:        specs[i].Name,
				Value:       value,
				SegmentType: seg.Tag,
				Position:    seg.Position,
				Confidence:  mappedConfidence,
			})
			continue
		}
		fields = append(fields, genericField(seg, i+1, value))
	}
	return fields
}

func extractGeneric(seg interchange.Segment) []interchange.FieldRecord {
	var fields []interchange.FieldRecord
	for i, element := range seg.Elements[1:] {
		value := strings.TrimSpace(element)
		if value == "" {
			continue
		}
		fields = append(fields, genericField(seg, i+1, value))
	}
	return fields
}

func genericField(seg interchange.Segment, index int, value string) interchange.FieldRecord {
	return interchange.FieldRecord{
		Name:        fmt.Sprintf("%s_element_%d", seg.Tag, index),
		Value:       value,
		SegmentType: seg.Tag,
		Position:    seg.Position,
		Confidence:  genericConfidence,
	}
}
