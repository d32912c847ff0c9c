package parser

import (
	"fmt"
	"strings"

	"github.com/dgallion1/edigest/internal/interchange"
	"github.com/dgallion1/edigest/internal/mapping"
)

// edifactDelims holds the UN/EDIFACT service characters. Defaults follow the
// standard punctuation; a UNA service string advice overrides them.
type edifactDelims struct {
	component  byte
	element    byte
	release    byte
	terminator byte
}

var defaultEdifactDelims = edifactDelims{
	component:  ':',
	element:    '+',
	release:    '?',
	terminator: '\'',
}

// EdifactParser tokenizes and extracts UN/EDIFACT content. Unlike X12, a
// positional element may itself be a composite that decomposes into named
// sub-components.
type EdifactParser struct {
	table mapping.Table
}

func (p *EdifactParser) Parse(content []byte) (*interchange.ParseResult, error) {
	text := string(content)
	delims := defaultEdifactDelims

	// UNA:+.? ' — six service characters at fixed offsets.
	if strings.HasPrefix(text, "UNA") && len(text) >= 9 {
		delims = edifactDelims{
			component:  text[3],
			element:    text[4],
			release:    text[6],
			terminator: text[8],
		}
		text = text[9:]
	}

	result := newParseResult()
	position := 0

	for _, raw := range splitReleased(text, delims.terminator, delims.release) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		elements := splitReleased(raw, delims.element, delims.release)
		tag := elements[0]
		if i := strings.IndexByte(tag, delims.component); i >= 0 {
			tag = tag[:i]
		}
		if tag == "" {
			continue
		}

		seg := interchange.Segment{Tag: tag, Elements: elements, Position: position}
		result.SegmentsSeen[tag] = true
		result.RawSegmentCount++
		result.Fields = append(result.Fields, p.extract(seg, delims)...)
		position++
	}

	return result, nil
}

func (p *EdifactParser) extract(seg interchange.Segment, delims edifactDelims) []interchange.FieldRecord {
	specs, mapped := p.table[seg.Tag]
	if !mapped || !wellFormed(seg, specs) {
		return p.extractGeneric(seg, delims)
	}

	var fields []interchange.FieldRecord
	for i, element := range seg.Elements[1:] {
		if strings.TrimSpace(element) == "" {
			continue
		}
		if i >= len(specs) {
			fields = append(fields, p.genericElement(seg, i+1, element, delims)...)
			continue
		}

		spec := specs[i]
		components := splitReleased(element, delims.component, delims.release)
		if len(components) == 1 {
			fields = append(fields, interchange.FieldRecord{
				Name:        spec.Name,
				Value:       strings.TrimSpace(unrelease(components[0], delims.release)),
				SegmentType: seg.Tag,
				Position:    seg.Position,
				Confidence:  mappedConfidence,
			})
			continue
		}

		// Composite element: one field per component, named where the
		// mapping defines component names, generic past (or without) them.
		for j, comp := range components {
			value := strings.TrimSpace(unrelease(comp, delims.release))
			if value == "" {
				continue
			}
			rec := interchange.FieldRecord{
				Value:       value,
				SegmentType: seg.Tag,
				Position:    seg.Position,
			}
			if j < len(spec.Components) {
				rec.Name = spec.Components[j]
				rec.Confidence = mappedConfidence
			} else {
				rec.Name = fmt.Sprintf("%s_component_%d", spec.Name, j+1)
				rec.Confidence = genericConfidence
			}
			fields = append(fields, rec)
		}
	}
	return fields
}

func (p *EdifactParser) extractGeneric(seg interchange.Segment, delims edifactDelims) []interchange.FieldRecord {
	var fields []interchange.FieldRecord
	for i, element := range seg.Elements[1:] {
		if strings.TrimSpace(element) == "" {
			continue
		}
		fields = append(fields, p.genericElement(seg, i+1, element, delims)...)
	}
	return fields
}

func (p *EdifactParser) genericElement(seg interchange.Segment, index int, element string, delims edifactDelims) []interchange.FieldRecord {
	components := splitReleased(element, delims.component, delims.release)
	if len(components) == 1 {
		value := strings.TrimSpace(unrelease(components[0], delims.release))
		if value == "" {
			return nil
		}
		return []interchange.FieldRecord{genericField(seg, index, value)}
	}

	var fields []interchange.FieldRecord
	for j, comp := range components {
		value := strings.TrimSpace(unrelease(comp, delims.release))
		if value == "" {
			continue
		}
		fields = append(fields, interchange.FieldRecord{
			Name:        fmt.Sprintf("%s_element_%d_component_%d", seg.Tag, index, j+1),
			Value:       value,
			SegmentType: seg.Tag,
			Position:    seg.Position,
			Confidence:  genericConfidence,
		})
	}
	return fields
}

// splitReleased splits s on sep, honoring the release character: a delimiter
// preceded by release is literal data. Release sequences are kept verbatim so
// the next split level still sees them; unrelease strips them from final
// values.
func splitReleased(s string, sep, release byte) []string {
	var parts []string
	var cur strings.Builder

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == release && i+1 < len(s):
			cur.WriteByte(c)
			cur.WriteByte(s[i+1])
			i++
		case c == sep:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	parts = append(parts, cur.String())
	return parts
}

// unrelease drops the release character, keeping the byte it protected.
func unrelease(s string, release byte) string {
	if strings.IndexByte(s, release) < 0 {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == release && i+1 < len(s) {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
