package validator

import (
	"fmt"
	"strings"

	"github.com/dgallion1/edigest/internal/interchange"
	"github.com/dgallion1/edigest/internal/parser"
)

var ediRequiredSegments = []string{"ISA", "GS", "ST", "SE", "GE", "IEA"}

// ediSegmentElementCounts holds the expected element count (including the
// tag) for fixed-shape X12 segments. ISA is fixed-width and structural;
// the envelope trailers are advisory.
var ediSegmentElementCounts = map[string]struct {
	count      int
	structural bool
}{
	"ISA": {17, true},
	"ST":  {3, false},
	"SE":  {3, false},
	"GE":  {3, false},
	"IEA": {3, false},
}

// EDIValidator checks ANSI X12 content against envelope and data rules.
type EDIValidator struct{}

func (v *EDIValidator) Validate(content []byte, pr *interchange.ParseResult) *interchange.ValidationResult {
	result := &interchange.ValidationResult{}

	checkRequiredSegments(result, pr, ediRequiredSegments)
	v.checkPatterns(content, result)
	if pr.RawSegmentCount == 0 {
		result.AddError(CodeEmptyParse, "no segments extracted", "")
	}
	checkFieldTypes(result, pr, ediDate)

	return result
}

// checkPatterns re-tokenizes the raw content: delimiter structure and
// fixed-width segment shapes are not visible in the extracted fields.
// Delimiter discovery is the parser's, so the shapes judged here come from
// the same tokenization the parse used.
func (v *EDIValidator) checkPatterns(content []byte, result *interchange.ValidationResult) {
	elemSep, segTerm := parser.EDIDelimiters(content)
	text := string(content)

	if !strings.Contains(text, string(elemSep)) {
		result.AddError(CodeMissingDelimiter, "missing element separator ("+string(elemSep)+")", "")
	}
	if !strings.Contains(text, string(segTerm)) {
		result.AddError(CodeMissingDelimiter, "missing segment terminator ("+string(segTerm)+")", "")
		return
	}

	for _, raw := range strings.Split(text, string(segTerm)) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		elements := strings.Split(raw, string(elemSep))
		expect, ok := ediSegmentElementCounts[elements[0]]
		if !ok || len(elements) == expect.count {
			continue
		}
		msg := fmt.Sprintf("segment %s has %d elements, expected %d", elements[0], len(elements), expect.count)
		if expect.structural {
			result.AddError(CodeSegmentShape, msg, "")
		} else {
			result.AddWarning(CodeSegmentShape, msg, "")
		}
	}
}
