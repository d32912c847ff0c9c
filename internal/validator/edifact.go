package validator

import (
	"fmt"
	"strings"

	"github.com/dgallion1/edigest/internal/interchange"
)

var edifactRequiredSegments = []string{"UNB", "UNG", "UNH", "UNT", "UNE", "UNZ"}

// edifactMinElements holds the minimum element count (including the tag) for
// the service segments. Shortfalls are advisory: the extractor already
// degrades, and partner conventions vary.
var edifactMinElements = map[string]int{
	"UNB": 6,
	"UNH": 3,
	"UNT": 3,
	"UNZ": 3,
}

// EdifactValidator checks UN/EDIFACT content against envelope and data rules.
type EdifactValidator struct{}

func (v *EdifactValidator) Validate(content []byte, pr *interchange.ParseResult) *interchange.ValidationResult {
	result := &interchange.ValidationResult{}

	checkRequiredSegments(result, pr, edifactRequiredSegments)
	v.checkPatterns(content, result)
	if pr.RawSegmentCount == 0 {
		result.AddError(CodeEmptyParse, "no segments extracted", "")
	}
	checkFieldTypes(result, pr, edifactDate)

	return result
}

func (v *EdifactValidator) checkPatterns(content []byte, result *interchange.ValidationResult) {
	text := string(content)

	elemSep, segTerm := "+", "'"
	if strings.HasPrefix(text, "UNA") && len(text) >= 9 {
		elemSep = string(text[4])
		segTerm = string(text[8])
		text = text[9:]
	}
	if !strings.Contains(text, elemSep) {
		result.AddError(CodeMissingDelimiter, "missing data element separator ("+elemSep+")", "")
	}
	if !strings.Contains(text, segTerm) {
		result.AddError(CodeMissingDelimiter, "missing segment terminator ("+segTerm+")", "")
		return
	}

	for _, raw := range strings.Split(text, segTerm) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		elements := strings.Split(raw, elemSep)
		min, ok := edifactMinElements[elements[0]]
		if ok && len(elements) < min {
			result.AddWarning(CodeSegmentShape,
				fmt.Sprintf("segment %s has %d elements, expected at least %d", elements[0], len(elements), min), "")
		}
	}
}
