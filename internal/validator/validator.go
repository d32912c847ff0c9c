// Package validator checks parse results against per-format structural
// rules. Validators accumulate issues instead of short-circuiting, so one
// call surfaces the complete issue set. Structural absence is an ERROR and
// blocks storage; data-quality problems are WARNINGs and do not.
package validator

import (
	"regexp"
	"strings"

	"github.com/dgallion1/edigest/internal/interchange"
)

// Validator checks raw content plus its ParseResult. Validators may
// re-inspect the raw content for patterns not captured in extracted fields,
// such as delimiter structure.
type Validator interface {
	Validate(content []byte, pr *interchange.ParseResult) *interchange.ValidationResult
}

// Issue codes shared across formats.
const (
	CodeMissingSegment   = "MISSING_SEGMENT"
	CodeMissingDelimiter = "MISSING_DELIMITER"
	CodeSegmentShape     = "SEGMENT_SHAPE"
	CodeEmptyParse       = "EMPTY_PARSE"
	CodeDateFormat       = "DATE_FORMAT"
	CodeNumericFormat    = "NUMERIC_FORMAT"
)

// ForFormat returns the validator for a format.
func ForFormat(f interchange.Format) (Validator, error) {
	switch f {
	case interchange.FormatEDI:
		return &EDIValidator{}, nil
	case interchange.FormatEdifact:
		return &EdifactValidator{}, nil
	case interchange.FormatXML:
		return &XMLValidator{}, nil
	default:
		return nil, &interchange.UnsupportedFormatError{Format: f}
	}
}

var (
	numericPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)
	digitsPattern  = regexp.MustCompile(`^\d+$`)
)

// checkRequiredSegments emits one ERROR per mandatory tag absent from the
// parse's segment set. SegmentsSeen is the source of truth.
func checkRequiredSegments(result *interchange.ValidationResult, pr *interchange.ParseResult, required []string) {
	for _, tag := range required {
		if !pr.SegmentsSeen[tag] {
			result.AddError(CodeMissingSegment, "missing required segment: "+tag, "")
		}
	}
}

// checkFieldTypes scans fields whose names look like date or numeric roles
// and warns on values that fail the format-specific parse. Data present but
// malformed never blocks validity.
func checkFieldTypes(result *interchange.ValidationResult, pr *interchange.ParseResult, dateOK func(string) bool) {
	for _, f := range pr.Fields {
		name := strings.ToLower(f.Name)
		switch {
		case strings.Contains(name, "date") || strings.Contains(name, "time"):
			if strings.Contains(name, "qualifier") || strings.Contains(name, "format_code") {
				continue
			}
			if !dateOK(f.Value) {
				result.AddWarning(CodeDateFormat,
					"date field "+f.Name+" has unexpected format: "+f.Value, f.Name)
			}
		case isNumericRole(name):
			if !numericPattern.MatchString(f.Value) {
				result.AddWarning(CodeNumericFormat,
					"numeric field "+f.Name+" has unexpected format: "+f.Value, f.Name)
			}
		}
	}
}

// isNumericRole matches role keywords against whole name tokens, not raw
// substrings: "syntax_identifier" is not a tax field.
func isNumericRole(name string) bool {
	tokens := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '.' })

	// Qualifier/code roles carry alphanumeric identifiers, not quantities.
	for _, tok := range tokens {
		if tok == "code" || tok == "qualifier" {
			return false
		}
	}
	for _, tok := range tokens {
		switch tok {
		case "amount", "price", "quantity", "subtotal", "total", "tax", "shipping":
			return true
		}
	}
	return false
}

// ediDate accepts the X12 YYMMDD and CCYYMMDD shapes, plus HHMM for the
// time roles the same scan covers.
func ediDate(v string) bool {
	switch len(v) {
	case 4, 6, 8:
		return digitsPattern.MatchString(v)
	}
	return false
}

// edifactDate additionally accepts the date-time shapes YYMMDDHHMM and
// CCYYMMDDHHMM.
func edifactDate(v string) bool {
	switch len(v) {
	case 4, 6, 8, 10, 12:
		return digitsPattern.MatchString(v)
	}
	return false
}
