// Package interchange defines the data model shared by the detector,
// parsers, validators, and storage layer.
package interchange

// Format identifies an interchange file format.
type Format string

const (
	FormatEDI     Format = "EDI"
	FormatXML     Format = "XML"
	FormatEdifact Format = "EDIFACT"
	FormatUnknown Format = "UNKNOWN"
)

// ParseFormat converts a user-supplied format name to a Format.
// Unrecognized names map to FormatUnknown.
func ParseFormat(s string) Format {
	switch Format(s) {
	case FormatEDI, FormatXML, FormatEdifact:
		return Format(s)
	}
	return FormatUnknown
}

// DetectionResult is the outcome of format detection for one file.
// Confidence is the fraction of matched structural signals in [0,1].
type DetectionResult struct {
	Format     Format  `json:"format"`
	Confidence float64 `json:"confidence"`
}

// Segment is one logical record unit: a delimited segment in EDI/EDIFACT,
// or one element in XML. Position is 0-based occurrence order in the source.
type Segment struct {
	Tag      string
	Elements []string
	Position int
}

// FieldRecord is the universal output unit across all formats.
type FieldRecord struct {
	Name        string  `json:"name"`
	Value       string  `json:"value"`
	SegmentType string  `json:"segment_type"`
	Position    int     `json:"position"`
	Confidence  float64 `json:"confidence"`
}

// ParseResult holds everything extracted from one file. It is owned by the
// caller that invoked Parse; nothing is shared across calls.
type ParseResult struct {
	Fields          []FieldRecord   `json:"fields"`
	SegmentsSeen    map[string]bool `json:"segments_seen"`
	RawSegmentCount int             `json:"raw_segment_count"`
}

// Severity classifies a validation issue.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// ValidationIssue is one finding from a schema validator. RelatedField, when
// non-empty, names a field in the originating ParseResult.
type ValidationIssue struct {
	Severity     Severity `json:"severity"`
	Code         string   `json:"code"`
	Message      string   `json:"message"`
	RelatedField string   `json:"related_field,omitempty"`
}

// ValidationResult accumulates issues from one validation run.
// Validity derives from the error list; warnings never affect it.
type ValidationResult struct {
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
}

// IsValid reports whether the run produced no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// AddError appends an ERROR issue.
func (r *ValidationResult) AddError(code, message, relatedField string) {
	r.Errors = append(r.Errors, ValidationIssue{
		Severity:     SeverityError,
		Code:         code,
		Message:      message,
		RelatedField: relatedField,
	})
}

// AddWarning appends a WARNING issue.
func (r *ValidationResult) AddWarning(code, message, relatedField string) {
	r.Warnings = append(r.Warnings, ValidationIssue{
		Severity:     SeverityWarning,
		Code:         code,
		Message:      message,
		RelatedField: relatedField,
	})
}
