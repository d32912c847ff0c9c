package interchange

import "testing"

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want Format
	}{
		{"EDI", FormatEDI},
		{"XML", FormatXML},
		{"EDIFACT", FormatEdifact},
		{"UNKNOWN", FormatUnknown},
		{"edi", FormatUnknown},
		{"CSV", FormatUnknown},
		{"", FormatUnknown},
	}
	for _, tc := range cases {
		if got := ParseFormat(tc.in); got != tc.want {
			t.Errorf("ParseFormat(%q): expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestValidationResult(t *testing.T) {
	var r ValidationResult
	if !r.IsValid() {
		t.Error("empty result should be valid")
	}

	r.AddWarning("DATE_FORMAT", "odd date", "invoice_date")
	if !r.IsValid() {
		t.Error("warnings must not affect validity")
	}

	r.AddError("MISSING_SEGMENT", "missing required segment: IEA", "")
	if r.IsValid() {
		t.Error("errors must invalidate the result")
	}
	if r.Errors[0].Severity != SeverityError || r.Warnings[0].Severity != SeverityWarning {
		t.Errorf("severities not set: %+v %+v", r.Errors[0], r.Warnings[0])
	}
}
