// Package detect classifies raw interchange content as EDI, EDIFACT, or XML.
//
// Detection runs an ordered battery of structural signature checks per
// format. Each matched signal contributes a fixed weight; the highest-scoring
// format with a nonzero score wins, ties resolve to UNKNOWN, and confidence
// is the matched weight over the format's maximum weight. The weighted
// battery lets partially corrupted or truncated files classify with reduced
// confidence instead of failing.
package detect

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/edigest/internal/interchange"
)

// SampleBytes is how much of a file DetectFile reads for classification.
const SampleBytes = 2048

type signal struct {
	weight float64
	match  func(content []byte) bool
}

var batteries = []struct {
	format  interchange.Format
	signals []signal
}{
	{
		format: interchange.FormatEDI,
		signals: []signal{
			// ISA header with an element separator at the fixed X12 offset.
			{0.4, func(c []byte) bool {
				return bytes.HasPrefix(c, []byte("ISA")) && len(c) > 3 && isSeparator(c[3])
			}},
			{0.3, func(c []byte) bool { return hasSegmentMarker(c, "GS") }},
			{0.3, func(c []byte) bool { return hasSegmentMarker(c, "ST") }},
		},
	},
	{
		format: interchange.FormatEdifact,
		signals: []signal{
			{0.4, func(c []byte) bool {
				if bytes.HasPrefix(c, []byte("UNA")) {
					return bytes.Contains(c, []byte("UNB+"))
				}
				return bytes.HasPrefix(c, []byte("UNB+"))
			}},
			{0.3, func(c []byte) bool { return bytes.Contains(c, []byte("UNH+")) }},
			{0.3, func(c []byte) bool { return bytes.Contains(c, []byte("UNT+")) }},
		},
	},
	{
		format: interchange.FormatXML,
		signals: []signal{
			{0.4, func(c []byte) bool {
				t := bytes.TrimLeft(c, " \t\r\n")
				if bytes.HasPrefix(t, []byte("<?xml")) {
					return true
				}
				return len(t) > 1 && t[0] == '<' && isTagStart(t[1])
			}},
			{0.3, func(c []byte) bool { return bytes.Contains(c, []byte("</")) }},
			{0.3, func(c []byte) bool {
				t := bytes.TrimRight(c, " \t\r\n")
				return bytes.HasSuffix(t, []byte(">"))
			}},
		},
	},
}

// Detect classifies content. It never fails: content matching no format
// returns UNKNOWN with confidence 0.
func Detect(content []byte) interchange.DetectionResult {
	best := interchange.DetectionResult{Format: interchange.FormatUnknown}
	tied := false

	for _, b := range batteries {
		var matched, max float64
		for _, s := range b.signals {
			max += s.weight
			if s.match(content) {
				matched += s.weight
			}
		}
		if matched == 0 {
			continue
		}
		score := matched / max
		switch {
		case score > best.Confidence:
			best = interchange.DetectionResult{Format: b.format, Confidence: score}
			tied = false
		case score == best.Confidence:
			tied = true
		}
	}

	if tied {
		return interchange.DetectionResult{Format: interchange.FormatUnknown, Confidence: 0}
	}
	return best
}

// DetectFile reads the first SampleBytes of the file at path and classifies
// them. Unreadable files fail here, never in classification.
func DetectFile(path string) (interchange.DetectionResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return interchange.DetectionResult{Format: interchange.FormatUnknown}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sample, err := io.ReadAll(io.LimitReader(f, SampleBytes))
	if err != nil {
		return interchange.DetectionResult{Format: interchange.FormatUnknown}, fmt.Errorf("read %s: %w", path, err)
	}
	return Detect(sample), nil
}

// isSeparator reports whether b is plausible as an X12 element separator:
// any printable character that is not alphanumeric or space.
func isSeparator(b byte) bool {
	if b >= '0' && b <= '9' || b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' {
		return false
	}
	return b > ' ' && b < 0x7f
}

func isTagStart(b byte) bool {
	return b == '_' || b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z'
}

// hasSegmentMarker looks for tag followed by the interchange's element
// separator. The separator comes from the ISA header when present, else the
// X12 default '*'.
func hasSegmentMarker(content []byte, tag string) bool {
	sep := byte('*')
	if bytes.HasPrefix(content, []byte("ISA")) && len(content) > 3 && isSeparator(content[3]) {
		sep = content[3]
	}
	return bytes.Contains(content, append([]byte(tag), sep))
}
