package validator

import (
	"bytes"
	"encoding/xml"
	"io"
	"regexp"
	"strings"

	"github.com/dgallion1/edigest/internal/interchange"
	"golang.org/x/net/html/charset"
)

// Recommended business elements: absence is advisory, since XML interchange
// schemas vary by partner.
var xmlRecommendedElements = []string{"order_id", "order_date", "customer_name"}

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([T ].*)?$`)

// XMLValidator checks XML content for well-formed structure and data types.
type XMLValidator struct{}

func (v *XMLValidator) Validate(content []byte, pr *interchange.ParseResult) *interchange.ValidationResult {
	result := &interchange.ValidationResult{}

	v.checkStructure(content, result)
	v.checkRecommended(pr, result)
	checkFieldTypes(result, pr, func(s string) bool { return isoDatePattern.MatchString(s) })

	return result
}

// checkStructure re-parses the raw content: a valid document needs a
// well-formed root with at least one child element.
func (v *XMLValidator) checkStructure(content []byte, result *interchange.ValidationResult) {
	dec := xml.NewDecoder(bytes.NewReader(content))
	dec.CharsetReader = charset.NewReaderLabel

	depth := 0
	rootSeen := false
	childSeen := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.AddError(CodeSegmentShape, "xml syntax error: "+err.Error(), "")
			return
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				rootSeen = true
			}
			if depth == 2 {
				childSeen = true
			}
		case xml.EndElement:
			depth--
		}
	}

	if !rootSeen {
		result.AddError(CodeSegmentShape, "no root element found", "")
		return
	}
	if !childSeen {
		result.AddError(CodeSegmentShape, "root element has no child elements", "")
	}
}

func (v *XMLValidator) checkRecommended(pr *interchange.ParseResult, result *interchange.ValidationResult) {
	names := make(map[string]bool, len(pr.Fields))
	for _, f := range pr.Fields {
		names[f.Name] = true
		// Attribute fields are named element.attribute; either part counts.
		if i := strings.LastIndexByte(f.Name, '.'); i >= 0 {
			names[f.Name[i+1:]] = true
		}
	}
	for _, want := range xmlRecommendedElements {
		if !names[want] && !pr.SegmentsSeen[want] {
			result.AddWarning(CodeMissingSegment, "missing recommended element: "+want, "")
		}
	}
}
