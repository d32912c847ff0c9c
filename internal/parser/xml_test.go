package parser

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dgallion1/edigest/internal/interchange"
	"github.com/dgallion1/edigest/internal/mapping"
)

func newXMLParser() *XMLParser {
	return &XMLParser{maps: mapping.Defaults()}
}

func TestXMLParser_OrderFixture(t *testing.T) {
	p := newXMLParser()
	result, err := p.Parse(xmlOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Fields) < 22 {
		t.Errorf("expected at least 22 fields, got %d", len(result.Fields))
	}
	if result.RawSegmentCount != 25 {
		t.Errorf("expected 25 elements, got %d", result.RawSegmentCount)
	}
	for _, tag := range []string{"order", "customer", "line_items", "item", "totals"} {
		if !result.SegmentsSeen[tag] {
			t.Errorf("element %s not recorded in segments seen", tag)
		}
	}
}

// Attributes are named tag.attr so they cannot collide with child element
// text fields.
func TestXMLParser_AttributeNaming(t *testing.T) {
	p := newXMLParser()
	result, err := p.Parse(xmlOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byName := make(map[string]string)
	for _, f := range result.Fields {
		if _, seen := byName[f.Name]; !seen {
			byName[f.Name] = f.Value
		}
	}
	if byName["order.order_id"] != "ORD-1001" {
		t.Errorf("order.order_id: expected ORD-1001, got %q", byName["order.order_id"])
	}
	if byName["order.order_date"] != "2024-01-15" {
		t.Errorf("order.order_date: expected 2024-01-15, got %q", byName["order.order_date"])
	}
	if byName["item.product_id"] != "SKU-1" {
		t.Errorf("item.product_id: expected SKU-1, got %q", byName["item.product_id"])
	}
}

func TestXMLParser_BusinessElementConfidence(t *testing.T) {
	p := newXMLParser()
	result, err := p.Parse(xmlOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, f := range result.Fields {
		switch f.Name {
		case "customer_name", "quantity", "total":
			if f.Confidence != 1.0 {
				t.Errorf("business field %s: expected confidence 1.0, got %v", f.Name, f.Confidence)
			}
		case "order.order_id":
			if f.Confidence != 0.8 {
				t.Errorf("generic field %s: expected confidence 0.8, got %v", f.Name, f.Confidence)
			}
		}
	}
}

func TestXMLParser_MalformedInput(t *testing.T) {
	p := newXMLParser()

	cases := []struct {
		name    string
		content string
	}{
		{"mismatched tags", "<order><item></order>"},
		{"unclosed root", "<order><item>x</item>"},
		{"empty input", ""},
		{"no markup", "just some text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Parse([]byte(tc.content))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var malformed *interchange.MalformedInputError
			if !errors.As(err, &malformed) {
				t.Errorf("expected MalformedInputError, got %T: %v", err, err)
			}
		})
	}
}

func TestXMLParser_Deterministic(t *testing.T) {
	p := newXMLParser()
	first, err := p.Parse(xmlOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.Parse(xmlOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first.Fields, second.Fields) {
		t.Error("parsing identical content twice produced different fields")
	}
}
