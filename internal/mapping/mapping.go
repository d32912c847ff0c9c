// Package mapping holds the tag→field-name lookup tables used by the
// extractors. The compiled defaults cover common X12 invoice and EDIFACT
// shipment segments; interchange partners customize segment usage, so the
// tables are configuration and can be overridden from a YAML file.
package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Field names one positional element of a segment. For EDIFACT, Components
// names the sub-components of a composite element; a composite element whose
// position has no component names degrades to generic component fields.
type Field struct {
	Name       string   `yaml:"name"`
	Components []string `yaml:"components,omitempty"`
}

// Table maps a segment tag to the ordered field specs applied to its
// elements, starting at element 1 (element 0 is the tag itself).
type Table map[string][]Field

// Set bundles the per-format tables and the XML business element list.
type Set struct {
	EDI          Table    `yaml:"edi"`
	Edifact      Table    `yaml:"edifact"`
	XMLBusiness  []string `yaml:"xml_business_elements"`
	xmlBusiness  map[string]bool
}

// IsBusinessElement reports whether an XML tag is on the business allow-list.
func (s *Set) IsBusinessElement(tag string) bool {
	return s.xmlBusiness[tag]
}

func names(nn ...string) []Field {
	ff := make([]Field, len(nn))
	for i, n := range nn {
		ff[i] = Field{Name: n}
	}
	return ff
}

// Defaults returns the compiled default tables.
func Defaults() *Set {
	s := &Set{
		EDI: Table{
			"ISA": names(
				"authorization_info_qualifier",
				"authorization_info",
				"security_info_qualifier",
				"security_info",
				"interchange_sender_id_qualifier",
				"interchange_sender_id",
				"interchange_receiver_id_qualifier",
				"interchange_receiver_id",
				"interchange_date",
				"interchange_time",
				"repetition_separator",
				"interchange_control_version_number",
				"interchange_control_number",
				"acknowledgment_requested",
				"usage_indicator",
			),
			"GS": names(
				"functional_identifier_code",
				"application_sender_code",
				"application_receiver_code",
				"date",
				"time",
				"group_control_number",
				"responsible_agency_code",
				"version_identifier_code",
			),
			"ST": names(
				"transaction_set_identifier_code",
				"transaction_set_control_number",
			),
			"BIG": names(
				"invoice_date",
				"invoice_number",
				"purchase_order_date",
				"purchase_order_number",
			),
			"N1": names(
				"entity_identifier_code",
				"name",
				"identification_code_qualifier",
				"identification_code",
			),
			"IT1": names(
				"assigned_identification",
				"quantity_invoiced",
				"unit_of_measurement_code",
				"unit_price",
				"basis_of_unit_price_code",
				"product_service_id_qualifier",
				"product_service_id",
				"product_service_description",
			),
			"TDS": names("total_amount"),
		},
		Edifact: Table{
			"UNB": {
				{Name: "syntax_identifier", Components: []string{"syntax_identifier", "syntax_version_number"}},
				{Name: "sender_identification"},
				{Name: "receiver_identification"},
				{Name: "date_time", Components: []string{"preparation_date", "preparation_time"}},
				{Name: "interchange_reference_number"},
			},
			"UNG": names(
				"functional_group_identifier",
				"application_sender_identification",
				"application_receiver_identification",
				"date_time",
				"group_reference_number",
				"controlling_agency",
				"message_version_number",
			),
			"UNH": {
				{Name: "message_reference_number"},
				{Name: "message_identifier", Components: []string{
					"message_type", "message_version_number", "message_release_number", "controlling_agency",
				}},
			},
			"BGM": names(
				"document_message_name_code",
				"document_identifier",
				"message_function_code",
			),
			"DTM": {
				{Name: "date_time_period", Components: []string{
					"date_time_period_qualifier", "date_time_period", "date_time_period_format_code",
				}},
			},
			"NAD": names(
				"party_function_code_qualifier",
				"party_identification_details",
				"name_and_address",
			),
			"LIN": names(
				"line_item_identifier",
				"item_number_identification",
			),
			"QTY": {
				{Name: "quantity_details", Components: []string{
					"quantity_qualifier", "quantity", "measure_unit_qualifier",
				}},
			},
			"PRI": {
				{Name: "price_details", Components: []string{
					"price_qualifier", "price", "price_type_qualifier",
				}},
			},
		},
		XMLBusiness: []string{
			"order_id", "order_date", "customer_id", "customer_name",
			"product_id", "description", "quantity", "unit_price", "total_price",
			"subtotal", "tax", "shipping", "total",
			"street", "city", "state", "zip", "country",
		},
	}
	s.index()
	return s
}

// Load returns Defaults merged with per-tag overrides from a YAML file.
// An override replaces the whole entry for its tag.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}
	var override Set
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse mapping file %s: %w", path, err)
	}

	s := Defaults()
	for tag, ff := range override.EDI {
		s.EDI[tag] = ff
	}
	for tag, ff := range override.Edifact {
		s.Edifact[tag] = ff
	}
	if len(override.XMLBusiness) > 0 {
		s.XMLBusiness = override.XMLBusiness
	}
	s.index()
	return s, nil
}

func (s *Set) index() {
	s.xmlBusiness = make(map[string]bool, len(s.XMLBusiness))
	for _, tag := range s.XMLBusiness {
		s.xmlBusiness[tag] = true
	}
}
