package parser

import "strings"

// ediInvoice is a complete X12 810 invoice. The ISA header is exactly 106
// characters including the terminator, so delimiter discovery reads the
// element separator at offset 3 and the segment terminator at offset 105.
func ediInvoice() []byte {
	segments := []string{
		"ISA*00*AUTH000001*00*SECU000001*ZZ*SENDERID       *ZZ*RECEIVERID     *240115*1201*U*00401*000000001*0*P*:",
		"GS*IN*SENDERID*RECEIVERID*20240115*1201*1*X*004010",
		"ST*810*0001",
		"BIG*20240115*INV-1001*20240110*PO-555",
		"N1*BY*ACME CORP*92*BUYER01",
		"N1*SE*WIDGET SUPPLY*92*SELLER01",
		"IT1*1*10*EA*2.50*PE*VN*SKU-1*BLUE WIDGET",
		"IT1*2*5*EA*10.00*PE*VN*SKU-2*GADGET",
		"IT1*3*2*EA*25.00*PE*VN*SKU-3*GIZMO",
		"TDS*12500",
		"CTT*3",
		"SE*12*0001",
		"GE*1*1",
		"IEA*1*000000001",
	}
	return []byte(strings.Join(segments, "~") + "~")
}

// edifactShipment is a shipment notice using the default UN/EDIFACT
// service characters.
func edifactShipment() []byte {
	segments := []string{
		"UNB+UNOA:2+SENDER+RECEIVER+240115:1201+REF001",
		"UNG+DESADV+SENDER+RECEIVER+240115:1201+1+UN+D:96A",
		"UNH+MSG001+DESADV:D:96A:UN",
		"BGM+351+SHIP001+9",
		"DTM+137:20240115:102",
		"DTM+11:20240116:102",
		"NAD+SH+SHIPPER01+SHIPPER NAME",
		"NAD+CN+CONSIGNEE01+CONSIGNEE NAME",
		"LIN+1+ITEM001",
		"QTY+12:100:PCE",
		"PRI+AAA:25.50:CT",
		"LIN+2+ITEM002",
		"QTY+12:50:PCE",
		"PRI+AAA:10.00:CT",
		"UNT+14+MSG001",
		"UNE+1+1",
		"UNZ+1+REF001",
	}
	return []byte(strings.Join(segments, "'") + "'")
}

// xmlOrder is an order document with nested line items.
func xmlOrder() []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8"?>
<order order_id="ORD-1001" order_date="2024-01-15">
  <customer customer_id="CUST-7">
    <customer_name>Acme Industrial</customer_name>
    <address>
      <street>100 Main St</street>
      <city>Springfield</city>
      <state>IL</state>
      <zip>62701</zip>
      <country>US</country>
    </address>
  </customer>
  <line_items>
    <item product_id="SKU-1">
      <description>Blue Widget</description>
      <quantity>10</quantity>
      <unit_price>2.50</unit_price>
      <total_price>25.00</total_price>
    </item>
    <item product_id="SKU-2">
      <description>Gadget</description>
      <quantity>5</quantity>
      <unit_price>10.00</unit_price>
      <total_price>50.00</total_price>
    </item>
  </line_items>
  <totals>
    <subtotal>75.00</subtotal>
    <tax>6.19</tax>
    <shipping>5.00</shipping>
    <total>86.19</total>
  </totals>
</order>
`)
}
