package detect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dgallion1/edigest/internal/interchange"
)

const ediSample = "ISA*00*          *00*          *ZZ*SENDER*ZZ*RECEIVER*240115*1201*U*00401*000000001*0*P*:~GS*IN*S*R*20240115*1201*1*X*004010~ST*810*0001~SE*2*0001~GE*1*1~IEA*1*000000001~"

const edifactSample = "UNB+UNOA:2+SENDER+RECEIVER+240115:1201+REF001'UNH+MSG001+INVOIC:D:96A:UN'UNT+2+MSG001'UNZ+1+REF001'"

const xmlSample = `<?xml version="1.0"?><order order_id="1"><total>10.00</total></order>`

func TestDetect(t *testing.T) {
	cases := []struct {
		name          string
		content       string
		format        interchange.Format
		minConfidence float64
	}{
		{"x12 invoice", ediSample, interchange.FormatEDI, 1.0},
		{"edifact interchange", edifactSample, interchange.FormatEdifact, 1.0},
		{"edifact with una", "UNA:+.? '" + edifactSample, interchange.FormatEdifact, 1.0},
		{"xml with declaration", xmlSample, interchange.FormatXML, 1.0},
		{"xml without declaration", "<order><total>10</total></order>", interchange.FormatXML, 1.0},
		{"truncated isa header", "ISA*00*          *00", interchange.FormatEDI, 0.3},
		{"plain text", "hello world, nothing structured here", interchange.FormatUnknown, 0},
		{"empty", "", interchange.FormatUnknown, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Detect([]byte(tc.content))
			if result.Format != tc.format {
				t.Errorf("expected format %s, got %s", tc.format, result.Format)
			}
			if result.Confidence < tc.minConfidence {
				t.Errorf("expected confidence >= %v, got %v", tc.minConfidence, result.Confidence)
			}
		})
	}
}

func TestDetect_ConfidentOnFullDocuments(t *testing.T) {
	for _, content := range []string{ediSample, edifactSample, xmlSample} {
		if result := Detect([]byte(content)); result.Confidence <= 0.5 {
			t.Errorf("expected confidence above 0.5, got %v for %q", result.Confidence, content[:20])
		}
	}
}

// Content matching two formats equally well is not guessed at.
func TestDetect_TieResolvesToUnknown(t *testing.T) {
	result := Detect([]byte("GS*X~ST*X~UNH+X'UNT+X'"))
	if result.Format != interchange.FormatUnknown {
		t.Errorf("expected UNKNOWN on tie, got %s", result.Format)
	}
	if result.Confidence != 0 {
		t.Errorf("expected confidence 0 on tie, got %v", result.Confidence)
	}
}

func TestDetectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.edi")
	if err := os.WriteFile(path, []byte(ediSample), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := DetectFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Format != interchange.FormatEDI {
		t.Errorf("expected EDI, got %s", result.Format)
	}
}

func TestDetectFile_Missing(t *testing.T) {
	_, err := DetectFile(filepath.Join(t.TempDir(), "nope.edi"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
