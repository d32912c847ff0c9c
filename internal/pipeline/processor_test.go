package pipeline

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/edigest/internal/interchange"
	"github.com/dgallion1/edigest/internal/mapping"
	"github.com/dgallion1/edigest/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProcessor(t *testing.T) (*Processor, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewProcessor(st, mapping.Defaults(), testLogger()), st
}

func ediInvoice(drop string) []byte {
	segments := []string{
		"ISA*00*AUTH000001*00*SECU000001*ZZ*SENDERID       *ZZ*RECEIVERID     *240115*1201*U*00401*000000001*0*P*:",
		"GS*IN*SENDERID*RECEIVERID*20240115*1201*1*X*004010",
		"ST*810*0001",
		"BIG*20240115*INV-1001*20240110*PO-555",
		"TDS*12500",
		"SE*4*0001",
		"GE*1*1",
		"IEA*1*000000001",
	}
	var kept []string
	for _, s := range segments {
		if drop != "" && strings.HasPrefix(s, drop+"*") {
			continue
		}
		kept = append(kept, s)
	}
	return []byte(strings.Join(kept, "~") + "~")
}

func TestProcessor_ValidEDI(t *testing.T) {
	p, st := newTestProcessor(t)
	ctx := context.Background()

	outcome, err := p.Process(ctx, "invoice.edi", ediInvoice(""), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.Status != StatusValid {
		t.Errorf("expected status %s, got %s", StatusValid, outcome.Status)
	}
	if !outcome.IsValid {
		t.Error("expected valid outcome")
	}
	if outcome.Detection.Format != interchange.FormatEDI {
		t.Errorf("expected EDI detection, got %s", outcome.Detection.Format)
	}
	if outcome.FieldCount == 0 {
		t.Error("expected extracted fields")
	}

	f, err := st.FileByID(ctx, outcome.FileID)
	if err != nil {
		t.Fatalf("file by id: %v", err)
	}
	if f == nil || f.Status != StatusValid {
		t.Errorf("stored file not marked valid: %+v", f)
	}
	fields, err := st.FieldsByFile(ctx, outcome.FileID)
	if err != nil {
		t.Fatalf("fields by file: %v", err)
	}
	if len(fields) != outcome.FieldCount {
		t.Errorf("stored %d fields, outcome reports %d", len(fields), outcome.FieldCount)
	}
}

func TestProcessor_InvalidEDIStillStored(t *testing.T) {
	p, st := newTestProcessor(t)
	ctx := context.Background()

	outcome, err := p.Process(ctx, "truncated.edi", ediInvoice("IEA"), "")
	if err != nil {
		t.Fatalf("validation errors must not fail the run: %v", err)
	}

	if outcome.Status != StatusInvalid {
		t.Errorf("expected status %s, got %s", StatusInvalid, outcome.Status)
	}
	if outcome.IsValid {
		t.Error("expected invalid outcome")
	}
	if len(outcome.Errors) != 1 {
		t.Errorf("expected exactly 1 error, got %v", outcome.Errors)
	}

	f, err := st.FileByID(ctx, outcome.FileID)
	if err != nil {
		t.Fatalf("file by id: %v", err)
	}
	if f.Status != StatusInvalid {
		t.Errorf("expected stored status %s, got %s", StatusInvalid, f.Status)
	}
	if f.ErrorMessage == "" {
		t.Error("expected stored error message")
	}
	issues, err := st.IssuesByFile(ctx, outcome.FileID)
	if err != nil {
		t.Fatalf("issues by file: %v", err)
	}
	if len(issues) != 1 {
		t.Errorf("expected 1 stored issue, got %d", len(issues))
	}
}

func TestProcessor_MalformedXMLFailsParse(t *testing.T) {
	p, st := newTestProcessor(t)
	ctx := context.Background()

	outcome, err := p.Process(ctx, "broken.xml", []byte("<order><item></order>"), "")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if outcome == nil || outcome.Status != StatusParseFailed {
		t.Fatalf("expected outcome with status %s, got %+v", StatusParseFailed, outcome)
	}

	f, ferr := st.FileByID(ctx, outcome.FileID)
	if ferr != nil {
		t.Fatalf("file by id: %v", ferr)
	}
	if f.Status != StatusParseFailed || f.ErrorMessage == "" {
		t.Errorf("expected stored failure record, got %+v", f)
	}
}

func TestProcessor_FormatOverride(t *testing.T) {
	p, _ := newTestProcessor(t)

	// Bare segments without an ISA header would not detect as X12.
	content := []byte("BIG*20240115*INV-9*20240110*PO-1~TDS*500~")
	outcome, err := p.Process(context.Background(), "bare.edi", content, interchange.FormatEDI)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.FieldCount == 0 {
		t.Error("expected fields extracted under forced format")
	}
	// Missing envelope segments make it invalid, but it still processes.
	if outcome.Status != StatusInvalid {
		t.Errorf("expected status %s, got %s", StatusInvalid, outcome.Status)
	}
}

func TestProcessor_UnknownFormatRejected(t *testing.T) {
	p, st := newTestProcessor(t)
	ctx := context.Background()

	_, err := p.Process(ctx, "mystery.bin", []byte("nothing recognizable"), "")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}

	// Rejected before anything is stored.
	n, cerr := st.FileCount(ctx)
	if cerr != nil {
		t.Fatalf("file count: %v", cerr)
	}
	if n != 0 {
		t.Errorf("expected no stored files, got %d", n)
	}
}
