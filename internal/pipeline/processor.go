// Package pipeline runs files through detect → parse → validate → store.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/edigest/internal/detect"
	"github.com/dgallion1/edigest/internal/interchange"
	"github.com/dgallion1/edigest/internal/mapping"
	"github.com/dgallion1/edigest/internal/parser"
	"github.com/dgallion1/edigest/internal/store"
	"github.com/dgallion1/edigest/internal/validator"
)

// File statuses persisted to storage.
const (
	StatusValid       = "valid"
	StatusInvalid     = "invalid"
	StatusParseFailed = "failed"
)

// Outcome summarizes one processed file.
type Outcome struct {
	FileID     int64                         `json:"file_id"`
	Detection  interchange.DetectionResult   `json:"detection"`
	FieldCount int                           `json:"field_count"`
	Errors     []interchange.ValidationIssue `json:"errors"`
	Warnings   []interchange.ValidationIssue `json:"warnings"`
	IsValid    bool                          `json:"is_valid"`
	Status     string                        `json:"status"`
}

// Processor runs the synchronous pipeline for a single file. It is safe for
// concurrent use: detection, parsing, and validation share no mutable state,
// and the store serializes its own writes.
type Processor struct {
	store *store.Store
	maps  *mapping.Set
	log   *slog.Logger
}

func NewProcessor(st *store.Store, maps *mapping.Set, log *slog.Logger) *Processor {
	return &Processor{store: st, maps: maps, log: log}
}

// Process runs one file through the pipeline. A format override skips
// detection's verdict but not its confidence report. Validation errors never
// fail the run; only I/O, unsupported formats, and malformed XML do.
func (p *Processor) Process(ctx context.Context, filename string, data []byte, override interchange.Format) (*Outcome, error) {
	detection := detect.Detect(data)
	format := detection.Format
	if override != "" && override != interchange.FormatUnknown {
		format = override
	}

	prs, err := parser.ForFormat(format, p.maps)
	if err != nil {
		return nil, err
	}
	val, err := validator.ForFormat(format)
	if err != nil {
		return nil, err
	}

	fileID, err := p.store.InsertFile(ctx, filename, format, int64(len(data)), detection.Confidence)
	if err != nil {
		return nil, err
	}

	result, err := prs.Parse(data)
	if err != nil {
		if uerr := p.store.UpdateStatus(ctx, fileID, StatusParseFailed, err.Error()); uerr != nil {
			p.log.Error("update status failed", "file_id", fileID, "error", uerr)
		}
		return &Outcome{FileID: fileID, Detection: detection, Status: StatusParseFailed}, err
	}

	verdict := val.Validate(data, result)

	if err := p.store.InsertFields(ctx, fileID, result.Fields); err != nil {
		return nil, fmt.Errorf("store fields: %w", err)
	}
	issues := append(append([]interchange.ValidationIssue{}, verdict.Errors...), verdict.Warnings...)
	if err := p.store.InsertIssues(ctx, fileID, issues); err != nil {
		return nil, fmt.Errorf("store issues: %w", err)
	}

	status := StatusValid
	errMsg := ""
	if !verdict.IsValid() {
		status = StatusInvalid
		errMsg = verdict.Errors[0].Message
	}
	if err := p.store.UpdateStatus(ctx, fileID, status, errMsg); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	p.log.Info("processed file",
		"file", filename,
		"format", format,
		"confidence", detection.Confidence,
		"fields", len(result.Fields),
		"errors", len(verdict.Errors),
		"warnings", len(verdict.Warnings),
	)

	return &Outcome{
		FileID:     fileID,
		Detection:  detection,
		FieldCount: len(result.Fields),
		Errors:     verdict.Errors,
		Warnings:   verdict.Warnings,
		IsValid:    verdict.IsValid(),
		Status:     status,
	}, nil
}
