// Package pipeline provides the single-pass run behind every binheat entry
// point.
//
// A run reads the optional label files, feeds the relation into a fresh
// [relation.Index], sorts the automatic axes if asked to, and renders the
// index in one output format. The CLI and the HTTP server both go through
// [Runner.Execute], so flags, defaults, and error codes stay consistent.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{Sort: true, Format: pipeline.FormatSVG}
//	result, err := runner.Execute(ctx, pipeline.Sources{Input: r}, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifact)
package pipeline

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/binheat/pkg/errors"
	"github.com/matzehuels/binheat/pkg/relation"
	"github.com/matzehuels/binheat/pkg/render/grid"
	"github.com/matzehuels/binheat/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultFontSize is the label font size in points.
	DefaultFontSize = grid.DefaultFontSize

	// DefaultScale is the PNG scale factor.
	DefaultScale = sink.DefaultScale

	// DefaultFormat is used when neither a flag nor an output extension
	// names a format.
	DefaultFormat = FormatPDF
)

// Format constants for output formats.
const (
	FormatPDF  = "pdf"
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF:  true,
	FormatPNG:  true,
	FormatSVG:  true,
	FormatJSON: true,
}

var contentTypes = map[string]string{
	FormatPDF:  "application/pdf",
	FormatPNG:  "image/png",
	FormatSVG:  "image/svg+xml",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options contains all configuration for a run.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Ingest options
	Transpose  bool `json:"transpose,omitempty"`
	Multiline  bool `json:"multiline,omitempty"`
	Sort       bool `json:"sort,omitempty"`
	AllowExtra bool `json:"allow_extra,omitempty"`

	// Render options
	FontFile    string  `json:"-"`
	FontSize    float64 `json:"font_size,omitempty"`
	Format      string  `json:"format,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	ColumnColor string  `json:"column_color,omitempty"` // hex, e.g. "#cccccc"
	RowColor    string  `json:"row_color,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// CreatedAt pins the PDF creation date; zero means now.
	CreatedAt time.Time `json:"-"`
}

// Sources holds the readers a run consumes. Input is required; the label
// readers are optional and name the rows and columns of the input as read,
// before any transpose.
//
// The label lists are an in-memory alternative to the label readers. They
// are applied verbatim: no trimming, and "#" or blank entries are labels.
// Giving both a reader and a list for the same axis is an INVALID_STATE
// error.
type Sources struct {
	Input        io.Reader
	RowLabels    io.Reader
	ColumnLabels io.Reader

	RowLabelList    []string
	ColumnLabelList []string
}

// Result contains the outputs of a run.
type Result struct {
	// Index is the populated, possibly sorted, relation index.
	Index *relation.Index

	// Artifact is the rendered output.
	Artifact []byte

	// Format is the format Artifact is encoded in.
	Format string

	// Stats contains counts and timings.
	Stats Stats
}

// Stats contains run statistics.
type Stats struct {
	Rows       int
	Columns    int
	Pairs      int
	Lines      int
	Dropped    int
	IngestTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: pdf, png, svg, json)", format)
	}
	return nil
}

// FormatFromPath infers the output format from a file extension.
// It returns "" when the extension names no supported format.
func FormatFromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ValidFormats[ext] {
		return ext
	}
	return ""
}

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Extension returns the file extension for format, including the dot.
func Extension(format string) string {
	return "." + format
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults fills in defaults and checks the render settings.
// Sort has no default here; callers decide it explicitly.
func (o *Options) ValidateAndSetDefaults() error {
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := errors.ValidateFontSize(o.FontSize); err != nil {
		return err
	}
	if err := errors.ValidateScale(o.Scale); err != nil {
		return err
	}
	if o.FontFile != "" {
		if err := errors.ValidatePath(o.FontFile); err != nil {
			return err
		}
	}
	return ValidateFormat(o.Format)
}
