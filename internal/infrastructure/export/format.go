package export

import (
	"fmt"
	"strings"

	"github.com/rentdesk/backend/internal/domain/shared"
)

// Format is an export file format
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// ParseFormat parses a format name case-insensitively
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatXLSX, FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", shared.NewValidationError("unsupported export format %q", s)
	}
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// FileName returns the download name for a period, e.g. bills_2024-01.xlsx
func (f Format) FileName(period string) string {
	return fmt.Sprintf("bills_%s.%s", period, f)
}

// Document is a rendered export
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
}
