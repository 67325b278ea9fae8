// Package export renders forecasts as downloadable documents.
package export

import (
	"fmt"
	"strings"

	"github.com/Dan9191/budget-service/internal/forecast"
	"github.com/Dan9191/budget-service/internal/models"
)

// Format is a supported document format
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
	FormatXML  Format = "xml"
)

// ParseFormat accepts xlsx, pdf or xml in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatXLSX, FormatPDF, FormatXML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: format must be xlsx, pdf or xml, got %q", forecast.ErrInvalidParameter, s)
	}
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/xml"
	}
}

// Document is a forecast with the parameters that produced it
type Document struct {
	HouseholdID int64
	StartDate   string
	EndDate     string
	Buffer      float64
	Forecast    models.Forecast
}

// NewDocument prepares a forecast result for rendering.
func NewDocument(householdID int64, res *forecast.Result) Document {
	return Document{
		HouseholdID: householdID,
		StartDate:   forecast.FormatDate(res.StartDate),
		EndDate:     forecast.FormatDate(res.EndDate),
		Buffer:      forecast.Money(res.Buffer),
		Forecast:    res.Response(),
	}
}

// FileName is the attachment name offered to clients.
func (d Document) FileName(f Format) string {
	return fmt.Sprintf("forecast-%d-%s.%s", d.HouseholdID, d.StartDate, f)
}

// Render encodes the document in the given format.
func Render(f Format, doc Document) ([]byte, error) {
	switch f {
	case FormatXLSX:
		return BuildForecastXLSX(doc)
	case FormatPDF:
		return BuildForecastPDF(doc)
	case FormatXML:
		return BuildForecastXML(doc)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", forecast.ErrInvalidParameter, f)
	}
}

func optionalString(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func optionalMoney(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
