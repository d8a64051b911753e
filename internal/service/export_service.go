package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/roster-admin-api/internal/models"
	appErrors "github.com/noah-isme/roster-admin-api/pkg/errors"
	"github.com/noah-isme/roster-admin-api/pkg/export"
)

// Export formats supported by the roster export endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportResult carries a rendered roster document.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the visible roster into downloadable documents.
// Custom field columns are appended after the base columns in schema
// insertion order, so exports always reflect the current field set.
type ExportService struct {
	scope    visibleRecordsProvider
	fields   fieldLister
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	filename string
	logger   *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(scope visibleRecordsProvider, fields fieldLister, filename string, logger *zap.Logger) *ExportService {
	if filename == "" {
		filename = "students"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		scope:    scope,
		fields:   fields,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		filename: filename,
		logger:   logger,
	}
}

// Render produces the roster document in the requested format.
func (s *ExportService) Render(ctx context.Context, identity *models.AuthUser, format string) (*ExportResult, error) {
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown export format %q", format))
	}

	students, err := s.scope.VisibleRecords(ctx, identity)
	if err != nil {
		return nil, err
	}
	fields, err := s.fields.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load custom fields")
	}

	dataset := s.buildDataset(students, fields)

	switch format {
	case ExportFormatCSV:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{Filename: s.filename + ".csv", ContentType: "text/csv", Data: data}, nil
	default:
		data, err := s.pdf.Render(dataset, "Student Roster")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{Filename: s.filename + ".pdf", ContentType: "application/pdf", Data: data}, nil
	}
}

func (s *ExportService) buildDataset(students []models.Student, fields []models.CustomField) export.Dataset {
	headers := []string{"Name", "Email", "Phone", "Status", "Created At"}
	for _, f := range fields {
		headers = append(headers, f.Label)
	}

	rows := make([][]string, 0, len(students))
	for _, st := range students {
		row := []string{st.Name, st.Email, st.Phone, string(st.Status), st.CreatedAt}
		for _, f := range fields {
			if value, ok := st.Custom[f.Key]; ok {
				row = append(row, value.String())
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}

	return export.Dataset{Headers: headers, Rows: rows}
}
