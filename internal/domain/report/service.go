package report

import (
	"context"
	"io"

	"github.com/luisfsill/Ponto-Digital/internal/domain/record"
)

type ReportService interface {
	// DailySummaries classifies the filtered records and returns one summary
	// per employee per day, newest first.
	DailySummaries(ctx context.Context, filter record.FilterRequest) ([]DailySummaryResponse, error)

	// BankOfHours returns the accumulated balance per employee.
	BankOfHours(ctx context.Context, filter record.FilterRequest) ([]BankOfHoursResponse, error)

	ExportSummaries(ctx context.Context, filter record.FilterRequest, w io.Writer) error
}
