package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/luisfsill/Ponto-Digital/internal/domain/record"
	"github.com/luisfsill/Ponto-Digital/internal/domain/report"
	"github.com/luisfsill/Ponto-Digital/internal/domain/user"
	"github.com/luisfsill/Ponto-Digital/internal/pkg/csvio"
	"github.com/luisfsill/Ponto-Digital/internal/service/timebank"
)

type ReportServiceImpl struct {
	recordRepo  record.RecordRepository
	userService user.UserService
	policy      timebank.Policy
}

func NewReportService(recordRepo record.RecordRepository, userService user.UserService, policy timebank.Policy) report.ReportService {
	if policy.Location == nil {
		policy.Location = time.UTC
	}
	return &ReportServiceImpl{
		recordRepo:  recordRepo,
		userService: userService,
		policy:      policy,
	}
}

// calculator builds a calculator with the current per-user quotas.
func (s *ReportServiceImpl) calculator(ctx context.Context) (*timebank.Calculator, error) {
	policy := s.policy

	expected, err := s.userService.ExpectedMinutesByUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load work schedules: %w", err)
	}
	policy.ExpectedByUser = expected

	return timebank.NewCalculator(policy), nil
}

func (s *ReportServiceImpl) summaries(ctx context.Context, filter record.FilterRequest) ([]timebank.DailyWorkSummary, *timebank.Calculator, error) {
	q, err := filter.ToQuery(s.policy.Location)
	if err != nil {
		return nil, nil, err
	}

	recs, err := s.recordRepo.List(ctx, q)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list records: %w", err)
	}

	calc, err := s.calculator(ctx)
	if err != nil {
		return nil, nil, err
	}

	events := make([]timebank.Event, 0, len(recs))
	for _, r := range recs {
		ev := timebank.Event{
			ID:        r.ID,
			UserID:    r.UserID,
			DeviceID:  r.DeviceID,
			Timestamp: r.Timestamp,
		}
		if r.UserName != nil {
			ev.UserName = *r.UserName
		}
		events = append(events, ev)
	}

	return calc.DailySummaries(events), calc, nil
}

func (s *ReportServiceImpl) mapSummary(sum timebank.DailyWorkSummary) report.DailySummaryResponse {
	entries := make([]report.RecordEntry, 0, len(sum.Records))
	for _, r := range sum.Records {
		entries = append(entries, report.RecordEntry{
			Time: r.Time.In(s.policy.Location).Format("15:04:05"),
			Type: string(r.Type),
		})
	}

	return report.DailySummaryResponse{
		Date:               sum.Date,
		UserID:             sum.UserID,
		UserName:           sum.UserName,
		Records:            entries,
		TotalWorkedMinutes: sum.TotalWorkedMinutes,
		ExpectedMinutes:    sum.ExpectedMinutes,
		BalanceMinutes:     sum.BalanceMinutes,
		Worked:             timebank.FormatWorked(sum.TotalWorkedMinutes),
		Balance:            timebank.FormatBalance(sum.BalanceMinutes),
		Pending:            sum.Pending,
	}
}

// DailySummaries implements report.ReportService.
func (s *ReportServiceImpl) DailySummaries(ctx context.Context, filter record.FilterRequest) ([]report.DailySummaryResponse, error) {
	sums, _, err := s.summaries(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]report.DailySummaryResponse, 0, len(sums))
	for _, sum := range sums {
		responses = append(responses, s.mapSummary(sum))
	}

	return responses, nil
}

// BankOfHours implements report.ReportService.
func (s *ReportServiceImpl) BankOfHours(ctx context.Context, filter record.FilterRequest) ([]report.BankOfHoursResponse, error) {
	sums, calc, err := s.summaries(ctx, filter)
	if err != nil {
		return nil, err
	}

	totals := calc.BankOfHours(sums)

	responses := make([]report.BankOfHoursResponse, 0, len(totals))
	for _, t := range totals {
		responses = append(responses, report.BankOfHoursResponse{
			UserID:              t.UserID,
			UserName:            t.UserName,
			TotalBalanceMinutes: t.TotalBalanceMinutes,
			TotalBalance:        timebank.FormatBalance(t.TotalBalanceMinutes),
			Days:                t.Days,
		})
	}

	return responses, nil
}

// ExportSummaries implements report.ReportService.
func (s *ReportServiceImpl) ExportSummaries(ctx context.Context, filter record.FilterRequest, w io.Writer) error {
	sums, _, err := s.summaries(ctx, filter)
	if err != nil {
		return err
	}

	rows := make([]csvio.SummaryRow, 0, len(sums))
	for _, sum := range sums {
		date, err := time.ParseInLocation("2006-01-02", sum.Date, s.policy.Location)
		if err != nil {
			return fmt.Errorf("invalid summary date %q: %w", sum.Date, err)
		}

		resp := s.mapSummary(sum)
		marks := make([]string, 0, len(resp.Records))
		for _, e := range resp.Records {
			marks = append(marks, fmt.Sprintf("%s %s", e.Time[:5], e.Type))
		}

		balance := resp.Balance
		if sum.Pending {
			balance += " (pendente)"
		}

		rows = append(rows, csvio.SummaryRow{
			UserName: sum.UserName,
			Date:     date,
			Records:  strings.Join(marks, ", "),
			Worked:   resp.Worked,
			Balance:  balance,
		})
	}

	return csvio.WriteSummaries(w, rows)
}
