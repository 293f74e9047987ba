package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/luisfsill/Ponto-Digital/internal/domain/record"
	"github.com/luisfsill/Ponto-Digital/internal/domain/report"
	"github.com/luisfsill/Ponto-Digital/internal/domain/user"
	"github.com/luisfsill/Ponto-Digital/internal/service/timebank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brt = time.FixedZone("BRT", -3*60*60)

type fakeRecordRepo struct {
	record.RecordRepository
	records []record.Record
}

func (f *fakeRecordRepo) List(ctx context.Context, q record.Query) ([]record.Record, error) {
	var out []record.Record
	for _, r := range f.records {
		if q.UserID != "" && r.UserID != q.UserID {
			continue
		}
		if q.From != nil && r.Timestamp.Before(*q.From) {
			continue
		}
		if q.To != nil && r.Timestamp.After(*q.To) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type fakeUserService struct {
	user.UserService
	expected map[string]int
}

func (f *fakeUserService) ExpectedMinutesByUser(ctx context.Context) (map[string]int, error) {
	return f.expected, nil
}

func rec(id, userID, name string, day, hour, minute int) record.Record {
	n := name
	return record.Record{
		ID:        id,
		UserID:    userID,
		UserName:  &n,
		DeviceID:  "dev-" + userID,
		Timestamp: time.Date(2025, 3, day, hour, minute, 0, 0, brt),
	}
}

func newService(records []record.Record, expected map[string]int) *ReportServiceImpl {
	return NewReportService(
		&fakeRecordRepo{records: records},
		&fakeUserService{expected: expected},
		timebank.DefaultPolicy(brt),
	).(*ReportServiceImpl)
}

func sampleRecords() []record.Record {
	return []record.Record{
		// Ana, day 10: 09-12, 13-18 -> 480
		rec("1", "ana", "Ana", 10, 9, 0),
		rec("2", "ana", "Ana", 10, 12, 0),
		rec("3", "ana", "Ana", 10, 13, 0),
		rec("4", "ana", "Ana", 10, 18, 0),
		// Ana, day 11: 08:30-17:00 -> 510 (+30)
		rec("5", "ana", "Ana", 11, 17, 0),
		rec("6", "ana", "Ana", 11, 8, 30),
		// Bruno, day 11: single entrada -> -480
		rec("7", "bruno", "Bruno", 11, 9, 0),
	}
}

func TestReportService_DailySummaries(t *testing.T) {
	svc := newService(sampleRecords(), nil)

	sums, err := svc.DailySummaries(context.Background(), record.FilterRequest{})
	require.NoError(t, err)
	require.Len(t, sums, 3)

	assert.Equal(t, "2025-03-11", sums[0].Date)
	assert.Equal(t, "Ana", sums[0].UserName)
	assert.Equal(t, 510, sums[0].TotalWorkedMinutes)
	assert.Equal(t, "8h30min", sums[0].Worked)
	assert.Equal(t, "+0h30min", sums[0].Balance)
	require.Len(t, sums[0].Records, 2)
	assert.Equal(t, report.RecordEntry{Time: "08:30:00", Type: "entrada"}, sums[0].Records[0])

	assert.Equal(t, "Bruno", sums[1].UserName)
	assert.Equal(t, "-8h00min", sums[1].Balance)

	assert.Equal(t, "2025-03-10", sums[2].Date)
	assert.Equal(t, "+0h00min", sums[2].Balance)
}

func TestReportService_BankOfHours(t *testing.T) {
	svc := newService(sampleRecords(), nil)

	totals, err := svc.BankOfHours(context.Background(), record.FilterRequest{})
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.Equal(t, "Ana", totals[0].UserName)
	assert.Equal(t, 30, totals[0].TotalBalanceMinutes)
	assert.Equal(t, "+0h30min", totals[0].TotalBalance)
	assert.Equal(t, 2, totals[0].Days)

	assert.Equal(t, "Bruno", totals[1].UserName)
	assert.Equal(t, "-8h00min", totals[1].TotalBalance)
}

func TestReportService_BankOfHours_UsesScheduleQuota(t *testing.T) {
	svc := newService(sampleRecords(), map[string]int{"bruno": 240})

	totals, err := svc.BankOfHours(context.Background(), record.FilterRequest{})
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, -240, totals[1].TotalBalanceMinutes)
}

func TestReportService_DateFilter(t *testing.T) {
	svc := newService(sampleRecords(), nil)

	sums, err := svc.DailySummaries(context.Background(), record.FilterRequest{StartDate: "2025-03-10", EndDate: "2025-03-10"})
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, "2025-03-10", sums[0].Date)

	_, err = svc.DailySummaries(context.Background(), record.FilterRequest{StartDate: "10/03/2025"})
	assert.Error(t, err)
}

func TestReportService_ExportSummaries(t *testing.T) {
	svc := newService(sampleRecords(), nil)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportSummaries(context.Background(), record.FilterRequest{}, &buf))

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(buf.String(), "\ufeff")), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Funcionário;Data;Registros;Trabalhado;Saldo", lines[0])
	assert.Equal(t, "Ana;11/03/2025;08:30 entrada, 17:00 saida;8h30min;+0h30min", lines[1])
	assert.Equal(t, "Bruno;11/03/2025;09:00 entrada;0h00min;-8h00min", lines[2])
}
