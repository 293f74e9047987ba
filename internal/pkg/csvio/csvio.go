// Package csvio reads and writes the semicolon separated spreadsheets used
// for importing and exporting clock records and daily summaries.
package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const (
	Separator = ';'
	bom       = "\ufeff"

	DateTimeLayout = "02/01/2006 15:04:05"
	DateLayout     = "02/01/2006"
)

var (
	RecordsHeader   = []string{"Usuário", "Data/Hora", "Latitude", "Longitude", "Device ID"}
	SummariesHeader = []string{"Funcionário", "Data", "Registros", "Trabalhado", "Saldo"}
)

var acceptedDateTimeLayouts = []string{
	DateTimeLayout,
	"02/01/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

var ErrEmptyFile = errors.New("file is empty")

func newWriter(w io.Writer) (*csv.Writer, error) {
	if _, err := io.WriteString(w, bom); err != nil {
		return nil, err
	}
	cw := csv.NewWriter(w)
	cw.Comma = Separator
	return cw, nil
}

// RecordRow is one line of the records spreadsheet.
type RecordRow struct {
	UserName  string
	Timestamp time.Time
	Latitude  float64
	Longitude float64
	DeviceID  string
}

// WriteRecords writes a BOM, the header and one line per row. Timestamps are
// rendered in loc.
func WriteRecords(w io.Writer, rows []RecordRow, loc *time.Location) error {
	cw, err := newWriter(w)
	if err != nil {
		return err
	}

	if err := cw.Write(RecordsHeader); err != nil {
		return err
	}

	for _, row := range rows {
		line := []string{
			row.UserName,
			row.Timestamp.In(loc).Format(DateTimeLayout),
			strconv.FormatFloat(row.Latitude, 'f', 6, 64),
			strconv.FormatFloat(row.Longitude, 'f', 6, 64),
			row.DeviceID,
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SummaryRow is one line of the daily summaries spreadsheet.
type SummaryRow struct {
	UserName string
	Date     time.Time
	Records  string
	Worked   string
	Balance  string
}

func WriteSummaries(w io.Writer, rows []SummaryRow) error {
	cw, err := newWriter(w)
	if err != nil {
		return err
	}

	if err := cw.Write(SummariesHeader); err != nil {
		return err
	}

	for _, row := range rows {
		line := []string{row.UserName, row.Date.Format(DateLayout), row.Records, row.Worked, row.Balance}
		if err := cw.Write(line); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ImportRow is a parsed line of an uploaded records spreadsheet. Line is the
// 1-based line number in the file.
type ImportRow struct {
	Line      int
	UserName  string
	Timestamp time.Time
	Latitude  float64
	Longitude float64
	DeviceID  string
	Type      *string
}

type RowError struct {
	Line    int
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ReadRecords parses an uploaded records spreadsheet. Malformed lines are
// returned as RowErrors and never stop the parse; err is set only when the
// input itself cannot be read. Empty coordinates become 0 and an empty
// device becomes defaultDevice. A sixth column, when present, must be
// entrada or saida.
func ReadRecords(r io.Reader, loc *time.Location, defaultDevice string) (rows []ImportRow, rowErrs []RowError, err error) {
	br := bufio.NewReader(r)
	if peek, _ := br.Peek(len(bom)); string(peek) == bom {
		_, _ = br.Discard(len(bom))
	}

	cr := csv.NewReader(br)
	cr.Comma = Separator
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	read := 0
	for {
		fields, readErr := cr.Read()
		if readErr == io.EOF {
			break
		}
		read++
		if readErr != nil {
			var parseErr *csv.ParseError
			if errors.As(readErr, &parseErr) {
				rowErrs = append(rowErrs, RowError{Line: parseErr.Line, Message: parseErr.Err.Error()})
				continue
			}
			return nil, nil, readErr
		}

		line, _ := cr.FieldPos(0)
		if read == 1 && isHeader(fields) {
			continue
		}
		if isBlank(fields) {
			continue
		}

		row, rowErr := parseRecordRow(line, fields, loc, defaultDevice)
		if rowErr != nil {
			rowErrs = append(rowErrs, *rowErr)
			continue
		}
		rows = append(rows, row)
	}

	if read == 0 {
		return nil, nil, ErrEmptyFile
	}

	return rows, rowErrs, nil
}

func isHeader(fields []string) bool {
	return len(fields) > 0 && strings.EqualFold(strings.TrimSpace(fields[0]), RecordsHeader[0])
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parseRecordRow(line int, fields []string, loc *time.Location, defaultDevice string) (ImportRow, *RowError) {
	fail := func(format string, args ...interface{}) (ImportRow, *RowError) {
		return ImportRow{}, &RowError{Line: line, Message: fmt.Sprintf(format, args...)}
	}

	if len(fields) < len(RecordsHeader) {
		return fail("expected at least %d columns, got %d", len(RecordsHeader), len(fields))
	}

	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	row := ImportRow{Line: line, UserName: fields[0], DeviceID: fields[4]}

	if row.UserName == "" {
		return fail("user name is required")
	}

	ts, ok := parseDateTime(fields[1], loc)
	if !ok {
		return fail("invalid date/time %q, expected dd/mm/yyyy hh:mm:ss", fields[1])
	}
	row.Timestamp = ts

	lat, ok := parseCoordinate(fields[2], 90)
	if !ok {
		return fail("invalid latitude %q", fields[2])
	}
	lon, ok := parseCoordinate(fields[3], 180)
	if !ok {
		return fail("invalid longitude %q", fields[3])
	}
	row.Latitude, row.Longitude = lat, lon

	if row.DeviceID == "" {
		row.DeviceID = defaultDevice
	}

	if len(fields) > 5 && fields[5] != "" {
		t := strings.ToLower(fields[5])
		if t == "saída" {
			t = "saida"
		}
		if t != "entrada" && t != "saida" {
			return fail("invalid type %q, expected entrada or saida", fields[5])
		}
		row.Type = &t
	}

	return row, nil
}

func parseDateTime(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range acceptedDateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// parseCoordinate accepts both '.' and ',' as decimal separator. Empty means 0.
func parseCoordinate(s string, limit float64) (float64, bool) {
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || v < -limit || v > limit {
		return 0, false
	}
	return v, true
}
