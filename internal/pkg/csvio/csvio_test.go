package csvio

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brt = time.FixedZone("BRT", -3*60*60)

func TestWriteRecords(t *testing.T) {
	var buf bytes.Buffer
	rows := []RecordRow{{
		UserName:  "Ana Souza",
		Timestamp: time.Date(2025, 3, 10, 12, 5, 9, 0, time.UTC),
		Latitude:  -23.5505,
		Longitude: -46.6333,
		DeviceID:  "dev-1",
	}}

	require.NoError(t, WriteRecords(&buf, rows, brt))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\ufeff"))
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, "\ufeff")), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Usuário;Data/Hora;Latitude;Longitude;Device ID", lines[0])
	assert.Equal(t, "Ana Souza;10/03/2025 09:05:09;-23.550500;-46.633300;dev-1", lines[1])
}

func TestWriteSummaries(t *testing.T) {
	var buf bytes.Buffer
	rows := []SummaryRow{{
		UserName: "Ana",
		Date:     time.Date(2025, 3, 10, 0, 0, 0, 0, brt),
		Records:  "09:00 E, 18:00 S",
		Worked:   "9h00min",
		Balance:  "+1h00min",
	}}

	require.NoError(t, WriteSummaries(&buf, rows))

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(buf.String(), "\ufeff")), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Funcionário;Data;Registros;Trabalhado;Saldo", lines[0])
	assert.Equal(t, "Ana;10/03/2025;09:00 E, 18:00 S;9h00min;+1h00min", lines[1])
}

func TestReadRecords_RoundTripsExport(t *testing.T) {
	var buf bytes.Buffer
	ts := time.Date(2025, 3, 10, 9, 0, 0, 0, brt)
	require.NoError(t, WriteRecords(&buf, []RecordRow{{UserName: "Ana", Timestamp: ts, Latitude: -23.5, Longitude: -46.6, DeviceID: "dev-1"}}, brt))

	rows, rowErrs, err := ReadRecords(&buf, brt, "imported")
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Line)
	assert.True(t, rows[0].Timestamp.Equal(ts))
	assert.Equal(t, "dev-1", rows[0].DeviceID)
	assert.Nil(t, rows[0].Type)
}

func TestReadRecords_DefaultsAndErrors(t *testing.T) {
	input := strings.Join([]string{
		"Usuário;Data/Hora;Latitude;Longitude;Device ID;Tipo",
		"Ana;10/03/2025 09:00:00;;;;entrada",
		"Bruno;31/02/2025 09:00:00;0;0;dev",
		"Caio;10/03/2025 09:00;-91;0;dev",
		"Dani;10/03/2025 18:00:00;-23,5;-46,6;dev;almoço",
		"Eva;10/03/2025",
		"",
		"Fabi;2025-03-10 18:00:00;1.5;2.5;dev-f;Saída",
	}, "\n")

	rows, rowErrs, err := ReadRecords(strings.NewReader(input), brt, "imported")
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Ana", rows[0].UserName)
	assert.Equal(t, "imported", rows[0].DeviceID)
	assert.Zero(t, rows[0].Latitude)
	require.NotNil(t, rows[0].Type)
	assert.Equal(t, "entrada", *rows[0].Type)

	assert.Equal(t, "Fabi", rows[1].UserName)
	assert.Equal(t, 8, rows[1].Line)
	require.NotNil(t, rows[1].Type)
	assert.Equal(t, "saida", *rows[1].Type)

	lines := make([]int, len(rowErrs))
	for i, e := range rowErrs {
		lines[i] = e.Line
	}
	assert.Equal(t, []int{3, 4, 5, 6}, lines)
}

func TestReadRecords_Empty(t *testing.T) {
	_, _, err := ReadRecords(strings.NewReader(""), brt, "imported")
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestReadRecords_StripsBOMWithoutHeader(t *testing.T) {
	rows, rowErrs, err := ReadRecords(strings.NewReader("\ufeffAna;10/03/2025 09:00:00;1;2;d"), brt, "imported")
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana", rows[0].UserName)
	assert.Equal(t, 1, rows[0].Line)
}
