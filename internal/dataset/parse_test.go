package dataset

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/garyellow/groundwater-bot-go/internal/errors"
	"github.com/garyellow/groundwater-bot-go/internal/intent"
	"github.com/garyellow/groundwater-bot-go/internal/reply"
)

const header = "location,groundwater_level,pH,TDS,COD,BOD,status,last_updated\n"

const sampleCSV = header +
	"Salem,12.5,7.2,450,20.0,3.5,Safe,2024-05-01\n" +
	"Puducherry,8,6.9,900,35.5,6.1,Critical,2024-04-20\n"

func TestParse_Valid(t *testing.T) {
	t.Parallel()

	recs, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "Salem", recs[0].Location)
	assert.InDelta(t, 12.5, recs[0].GroundwaterLevel, 0)
	assert.InDelta(t, 7.2, recs[0].PH, 0)
	assert.Equal(t, 450, recs[0].TDS)
	assert.InDelta(t, 20.0, recs[0].COD, 0)
	assert.InDelta(t, 3.5, recs[0].BOD, 0)
	assert.Equal(t, "Safe", recs[0].Status)
	assert.Equal(t, "2024-05-01", recs[0].LastUpdated)

	assert.Equal(t, "Puducherry", recs[1].Location)
	assert.InDelta(t, 8.0, recs[1].GroundwaterLevel, 0)
}

func TestParse_ColumnOrderIndependent(t *testing.T) {
	t.Parallel()

	data := "status,location,last_updated,TDS,pH,COD,BOD,groundwater_level\n" +
		"Safe,Karaikal,2024-01-01,300,7.0,10,2,4.25\n"
	recs, err := Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Karaikal", recs[0].Location)
	assert.InDelta(t, 4.25, recs[0].GroundwaterLevel, 0)
	assert.Equal(t, 300, recs[0].TDS)
}

func TestParse_HeaderOnly(t *testing.T) {
	t.Parallel()

	recs, err := Parse(strings.NewReader(header))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestParse_HeaderErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{"empty input", "", "missing header row"},
		{"missing column", "location,groundwater_level,pH,TDS,COD,BOD,status\n", "last_updated"},
		{"wrong case", "Location,groundwater_level,ph,TDS,COD,BOD,status,last_updated\n", "location, pH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(strings.NewReader(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParse_InvalidRows(t *testing.T) {
	t.Parallel()

	data := header +
		"Salem,12.5,7.2,450,20.0,3.5,Safe,2024-05-01\n" +
		",1,7,1,1,1,Safe,2024-01-01\n" +
		"Karaikal,deep,7,1,1,1,Safe,2024-01-01\n" +
		"Kanchipuram,1,7,12.5,1,1,Safe,2024-01-01\n" +
		"Viluppuram,1,NaN,1,1,1,Safe,2024-01-01\n" +
		"Villupuram,1,7,1,inf,1,Safe,2024-01-01\n" +
		"Kumbakonam Town,1,7,1\n"

	recs, err := Parse(strings.NewReader(data))
	require.Error(t, err)
	assert.Nil(t, recs)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Len(t, pe.Rows, 6)

	lines := make([]int, len(pe.Rows))
	for i, r := range pe.Rows {
		lines[i] = r.Line
	}
	assert.Equal(t, []int{3, 4, 5, 6, 7, 8}, lines)

	assert.Contains(t, pe.Rows[0].Error(), "location: must not be empty")
	assert.Contains(t, pe.Rows[1].Error(), "groundwater_level")
	assert.Contains(t, pe.Rows[2].Error(), "TDS")
	assert.Contains(t, pe.Rows[3].Error(), "not finite")
	assert.Contains(t, pe.Rows[4].Error(), "COD")
	assert.Contains(t, err.Error(), "6 invalid rows")

	var ve *domerrors.ValidationError
	require.ErrorAs(t, pe.Rows[1], &ve)
	assert.Equal(t, "groundwater_level", ve.Field)
	assert.True(t, domerrors.IsInvalidInput(err))
	assert.False(t, domerrors.IsInvalidInput(pe.Rows[5]), "short rows are csv errors")
}

func TestParse_MultiLineFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		row    string
		column string
	}{
		{"status", "Salem,12.4,7.2,450,20,3.5,\"Safe\nfor {date}\",2024-01-01\n", "status"},
		{"location", "\"Salem\nNorth\",12.4,7.2,450,20,3.5,Safe,2024-01-01\n", "location"},
		{"last updated", "Salem,12.4,7.2,450,20,3.5,Safe,\"2024-01-01\nlater\"\n", "last_updated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(strings.NewReader(header + tt.row))
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			require.Len(t, pe.Rows, 1)

			var ve *domerrors.ValidationError
			require.ErrorAs(t, pe.Rows[0], &ve)
			assert.Equal(t, tt.column, ve.Field)
			assert.Equal(t, "must be a single line", ve.Message)
		})
	}
}

func TestParse_RecordsRenderEightLineReports(t *testing.T) {
	t.Parallel()

	data := sampleCSV + "\"Kumbakonam Town\",3,7.0,300,10,2,\"Safe, for now\",2024-03-03\n"
	recs, err := Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, recs, 3)

	for _, rec := range recs {
		out := reply.Render(rec, "en", intent.QueryFull)
		assert.Len(t, strings.Split(out, "\n"), 8, rec.Location)
	}
}

func TestRowError_Unwrap(t *testing.T) {
	t.Parallel()

	base := errors.New("bad")
	err := &RowError{Line: 2, Err: base}
	require.ErrorIs(t, err, base)
	assert.Equal(t, "line 2: bad", err.Error())
}
