// Package report renders a groundwater record as an xlsx workbook.
package report

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/garyellow/groundwater-bot-go/internal/reply"
	"github.com/garyellow/groundwater-bot-go/internal/storage"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	title          = "Groundwater Report"
	titleFontSize  = 16
	titleFontName  = "Calibri"
	maxSheetName   = 31
	invalidInSheet = `[]:*?/\`
)

// Filename returns the attachment name for a location's report.
func Filename(location string) string {
	return "groundwater_report_" + location + ".xlsx"
}

// SheetName returns the worksheet title for location, stripped of characters
// xlsx rejects and cut to the sheet-name limit.
func SheetName(location string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidInSheet, r) {
			return -1
		}
		return r
	}, title+" for "+location)

	runes := []rune(name)
	if len(runes) > maxSheetName {
		runes = runes[:maxSheetName]
	}
	return strings.TrimRight(string(runes), " ")
}

// Build lays out rec on a single sheet named after location: a bold title in
// A1, a blank row, then one key/value row per field.
func Build(location string, rec storage.Record) (*xlsx.File, error) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName(location))
	if err != nil {
		return nil, eris.Wrap(err, "report: add sheet")
	}

	titleCell := sheet.AddRow().AddCell()
	titleCell.SetString(title)
	titleCell.SetStyle(titleStyle())

	sheet.AddRow()

	addPair(sheet, "Location", rec.Location)
	addPair(sheet, "Last Updated", rec.LastUpdated)
	addPair(sheet, "Groundwater Level", reply.FormatReal(rec.GroundwaterLevel)+" m")

	row := sheet.AddRow()
	row.AddCell().SetString("pH")
	row.AddCell().SetFloat(rec.PH)

	addPair(sheet, "TDS", strconv.Itoa(rec.TDS)+" mg/L")
	addPair(sheet, "COD", reply.FormatReal(rec.COD)+" mg/L")
	addPair(sheet, "BOD", reply.FormatReal(rec.BOD)+" mg/L")
	addPair(sheet, "Status", rec.Status)

	return f, nil
}

// Write encodes the workbook for rec to w.
func Write(w io.Writer, location string, rec storage.Record) error {
	f, err := Build(location, rec)
	if err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "report: write workbook")
	}
	return nil
}

// Bytes returns the encoded workbook for rec.
func Bytes(location string, rec storage.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, location, rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addPair(sheet *xlsx.Sheet, key, value string) {
	row := sheet.AddRow()
	row.AddCell().SetString(key)
	row.AddCell().SetString(value)
}

func titleStyle() *xlsx.Style {
	style := xlsx.NewStyle()
	font := xlsx.NewFont(titleFontSize, titleFontName)
	font.Bold = true
	style.Font = *font
	style.ApplyFont = true
	return style
}
