// Package reply renders localized reply text from fixed templates.
package reply

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/garyellow/groundwater-bot-go/internal/intent"
	"github.com/garyellow/groundwater-bot-go/internal/storage"
)

// DefaultLanguage is used for any unsupported language code.
const DefaultLanguage = "en"

// Key names a reply template.
type Key string

// Template keys.
const (
	KeyGreeting         Key = "greeting"
	KeyNoLocation       Key = "no_location"
	KeyNoData           Key = "no_data"
	KeyLevelReply       Key = "level_reply"
	KeyQualityReply     Key = "quality_reply"
	KeyStatusReply      Key = "status_reply"
	KeyFullReportTitle  Key = "full_report_title"
	KeyFullReportLevel  Key = "full_report_level"
	KeyFullReportPH     Key = "full_report_ph"
	KeyFullReportTDS    Key = "full_report_tds"
	KeyFullReportCOD    Key = "full_report_cod"
	KeyFullReportBOD    Key = "full_report_bod"
	KeyFullReportStatus Key = "full_report_status"
	KeyFullReportDate   Key = "full_report_date"
	KeyUnknownRequest   Key = "unknown_request"
	KeyTDSDef           Key = "tds_def"
	KeyBODDef           Key = "bod_def"
	KeyCODDef           Key = "cod_def"
	KeyPHDef            Key = "ph_def"
	KeyDefError         Key = "def_error"
)

// fullReportLines is the line order of a full report.
var fullReportLines = []Key{
	KeyFullReportTitle,
	KeyFullReportLevel,
	KeyFullReportPH,
	KeyFullReportTDS,
	KeyFullReportCOD,
	KeyFullReportBOD,
	KeyFullReportStatus,
	KeyFullReportDate,
}

var definitionKeys = map[intent.Term]Key{
	intent.TermTDS: KeyTDSDef,
	intent.TermBOD: KeyBODDef,
	intent.TermCOD: KeyCODDef,
	intent.TermPH:  KeyPHDef,
}

// Language returns code when it has templates, otherwise DefaultLanguage.
// Codes are matched exactly.
func Language(code string) string {
	if _, ok := translations[code]; ok {
		return code
	}
	return DefaultLanguage
}

// Languages returns the supported language codes, sorted.
func Languages() []string {
	codes := make([]string, 0, len(translations))
	for code := range translations {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Keys returns every template key.
func Keys() []Key {
	keys := make([]Key, 0, len(translations[DefaultLanguage]))
	for k := range translations[DefaultLanguage] {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Text renders the template key in lang, substituting {name} placeholders
// from vars. Unknown placeholders are left as written.
func Text(lang string, key Key, vars map[string]string) string {
	tmpl := translations[Language(lang)][key]
	if len(vars) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// Definition renders the definition of term, or def_error for an unknown term.
func Definition(lang string, term intent.Term) string {
	if key, ok := definitionKeys[term]; ok {
		return Text(lang, key, nil)
	}
	return Text(lang, KeyDefError, nil)
}

// NoData renders the no_data reply for location.
func NoData(lang, location string) string {
	return Text(lang, KeyNoData, map[string]string{"location": location})
}

// Render produces the reply for a record. level, quality and status use a
// single template; anything else is the eight-line full report.
func Render(rec storage.Record, lang string, qt intent.QueryType) string {
	vars := recordVars(rec)
	switch qt {
	case intent.QueryLevel:
		return Text(lang, KeyLevelReply, vars)
	case intent.QueryQuality:
		return Text(lang, KeyQualityReply, vars)
	case intent.QueryStatus:
		return Text(lang, KeyStatusReply, vars)
	}

	lines := make([]string, len(fullReportLines))
	for i, key := range fullReportLines {
		lines[i] = Text(lang, key, vars)
	}
	return strings.Join(lines, "\n")
}

func recordVars(rec storage.Record) map[string]string {
	return map[string]string{
		"location": rec.Location,
		"level":    FormatReal(rec.GroundwaterLevel),
		"ph":       FormatReal(rec.PH),
		"tds":      strconv.Itoa(rec.TDS),
		"cod":      FormatReal(rec.COD),
		"bod":      FormatReal(rec.BOD),
		"status":   rec.Status,
		"date":     rec.LastUpdated,
	}
}

// FormatReal writes v as its shortest round-trip decimal, keeping one
// decimal place for integral values: 12 -> "12.0", 12.4 -> "12.4".
// Magnitudes below 1e-4 or from 1e16 up use exponent form ("1e-05").
func FormatReal(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
