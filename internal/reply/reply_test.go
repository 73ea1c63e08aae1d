package reply

import (
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/garyellow/groundwater-bot-go/internal/intent"
	"github.com/garyellow/groundwater-bot-go/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placeholder = regexp.MustCompile(`\{[a-z]+\}`)

func salem() storage.Record {
	return storage.Record{
		Location:         "Salem",
		GroundwaterLevel: 12.5,
		PH:               7.2,
		TDS:              450,
		COD:              20,
		BOD:              3.4,
		Status:           "Safe for irrigation",
		LastUpdated:      "2024-05-01",
	}
}

func TestEveryLanguageHasEveryKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"en", "ta", "te"}, Languages())
	keys := Keys()
	require.Len(t, keys, 20)
	for _, lang := range Languages() {
		for _, key := range keys {
			assert.NotEmpty(t, translations[lang][key], "%s/%s", lang, key)
		}
		assert.Len(t, translations[lang], len(keys), lang)
	}
}

func TestRender_NoPlaceholdersLeft(t *testing.T) {
	t.Parallel()
	queryTypes := []intent.QueryType{intent.QueryLevel, intent.QueryQuality, intent.QueryStatus, intent.QueryFull}
	for _, lang := range Languages() {
		for _, qt := range queryTypes {
			t.Run(lang+"/"+string(qt), func(t *testing.T) {
				t.Parallel()
				out := Render(salem(), lang, qt)
				assert.NotEmpty(t, out)
				assert.False(t, placeholder.MatchString(out), "unfilled placeholder in %q", out)
			})
		}
	}
}

func TestRender_FullReport(t *testing.T) {
	t.Parallel()
	out := Render(salem(), "en", intent.QueryFull)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "Here is the full report for Salem:", lines[0])
	assert.Equal(t, "• Groundwater Level: 12.5 m.", lines[1])
	assert.Equal(t, "• pH: 7.2.", lines[2])
	assert.Equal(t, "• TDS: 450 mg/L.", lines[3])
	assert.Equal(t, "• COD: 20.0 mg/L.", lines[4])
	assert.Equal(t, "• BOD: 3.4 mg/L.", lines[5])
	assert.Equal(t, "• Status: Safe for irrigation.", lines[6])
	assert.Equal(t, "• Last updated: 2024-05-01.", lines[7])
	assert.False(t, strings.HasSuffix(out, "\n"))

	for _, lang := range []string{"ta", "te"} {
		assert.Len(t, strings.Split(Render(salem(), lang, intent.QueryFull), "\n"), 8, lang)
	}
}

func TestRender_FullReportLineCount(t *testing.T) {
	t.Parallel()
	records := []storage.Record{
		salem(),
		{Location: "Kumbakonam Town", Status: "{date}", LastUpdated: "{location}"},
		{Location: "x", GroundwaterLevel: -0.0001, PH: 1e20, TDS: -5, COD: math.MaxFloat64},
		{Location: "புதுச்சேரி", Status: "குடிநீருக்கு பாதுகாப்பானது", LastUpdated: "2024-01-01"},
	}
	for _, rec := range records {
		for _, lang := range append(Languages(), "zz") {
			out := Render(rec, lang, intent.QueryFull)
			assert.Len(t, strings.Split(out, "\n"), 8, "%s/%s: %q", rec.Location, lang, out)
		}
	}
}

func TestRender_SingleTemplates(t *testing.T) {
	t.Parallel()
	tests := []struct {
		qt   intent.QueryType
		want string
	}{
		{intent.QueryLevel, "Groundwater level in Salem: 12.5 m. Last updated: 2024-05-01."},
		{intent.QueryQuality, "Water quality in Salem: pH is 7.2, TDS is 450 mg/L, COD is 20.0 mg/L, and BOD is 3.4 mg/L. Last updated: 2024-05-01."},
		{intent.QueryStatus, "For Salem, the water is: Safe for irrigation. Last updated: 2024-05-01."},
	}
	for _, tt := range tests {
		t.Run(string(tt.qt), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Render(salem(), "en", tt.qt))
		})
	}
}

func TestRender_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	t.Parallel()
	for _, lang := range []string{"fr", "", "EN", "ta-IN"} {
		assert.Equal(t, Render(salem(), "en", intent.QueryLevel), Render(salem(), lang, intent.QueryLevel), lang)
	}
}

func TestRender_Tamil(t *testing.T) {
	t.Parallel()
	out := Render(salem(), "ta", intent.QueryLevel)
	assert.Equal(t, "Salem இல் நிலத்தடி நீர் மட்டம்: 12.5 மீ. கடைசியாக புதுப்பிக்கப்பட்டது: 2024-05-01.", out)
}

func TestText(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Hello! I can tell you about groundwater level, quality (pH/TDS/COD/BOD), and irrigation status. Just ask, e.g., 'groundwater level in Kuppam'",
		Text("en", KeyGreeting, nil))
	assert.Equal(t, "No data found for location: Kumbakonam Town", NoData("en", "Kumbakonam Town"))
	assert.Equal(t, "Kumbakonam Town இடத்திற்கான தரவு கிடைக்கவில்லை", NoData("ta", "Kumbakonam Town"))
	assert.Equal(t, "No data found for location: {location}", Text("en", KeyNoData, nil))
	assert.Equal(t, "I'm sorry, I don't understand that request. Could you please rephrase?", Text("xx", KeyUnknownRequest, nil))
}

func TestText_ValuesAreNotReexpanded(t *testing.T) {
	t.Parallel()
	got := Text("en", KeyNoData, map[string]string{"location": "{location}"})
	assert.Equal(t, "No data found for location: {location}", got)
}

func TestDefinition(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "TDS stands for Total Dissolved Solids. It is a measure of the total concentration of dissolved substances in water, which affects its taste and quality.",
		Definition("en", intent.TermTDS))
	assert.True(t, strings.HasPrefix(Definition("en", intent.TermBOD), "BOD stands for"))
	assert.True(t, strings.HasPrefix(Definition("en", intent.TermCOD), "COD stands for"))
	assert.True(t, strings.HasPrefix(Definition("en", intent.TermPH), "pH is a measure"))
	assert.Equal(t, "I can define TDS, BOD, COD, or pH for you. Please ask for a specific term.", Definition("en", ""))
	assert.True(t, strings.HasPrefix(Definition("te", intent.TermTDS), "TDS అంటే"))
}

func TestFormatReal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   float64
		want string
	}{
		{12, "12.0"},
		{12.4, "12.4"},
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{-3.25, "-3.25"},
		{0.1 + 0.2, "0.30000000000000004"},
		{123456789, "123456789.0"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{1e16, "1e+16"},
		{math.NaN(), "nan"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatReal(tt.in))
		})
	}
}

func TestLanguage(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ta", Language("ta"))
	assert.Equal(t, "te", Language("te"))
	assert.Equal(t, "en", Language("hi"))
	assert.Equal(t, "en", Language(""))
}
