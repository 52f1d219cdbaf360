package views_test

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"scribe/internal/analysis"
	"scribe/internal/testsupport"
	"scribe/internal/views"
)

func utcFormatter() *views.Formatter {
	return views.NewFormatter(language.AmericanEnglish, "", time.UTC)
}

func TestReportSections(t *testing.T) {
	report := utcFormatter().Report(testsupport.SampleResult("an-1"))

	titles := make([]string, 0, len(report.Sections))
	for _, section := range report.Sections {
		titles = append(titles, section.Title)
	}
	want := []string{views.SectionIdentity, views.SectionEntities, views.SectionTone, views.SectionStyle, views.SectionSafety}
	if strings.Join(titles, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected sections: %v", titles)
	}

	identity, _ := report.Section(views.SectionIdentity)
	if v, _ := identity.Value("Analysis ID"); v != "an-1" {
		t.Fatalf("analysis id: %q", v)
	}
	if v, _ := identity.Value("Transcript ID"); v != "tr-an-1" {
		t.Fatalf("transcript id: %q", v)
	}
	if v, _ := identity.Value("Created At"); v != "3/4/2025, 5:06:07 AM" {
		t.Fatalf("created at: %q", v)
	}

	tone, _ := report.Section(views.SectionTone)
	if v, _ := tone.Value("Confidence"); v != "87.5%" {
		t.Fatalf("tone confidence: %q", v)
	}
	if v, _ := tone.Value("Secondary"); v != "enthusiastic, calm" {
		t.Fatalf("tone secondary: %q", v)
	}
	style, _ := report.Section(views.SectionStyle)
	if v, _ := style.Value("Confidence"); v != "90.0%" {
		t.Fatalf("style confidence: %q", v)
	}

	safety, _ := report.Section(views.SectionSafety)
	if v, _ := safety.Value("Requires Review"); v != "No" {
		t.Fatalf("requires review: %q", v)
	}
	if v, _ := safety.Value("Sensitive Domains"); v != "None" {
		t.Fatalf("sensitive domains: %q", v)
	}
}

func TestReportOmitsEmptyEntityCategories(t *testing.T) {
	report := utcFormatter().Report(testsupport.SampleResult("an-1"))
	entities, ok := report.Section(views.SectionEntities)
	if !ok {
		t.Fatal("entities section missing")
	}
	got := make(map[string]string)
	for _, row := range entities.Rows {
		got[row.Label] = row.Value
	}
	if len(got) != 3 {
		t.Fatalf("expected three categories, got %v", got)
	}
	if got["People"] != "Ada Lovelace, Grace Hopper" || got["Brands"] != "Acme" || got["Organizations"] != "IEEE" {
		t.Fatalf("unexpected entity rows: %v", got)
	}
	if _, ok := got["Tools"]; ok {
		t.Fatal("empty tools category must be omitted")
	}
	if entities.Rows[0].Label != "People" || entities.Rows[2].Label != "Organizations" {
		t.Fatalf("categories out of order: %+v", entities.Rows)
	}
}

func TestReportOmitsEmptySecondaryTone(t *testing.T) {
	result := testsupport.SampleResult("an-1")
	result.Tone.Secondary = nil
	result.SafetyFlags.RequiresReview = true
	result.SafetyFlags.SensitiveDomains = []string{"health", "finance"}

	report := utcFormatter().Report(result)
	tone, _ := report.Section(views.SectionTone)
	if _, ok := tone.Value("Secondary"); ok {
		t.Fatal("secondary row must be omitted when empty")
	}
	safety, _ := report.Section(views.SectionSafety)
	if v, _ := safety.Value("Requires Review"); v != "Yes" {
		t.Fatalf("requires review: %q", v)
	}
	if v, _ := safety.Value("Sensitive Domains"); v != "health, finance" {
		t.Fatalf("sensitive domains: %q", v)
	}
}

func TestLookupRowsFixedOrderAndPlaceholders(t *testing.T) {
	result := analysis.Result{
		AnalysisID:  "only-id",
		Entities:    analysis.Entities{Tools: []string{"Go", " "}},
		SafetyFlags: analysis.SafetyFlags{RequiresReview: true},
		UpdatedAt:   analysis.ParseTimestamp("yesterday-ish"),
	}
	rows := utcFormatter().LookupRows(result)

	labels := []string{
		"Analysis ID", "Transcript ID", "Creator ID", "People", "Tools", "Brands", "Products",
		"Tone", "Style", "Sensitive Domains", "Severity", "Requires Review", "Created At", "Updated At",
	}
	if len(rows) != len(labels) {
		t.Fatalf("expected %d rows, got %d", len(labels), len(rows))
	}
	for i, label := range labels {
		if rows[i].Label != label {
			t.Fatalf("row %d: got %q want %q", i, rows[i].Label, label)
		}
	}
	values := map[string]string{}
	for _, row := range rows {
		values[row.Label] = row.Value
	}
	checks := map[string]string{
		"Analysis ID":     "only-id",
		"Transcript ID":   views.Placeholder,
		"People":          views.Placeholder,
		"Tools":           "Go",
		"Severity":        views.Placeholder,
		"Requires Review": "Yes",
		"Created At":      views.Placeholder,
		"Updated At":      "yesterday-ish",
	}
	for label, want := range checks {
		if values[label] != want {
			t.Fatalf("%s: got %q want %q", label, values[label], want)
		}
	}
}

func TestTimestampZoneAndLayout(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	f := views.NewFormatter(language.German, "2006-01-02 15:04", berlin)
	if got := f.Timestamp(analysis.ParseTimestamp("2025-01-15T12:00:00Z")); got != "2025-01-15 13:00" {
		t.Fatalf("unexpected timestamp %q", got)
	}
	if got := f.Timestamp(analysis.Timestamp{}); got != "" {
		t.Fatalf("expected empty string for absent timestamp, got %q", got)
	}
}

func TestSummaryRows(t *testing.T) {
	result := testsupport.SampleResult("a")
	result.SafetyFlags.RequiresReview = true
	rows := utcFormatter().SummaryRows([]analysis.Result{result, {AnalysisID: "b"}})
	if len(rows) != 2 {
		t.Fatalf("expected two rows, got %d", len(rows))
	}
	if len(rows[0]) != len(views.SummaryHeaders) {
		t.Fatalf("row width %d does not match headers %d", len(rows[0]), len(views.SummaryHeaders))
	}
	if strings.Join(rows[0], "|") != "a|tr-a|creator-7|informative|tutorial|None|Yes|3/4/2025, 5:06:07 AM" {
		t.Fatalf("unexpected first row: %v", rows[0])
	}
	if strings.Join(rows[1], "|") != "b|-|-|-|-|-|No|-" {
		t.Fatalf("unexpected second row: %v", rows[1])
	}
}

func TestRawJSON(t *testing.T) {
	raw, err := utcFormatter().RawJSON(testsupport.SampleResult("an-9"))
	if err != nil {
		t.Fatalf("RawJSON: %v", err)
	}
	if !strings.Contains(raw, `"analysis_id": "an-9"`) {
		t.Fatalf("missing id in raw json:\n%s", raw)
	}
	if !strings.Contains(raw, `"created_at": "2025-03-04T05:06:07Z"`) {
		t.Fatalf("created_at not preserved:\n%s", raw)
	}
	if strings.Contains(raw, "updated_at") {
		t.Fatalf("absent updated_at should be omitted:\n%s", raw)
	}
}

func TestRawJSONShowsServerPayload(t *testing.T) {
	resp, err := analysis.DecodeUploadResponse([]byte(`{"status":"success","result":` +
		`{"analysis_id":"an-3","status":"success","error":"","tone":{"primary":"","confidence":0}}}`))
	if err != nil {
		t.Fatalf("DecodeUploadResponse: %v", err)
	}
	raw, err := utcFormatter().RawJSON(*resp.Result)
	if err != nil {
		t.Fatalf("RawJSON: %v", err)
	}
	for _, want := range []string{`"status": "success"`, `"error": ""`, "\n  \"analysis_id\": \"an-3\""} {
		if !strings.Contains(raw, want) {
			t.Fatalf("raw json missing %s:\n%s", want, raw)
		}
	}
	if strings.Contains(raw, "null") || strings.Contains(raw, "entities") {
		t.Fatalf("raw json contains fields the server never sent:\n%s", raw)
	}
}

func TestReportBlankLabelsUsePlaceholder(t *testing.T) {
	report := utcFormatter().Report(analysis.Result{AnalysisID: "an-4"})
	tone, _ := report.Section(views.SectionTone)
	if v, _ := tone.Value("Primary"); v != views.Placeholder {
		t.Fatalf("tone primary: %q", v)
	}
	if v, _ := tone.Value("Confidence"); v != "0.0%" {
		t.Fatalf("tone confidence: %q", v)
	}
	style, _ := report.Section(views.SectionStyle)
	if v, _ := style.Value("Primary"); v != views.Placeholder {
		t.Fatalf("style primary: %q", v)
	}
	entities, _ := report.Section(views.SectionEntities)
	if len(entities.Rows) != 0 {
		t.Fatalf("expected no entity rows, got %+v", entities.Rows)
	}
}

func TestFormatterFromConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithDisplay("en-GB", "02 Jan 2006 15:04", "UTC"))
	f, err := views.NewFormatterFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewFormatterFromConfig: %v", err)
	}
	if got := f.Timestamp(analysis.ParseTimestamp("2025-03-04T05:06:07Z")); got != "04 Mar 2025 05:06" {
		t.Fatalf("unexpected timestamp %q", got)
	}
	if got := f.Label("brands"); got != "Brands" {
		t.Fatalf("unexpected label %q", got)
	}
}
