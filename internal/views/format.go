package views

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"scribe/internal/analysis"
	"scribe/internal/config"
)

// Placeholder is shown for missing values in reports, lookup and summary rows.
const Placeholder = "-"

// Row is a single label/value pair.
type Row struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Section is a titled group of rows in a Report.
type Section struct {
	Title string `json:"title" yaml:"title"`
	Rows  []Row  `json:"rows" yaml:"rows"`
}

// Report is the rendered form of a completed classification.
type Report struct {
	Sections []Section `json:"sections" yaml:"sections"`
}

// Section returns the section with the given title.
func (r Report) Section(title string) (Section, bool) {
	for _, section := range r.Sections {
		if section.Title == title {
			return section, true
		}
	}
	return Section{}, false
}

// Value returns the value of label within the section, if present.
func (s Section) Value(label string) (string, bool) {
	for _, row := range s.Rows {
		if row.Label == label {
			return row.Value, true
		}
	}
	return "", false
}

// Report section titles.
const (
	SectionIdentity = "Analysis"
	SectionEntities = "Entities"
	SectionTone     = "Tone"
	SectionStyle    = "Style"
	SectionSafety   = "Safety Flags"
)

// SummaryHeaders names the columns produced by SummaryRows.
var SummaryHeaders = []string{"Analysis ID", "Transcript ID", "Creator ID", "Tone", "Style", "Severity", "Review", "Created At"}

// Formatter renders results using a locale, a timestamp layout and a zone.
type Formatter struct {
	tag    language.Tag
	layout string
	loc    *time.Location
}

// NewFormatter builds a formatter. Zero arguments fall back to American
// English, the default layout and local time.
func NewFormatter(tag language.Tag, layout string, loc *time.Location) *Formatter {
	if tag == language.Und {
		tag = language.AmericanEnglish
	}
	if strings.TrimSpace(layout) == "" {
		layout = "1/2/2006, 3:04:05 PM"
	}
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{tag: tag, layout: layout, loc: loc}
}

// NewFormatterFromConfig builds a formatter from the display section.
func NewFormatterFromConfig(cfg *config.Config) (*Formatter, error) {
	if cfg == nil {
		return NewFormatter(language.Und, "", nil), nil
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return NewFormatter(cfg.LanguageTag(), cfg.Display.TimeLayout, loc), nil
}

// Percent renders a [0,1] confidence as a percentage with one decimal.
func (f *Formatter) Percent(confidence float64) string {
	return message.NewPrinter(f.tag).Sprintf("%.1f%%", confidence*100)
}

// Timestamp renders ts in the configured zone and layout. Values that did
// not parse are shown verbatim; absent values yield the empty string.
func (f *Formatter) Timestamp(ts analysis.Timestamp) string {
	if ts.Valid() {
		return ts.Time.In(f.loc).Format(f.layout)
	}
	return ts.Raw
}

// YesNo renders a boolean flag.
func YesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

// Label title-cases an entity category key ("people" -> "People").
func (f *Formatter) Label(key string) string {
	return cases.Title(f.tag).String(key)
}

// Report renders the sections shown after a successful upload or analysis.
func (f *Formatter) Report(result analysis.Result) Report {
	identity := Section{Title: SectionIdentity, Rows: []Row{
		{Label: "Analysis ID", Value: result.AnalysisID},
		{Label: "Transcript ID", Value: orPlaceholder(result.TranscriptID)},
		{Label: "Created At", Value: orPlaceholder(f.Timestamp(result.CreatedAt))},
	}}

	entities := Section{Title: SectionEntities, Rows: []Row{}}
	for _, category := range result.Entities.Categories() {
		if len(category.Items) == 0 {
			continue
		}
		entities.Rows = append(entities.Rows, Row{
			Label: f.Label(category.Key),
			Value: strings.Join(category.Items, ", "),
		})
	}

	tone := Section{Title: SectionTone, Rows: []Row{{Label: "Primary", Value: orPlaceholder(result.Tone.Primary)}}}
	if len(result.Tone.Secondary) > 0 {
		tone.Rows = append(tone.Rows, Row{Label: "Secondary", Value: strings.Join(result.Tone.Secondary, ", ")})
	}
	tone.Rows = append(tone.Rows, Row{Label: "Confidence", Value: f.Percent(result.Tone.Confidence)})

	style := Section{Title: SectionStyle, Rows: []Row{
		{Label: "Primary", Value: orPlaceholder(result.Style.Primary)},
		{Label: "Confidence", Value: f.Percent(result.Style.Confidence)},
	}}

	domains := "None"
	if len(result.SafetyFlags.SensitiveDomains) > 0 {
		domains = strings.Join(result.SafetyFlags.SensitiveDomains, ", ")
	}
	safety := Section{Title: SectionSafety, Rows: []Row{
		{Label: "Severity", Value: orPlaceholder(result.SafetyFlags.Severity)},
		{Label: "Requires Review", Value: YesNo(result.SafetyFlags.RequiresReview)},
		{Label: "Sensitive Domains", Value: domains},
	}}

	return Report{Sections: []Section{identity, entities, tone, style, safety}}
}

// RawJSON renders the payload as the server sent it, indented. Results that
// did not come off the wire are encoded from their fields instead.
func (f *Formatter) RawJSON(result analysis.Result) (string, error) {
	if len(result.Raw) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, result.Raw, "", "  "); err != nil {
			return "", fmt.Errorf("indent result: %w", err)
		}
		return buf.String(), nil
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(data), nil
}

// LookupRows renders the fixed fourteen-row table of the lookup view.
func (f *Formatter) LookupRows(result analysis.Result) []Row {
	return []Row{
		{Label: "Analysis ID", Value: orPlaceholder(result.AnalysisID)},
		{Label: "Transcript ID", Value: orPlaceholder(result.TranscriptID)},
		{Label: "Creator ID", Value: orPlaceholder(result.CreatorID)},
		{Label: "People", Value: joinOrPlaceholder(result.Entities.People)},
		{Label: "Tools", Value: joinOrPlaceholder(result.Entities.Tools)},
		{Label: "Brands", Value: joinOrPlaceholder(result.Entities.Brands)},
		{Label: "Products", Value: joinOrPlaceholder(result.Entities.Products)},
		{Label: "Tone", Value: orPlaceholder(result.Tone.Primary)},
		{Label: "Style", Value: orPlaceholder(result.Style.Primary)},
		{Label: "Sensitive Domains", Value: joinOrPlaceholder(result.SafetyFlags.SensitiveDomains)},
		{Label: "Severity", Value: orPlaceholder(result.SafetyFlags.Severity)},
		{Label: "Requires Review", Value: YesNo(result.SafetyFlags.RequiresReview)},
		{Label: "Created At", Value: orPlaceholder(f.Timestamp(result.CreatedAt))},
		{Label: "Updated At", Value: orPlaceholder(f.Timestamp(result.UpdatedAt))},
	}
}

// SummaryRows renders one row per result, columns as in SummaryHeaders.
func (f *Formatter) SummaryRows(results []analysis.Result) [][]string {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		rows = append(rows, []string{
			orPlaceholder(result.AnalysisID),
			orPlaceholder(result.TranscriptID),
			orPlaceholder(result.CreatorID),
			orPlaceholder(result.Tone.Primary),
			orPlaceholder(result.Style.Primary),
			orPlaceholder(result.SafetyFlags.Severity),
			YesNo(result.SafetyFlags.RequiresReview),
			orPlaceholder(f.Timestamp(result.CreatedAt)),
		})
	}
	return rows
}

func orPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return Placeholder
	}
	return value
}

func joinOrPlaceholder(values []string) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			parts = append(parts, value)
		}
	}
	if len(parts) == 0 {
		return Placeholder
	}
	return strings.Join(parts, ", ")
}
