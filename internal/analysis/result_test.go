package analysis_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"scribe/internal/analysis"
)

func TestResultValidate(t *testing.T) {
	valid := analysis.Result{
		AnalysisID: "a",
		Tone:       analysis.Tone{Primary: "calm", Confidence: 1},
		Style:      analysis.Style{Primary: "talk", Confidence: 0},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid result, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*analysis.Result)
		want   string
	}{
		{"missing id", func(r *analysis.Result) { r.AnalysisID = " " }, "analysis_id"},
		{"tone above one", func(r *analysis.Result) { r.Tone.Confidence = 1.2 }, "tone.confidence"},
		{"style negative", func(r *analysis.Result) { r.Style.Confidence = -0.1 }, "style.confidence"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := valid
			tc.mutate(&r)
			err := r.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestResultValidateAcceptsBlankLabels(t *testing.T) {
	blank := analysis.Result{AnalysisID: "a"}
	if err := blank.Validate(); err != nil {
		t.Fatalf("zero-confidence result with blank labels should validate, got %v", err)
	}
}

func TestResultCloneDoesNotAlias(t *testing.T) {
	original := analysis.Result{
		AnalysisID:  "a",
		Entities:    analysis.Entities{People: []string{"Ada"}},
		Tone:        analysis.Tone{Secondary: []string{"calm"}},
		SafetyFlags: analysis.SafetyFlags{SensitiveDomains: []string{"health"}},
		Raw:         []byte(`{"analysis_id":"a"}`),
	}
	clone := original.Clone()
	clone.Raw[2] = 'X'
	if string(original.Raw) != `{"analysis_id":"a"}` {
		t.Fatalf("clone aliased raw payload: %s", original.Raw)
	}
	clone.Entities.People[0] = "Grace"
	clone.Tone.Secondary[0] = "loud"
	clone.SafetyFlags.SensitiveDomains[0] = "finance"
	if original.Entities.People[0] != "Ada" || original.Tone.Secondary[0] != "calm" || original.SafetyFlags.SensitiveDomains[0] != "health" {
		t.Fatalf("clone aliased original: %+v", original)
	}
}

func TestEntitiesCategoriesOrder(t *testing.T) {
	cats := analysis.Entities{}.Categories()
	want := []string{"people", "tools", "brands", "products", "organizations"}
	if len(cats) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(cats))
	}
	for i, key := range want {
		if cats[i].Key != key {
			t.Fatalf("category %d: got %q want %q", i, cats[i].Key, key)
		}
	}
}

func TestParseTimestampLayouts(t *testing.T) {
	for _, value := range []string{
		"2025-03-04T05:06:07Z",
		"2025-03-04T05:06:07.123456+02:00",
		"2025-03-04T05:06:07.123456",
		"2025-03-04 05:06:07",
	} {
		ts := analysis.ParseTimestamp(value)
		if !ts.Valid() {
			t.Fatalf("expected %q to parse", value)
		}
		if ts.Time.Year() != 2025 || ts.Time.Month() != time.March || ts.Time.Day() != 4 {
			t.Fatalf("unexpected date for %q: %v", value, ts.Time)
		}
	}

	zoneless := analysis.ParseTimestamp("2025-03-04T05:06:07")
	if want := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC); !zoneless.Time.Equal(want) || zoneless.Time.Location() != time.UTC {
		t.Fatalf("zone-less timestamp should read as UTC, got %v", zoneless.Time)
	}

	garbage := analysis.ParseTimestamp("yesterday")
	if garbage.Valid() || garbage.Raw != "yesterday" || garbage.IsZero() {
		t.Fatalf("unexpected garbage timestamp: %+v", garbage)
	}
	if !analysis.ParseTimestamp("  ").IsZero() {
		t.Fatal("expected blank timestamp to be zero")
	}
}

func TestTimestampJSONRoundTripKeepsRawText(t *testing.T) {
	var r analysis.Result
	if err := json.Unmarshal([]byte(`{"analysis_id":"a","created_at":"2025-03-04T05:06:07.5","updated_at":null}`), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"created_at":"2025-03-04T05:06:07.5"`) {
		t.Fatalf("expected raw created_at preserved: %s", out)
	}
	if strings.Contains(string(out), "updated_at") {
		t.Fatalf("expected updated_at omitted: %s", out)
	}
}

func TestIsAcceptedFile(t *testing.T) {
	for name, want := range map[string]bool{
		"talk.mp4":       true,
		"TALK.MOV":       true,
		"clip.webm":      true,
		"voice.mp3":      true,
		"voice.wav":      true,
		"notes.txt":      true,
		"slides.pdf":     false,
		"archive.tar.gz": false,
		"noext":          false,
	} {
		if got := analysis.IsAcceptedFile(name); got != want {
			t.Fatalf("IsAcceptedFile(%q) = %v, want %v", name, got, want)
		}
	}
	if got := analysis.AcceptAttribute(); got != ".mp4,.mov,.webm,.mp3,.wav,.txt" {
		t.Fatalf("unexpected accept attribute %q", got)
	}
}

func TestAnalyzeRequestValidate(t *testing.T) {
	if err := (analysis.AnalyzeRequest{TranscriptID: "t", CreatorID: "c", TranscriptText: "hi"}).Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
	err := (analysis.AnalyzeRequest{TranscriptID: "t", CreatorID: " "}).Validate()
	if err == nil || err.Error() != "creator_id, transcript_text required" {
		t.Fatalf("unexpected error: %v", err)
	}
}
