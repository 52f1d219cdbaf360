package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Entity category keys in display order.
const (
	CategoryPeople        = "people"
	CategoryTools         = "tools"
	CategoryBrands        = "brands"
	CategoryProducts      = "products"
	CategoryOrganizations = "organizations"
)

// Result is a single entity/tone/style/safety classification.
type Result struct {
	AnalysisID   string      `json:"analysis_id" yaml:"analysis_id"`
	TranscriptID string      `json:"transcript_id" yaml:"transcript_id"`
	CreatorID    string      `json:"creator_id" yaml:"creator_id"`
	Entities     Entities    `json:"entities" yaml:"entities"`
	Tone         Tone        `json:"tone" yaml:"tone"`
	Style        Style       `json:"style" yaml:"style"`
	SafetyFlags  SafetyFlags `json:"safety_flags" yaml:"safety_flags"`
	CreatedAt    Timestamp   `json:"created_at" yaml:"created_at"`
	UpdatedAt    Timestamp   `json:"updated_at,omitzero" yaml:"updated_at,omitempty"`

	// Raw holds the result object exactly as the server sent it. Results
	// built in code leave it empty.
	Raw json.RawMessage `json:"-" yaml:"-"`
}

// Entities groups the named entities detected in a transcript.
type Entities struct {
	People        []string `json:"people" yaml:"people"`
	Tools         []string `json:"tools" yaml:"tools"`
	Brands        []string `json:"brands" yaml:"brands"`
	Products      []string `json:"products" yaml:"products"`
	Organizations []string `json:"organizations" yaml:"organizations"`
}

// Category is one entity bucket.
type Category struct {
	Key   string
	Items []string
}

// Categories returns every entity bucket in display order, empty ones included.
func (e Entities) Categories() []Category {
	return []Category{
		{Key: CategoryPeople, Items: e.People},
		{Key: CategoryTools, Items: e.Tools},
		{Key: CategoryBrands, Items: e.Brands},
		{Key: CategoryProducts, Items: e.Products},
		{Key: CategoryOrganizations, Items: e.Organizations},
	}
}

// Tone describes the dominant and secondary tones of the content.
type Tone struct {
	Primary    string   `json:"primary" yaml:"primary"`
	Secondary  []string `json:"secondary" yaml:"secondary"`
	Confidence float64  `json:"confidence" yaml:"confidence"`
}

// Style describes the presentation style of the content.
type Style struct {
	Primary    string  `json:"primary" yaml:"primary"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// SafetyFlags reports sensitive material found in the content.
type SafetyFlags struct {
	SensitiveDomains []string `json:"sensitive_domains" yaml:"sensitive_domains"`
	Severity         string   `json:"severity" yaml:"severity"`
	RequiresReview   bool     `json:"requires_review" yaml:"requires_review"`
}

// Validate checks the fields a completed classification must carry. Empty
// tone and style labels are legal: the worker leaves them blank when no
// chunk scored above zero confidence.
func (r Result) Validate() error {
	if strings.TrimSpace(r.AnalysisID) == "" {
		return errors.New("analysis_id is empty")
	}
	if err := checkConfidence("tone.confidence", r.Tone.Confidence); err != nil {
		return err
	}
	return checkConfidence("style.confidence", r.Style.Confidence)
}

// Clone returns a deep copy so callers cannot alias slices held by a view.
func (r Result) Clone() Result {
	out := r
	out.Entities = Entities{
		People:        cloneStrings(r.Entities.People),
		Tools:         cloneStrings(r.Entities.Tools),
		Brands:        cloneStrings(r.Entities.Brands),
		Products:      cloneStrings(r.Entities.Products),
		Organizations: cloneStrings(r.Entities.Organizations),
	}
	out.Tone.Secondary = cloneStrings(r.Tone.Secondary)
	out.SafetyFlags.SensitiveDomains = cloneStrings(r.SafetyFlags.SensitiveDomains)
	if r.Raw != nil {
		out.Raw = append(json.RawMessage(nil), r.Raw...)
	}
	return out
}

func checkConfidence(field string, value float64) error {
	if value < 0 || value > 1 {
		return fmt.Errorf("%s %v outside [0,1]", field, value)
	}
	return nil
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
