package model

// Industry is a lead's industry category. The set of valid industries is
// derived from the lead store, not declared up front.
type Industry string

// Region is a lead's market location. Like Industry, the valid set is
// whatever the lead store contains.
type Region string

// All is the wildcard value for FilterSpec.Industry and FilterSpec.Region.
const All = "All"

// MetricMin and MetricMax bound every metric value.
const (
	MetricMin = 0.0
	MetricMax = 10.0
)

// Metrics holds the four fit sub-scores of a lead, each in [0, 10].
type Metrics struct {
	// Design rates the brand's visual craft.
	Design float64 `json:"design" yaml:"design"`

	// Storytelling rates how strongly the brand narrates its product.
	Storytelling float64 `json:"storytelling" yaml:"storytelling"`

	// Innovation rates appetite for new formats (AI, AR, projection).
	Innovation float64 `json:"innovation" yaml:"innovation"`

	// Responsiveness rates how active and reachable the brand is.
	Responsiveness float64 `json:"responsiveness" yaml:"responsiveness"`
}

// Values returns the metrics in their canonical order.
func (m Metrics) Values() [4]float64 {
	return [4]float64{m.Design, m.Storytelling, m.Innovation, m.Responsiveness}
}

// Lead represents one prospective brand collaboration.
// Leads are created once when the store is built and never mutated.
type Lead struct {
	// ID is the unique, stable identifier of the lead.
	ID string `json:"id" yaml:"id"`

	// Name is the brand name.
	Name string `json:"name" yaml:"name"`

	// Description is a one-paragraph summary of the brand.
	Description string `json:"description" yaml:"description"`

	// Website is the brand's homepage URL.
	Website string `json:"website" yaml:"website"`

	// Instagram is the brand's Instagram profile URL. Optional.
	Instagram string `json:"instagram,omitempty" yaml:"instagram,omitempty"`

	Industry Industry `json:"industry" yaml:"industry"`
	Location Region   `json:"location" yaml:"location"`

	Audience          string `json:"audience" yaml:"audience"`
	Activity          string `json:"activity" yaml:"activity"`
	Opportunity       string `json:"opportunity" yaml:"opportunity"`
	CollaborationHook string `json:"collaborationHook" yaml:"collaborationHook"`
	WhyItMatters      string `json:"whyItMatters" yaml:"whyItMatters"`
	Notes             string `json:"notes" yaml:"notes"`

	// Signals are short observations backing the lead (launches, cadence, press).
	Signals []string `json:"signals" yaml:"signals"`

	// ContentIdeas are pitch ideas for the collaboration.
	ContentIdeas []string `json:"contentIdeas" yaml:"contentIdeas"`

	Metrics Metrics `json:"metrics" yaml:"metrics"`
}

// Clone returns a deep copy of the lead.
func (l Lead) Clone() Lead {
	out := l
	if l.Signals != nil {
		out.Signals = append([]string(nil), l.Signals...)
	}
	if l.ContentIdeas != nil {
		out.ContentIdeas = append([]string(nil), l.ContentIdeas...)
	}
	return out
}
