package content

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/dmitrymomot/folio/pkg/locale"
)

// Record is one content file in one locale.
type Record struct {
	Slug     string        `json:"slug"`
	Locale   locale.Locale `json:"locale"`
	Metadata Metadata      `json:"metadata"`
	Body     string        `json:"content"`
}

// Metadata is the front matter shared by posts and projects.
// Fields a kind does not use stay empty.
type Metadata struct {
	Title       string   `yaml:"title" json:"title"`
	PublishedAt Date     `yaml:"publishedAt" json:"publishedAt"`
	Summary     string   `yaml:"summary" json:"summary"`
	Image       string   `yaml:"image" json:"image,omitempty"`
	Images      []string `yaml:"images" json:"images,omitempty"`
	Tag         Tags     `yaml:"tag" json:"tag,omitempty"`
	Team        []Member `yaml:"team" json:"team,omitempty"`
	Link        string   `yaml:"link" json:"link,omitempty"`
}

// Member is a project contributor.
type Member struct {
	Avatar string `yaml:"avatar" json:"avatar"`
}

// Tags accepts either a single string or a list in front matter.
type Tags []string

func (t *Tags) UnmarshalYAML(unmarshal func(any) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*t = list
		return nil
	}
	var single string
	if err := unmarshal(&single); err != nil {
		return err
	}
	if single = strings.TrimSpace(single); single != "" {
		*t = Tags{single}
	}
	return nil
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Date is a publish date. Date-only values are read as midnight UTC.
type Date struct {
	time.Time
}

// NewDate wraps t.
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

func (d *Date) UnmarshalYAML(unmarshal func(any) error) error {
	var t time.Time
	if err := unmarshal(&t); err == nil {
		d.Time = t
		return nil
	}
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return d.parse(s)
}

func (d *Date) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			d.Time = t
			return nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	layout := time.RFC3339
	if d.Hour() == 0 && d.Minute() == 0 && d.Second() == 0 && d.Nanosecond() == 0 {
		layout = "2006-01-02"
	}
	return json.Marshal(d.Format(layout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return d.parse(s)
}
