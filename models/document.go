package models

import "strings"

// Bound is a line's bounding box in page-normalized coordinates.
// Left and Top are fractions of the page width/height, y grows downward.
type Bound struct {
	Left   float64 `json:"left" yaml:"left"`
	Top    float64 `json:"top" yaml:"top"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Bottom returns the y coordinate of the lower edge.
func (b Bound) Bottom() float64 {
	return b.Top + b.Height
}

// Line is one row of extracted text on a page.
type Line struct {
	Text  string `json:"text" yaml:"text"`
	Bound *Bound `json:"bound,omitempty" yaml:"bound,omitempty"` // nil when the extractor had no geometry

	// Attributes accumulates tags in the order annotation assigned them.
	// It is not a set: annotating twice duplicates every tag.
	Attributes []string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// HasAttribute reports whether tag was assigned at least once.
func (l *Line) HasAttribute(tag string) bool {
	for _, a := range l.Attributes {
		if a == tag {
			return true
		}
	}
	return false
}

// Section is a contiguous run of lines forming one layout cluster,
// typically a column fragment of a page.
type Section struct {
	Lines      []*Line  `json:"lines" yaml:"lines"`
	Attributes []string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// LineAttributes returns the distinct tags present across the section's lines.
func (s *Section) LineAttributes() map[string]bool {
	tags := make(map[string]bool)
	for _, l := range s.Lines {
		for _, a := range l.Attributes {
			tags[a] = true
		}
	}
	return tags
}

// HasAttribute reports whether tag was assigned to the section at least once.
func (s *Section) HasAttribute(tag string) bool {
	for _, a := range s.Attributes {
		if a == tag {
			return true
		}
	}
	return false
}

// Page groups the sections found on one page, in reading order.
type Page struct {
	Number   int        `json:"number" yaml:"number"`
	Sections []*Section `json:"sections" yaml:"sections"`
}

// Lines flattens the page's sections into reading order.
func (p *Page) Lines() []*Line {
	var lines []*Line
	for _, s := range p.Sections {
		lines = append(lines, s.Lines...)
	}
	return lines
}

// Document is a loaded source file: the unit one annotation pass works on.
type Document struct {
	Name   string  `json:"name" yaml:"name"`
	Source *Source `json:"source,omitempty" yaml:"source,omitempty"`
	Pages  []*Page `json:"pages" yaml:"pages"`
}

// Sections returns every section of the document in page order.
func (d *Document) Sections() []*Section {
	var sections []*Section
	for _, p := range d.Pages {
		sections = append(sections, p.Sections...)
	}
	return sections
}

// Lines returns every line of the document in reading order.
func (d *Document) Lines() []*Line {
	var lines []*Line
	for _, p := range d.Pages {
		lines = append(lines, p.Lines()...)
	}
	return lines
}

// ToPlainText joins all line text, one line per row.
func (d *Document) ToPlainText() string {
	var sb strings.Builder

	for _, l := range d.Lines() {
		sb.WriteString(l.Text)
		sb.WriteString("\n")
	}

	return sb.String()
}
