package models

import "strings"

// Source describes the publication a document was scanned from. It is
// carried into every output and the run record; it never affects tagging.
type Source struct {
	Title   string   `json:"title,omitempty" yaml:"title,omitempty" env:"SBP_SOURCE_TITLE"`
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty" env:"SBP_SOURCE_AUTHORS" envSeparator:","`
	URL     string   `json:"url,omitempty" yaml:"url,omitempty" env:"SBP_SOURCE_URL"`
}

// IsZero reports whether no source metadata is set.
func (s Source) IsZero() bool {
	return s.Title == "" && len(s.Authors) == 0 && s.URL == ""
}

// SplitAuthors flattens repeated and comma separated author values,
// e.g. ["Gygax, Arneson", " Kuntz"] -> [Gygax Arneson Kuntz].
func SplitAuthors(values []string) []string {
	var authors []string
	for _, v := range values {
		for _, a := range strings.Split(v, ",") {
			if a = strings.TrimSpace(a); a != "" {
				authors = append(authors, a)
			}
		}
	}
	return authors
}
