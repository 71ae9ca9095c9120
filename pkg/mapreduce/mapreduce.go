// Package mapreduce aggregates tag frequencies across annotated documents.
package mapreduce

import "github.com/dtnitsch/statblock-parser/models"

// Frequencies holds per-document tag counts.
type Frequencies struct {
	LineTags    map[string]int
	SectionTags map[string]int
}

// Map counts every line and section tag occurrence in one document.
// Duplicate tags on the same line are counted each time.
func Map(doc *models.Document) Frequencies {
	f := Frequencies{
		LineTags:    make(map[string]int),
		SectionTags: make(map[string]int),
	}

	for _, section := range doc.Sections() {
		for _, tag := range section.Attributes {
			f.SectionTags[tag]++
		}
		for _, line := range section.Lines {
			for _, tag := range line.Attributes {
				f.LineTags[tag]++
			}
		}
	}

	return f
}

// Reduce aggregates a slice of tag frequency maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for tag, count := range counts {
			finalResults[tag] += count
		}
	}

	return finalResults
}

// ReduceFrequencies merges the line and section counts of many documents.
func ReduceFrequencies(all []Frequencies) Frequencies {
	lines := make([]map[string]int, 0, len(all))
	sections := make([]map[string]int, 0, len(all))
	for _, f := range all {
		lines = append(lines, f.LineTags)
		sections = append(sections, f.SectionTags)
	}
	return Frequencies{
		LineTags:    Reduce(lines),
		SectionTags: Reduce(sections),
	}
}
