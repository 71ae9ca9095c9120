package models

import (
	"fmt"
	"strconv"
	"strings"
)

// PageSelection lists page numbers to keep, one group per input document.
// "1,2;5" keeps pages 1 and 2 of the first input and page 5 of the second.
// A single group applies to every input.
type PageSelection [][]int

// ParsePageSelection parses the --pages syntax. An empty string selects
// every page.
func ParsePageSelection(s string) (PageSelection, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var sel PageSelection
	for _, group := range strings.Split(s, ";") {
		var pages []int
		for _, field := range strings.Split(group, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("invalid page number %q: %w", field, err)
			}
			if n < 0 {
				return nil, fmt.Errorf("invalid page number %d", n)
			}
			pages = append(pages, n)
		}
		if len(pages) == 0 {
			return nil, fmt.Errorf("empty page group in %q", s)
		}
		sel = append(sel, pages)
	}
	return sel, nil
}

// Check verifies the selection can be matched to the given number of inputs.
func (ps PageSelection) Check(inputs int) error {
	if len(ps) > 1 && len(ps) != inputs {
		return fmt.Errorf("%d page groups given for %d documents", len(ps), inputs)
	}
	return nil
}

// For returns the pages selected for the input at index, or nil for all.
func (ps PageSelection) For(index int) []int {
	switch {
	case len(ps) == 0:
		return nil
	case len(ps) == 1:
		return ps[0]
	case index < len(ps):
		return ps[index]
	}
	return nil
}

// SelectPages drops every page whose number is not listed. Page order is
// unchanged. An empty list keeps all pages.
func (d *Document) SelectPages(numbers []int) {
	if len(numbers) == 0 {
		return
	}
	keep := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		keep[n] = true
	}

	pages := d.Pages[:0]
	for _, p := range d.Pages {
		if keep[p.Number] {
			pages = append(pages, p)
		}
	}
	d.Pages = pages
}
