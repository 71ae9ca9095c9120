package loader

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"

	"github.com/dtnitsch/statblock-parser/models"
)

var (
	bboxPattern    = regexp.MustCompile(`bbox (-?\d+) (-?\d+) (-?\d+) (-?\d+)`)
	ppagenoPattern = regexp.MustCompile(`ppageno (\d+)`)
)

// lineClasses are the hOCR elements Tesseract emits for a line of text.
const lineClasses = ".ocr_line, .ocr_header, .ocr_caption, .ocr_textfloat"

type bbox struct {
	x0, y0, x1, y1 float64
}

// parseBBox reads the bbox property of an hOCR title attribute.
func parseBBox(title string) (bbox, bool) {
	m := bboxPattern.FindStringSubmatch(title)
	if m == nil {
		return bbox{}, false
	}
	var v [4]float64
	for i := range v {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return bbox{}, false
		}
		v[i] = float64(n)
	}
	return bbox{v[0], v[1], v[2], v[3]}, true
}

// normalize converts a pixel box to page-normalized coordinates.
func (b bbox) normalize(page bbox) *models.Bound {
	w, h := page.x1-page.x0, page.y1-page.y0
	if w <= 0 || h <= 0 {
		return nil
	}
	return &models.Bound{
		Left:   (b.x0 - page.x0) / w,
		Top:    (b.y0 - page.y0) / h,
		Width:  (b.x1 - b.x0) / w,
		Height: (b.y1 - b.y0) / h,
	}
}

// DecodeHOCR reads Tesseract hOCR output. Each ocr_carea becomes a section and
// each line element inside it a line. Text is NFKC-normalized so ligatures
// such as "ﬁ" compare equal to their plain spelling.
func DecodeHOCR(r io.Reader) (*models.Document, error) {
	hdoc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse hOCR: %w", err)
	}

	pages := hdoc.Find(".ocr_page")
	if pages.Length() == 0 {
		return nil, fmt.Errorf("no ocr_page elements found")
	}

	doc := &models.Document{}

	pages.Each(func(i int, ps *goquery.Selection) {
		title := ps.AttrOr("title", "")
		page := &models.Page{Number: i + 1}
		if m := ppagenoPattern.FindStringSubmatch(title); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				page.Number = n + 1
			}
		}
		pageBox, hasPageBox := parseBBox(title)

		ps.Find(".ocr_carea").Each(func(_ int, area *goquery.Selection) {
			section := &models.Section{}
			area.Find(lineClasses).Each(func(_ int, ls *goquery.Selection) {
				text := lineText(ls)
				if text == "" {
					return
				}
				line := &models.Line{Text: text}
				if b, ok := parseBBox(ls.AttrOr("title", "")); ok && hasPageBox {
					line.Bound = b.normalize(pageBox)
				}
				section.Lines = append(section.Lines, line)
			})
			if len(section.Lines) > 0 {
				page.Sections = append(page.Sections, section)
			}
		})

		doc.Pages = append(doc.Pages, page)
	})

	return doc, nil
}

// lineText joins the line's words with single spaces.
func lineText(ls *goquery.Selection) string {
	words := ls.Find(".ocrx_word").Map(func(_ int, w *goquery.Selection) string {
		return strings.TrimSpace(w.Text())
	})

	var fields []string
	for _, w := range words {
		if w != "" {
			fields = append(fields, w)
		}
	}
	if len(fields) == 0 {
		fields = strings.Fields(ls.Text())
	}
	return norm.NFKC.String(strings.Join(fields, " "))
}
