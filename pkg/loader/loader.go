// Package loader reads upstream line/section geometry into models.Document.
// Supported inputs are the JSON or YAML document shape and Tesseract hOCR.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/statblock-parser/models"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for file extensions no loader handles.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Input formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHOCR = "hocr"
)

// DetectFormat maps a file name to an input format by extension.
func DetectFormat(name string) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hocr", ".html", ".htm":
		return FormatHOCR, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// Load reads and decodes the document at path.
func Load(path string) (*models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decode(path, data)
}

// Decode parses data according to the format implied by name.
func Decode(name string, data []byte) (*models.Document, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}

	var doc *models.Document
	switch format {
	case FormatJSON:
		doc, err = decodeJSON(data)
	case FormatYAML:
		doc, err = decodeYAML(data)
	case FormatHOCR:
		doc, err = DecodeHOCR(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	if err := checkEntries(doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	normalizeText(doc)

	if doc.Name == "" {
		doc.Name = filepath.Base(name)
	}
	return doc, nil
}

func decodeJSON(data []byte) (*models.Document, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// decodeYAML puts YAML through the same schema as JSON by converting the
// generic tree first.
func decodeYAML(data []byte) (*models.Document, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	asJSON, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("yaml is not representable as a document: %w", err)
	}
	if err := validateDocument(asJSON); err != nil {
		return nil, err
	}

	var doc models.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// checkEntries rejects null pages, sections and lines, which the decoders
// turn into nil pointers.
func checkEntries(doc *models.Document) error {
	for i, page := range doc.Pages {
		if page == nil {
			return fmt.Errorf("page %d is null", i)
		}
		for j, section := range page.Sections {
			if section == nil {
				return fmt.Errorf("page %d section %d is null", i, j)
			}
			for k, line := range section.Lines {
				if line == nil {
					return fmt.Errorf("page %d section %d line %d is null", i, j, k)
				}
			}
		}
	}
	return nil
}

// normalizeText applies NFKC to every line so ligatures and non-breaking
// spaces from OCR match the ASCII-oriented signature rules.
func normalizeText(doc *models.Document) {
	for _, line := range doc.Lines() {
		line.Text = norm.NFKC.String(line.Text)
	}
}
