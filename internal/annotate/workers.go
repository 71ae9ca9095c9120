package annotate

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/dtnitsch/statblock-parser/internal/common"
	"github.com/dtnitsch/statblock-parser/models"
	pipeline "github.com/dtnitsch/statblock-parser/pkg/annotate"
	"github.com/dtnitsch/statblock-parser/pkg/caching"
	"github.com/dtnitsch/statblock-parser/pkg/detector"
	"github.com/dtnitsch/statblock-parser/pkg/export"
	"github.com/dtnitsch/statblock-parser/pkg/loader"
	"github.com/dtnitsch/statblock-parser/pkg/mapreduce"
	"github.com/dtnitsch/statblock-parser/pkg/storage"
)

// FormatXLSX writes a review spreadsheet instead of a document file.
const FormatXLSX = "xlsx"

// processor turns one input file into an annotated output file.
// All fields are read-only once built, so workers share one processor.
type processor struct {
	logger     *slog.Logger
	pipeline   *pipeline.Pipeline
	detector   *detector.Detector // nil when the language check is off
	cache      *caching.Cache     // nil when caching is off
	force      bool
	storage    *storage.Storage
	outputDir  string
	format     string
	configHash string
	outputs    map[string]string // source -> output file, checked for collisions
	pages      map[string][]int  // source -> selected page numbers, absent for all
	source     *models.Source    // stamped on every output when set
}

func (p *processor) process(id int, path string) Result {
	result := Result{SourcePath: path}
	logger := p.logger.With("worker_id", id, "source", path)

	data, err := p.storage.ReadFile(path)
	if err != nil {
		logger.Error("Error reading document", "error", err)
		result.Error = err
		result.ErrorType = ErrTypeRead
		return result
	}
	result.ContentHash = common.ContentHash(data)

	pages := p.pages[path]
	key := p.cacheKey(result.ContentHash, pages)
	doc := p.fromCache(logger, key)
	result.Cached = doc != nil

	if doc == nil {
		doc, err = loader.Decode(path, data)
		if err != nil {
			logger.Error("Error loading document", "error", err)
			result.Error = err
			result.ErrorType = ErrTypeLoad
			if errors.Is(err, loader.ErrUnsupportedFormat) {
				result.ErrorType = ErrTypeUnsupported
			}
			return result
		}

		if len(pages) > 0 {
			doc.SelectPages(pages)
			if len(doc.Pages) == 0 {
				logger.Warn("None of the selected pages are in the document", "pages", pages)
			}
		}

		if err := p.pipeline.Annotate(doc); err != nil {
			logger.Error("Error annotating document", "error", err)
			result.Error = err
			result.ErrorType = ErrTypeAnnotate
			return result
		}

		p.toCache(logger, key, doc)
	}

	if p.source != nil {
		src := *p.source
		doc.Source = &src
	}

	result.Document = doc
	result.Frequencies = mapreduce.Map(doc)

	if p.detector != nil {
		result.Signals = p.detector.Analyze(doc)
		if result.Signals.Language != "" && !result.Signals.ExpectedLanguage {
			logger.Warn("Document language differs from the signature rules", "language", result.Signals.Language)
		}
	} else {
		result.Signals = detector.Structure(doc)
	}

	result.OutputPath = p.outputPath(path)
	if err := p.write(result.OutputPath, doc); err != nil {
		logger.Error("Error writing output", "output", result.OutputPath, "error", err)
		result.Error = err
		result.ErrorType = ErrTypeWrite
		result.OutputPath = ""
		return result
	}
	if stats, err := p.storage.GetFileStats(result.OutputPath); err == nil {
		result.OutputBytes = stats.SizeBytes
	}

	logger.Info("Worker finished processing", "output", result.OutputPath, "cached", result.Cached,
		"statblocks", result.Signals.StatblockStarts)
	return result
}

// cacheKey covers the page selection too, since it changes the output.
func (p *processor) cacheKey(contentHash string, pages []int) string {
	fingerprint := p.configHash
	if len(pages) > 0 {
		fingerprint += fmt.Sprintf("\x00pages=%v", pages)
	}
	return caching.Key(contentHash, fingerprint)
}

func (p *processor) outputPath(source string) string {
	if out, ok := p.outputs[source]; ok {
		return out
	}
	return storage.OutputPath(p.outputDir, source, p.format)
}

// fromCache returns the cached annotated document, or nil on a miss.
func (p *processor) fromCache(logger *slog.Logger, key string) *models.Document {
	if p.cache == nil || p.force {
		return nil
	}
	data, ok := p.cache.Get(key)
	if !ok {
		return nil
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("Discarding unreadable cache entry", "error", err)
		return nil
	}
	logger.Debug("Annotated document found in cache")
	return &doc
}

func (p *processor) toCache(logger *slog.Logger, key string, doc *models.Document) {
	if p.cache == nil {
		return
	}
	data, err := json.Marshal(doc)
	if err != nil {
		logger.Warn("Failed to marshal document for cache", "error", err)
		return
	}
	if err := p.cache.Set(key, data); err != nil {
		logger.Warn("Failed to write cache entry", "error", err)
	}
}

func (p *processor) write(path string, doc *models.Document) error {
	if p.format == FormatXLSX {
		data, err := export.ReviewXLSX(doc)
		if err != nil {
			return err
		}
		return p.storage.SaveFile(path, data)
	}
	return p.storage.SaveDocument(path, doc, p.format)
}

func worker(id int, p *processor, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		p.logger.Debug("Worker started job", "worker_id", id, "source", job.Path)
		results <- p.process(id, job.Path)
	}
}

// run annotates every file on a pool of workers. Results come back in
// input order along with the reduced tag frequencies of the documents
// that produced output.
func run(p *processor, files []string, workers int) ([]Result, mapreduce.Frequencies, error) {
	p.logger.Info("Starting concurrent annotate phase", "document_count", len(files), "workers", workers, "force", p.force)

	var wg sync.WaitGroup
	jobs := make(chan Job, len(files))
	results := make(chan Result, len(files))

	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go worker(w, p, &wg, jobs, results)
	}

	for _, f := range files {
		jobs <- Job{Path: f}
	}
	close(jobs)

	wg.Wait()
	close(results)
	p.logger.Info("All annotate workers finished")

	order := make(map[string]int, len(files))
	for i, f := range files {
		order[f] = i
	}

	allResults := make([]Result, 0, len(files))
	var runErr error
	var failed int
	for result := range results {
		allResults = append(allResults, result)
		if result.Error != nil {
			failed++
		}
	}
	sort.Slice(allResults, func(i, j int) bool {
		return order[allResults[i].SourcePath] < order[allResults[j].SourcePath]
	})
	if failed > 0 {
		runErr = fmt.Errorf("%d of %d documents failed", failed, len(files))
	}

	p.logger.Info("Starting MapReduce phase")
	intermediate := make([]mapreduce.Frequencies, 0, len(allResults))
	for _, result := range allResults {
		if result.Error == nil {
			intermediate = append(intermediate, result.Frequencies)
		}
	}

	return allResults, mapreduce.ReduceFrequencies(intermediate), runErr
}
