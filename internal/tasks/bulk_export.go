package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/artistx/internal/formatter"
	"github.com/desertthunder/artistx/internal/models"
	"github.com/desertthunder/artistx/internal/shared"
	"golang.org/x/time/rate"
)

// BulkExportOpts contains configuration for bulk artist exports.
type BulkExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: artist_export_{epoch})
	NumWorkers int     // Concurrent writers (default: 5)
	RateLimit  float64 // Artist lookups per second (default: 5)
}

// ArtistExportJob is a resolved artist waiting to be written to disk.
type ArtistExportJob struct {
	Query  string
	Detail *models.ArtistDetail
}

// ArtistExportResult is the outcome of exporting a single artist.
type ArtistExportResult struct {
	Query      string   `json:"query"`
	ArtistID   string   `json:"artist_id,omitempty"`
	ArtistName string   `json:"artist_name"`
	Success    bool     `json:"success"`
	Files      []string `json:"files,omitempty"`
	Error      error    `json:"-"`
}

// BulkExportResult summarizes a bulk export run.
type BulkExportResult struct {
	TotalArtists      int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []ArtistExportResult
}

type manifestEntry struct {
	ArtistExportResult
	Error string `json:"error,omitempty"`
}

type manifest struct {
	Format     string          `json:"format"`
	ExportedAt time.Time       `json:"exported_at"`
	Total      int             `json:"total"`
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
	Artists    []manifestEntry `json:"artists"`
}

// BulkExport resolves each query to its best-matching artist and exports the artist detail concurrently.
//
// Lookups are rate limited and run on a single producer; writes are spread over a worker pool.
// Failures are recorded per artist and a manifest file summarizing the run is written to the output directory.
func (e *ArtistEngine) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, queries []string, opts BulkExportOpts) (*BulkExportResult, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	if opts.Format == "" {
		opts.Format = formatter.FormatJSON
	}
	if !formatter.ValidFormat(opts.Format) {
		return nil, fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, opts.Format)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("artist_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalArtists:    len(queries),
		OutputDirectory: opts.OutputDir,
		Results:         make([]ArtistExportResult, 0, len(queries)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan ArtistExportJob, len(queries))
	results := make(chan ArtistExportResult, len(queries))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	var producer sync.WaitGroup
	producer.Add(1)
	go func() {
		defer producer.Done()
		defer close(jobs)

		for i, query := range queries {
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			e.sendProgress(prog, resolvingArtistUpdate(i+1, len(queries), query))

			detail, err := e.resolve(ctx, query)
			if err != nil {
				results <- ArtistExportResult{
					Query:      query,
					ArtistName: fmt.Sprintf("Unknown (%s)", query),
					Error:      err,
				}
				continue
			}

			jobs <- ArtistExportJob{Query: query, Detail: detail}
		}
	}()

	go func() {
		producer.Wait()
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(queries), res.ArtistName, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(queries), res.ArtistName, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := writeManifest(result, opts.Format, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// resolve picks the first search hit for query and fetches its detail.
// A section failure fails the whole artist so exports are never silently partial.
func (e *ArtistEngine) resolve(ctx context.Context, query string) (*models.ArtistDetail, error) {
	artists, err := e.Search(ctx, nil, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search artist: %w", err)
	}
	if len(artists) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrArtistNotFound, query)
	}

	res, err := e.FetchDetail(ctx, nil, artists[0])
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch artist detail: %w", err)
	}
	return &res.Detail, nil
}

// exportWorker is a worker goroutine that writes artists from the jobs channel.
func (e *ArtistEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan ArtistExportJob,
	results chan<- ArtistExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			results <- ArtistExportResult{
				Query:      job.Query,
				ArtistID:   job.Detail.Artist.ID,
				ArtistName: job.Detail.Artist.Name,
				Error:      ctx.Err(),
			}
			continue
		}
		results <- exportSingleArtist(job, opts)
	}
}

// exportSingleArtist writes a single artist in the requested format.
func exportSingleArtist(j ArtistExportJob, opts BulkExportOpts) ArtistExportResult {
	a := j.Detail.Artist
	result := ArtistExportResult{
		Query:      j.Query,
		ArtistID:   a.ID,
		ArtistName: a.Name,
		Files:      []string{},
	}

	files, err := WriteArtist(j.Detail, opts.Format, filepath.Join(opts.OutputDir, a.ID))
	if err != nil {
		result.Error = err
		return result
	}

	result.Files = files
	result.Success = true
	return result
}

// WriteArtist exports detail in format and returns the written files.
//
// base is extended with ".txt" or ".json" for single-file formats, used as a filename prefix for CSV,
// and used as the output directory for Markdown.
func WriteArtist(detail *models.ArtistDetail, format, base string) ([]string, error) {
	switch format {
	case formatter.FormatCSV:
		csvRes, err := formatter.WriteCSVExport(detail, base)
		if err != nil {
			return nil, fmt.Errorf("CSV export failed: %w", err)
		}
		return []string{csvRes.TracksFile, csvRes.AlbumsFile, csvRes.MetadataFile}, nil

	case formatter.FormatMarkdown:
		mdRes, err := formatter.WriteMarkdownExport(detail, base)
		if err != nil {
			return nil, fmt.Errorf("markdown export failed: %w", err)
		}
		return mdRes.Files, nil

	case formatter.FormatText:
		path, err := formatter.WriteTextExport(detail, base+".txt")
		if err != nil {
			return nil, fmt.Errorf("text export failed: %w", err)
		}
		return []string{path}, nil

	case formatter.FormatJSON:
		path, err := formatter.WriteJSONExport(detail, base+".json")
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	return nil, fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidFlag, format)
}

func writeManifest(result *BulkExportResult, format, path string) error {
	m := manifest{
		Format:     format,
		ExportedAt: time.Now().UTC(),
		Total:      result.TotalArtists,
		Successful: result.SuccessfulExports,
		Failed:     result.FailedExports,
		Artists:    make([]manifestEntry, 0, len(result.Results)),
	}
	for _, r := range result.Results {
		entry := manifestEntry{ArtistExportResult: r}
		if r.Error != nil {
			entry.Error = r.Error.Error()
		}
		m.Artists = append(m.Artists, entry)
	}

	data, err := shared.MarshalJSON(m, true)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ParseQueries splits comma- or newline-separated artist names, dropping blanks.
func ParseQueries(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' })
	queries := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			queries = append(queries, f)
		}
	}
	return queries
}
