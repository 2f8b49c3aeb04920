// package formatter provides functions to export artist data to various formats (CSV, Markdown, JSON, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/artistx/internal/models"
	"github.com/desertthunder/artistx/internal/shared"
)

// Supported export formats.
const (
	FormatText     = "txt"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatJSON     = "json"
)

// ValidFormat reports whether f names a supported export format.
func ValidFormat(f string) bool {
	switch f {
	case FormatText, FormatMarkdown, FormatCSV, FormatJSON:
		return true
	}
	return false
}

// ArtistsToText renders one [ArtistRow] per line, or [NoArtists].
func ArtistsToText(artists []models.Artist) []byte {
	var buf bytes.Buffer
	if len(artists) == 0 {
		buf.WriteString(NoArtists + "\n")
		return buf.Bytes()
	}
	for i, a := range artists {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, ArtistRow(a))
		fmt.Fprintf(&buf, "   id: %s\n", a.ID)
	}
	return buf.Bytes()
}

// ArtistsToCSV converts artists to CSV with columns: ID, Name, Followers, Popularity, Genres, URL
func ArtistsToCSV(artists []models.Artist) ([]byte, error) {
	records := make([][]string, 0, len(artists))
	for _, a := range artists {
		records = append(records, []string{
			a.ID,
			a.Name,
			strconv.Itoa(a.Followers),
			strconv.Itoa(a.Popularity),
			strings.Join(a.Genres, "; "),
			a.ExternalURL,
		})
	}
	return writeCSV([]string{"ID", "Name", "Followers", "Popularity", "Genres", "URL"}, records)
}

// TracksToCSV converts tracks to CSV with columns: ID, Name, Artists, Album, Duration, PreviewURL, URL
func TracksToCSV(tracks []models.Track) ([]byte, error) {
	records := make([][]string, 0, len(tracks))
	for _, t := range tracks {
		records = append(records, []string{
			t.ID,
			t.Name,
			t.ArtistNames(),
			t.Album,
			t.Duration(),
			t.PreviewURL,
			t.ExternalURL,
		})
	}
	return writeCSV([]string{"ID", "Name", "Artists", "Album", "Duration", "PreviewURL", "URL"}, records)
}

// AlbumsToCSV converts albums to CSV with columns: ID, Name, Type, ReleaseDate, TotalTracks, URL
func AlbumsToCSV(albums []models.Album) ([]byte, error) {
	records := make([][]string, 0, len(albums))
	for _, a := range albums {
		records = append(records, []string{
			a.ID,
			a.Name,
			a.AlbumType,
			a.ReleaseDate,
			strconv.Itoa(a.TotalTracks),
			a.ExternalURL,
		})
	}
	return writeCSV([]string{"ID", "Name", "Type", "ReleaseDate", "TotalTracks", "URL"}, records)
}

func writeCSV(headers []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// DetailToMarkdown converts an artist detail to Markdown with an optional image
func DetailToMarkdown(detail *models.ArtistDetail, imageFilename string) []byte {
	var buf bytes.Buffer
	a := detail.Artist

	fmt.Fprintf(&buf, "# %s\n\n", a.Name)
	if imageFilename != "" {
		fmt.Fprintf(&buf, "![Artist](%s)\n\n", imageFilename)
	}

	fmt.Fprintf(&buf, "**Popularity**: %d\n", a.Popularity)
	fmt.Fprintf(&buf, "**Followers**: %d\n", a.Followers)
	fmt.Fprintf(&buf, "**Genres**: %s\n", shared.JoinOr(a.Genres, ", ", NotAvail))
	if a.ExternalURL != "" {
		fmt.Fprintf(&buf, "**Link**: <%s>\n", a.ExternalURL)
	}

	buf.WriteString("\n## Top Tracks\n\n")
	if len(detail.Tracks) == 0 {
		buf.WriteString(NoTracks + "\n")
	}
	for i, t := range detail.Tracks {
		preview := ""
		if t.HasPreview() {
			preview = fmt.Sprintf(" ([preview](%s))", t.PreviewURL)
		}
		fmt.Fprintf(&buf, "%d. [%s](%s) [%s]%s\n", i+1, t.Name, t.ExternalURL, t.Duration(), preview)
	}

	buf.WriteString("\n## Albums\n\n")
	if len(detail.Albums) == 0 {
		buf.WriteString(NoAlbums + "\n")
	}
	for i, al := range detail.Albums {
		fmt.Fprintf(&buf, "%d. [%s](%s) (%s)\n", i+1, al.Name, al.ExternalURL, al.ReleaseDate)
	}

	return buf.Bytes()
}

// DetailToText converts an artist detail to plain text
func DetailToText(detail *models.ArtistDetail) []byte {
	var buf bytes.Buffer
	a := detail.Artist

	fmt.Fprintf(&buf, "Artist: %s\n", a.Name)
	fmt.Fprintf(&buf, "%s\n", ArtistMeta(a))
	if a.ExternalURL != "" {
		fmt.Fprintf(&buf, "Link: %s\n", a.ExternalURL)
	}

	buf.WriteString("\nTop Tracks\n")
	buf.WriteString(TracksToText(detail.Tracks))

	buf.WriteString("\nAlbums\n")
	buf.WriteString(AlbumsToText(detail.Albums))

	return buf.Bytes()
}

// TracksToText renders one [TrackRow] per line, marking tracks without a preview.
func TracksToText(tracks []models.Track) string {
	if len(tracks) == 0 {
		return NoTracks + "\n"
	}
	var b strings.Builder
	for i, t := range tracks {
		line := TrackRow(i+1, t)
		if !t.HasPreview() {
			line += "  [" + NoPreview + "]"
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// AlbumsToText renders one [AlbumRow] per line.
func AlbumsToText(albums []models.Album) string {
	if len(albums) == 0 {
		return NoAlbums + "\n"
	}
	var b strings.Builder
	for i, a := range albums {
		b.WriteString(AlbumRow(i+1, a) + "\n")
	}
	return b.String()
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	TracksFile   string
	AlbumsFile   string
	MetadataFile string
}

// WriteCSVExport exports an artist detail to CSV with an accompanying metadata JSON file.
//
// Defaults to the artist ID as the base filename & creates {base}_tracks.csv, {base}_albums.csv and {base}_metadata.json
func WriteCSVExport(detail *models.ArtistDetail, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = detail.Artist.ID
	}

	tracksCSV, err := TracksToCSV(detail.Tracks)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tracks CSV: %w", err)
	}
	albumsCSV, err := AlbumsToCSV(detail.Albums)
	if err != nil {
		return nil, fmt.Errorf("failed to generate albums CSV: %w", err)
	}
	metadataJSON, err := shared.MarshalJSON(detail.Artist, true)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	result := &CSVExportResult{
		TracksFile:   baseFilepath + "_tracks.csv",
		AlbumsFile:   baseFilepath + "_albums.csv",
		MetadataFile: baseFilepath + "_metadata.json",
	}

	files := map[string][]byte{
		result.TracksFile:   tracksCSV,
		result.AlbumsFile:   albumsCSV,
		result.MetadataFile: metadataJSON,
	}
	for path, data := range files {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
		}
	}

	return result, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
	Image     string
}

// WriteMarkdownExport exports an artist detail to Markdown in a dedicated directory.
//
// Directory name defaults to the artist ID.
// When the artist has an image URL, attempts to download it next to the README.
// Creates a directory structure: {dir}/README.md and optionally {dir}/artist.jpg
func WriteMarkdownExport(detail *models.ArtistDetail, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = detail.Artist.ID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var imageFilename string
	if detail.Artist.ImageURL != "" {
		if imageData, err := DownloadImage(detail.Artist.ImageURL); err == nil {
			imagePath := filepath.Join(outputDir, "artist.jpg")
			if err := os.WriteFile(imagePath, imageData, 0644); err == nil {
				imageFilename = "artist.jpg"
				result.Image = imagePath
				result.Files = append(result.Files, imagePath)
			}
		}
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, DetailToMarkdown(detail, imageFilename), 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)
	return result, nil
}

// WriteTextExport exports an artist detail to plain text.
//
// Defaults to {artist.ID}.txt as the filename.
func WriteTextExport(detail *models.ArtistDetail, path string) (string, error) {
	if path == "" {
		path = detail.Artist.ID + ".txt"
	}

	if err := os.WriteFile(path, DetailToText(detail), 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}
	return path, nil
}

// WriteJSONExport exports an artist detail to indented JSON.
//
// Defaults to {artist.ID}.json as the filename.
func WriteJSONExport(detail *models.ArtistDetail, path string) (string, error) {
	if path == "" {
		path = detail.Artist.ID + ".json"
	}

	data, err := shared.MarshalJSON(detail, true)
	if err != nil {
		return "", fmt.Errorf("JSON marshal failed: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("JSON write failed: %w", err)
	}
	return path, nil
}
