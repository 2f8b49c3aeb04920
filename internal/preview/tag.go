package preview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/desertthunder/artistx/internal/models"
	"github.com/desertthunder/artistx/internal/shared"
)

// SaveClip downloads track's preview to dest and tags it with the track metadata.
//
// When dest is an existing directory the file is named after the track. Returns the written path.
func SaveClip(ctx context.Context, fetcher *Fetcher, track models.Track, dest string, progress ProgressFunc) (string, error) {
	if !track.HasPreview() {
		return "", fmt.Errorf("%w: %s", shared.ErrNoPreview, track.Name)
	}

	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dest = filepath.Join(dest, ClipFileName(track))
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create clip file: %w", err)
	}

	if _, err := fetcher.Download(ctx, track.PreviewURL, f, progress); err != nil {
		f.Close()
		os.Remove(dest)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close clip file: %w", err)
	}

	if err := TagClip(dest, track); err != nil {
		return dest, err
	}
	return dest, nil
}

// TagClip writes title, artist, album, and a permalink comment to the ID3v2 tag of the file at path.
func TagClip(path string, track models.Track) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open tag: %w", err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(track.Name)
	tag.SetArtist(track.ArtistNames())
	if track.Album != "" {
		tag.SetAlbum(track.Album)
	}

	if track.ExternalURL != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: "Permalink",
			Text:        track.ExternalURL,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save tag: %w", err)
	}
	return nil
}

// ClipFileName builds "{artists} - {title}.mp3" with path separators and reserved characters replaced.
func ClipFileName(track models.Track) string {
	name := track.Name
	if artists := track.ArtistNames(); artists != "" {
		name = artists + " - " + name
	}
	if strings.TrimSpace(name) == "" {
		name = "preview"
	}
	return sanitizer.Replace(name) + ".mp3"
}

var sanitizer = strings.NewReplacer(
	"/", "-", "\\", "-", ":", "-", "*", "", "?", "", "\"", "'", "<", "", ">", "", "|", "-",
)
