// Package export writes resolved records as IMDb v3 ratings CSV files, one
// file per kind of list entry.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"

	"github.com/Belphemur/filmed/internal/apperrors"
	"github.com/Belphemur/filmed/internal/config"
	"github.com/Belphemur/filmed/internal/metrics"
	"github.com/Belphemur/filmed/internal/models"
)

// File names inside the export directory.
const (
	GenericFile   = "generic.csv"
	WatchlistFile = "want2see.csv"
	FavoriteFile  = "favorited.csv"
)

// lockFile keeps two exports from writing into the same directory.
const lockFile = ".export.lock"

// ErrLocked is returned by Create when another export holds the directory.
var ErrLocked = errors.New("another export is writing to this directory")

// NotFound is written in the Const column of records without a link.
const NotFound = "not-found"

// watchlistRating replaces the rating of watch-list entries.
const watchlistRating = "WATCHLIST"

// Header is the IMDb v3 ratings export layout.
var Header = []string{
	"Const",
	"Your Rating",
	"Date Rated",
	"Title",
	"URL",
	"Title Type",
	"IMDb Rating",
	"Runtime (mins)",
	"Year",
	"Genres",
	"Num Votes",
	"Release Date",
	"Directors",
}

const (
	colConst = iota
	colRating
	_ // Date Rated
	colTitle
	colURL
	colTitleType
	_ // IMDb Rating
	colRuntime
	colYear
	colGenres
)

// Writer routes records into the generic, watch-list and favorite CSV files.
type Writer struct {
	files   map[string]*csv.Writer
	closers []io.Closer
	lock    *flock.Flock
	counts  map[string]int
}

// NewWriter writes the header to each destination and returns a writer over them.
func NewWriter(generic, watchlist, favorite io.Writer) (*Writer, error) {
	w := &Writer{
		files: map[string]*csv.Writer{
			GenericFile:   csv.NewWriter(generic),
			WatchlistFile: csv.NewWriter(watchlist),
			FavoriteFile:  csv.NewWriter(favorite),
		},
		counts: make(map[string]int, 3),
	}
	for name, cw := range w.files {
		if err := cw.Write(Header); err != nil {
			return nil, fmt.Errorf("write %s header: %w", name, err)
		}
	}
	return w, nil
}

// Create makes dir if needed, locks it and truncates the three export files
// inside it. The lock is released by Close.
func Create(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, lockFile))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock export directory: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", dir, ErrLocked)
	}

	var files []*os.File
	abort := func() {
		for _, f := range files {
			_ = f.Close()
		}
		_ = lock.Unlock()
	}
	for _, name := range []string{GenericFile, WatchlistFile, FavoriteFile} {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			abort()
			return nil, fmt.Errorf("create %s: %w", name, err)
		}
		files = append(files, f)
	}

	w, err := NewWriter(files[0], files[1], files[2])
	if err != nil {
		abort()
		return nil, err
	}
	for _, f := range files {
		w.closers = append(w.closers, f)
	}
	w.lock = lock
	logger := config.GetLogger()
	logger.Info().Str("directory", dir).Msg("Export files created")
	return w, nil
}

// FileFor picks the destination of a record from its user flags. Favorites and
// plain ratings need a rating, watch-list entries must have none.
func FileFor(rec *models.TitleRecord) (string, error) {
	rated := rec.Rating != nil
	switch {
	case rec.Favorited && !rec.Watchlisted && rated:
		return FavoriteFile, nil
	case !rec.Favorited && rec.Watchlisted && !rated:
		return WatchlistFile, nil
	case !rec.Favorited && !rec.Watchlisted && rated:
		return GenericFile, nil
	default:
		return "", fmt.Errorf("record %d (%s): %w", rec.ID, rec.Name, apperrors.ErrInconsistentRecord)
	}
}

// Row renders a record in the export layout. Columns the source catalog has
// no data for stay empty.
func Row(rec *models.TitleRecord) []string {
	row := make([]string, len(Header))

	row[colConst] = NotFound
	if rec.Link != nil {
		row[colConst] = rec.Link.Candidate.ExternalID
		row[colURL] = rec.Link.Candidate.URL
	}

	row[colRating] = watchlistRating
	if rec.Rating != nil {
		row[colRating] = strconv.Itoa(*rec.Rating)
	}

	row[colTitle] = rec.Name
	row[colTitleType] = titleType(rec.Kind)
	if rec.Runtime != nil {
		row[colRuntime] = strconv.Itoa(*rec.Runtime)
	}
	// A year range is exported as its first year.
	row[colYear] = strconv.Itoa(rec.YearStart())

	categories := rec.SharedCategories()
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.String()
	}
	row[colGenres] = strings.Join(names, ", ")
	return row
}

func titleType(kind models.MediaKind) string {
	if kind == models.KindShow {
		return "tvSeries"
	}
	return "movie"
}

// Write appends the record to its file.
func (w *Writer) Write(rec *models.TitleRecord) error {
	name, err := FileFor(rec)
	if err != nil {
		return err
	}
	row := Row(rec)
	if err := w.files[name].Write(row); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	w.counts[name]++
	metrics.ExportedRowsTotal.WithLabelValues(name).Inc()
	logger := config.GetLogger()
	logger.Debug().Int64("id", rec.ID).Str("file", name).Str("const", row[colConst]).Msg("Exported record")
	return nil
}

// Counts returns how many rows were written per file, headers excluded.
func (w *Writer) Counts() map[string]int {
	out := make(map[string]int, len(w.counts))
	for k, v := range w.counts {
		out[k] = v
	}
	return out
}

// Close flushes every file, closes the ones opened by Create and releases
// the directory lock.
func (w *Writer) Close() error {
	var errs []error
	for name, cw := range w.files {
		cw.Flush()
		if err := cw.Error(); err != nil {
			errs = append(errs, fmt.Errorf("flush %s: %w", name, err))
		}
	}
	for _, c := range w.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if w.lock != nil {
		if err := w.lock.Unlock(); err != nil {
			errs = append(errs, fmt.Errorf("unlock export directory: %w", err))
		}
	}
	return errors.Join(errs...)
}
