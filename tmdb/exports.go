package tmdb

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/avoronov/moviedbbackend/config"
)

const exportDateFormat = "01_02_2006" // MM_DD_YYYY

// exportPrefixes maps a media type to its export file name prefix.
var exportPrefixes = map[string]string{
	"movie":      "movie",
	"tv":         "tv_series",
	"person":     "person",
	"collection": "collection",
	"network":    "tv_network",
	"keyword":    "keyword",
	"company":    "production_company",
}

// ExportEntry is one line of a daily ID-export file.
type ExportEntry struct {
	ID         int64   `json:"id"`
	Popularity float64 `json:"popularity"`
}

// IDExporter downloads and parses TMDB daily ID-export files, the
// gzip-compressed newline-delimited JSON listings of all currently valid
// IDs per media type.
type IDExporter struct {
	http *resty.Client
}

func NewIDExporter(cfg config.Config) *IDExporter {
	return &IDExporter{
		http: resty.New().
			SetBaseURL(strings.TrimRight(cfg.ExportsBaseURL, "/")).
			SetTimeout(cfg.ExportTimeout),
	}
}

func exportFileName(mediaType, publishedDate string) (string, error) {
	prefix, ok := exportPrefixes[mediaType]
	if !ok {
		return "", fmt.Errorf("invalid media type %q, must be one of movie, tv, person, collection, network, keyword, company", mediaType)
	}
	if publishedDate == "" {
		publishedDate = time.Now().UTC().Format(exportDateFormat)
	}
	return fmt.Sprintf("%s_ids_%s.json.gz", prefix, publishedDate), nil
}

// FetchIDs downloads the export file for mediaType on publishedDate (the
// current UTC date when empty, format MM_DD_YYYY) and returns its entries,
// sorted by descending popularity when requested. A failed download is an
// operational condition, not an error: it logs and returns nil so the
// caller can abort the run's work gracefully. An unknown media type is a
// programmer error and is returned as one.
func (e *IDExporter) FetchIDs(mediaType, publishedDate string, sortByPopularity bool) ([]ExportEntry, error) {
	fileName, err := exportFileName(mediaType, publishedDate)
	if err != nil {
		return nil, err
	}

	resp, err := e.http.R().Get("/" + fileName)
	if err != nil || resp.IsError() {
		log.Printf("Couldn't fetch ID export file for media type: %s, date: %q.", mediaType, publishedDate)
		return nil, nil
	}

	entries, err := parseExport(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to parse export file %s: %w", fileName, err)
	}

	if sortByPopularity {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Popularity > entries[j].Popularity
		})
	}

	return entries, nil
}

func parseExport(compressed []byte) ([]ExportEntry, error) {
	gz, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer gz.Close()

	var entries []ExportEntry
	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry ExportEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("failed to decode export line: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read export stream: %w", err)
	}

	return entries, nil
}

// EntryIDs flattens export entries to their IDs, preserving order.
func EntryIDs(entries []ExportEntry) []int64 {
	ids := make([]int64, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	return ids
}
