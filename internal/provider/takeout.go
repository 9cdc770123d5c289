package provider

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"
	"time"
)

// Takeout import tuning. One batch per provider request window; the delay
// between batches respects the provider's rate limit.
const (
	DefaultBatchSize  = 10
	DefaultBatchDelay = 2500 * time.Millisecond
)

// ImportSummary reports the outcome of a chunked bulk import. A failed
// chunk contributes no results; the operation still reports partial
// success rather than failing atomically.
type ImportSummary struct {
	Results      []PlaceResult `json:"places"`
	Processed    int           `json:"processed"`
	Total        int           `json:"total"`
	FailedChunks int           `json:"failed_chunks"`
}

// TakeoutImporter resolves Google Takeout "Saved Places" CSV rows into
// place candidates through a lookup provider, in sequential rate-limited
// batches.
type TakeoutImporter struct {
	Lookup    PlaceLookup
	BatchSize int
	Delay     time.Duration
}

// NewTakeoutImporter creates an importer with default batching
func NewTakeoutImporter(lookup PlaceLookup) *TakeoutImporter {
	return &TakeoutImporter{
		Lookup:    lookup,
		BatchSize: DefaultBatchSize,
		Delay:     DefaultBatchDelay,
	}
}

type takeoutRow struct {
	Title string
	URL   string
}

// Import parses the CSV and resolves each saved place. Batches are issued
// sequentially with a fixed inter-batch delay; a failing batch degrades to
// an empty result for that chunk and the pipeline continues.
func (imp *TakeoutImporter) Import(ctx context.Context, r io.Reader) (*ImportSummary, error) {
	rows, err := parseTakeoutCSV(r)
	if err != nil {
		return nil, err
	}

	summary := &ImportSummary{Total: len(rows)}
	if len(rows) == 0 {
		return summary, nil
	}

	batchSize := imp.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]

		results, err := imp.resolveBatch(ctx, batch)
		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			log.Printf("Takeout import batch %d-%d failed: %v", start, end, err)
			summary.FailedChunks++
		} else {
			summary.Results = append(summary.Results, results...)
		}
		summary.Processed = end

		if end < len(rows) && imp.Delay > 0 {
			select {
			case <-time.After(imp.Delay):
			case <-ctx.Done():
				return summary, ctx.Err()
			}
		}
	}

	return summary, nil
}

func (imp *TakeoutImporter) resolveBatch(ctx context.Context, batch []takeoutRow) ([]PlaceResult, error) {
	var results []PlaceResult
	for _, row := range batch {
		candidates, err := imp.Lookup.Search(ctx, row.Title, nil)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			continue
		}
		res := candidates[0]
		res.Name = row.Title
		res.URL = row.URL
		results = append(results, res)
	}
	return results, nil
}

// parseTakeoutCSV reads the Takeout Saved Places export: Title,Note,URL.
// Only rows whose URL carries a place token are importable.
func parseTakeoutCSV(r io.Reader) ([]takeoutRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	titleIdx, urlIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "title":
			titleIdx = i
		case "url":
			urlIdx = i
		}
	}
	if titleIdx < 0 || urlIdx < 0 {
		return nil, fmt.Errorf("unexpected CSV header: %v", header)
	}

	var rows []takeoutRow
	for _, record := range records[1:] {
		if titleIdx >= len(record) || urlIdx >= len(record) {
			continue
		}
		url := record[urlIdx]
		if !strings.Contains(url, "!1s") {
			continue
		}
		rows = append(rows, takeoutRow{Title: record[titleIdx], URL: url})
	}

	return rows, nil
}
