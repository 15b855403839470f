package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// LoadCSV reads reference rows from a CSV file. Files ending in .zst are
// transparently decompressed.
func LoadCSV(ctx context.Context, path string) ([]Row, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from service config
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenDataset, err)
	}
	defer func() { _ = f.Close() }()

	var reader io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: create zstd decoder: %w", ErrOpenDataset, err)
		}
		defer dec.Close()
		reader = dec
	}

	return parseCSV(ctx, reader)
}

func parseCSV(ctx context.Context, r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrOpenDataset, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	metascoreIdx, hasMetascore := index[ColMetascore]

	var rows []Row
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrOpenDataset, err)
		}

		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrBadRecord, line, err)
		}
		line++

		row := Row{
			Developer:     record[index[ColDeveloper]],
			Platform:      record[index[ColPlatform]],
			Genre:         record[index[ColGenre]],
			Manufacturer:  record[index[ColManufacturer]],
			PlatformGenre: record[index[ColPlatformGenre]],
			Metascore:     math.NaN(),
		}

		numeric := []struct {
			col string
			dst *float64
		}{
			{ColDeveloperAvgScore, &row.DeveloperAvgScore},
			{ColPlatformAge, &row.PlatformAge},
			{ColPlatformGenreEncoded, &row.PlatformGenreEncoded},
			{ColGenreEncoded, &row.GenreEncoded},
			{ColPlatformEncoded, &row.PlatformEncoded},
			{ColManufacturerEncoded, &row.ManufacturerEncoded},
		}
		for _, n := range numeric {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[index[n.col]]), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %s: %w", ErrBadRecord, line, n.col, err)
			}
			*n.dst = v
		}
		if hasMetascore {
			if v, err := strconv.ParseFloat(strings.TrimSpace(record[metascoreIdx]), 64); err == nil {
				row.Metascore = v
			}
		}

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}
	return rows, nil
}
