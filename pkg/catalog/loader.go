package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"github.com/Aquilabot/KreaPC-BuildAdvisor/internal/models"
	"github.com/Aquilabot/KreaPC-BuildAdvisor/internal/utils"
	"io"
	"strings"
)

const (
	errorReadingHeader = "could not read header: %v"
	errorMissingColumn = "missing column %q"
	errorReadingRow    = "could not read row: %v"
	errorParsingPrice  = "line %d: invalid %s %q: %v"
	errorMissingValue  = "line %d: empty %s"
)

// Load reads a catalog from CSV. The header row must contain every column of
// the catalog contract; other columns are ignored. Any failure wraps
// ErrDataUnavailable.
func Load(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, dataUnavailable(errorReadingHeader, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[utils.NormalizeColumn(name)] = i
	}

	priceIdx, ok := index[ColumnTotalPrice]
	if !ok {
		return nil, dataUnavailable(errorMissingColumn, ColumnTotalPrice)
	}
	fieldIdx := make([]int, len(categoryFields))
	for i, cf := range categoryFields {
		idx, ok := index[cf.column]
		if !ok {
			return nil, dataUnavailable(errorMissingColumn, cf.column)
		}
		fieldIdx[i] = idx
	}

	builds := []models.BuildRecord{}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, dataUnavailable(errorReadingRow, err)
		}
		line, _ := reader.FieldPos(0)

		price, _, err := models.ParsePrice(row[priceIdx])
		if err != nil {
			return nil, dataUnavailable(errorParsingPrice, line, ColumnTotalPrice, row[priceIdx], err)
		}

		build := models.BuildRecord{TotalPrice: models.Money(price)}
		for i, cf := range categoryFields {
			value := row[fieldIdx[i]]
			if strings.TrimSpace(value) == "" {
				return nil, dataUnavailable(errorMissingValue, line, cf.column)
			}
			*cf.field(&build) = value
		}

		builds = append(builds, build)
	}

	return New(builds)
}

func dataUnavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDataUnavailable, fmt.Sprintf(format, args...))
}
