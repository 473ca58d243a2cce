package matcher

import (
	"errors"
	"fmt"
	"github.com/Aquilabot/KreaPC-BuildAdvisor/internal/models"
	"github.com/Aquilabot/KreaPC-BuildAdvisor/internal/utils"
	"github.com/Aquilabot/KreaPC-BuildAdvisor/pkg/catalog"
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	// Tolerance is the relative distance from the budget a build price may have
	// to count as a match, on either side.
	Tolerance = 0.1
	// FallbackSize is the number of closest builds suggested when nothing
	// falls inside the tolerance window.
	FallbackSize = 3
)

const (
	reasonRequired   = "budget is required"
	reasonNotANumber = "budget must be a number"
	reasonNegative   = "budget must not be negative"
	reasonOutOfRange = "budget is out of range"
	reasonNotFinite  = "budget must be a finite number"
)

// InvalidInputError is returned when a budget cannot be used for a query.
type InvalidInputError struct {
	Input  string
	Reason string
}

func (e InvalidInputError) Error() string {
	if e.Input == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid budget %q: %s", e.Input, e.Reason)
}

// ParseBudget parses a raw budget value as a non-negative real number.
func ParseBudget(raw string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, &InvalidInputError{Input: raw, Reason: reasonRequired}
	}
	if !utils.MatchNumber(raw) {
		return 0, &InvalidInputError{Input: raw, Reason: reasonNotANumber}
	}

	budget, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, &InvalidInputError{Input: raw, Reason: reasonOutOfRange}
	}
	if err != nil {
		return 0, &InvalidInputError{Input: raw, Reason: reasonNotANumber}
	}
	if err := checkBudget(budget); err != nil {
		err.Input = raw
		return 0, err
	}

	return budget, nil
}

func checkBudget(budget float64) *InvalidInputError {
	if math.IsNaN(budget) || math.IsInf(budget, 0) {
		return &InvalidInputError{Input: strconv.FormatFloat(budget, 'g', -1, 64), Reason: reasonNotFinite}
	}
	if budget < 0 {
		return &InvalidInputError{Input: strconv.FormatFloat(budget, 'g', -1, 64), Reason: reasonNegative}
	}
	return nil
}

// Suggest returns the builds priced within Tolerance of the budget, in
// catalog order. When none qualify it returns the FallbackSize builds closest
// to the budget, ordered by distance with ties kept in catalog order.
// Prices in the result are rounded to cents.
func Suggest(budget float64, cat *catalog.Catalog) ([]models.BuildRecord, error) {
	if err := checkBudget(budget); err != nil {
		return nil, err
	}

	low, high := budget*(1-Tolerance), budget*(1+Tolerance)
	suggestions := []models.BuildRecord{}

	for i := 0; i < cat.Len(); i++ {
		b := cat.At(i)
		price := float64(b.TotalPrice)
		if price >= low && price <= high {
			suggestions = append(suggestions, b.Rounded())
		}
	}

	if len(suggestions) > 0 {
		return suggestions, nil
	}

	return closest(budget, cat), nil
}

type candidate struct {
	index int
	diff  float64
}

func closest(budget float64, cat *catalog.Catalog) []models.BuildRecord {
	candidates := make([]candidate, cat.Len())
	for i := range candidates {
		candidates[i] = candidate{index: i, diff: math.Abs(float64(cat.At(i).TotalPrice) - budget)}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].diff < candidates[b].diff
	})

	n := min(FallbackSize, len(candidates))
	suggestions := make([]models.BuildRecord, 0, n)
	for _, c := range candidates[:n] {
		suggestions = append(suggestions, cat.At(c.index).Rounded())
	}
	return suggestions
}

// Query parses a raw budget and runs Suggest against the catalog.
func Query(raw string, cat *catalog.Catalog) ([]models.BuildRecord, error) {
	budget, err := ParseBudget(raw)
	if err != nil {
		return nil, err
	}
	return Suggest(budget, cat)
}
