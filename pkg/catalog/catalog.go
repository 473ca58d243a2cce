package catalog

import (
	"errors"
	"fmt"
	"github.com/Aquilabot/KreaPC-BuildAdvisor/internal/models"
	"math"
	"sort"
	"strings"
)

// ErrDataUnavailable is wrapped by every error that prevents a catalog from
// being built. The server must not start serving when it is returned.
var ErrDataUnavailable = errors.New("catalog data unavailable")

// Catalog is the immutable, ordered set of pre-assembled builds. It is safe
// for concurrent use since nothing mutates it after New returns.
type Catalog struct {
	builds []models.BuildRecord
}

// New validates the given builds and returns a catalog holding its own copy
// of them, in the given order.
func New(builds []models.BuildRecord) (*Catalog, error) {
	owned := make([]models.BuildRecord, len(builds))
	copy(owned, builds)

	for i := range owned {
		if err := validate(&owned[i]); err != nil {
			return nil, fmt.Errorf("%w: build %d: %v", ErrDataUnavailable, i, err)
		}
	}

	return &Catalog{builds: owned}, nil
}

func validate(b *models.BuildRecord) error {
	price := float64(b.TotalPrice)
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return errors.New("total price is not a finite number")
	}
	if price < 0 {
		return fmt.Errorf("negative total price %v", price)
	}
	if price == 0 {
		b.TotalPrice = 0
	}

	for _, cf := range categoryFields {
		if strings.TrimSpace(*cf.field(b)) == "" {
			return fmt.Errorf("missing %s", cf.column)
		}
	}
	return nil
}

func (c *Catalog) Len() int {
	return len(c.builds)
}

// At returns the build at position i in catalog order.
func (c *Catalog) At(i int) models.BuildRecord {
	return c.builds[i]
}

// All returns every build in catalog order. The returned slice is a copy.
func (c *Catalog) All() []models.BuildRecord {
	out := make([]models.BuildRecord, len(c.builds))
	copy(out, c.builds)
	return out
}

// UniqueValues returns the distinct model names of a category, sorted
// ascending. Unknown categories and empty catalogs yield an empty slice.
func (c *Catalog) UniqueValues(category Category) []string {
	cf, ok := lookupField(category)
	if !ok {
		return []string{}
	}

	seen := make(map[string]struct{})
	values := []string{}

	for i := range c.builds {
		v := *cf.field(&c.builds[i])
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}

	sort.Strings(values)
	return values
}

// Components collects the dropdown values of every category.
func (c *Catalog) Components() models.Components {
	return models.Components{
		Cases:        c.UniqueValues(Cases),
		CPUs:         c.UniqueValues(CPUs),
		GPUs:         c.UniqueValues(GPUs),
		Memory:       c.UniqueValues(Memory),
		Motherboards: c.UniqueValues(Motherboards),
		PSUs:         c.UniqueValues(PSUs),
		HDDs:         c.UniqueValues(HDDs),
	}
}
