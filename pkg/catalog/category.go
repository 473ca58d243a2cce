package catalog

import "github.com/Aquilabot/KreaPC-BuildAdvisor/internal/models"

// Category is a component category offered in the build dropdowns.
type Category string

const (
	Cases        Category = "cases"
	CPUs         Category = "cpus"
	GPUs         Category = "gpus"
	Memory       Category = "memory"
	Motherboards Category = "motherboards"
	PSUs         Category = "psus"
	HDDs         Category = "hdds"
)

// Column names of the catalog file. They are shared with the dataset
// producer and must not change.
const (
	ColumnTotalPrice  = "Total Price"
	ColumnCase        = "case_Model"
	ColumnCPU         = "cpu_Model"
	ColumnGPU         = "video-card_Model"
	ColumnMemory      = "memory_Model"
	ColumnMotherboard = "motherboard_Model"
	ColumnPSU         = "power-supply_Model"
	ColumnHDD         = "internal-hard-drive_Model"
)

type categoryField struct {
	category Category
	column   string
	field    func(b *models.BuildRecord) *string
}

var categoryFields = []categoryField{
	{Cases, ColumnCase, func(b *models.BuildRecord) *string { return &b.CaseModel }},
	{CPUs, ColumnCPU, func(b *models.BuildRecord) *string { return &b.CPUModel }},
	{GPUs, ColumnGPU, func(b *models.BuildRecord) *string { return &b.GPUModel }},
	{Memory, ColumnMemory, func(b *models.BuildRecord) *string { return &b.MemoryModel }},
	{Motherboards, ColumnMotherboard, func(b *models.BuildRecord) *string { return &b.MotherboardModel }},
	{PSUs, ColumnPSU, func(b *models.BuildRecord) *string { return &b.PSUModel }},
	{HDDs, ColumnHDD, func(b *models.BuildRecord) *string { return &b.HDDModel }},
}

// Categories returns every category in dropdown order.
func Categories() []Category {
	out := make([]Category, len(categoryFields))
	for i, cf := range categoryFields {
		out[i] = cf.category
	}
	return out
}

// ParseCategory maps a category name such as "gpus" to its Category.
func ParseCategory(name string) (Category, bool) {
	for _, cf := range categoryFields {
		if string(cf.category) == name {
			return cf.category, true
		}
	}
	return "", false
}

func lookupField(category Category) (categoryField, bool) {
	for _, cf := range categoryFields {
		if cf.category == category {
			return cf, true
		}
	}
	return categoryField{}, false
}
