package models

// BuildRecord is one pre-assembled build of the catalog.
type BuildRecord struct {
	TotalPrice       Money  `json:"totalPrice"`
	CaseModel        string `json:"caseModel"`
	CPUModel         string `json:"cpuModel"`
	GPUModel         string `json:"gpuModel"`
	MemoryModel      string `json:"memoryModel"`
	MotherboardModel string `json:"motherboardModel"`
	PSUModel         string `json:"psuModel"`
	HDDModel         string `json:"hddModel"`
}

// Rounded returns a copy of the record with its total price rounded to cents.
func (b BuildRecord) Rounded() BuildRecord {
	b.TotalPrice = b.TotalPrice.Round()
	return b
}

type Components struct {
	Cases        []string `json:"cases"`
	CPUs         []string `json:"cpus"`
	GPUs         []string `json:"gpus"`
	Memory       []string `json:"memory"`
	Motherboards []string `json:"motherboards"`
	PSUs         []string `json:"psus"`
	HDDs         []string `json:"hdds"`
}
