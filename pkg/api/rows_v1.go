// pkg/api/rows_v1.go
package api

// TissueRowV1 is the stable JSON/JSONL schema for one cell of a tissue table.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type TissueRowV1 struct {
	Barcode  string `json:"barcode"`
	CellType string `json:"cell_type"` // "BiPotent" | "Luminal" | "Basal"
}

// TemplateRowV1 is the stable schema for one distinct sequence of a PCR
// template. Efficiencies are internal and never exported.
type TemplateRowV1 struct {
	Barcode string `json:"barcode"`
	Count   uint64 `json:"count"`
}

// RunSummaryV1 describes a finished run.
type RunSummaryV1 struct {
	RunID       string `json:"run_id"`
	Command     string `json:"command"` // "simulate" | "amplify"
	Seed        uint64 `json:"seed"`
	Model       string `json:"model"`
	Generations int    `json:"generations,omitempty"`
	Cycles      int    `json:"cycles"`

	PoolSize      int `json:"pool_size,omitempty"`
	FounderCells  int `json:"founder_cells,omitempty"`
	SampleCells   int `json:"sample_cells,omitempty"`
	BiPotentCells int `json:"bipotent_cells,omitempty"`
	LuminalCells  int `json:"luminal_cells,omitempty"`
	BasalCells    int `json:"basal_cells,omitempty"`

	InitialSequences int    `json:"initial_sequences"`
	InitialMolecules uint64 `json:"initial_molecules"`
	Sequences        int    `json:"sequences"`
	Molecules        uint64 `json:"molecules"`
	Mutations        uint64 `json:"mutations"`
	FailedTrials     int    `json:"failed_trials"`
}
