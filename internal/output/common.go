package output

// Table headers. Keep these as the single source of truth; all writers use them.
const (
	TissueHeader   = "barcode\tcell_type"
	TemplateHeader = "barcode\tcount"
)

// Output formats.
const (
	FormatTSV   = "tsv"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatFASTA = "fasta"
)

// Formats lists every supported format, in help order.
var Formats = []string{FormatTSV, FormatJSON, FormatJSONL, FormatFASTA}

// Options controls table rendering.
type Options struct {
	Header bool // TSV only
}
