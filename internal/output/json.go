// internal/output/json.go
package output

import (
	"bufio"
	"encoding/json"
	"io"

	"clonesim/internal/template"
	"clonesim/internal/tissue"
	"clonesim/pkg/api"
)

func ToAPITissue(rows []tissue.Row) []api.TissueRowV1 {
	out := make([]api.TissueRowV1, len(rows))
	for i, r := range rows {
		out[i] = api.TissueRowV1{Barcode: r.Barcode, CellType: r.CellType}
	}
	return out
}

func ToAPITemplate(rows []template.Row) []api.TemplateRowV1 {
	out := make([]api.TemplateRowV1, len(rows))
	for i, r := range rows {
		out[i] = api.TemplateRowV1{Barcode: r.Barcode, Count: r.Count}
	}
	return out
}

// EncodePretty writes v as indented JSON to w.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeLines[T any](w io.Writer, list []T) error {
	bw := bufio.NewWriterSize(w, 64<<10)
	enc := json.NewEncoder(bw)
	for _, v := range list {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteTissueJSON writes a single JSON array of v1 tissue rows.
func WriteTissueJSON(w io.Writer, rows []tissue.Row, _ Options) error {
	return EncodePretty(w, ToAPITissue(rows))
}

// WriteTemplateJSON writes a single JSON array of v1 template rows.
func WriteTemplateJSON(w io.Writer, rows []template.Row, _ Options) error {
	return EncodePretty(w, ToAPITemplate(rows))
}

func WriteTissueJSONL(w io.Writer, rows []tissue.Row, _ Options) error {
	return encodeLines(w, ToAPITissue(rows))
}

func WriteTemplateJSONL(w io.Writer, rows []template.Row, _ Options) error {
	return encodeLines(w, ToAPITemplate(rows))
}

// WriteSummary prints a run summary as indented JSON.
func WriteSummary(w io.Writer, s api.RunSummaryV1) error {
	return EncodePretty(w, s)
}
