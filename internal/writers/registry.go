// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"

	"clonesim/internal/output"
	"clonesim/internal/template"
	"clonesim/internal/tissue"
)

type (
	TissueWriter   func(w io.Writer, rows []tissue.Row, o output.Options) error
	TemplateWriter func(w io.Writer, rows []template.Row, o output.Options) error
)

// Writer registries (format → handler).
var (
	TissueWriters   = map[string]TissueWriter{}
	TemplateWriters = map[string]TemplateWriter{}
)

// Register helpers (idempotent last-wins)
func RegisterTissue(format string, fn TissueWriter)     { TissueWriters[format] = fn }
func RegisterTemplate(format string, fn TemplateWriter) { TemplateWriters[format] = fn }

func init() {
	RegisterTissue(output.FormatTSV, output.WriteTissueTSV)
	RegisterTissue(output.FormatJSON, output.WriteTissueJSON)
	RegisterTissue(output.FormatJSONL, output.WriteTissueJSONL)
	RegisterTissue(output.FormatFASTA, output.WriteTissueFASTA)

	RegisterTemplate(output.FormatTSV, output.WriteTemplateTSV)
	RegisterTemplate(output.FormatJSON, output.WriteTemplateJSON)
	RegisterTemplate(output.FormatJSONL, output.WriteTemplateJSONL)
	RegisterTemplate(output.FormatFASTA, output.WriteTemplateFASTA)
}

// WriteTissue dispatches rows to the writer registered for format.
func WriteTissue(format string, w io.Writer, rows []tissue.Row, o output.Options) error {
	fn, ok := TissueWriters[format]
	if !ok {
		return fmt.Errorf("unknown tissue format %q (no writer registered)", format)
	}
	return fn(w, rows, o)
}

// WriteTemplate dispatches rows to the writer registered for format.
func WriteTemplate(format string, w io.Writer, rows []template.Row, o output.Options) error {
	fn, ok := TemplateWriters[format]
	if !ok {
		return fmt.Errorf("unknown template format %q (no writer registered)", format)
	}
	return fn(w, rows, o)
}
