// internal/output/tsv.go
package output

import (
	"bufio"
	"io"
	"strconv"

	"clonesim/internal/template"
	"clonesim/internal/tissue"
)

// WriteTissueTSV prints one line per cell.
func WriteTissueTSV(w io.Writer, rows []tissue.Row, o Options) error {
	bw := bufio.NewWriter(w)
	if o.Header {
		bw.WriteString(TissueHeader + "\n")
	}
	for _, r := range rows {
		bw.WriteString(r.Barcode)
		bw.WriteByte('\t')
		bw.WriteString(r.CellType)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteTemplateTSV prints one line per distinct sequence.
func WriteTemplateTSV(w io.Writer, rows []template.Row, o Options) error {
	bw := bufio.NewWriter(w)
	if o.Header {
		bw.WriteString(TemplateHeader + "\n")
	}
	var num []byte
	for _, r := range rows {
		bw.WriteString(r.Barcode)
		bw.WriteByte('\t')
		num = strconv.AppendUint(num[:0], r.Count, 10)
		bw.Write(num)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
