// internal/output/fasta.go
package output

import (
	"bufio"
	"fmt"
	"io"

	"clonesim/internal/template"
	"clonesim/internal/tissue"
)

// WriteTissueFASTA writes one record per cell: >cell_<n> cell_type=<label>.
func WriteTissueFASTA(w io.Writer, rows []tissue.Row, _ Options) error {
	bw := bufio.NewWriter(w)
	for i, r := range rows {
		if _, err := fmt.Fprintf(bw, ">cell_%d cell_type=%s\n%s\n", i+1, r.CellType, r.Barcode); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteTemplateFASTA writes one record per distinct sequence: >seq_<n> count=<copies>.
func WriteTemplateFASTA(w io.Writer, rows []template.Row, _ Options) error {
	bw := bufio.NewWriter(w)
	for i, r := range rows {
		if _, err := fmt.Fprintf(bw, ">seq_%d count=%d\n%s\n", i+1, r.Count, r.Barcode); err != nil {
			return err
		}
	}
	return bw.Flush()
}
