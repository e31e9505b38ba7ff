package output

import "testing"

func TestTableHeaders_Stable(t *testing.T) {
	const tissueWant = "barcode\tcell_type"
	const templateWant = "barcode\tcount"
	if TissueHeader != tissueWant {
		t.Fatalf("TissueHeader changed:\n got:  %q\n want: %q", TissueHeader, tissueWant)
	}
	if TemplateHeader != templateWant {
		t.Fatalf("TemplateHeader changed:\n got:  %q\n want: %q", TemplateHeader, templateWant)
	}
}
