package infra

// pdf.go — receipt PDF generation using go-pdf/fpdf.
// Renders a small A7-style comprobante with the serie/numero, payer name,
// settlement breakdown, and payment channel. The file is attached to the
// outbound receipt email by the worker.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// ComprobantePDFData carries everything the PDF needs — the worker passes it
// from the job payload so no DB access happens during rendering.
type ComprobantePDFData struct {
	Serie          string
	Numero         string
	ClienteNombre  string
	Documento      string
	Concepto       string
	MedioPago      string
	MontoCobrado   decimal.Decimal
	RedondeoAjuste decimal.Decimal
	NuevoSaldo     decimal.Decimal
	EsPagoParcial  bool
	Fecha          string
}

// GenerateComprobantePDF writes the receipt PDF and returns its path.
// storagePath is created if needed.
func GenerateComprobantePDF(data ComprobantePDFData, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("comprobante_%s-%s.pdf", data.Serie, data.Numero)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm, close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "CrediCaja", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Comprobante de Pago", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("%s-%s", data.Serie, data.Numero), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, data.Fecha, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "Cliente: "+data.ClienteNombre, "", 1, "L", false, 0, "")
	if data.Documento != "" {
		pdf.CellFormat(contentW, 4, "Documento: "+data.Documento, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 4, data.Concepto, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	col1 := contentW * 0.6
	col2 := contentW * 0.4

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "TOTAL PAGADO:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "S/ "+data.MontoCobrado.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1, 4, "Medio de pago:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 4, data.MedioPago, "", 1, "R", false, 0, "")

	if !data.RedondeoAjuste.IsZero() {
		pdf.CellFormat(col1, 4, "Ajuste por redondeo:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 4, "S/ "+data.RedondeoAjuste.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.CellFormat(col1, 4, "Saldo pendiente:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 4, "S/ "+data.NuevoSaldo.StringFixed(2), "", 1, "R", false, 0, "")

	if data.EsPagoParcial {
		pdf.Ln(1)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.CellFormat(contentW, 4, "Pago parcial — cuota pendiente", "", 1, "C", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Gracias por su pago", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
