/*
pdf.go - Receipt rendering

PURPOSE:
  Turns a stored CalculationRecord into an A4 PDF receipt. Pure function
  of the record plus static labels: no network, no clock, no access to
  the live factor tables. Rendering the same record twice produces
  byte-identical output (the document's creation date is taken from the
  record, not from the wall clock).

STRUCTURE:
  Header        product name, record id, generation timestamp, provider
  Entradas      origin, destination, distance, transport mode
  Resultados    emission, car baseline, percentage, credits, cost range
  Metodologia   the exact factor/price snapshot captured in the record
  Note          closing informational paragraph

FORMATTING RULES:
  - 2 decimals for mass, currency and percentage; 4 for credit count
  - absent string fields render as "—", never as an empty string
  - the factors section walks a tagged scalar-vs-group tree, so it keeps
    working if the snapshot shape grows new nested tables

SEE ALSO:
  - factors.go (this package): tree construction for the snapshot
  - record/record.go: the input type
*/
package receipt

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/olimpus/ecotrip/record"
)

// Colors (RGB) shared with the web frontend's palette.
var (
	colorBrand = [3]int{15, 178, 122}
	colorInk   = [3]int{14, 20, 27}
	colorBody  = [3]int{17, 24, 39}
	colorMeta  = [3]int{55, 65, 81}
	colorSlate = [3]int{51, 65, 85}
	colorMuted = [3]int{107, 114, 128}
	colorRule  = [3]int{229, 231, 235}
)

const pageMargin = 17 // mm, ~48pt

const closingNote = "Observação: Este recibo registra os parâmetros utilizados no cálculo e " +
	"pode ser usado para auditoria interna. Em produção, recomenda-se assinar digitalmente " +
	"o PDF e persistir em banco (ex.: PostgreSQL) com trilha de auditoria."

// Render writes the PDF receipt for rec to w.
func Render(rec *record.CalculationRecord, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("OLIMPUS "+rec.ID, true)
	// Both dates come from the record so regeneration is byte-identical.
	pdf.SetCreationDate(rec.CreatedAt)
	pdf.SetModificationDate(rec.CreatedAt)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	r := &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	r.header(rec)
	r.inputs(rec)
	r.results(rec)
	r.methodology(rec)
	r.note()

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render receipt %s: %w", rec.ID, err)
	}
	return pdf.Output(w)
}

// renderer bundles the document with the codepage translator for the
// pt-BR labels (core PDF fonts are not UTF-8).
type renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// =============================================================================
// SECTIONS
// =============================================================================

func (r *renderer) header(rec *record.CalculationRecord) {
	r.setFont("B", 20, colorBrand)
	r.line("OLIMPUS", 9)

	r.setFont("", 11, colorSlate)
	r.line("Recibo de Cálculo de Emissões (CO2)", 6)
	r.pdf.Ln(3)

	r.setFont("B", 12, colorInk)
	r.line("ID do Cálculo: "+rec.ID, 6)

	r.setFont("", 10, colorMeta)
	r.line("Gerado em: "+rec.CreatedAt.Format("02/01/2006 15:04:05"), 5)
	r.line("Provedor de rota: "+orDash(rec.Provider), 5)
	r.pdf.Ln(3)
	r.rule()
}

func (r *renderer) inputs(rec *record.CalculationRecord) {
	r.heading("Entradas (Inputs)")
	r.kv("Origem", rec.Inputs.Origin)
	r.kv("Destino", rec.Inputs.Destination)
	r.kv("Distância", fmt.Sprintf("%.2f km", rec.Inputs.DistanceKM))

	transport := rec.Inputs.ModeLabel
	if transport == "" {
		transport = rec.Inputs.Mode
	}
	r.kv("Transporte", transport)
	r.pdf.Ln(3)
	r.rule()
}

func (r *renderer) results(rec *record.CalculationRecord) {
	res := rec.Results

	r.heading("Resultados")
	r.kv("Emissão (CO2)", fmt.Sprintf("%.2f kg", res.EmissionKG))
	r.kv("Referência (Carro)", fmt.Sprintf("%.2f kg", res.CarEmissionKG))
	r.kv("Diferença vs Carro", fmt.Sprintf("%.2f kg", res.DeltaVsCarKG))
	r.kv("VS Carro (%)", fmt.Sprintf("%.2f%%", res.VsCarPct))
	r.pdf.Ln(3)

	r.kv("Créditos necessários", fmt.Sprintf("%.4f crédito(s)", res.CreditsNeeded))
	r.kv("Custo estimado (base)", fmt.Sprintf("R$ %.2f", res.CostBaseBRL))
	r.kv("Faixa estimada", fmt.Sprintf("R$ %.2f - R$ %.2f", res.CostMinBRL, res.CostMaxBRL))
	r.pdf.Ln(3)
	r.rule()
}

func (r *renderer) methodology(rec *record.CalculationRecord) {
	r.heading("Metodologia e Fatores")
	r.kv("Versão dos fatores", rec.FactorsVersion)

	r.setFont("", 10, colorBody)
	r.line("Fatores de emissão utilizados (kg CO2/km):", 5)
	r.pdf.Ln(1)

	for _, entry := range snapshotEntries(rec.Factors) {
		r.bullets(entry.key, entry.node, 0)
	}
}

func (r *renderer) note() {
	r.pdf.Ln(4)
	r.setFont("", 9, colorMuted)
	r.pdf.MultiCell(0, 4.5, r.tr(closingNote), "", "L", false)
}

// bullets renders one factor entry, recursing into nested groups.
func (r *renderer) bullets(label string, node factorNode, indent int) {
	pad := spaces(indent)
	r.setFont("", 10, colorBody)

	if !node.group {
		r.line(pad+"• "+label+": "+node.scalar, 5)
		return
	}

	r.line(pad+"• "+label+":", 5)
	for _, entry := range node.entries {
		if entry.node.group {
			r.bullets(entry.key, entry.node, indent+2)
		} else {
			r.line(spaces(indent+2)+"- "+entry.key+": "+entry.node.scalar, 5)
		}
	}
}

// =============================================================================
// PRIMITIVES
// =============================================================================

func (r *renderer) setFont(style string, size float64, color [3]int) {
	r.pdf.SetFont("Helvetica", style, size)
	r.pdf.SetTextColor(color[0], color[1], color[2])
}

// line writes a full-width text line.
func (r *renderer) line(text string, height float64) {
	r.pdf.CellFormat(0, height, r.tr(text), "", 1, "L", false, 0, "")
}

func (r *renderer) heading(text string) {
	r.setFont("B", 14, colorInk)
	r.line(text, 7)
	r.pdf.Ln(1)
}

// kv writes a bold key followed by a regular value on one line.
// Empty values render as a dash placeholder.
func (r *renderer) kv(key, value string) {
	r.setFont("B", 10, colorBody)
	label := key + ": "
	r.pdf.CellFormat(r.pdf.GetStringWidth(r.tr(label))+1, 5, r.tr(label), "", 0, "L", false, 0, "")

	r.setFont("", 10, colorBody)
	r.line(orDash(value), 5)
}

// rule draws a light horizontal separator across the content width.
func (r *renderer) rule() {
	pageW, _ := r.pdf.GetPageSize()
	left, _, right, _ := r.pdf.GetMargins()

	y := r.pdf.GetY()
	r.pdf.SetDrawColor(colorRule[0], colorRule[1], colorRule[2])
	r.pdf.SetLineWidth(0.3)
	r.pdf.Line(left, y, pageW-right, y)
	r.pdf.Ln(4)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func spaces(n int) string {
	return strings.Repeat(" ", n)
}
