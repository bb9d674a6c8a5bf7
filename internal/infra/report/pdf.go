package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/quirky-analytics/leadgen/internal/domain/lead"
)

// Generator renders analysis records as paginated PDF reports.
type Generator struct{}

func NewGenerator() *Generator { return &Generator{} }

type elementKind int

const (
	elemTitle elementKind = iota
	elemHeading
	elemSubheading
	elemParagraph
	elemTableHead
	elemTableRow
	elemBullet
	elemNumbered
	elemPageBreak
	elemFooter
)

// element is one entry of the document story. The story preserves input
// order for every list: no reordering, filtering, or deduplication.
type element struct {
	kind  elementKind
	label string // table rows only
	text  string
}

// severityMarker tags a pain point. Core PDF fonts are cp1252, so the
// markers are plain ASCII rather than the usual unicode bullets.
func severityMarker(sev lead.Severity) string {
	switch lead.Severity(strings.ToLower(string(sev))) {
	case lead.SeverityHigh:
		return "[!!!]"
	case lead.SeverityMedium:
		return "[!!]"
	case lead.SeverityLow:
		return "[!]"
	default:
		return "[*]"
	}
}

// Render produces the report document. A nil pain analysis omits the pain,
// engagement and next-steps sections entirely.
func (g *Generator) Render(companyName string, fit lead.FitAssessment, pain *lead.PainAnalysis, generatedAt time.Time) ([]byte, error) {
	return writePDF(buildStory(companyName, fit, pain, generatedAt))
}

// Filename derives the deterministic download name for a report.
func Filename(companyName string, t time.Time) string {
	return fmt.Sprintf("Lead_Analysis_%s_%s.pdf",
		strings.ReplaceAll(companyName, " ", "_"),
		t.Format("20060102"),
	)
}

func buildStory(companyName string, fit lead.FitAssessment, pain *lead.PainAnalysis, generatedAt time.Time) []element {
	story := []element{
		{kind: elemTitle, text: "Lead Analysis Report"},
		{kind: elemHeading, text: companyName},
		{kind: elemParagraph, text: "Generated: " + generatedAt.Format("January 02, 2006 at 3:04 PM")},

		{kind: elemHeading, text: "Company Overview"},
		{kind: elemParagraph, text: fit.BriefCompanyOverview},

		{kind: elemHeading, text: "Fit Analysis"},
		{kind: elemTableHead, label: "Metric", text: "Value"},
		{kind: elemTableRow, label: "Industry", text: fit.Industry},
		{kind: elemTableRow, label: "Sector", text: fit.Sector},
		{kind: elemTableRow, label: "Company Size", text: fit.CompanySize},
		{kind: elemTableRow, label: "Fit Score", text: fmt.Sprintf("%d/100", fit.FitScore)},
		{kind: elemTableRow, label: "Good Fit?", text: yesNo(fit.IsGoodFit)},

		{kind: elemSubheading, text: "Fit Assessment Reasoning"},
		{kind: elemParagraph, text: fit.FitReasoning},
	}

	if pain != nil {
		story = append(story,
			element{kind: elemPageBreak},
			element{kind: elemHeading, text: "Pain Points Analysis"},
		)
		for i, p := range pain.PotentialPainPoints {
			story = append(story,
				element{kind: elemSubheading, text: fmt.Sprintf("%s Pain Point %d: %s", severityMarker(p.Severity), i+1, p.PainPoint)},
				element{kind: elemParagraph, text: "Severity: " + strings.ToUpper(string(p.Severity))},
				element{kind: elemParagraph, text: "Evidence: " + p.Evidence},
			)
		}

		story = append(story, element{kind: elemHeading, text: "How We Can Help"})
		for i, sol := range pain.HowWeCanHelp {
			story = append(story,
				element{kind: elemSubheading, text: fmt.Sprintf("Solution %d: %s", i+1, sol.OurSolution)},
				element{kind: elemParagraph, text: "Addresses: " + sol.AddressesPainPoint},
				element{kind: elemParagraph, text: "Value Proposition: " + sol.ValueProposition},
				element{kind: elemParagraph, text: "Implementation Approach: " + sol.ImplementationApproach},
			)
		}

		strategy := pain.EngagementStrategy
		story = append(story,
			element{kind: elemPageBreak},
			element{kind: elemHeading, text: "Engagement Strategy"},
			element{kind: elemParagraph, text: "Primary Contact: " + strategy.PrimaryContact},
			element{kind: elemParagraph, text: "Estimated Opportunity Value: " + strings.ToUpper(string(pain.EstimatedOpportunityValue))},
			element{kind: elemSubheading, text: "Key Talking Points:"},
		)
		for _, point := range strategy.KeyTalkingPoints {
			story = append(story, element{kind: elemBullet, text: point})
		}
		story = append(story,
			element{kind: elemParagraph, text: "Differentiation Angle: " + strategy.DifferentiationAngle},
			element{kind: elemHeading, text: "Recommended Next Steps"},
		)
		for i, step := range pain.RecommendedNextSteps {
			story = append(story, element{kind: elemNumbered, text: fmt.Sprintf("%d. %s", i+1, step)})
		}
	}

	return append(story, element{kind: elemFooter, text: "Generated by Lead Generation Agent | Powered by AI"})
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func writePDF(story []element) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, el := range story {
		switch el.kind {
		case elemTitle:
			pdf.SetFont("Helvetica", "B", 24)
			pdf.SetTextColor(31, 71, 136)
			pdf.CellFormat(0, 12, tr(el.text), "", 1, "C", false, 0, "")
			pdf.Ln(4)
		case elemHeading:
			pdf.Ln(3)
			pdf.SetFont("Helvetica", "B", 16)
			pdf.SetTextColor(44, 90, 160)
			pdf.CellFormat(0, 8, tr(el.text), "", 1, "L", false, 0, "")
			pdf.Ln(1)
		case elemSubheading:
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", 13)
			pdf.SetTextColor(52, 73, 94)
			pdf.CellFormat(0, 7, tr(el.text), "", 1, "L", false, 0, "")
		case elemParagraph, elemNumbered:
			pdf.SetFont("Helvetica", "", 11)
			pdf.SetTextColor(44, 62, 80)
			pdf.MultiCell(0, 5.5, tr(el.text), "", "J", false)
			pdf.Ln(1)
		case elemBullet:
			pdf.SetFont("Helvetica", "", 11)
			pdf.SetTextColor(44, 62, 80)
			pdf.MultiCell(0, 5.5, tr("- "+el.text), "", "L", false)
		case elemTableHead:
			pdf.SetFont("Helvetica", "B", 12)
			pdf.SetTextColor(245, 245, 245)
			pdf.SetFillColor(44, 90, 160)
			pdf.CellFormat(50, 9, tr(el.label), "1", 0, "L", true, 0, "")
			pdf.CellFormat(130, 9, tr(el.text), "1", 1, "L", true, 0, "")
		case elemTableRow:
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(44, 62, 80)
			pdf.SetFillColor(245, 245, 220)
			pdf.CellFormat(50, 8, tr(el.label), "1", 0, "L", true, 0, "")
			pdf.CellFormat(130, 8, tr(el.text), "1", 1, "L", true, 0, "")
		case elemPageBreak:
			pdf.AddPage()
		case elemFooter:
			pdf.Ln(8)
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(128, 128, 128)
			pdf.CellFormat(0, 5, tr(el.text), "", 1, "C", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &lead.RenderError{Err: err}
	}
	return buf.Bytes(), nil
}
