package pdfexport

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"hr-dashboard-backend/models"
)

type ReportData struct {
	CandidateName     string
	Email             string
	JobTitle          string
	Stage             models.Stage
	OverallScore      int
	SkillsMatch       int
	ExperienceMatch   int
	Strengths         []string
	Gaps              []string
	Recommendation    models.Recommendation
	Summary           string
	MissingInfo       bool
	PossibleDuplicate bool
	GeneratedAt       time.Time
}

type Provider interface {
	EvaluationReport(data ReportData) ([]byte, error)
}

var Instance Provider

const (
	utf8FontFamily = "Arial"
	utf8Font       = "Arial.ttf"
	utf8BoldFont   = "Arial Bold.ttf"
	coreFontFamily = "Helvetica"
)

func NewHandler(fontDir string) {
	Instance = NewInstance(fontDir)
}

// NewInstance без шрифтов в fontDir используется встроенный Helvetica (только латиница)
func NewInstance(fontDir string) Provider {
	hasFonts := fontDir != "" && fileExists(filepath.Join(fontDir, utf8Font)) && fileExists(filepath.Join(fontDir, utf8BoldFont))
	if !hasFonts {
		log.WithField("font_dir", fontDir).Warn("шрифты для pdf не найдены, кириллица в отчетах не поддерживается")
	}
	return &impl{
		fontDir:  fontDir,
		hasFonts: hasFonts,
	}
}

type impl struct {
	fontDir  string
	hasFonts bool
}

var recommendationTitles = map[models.Recommendation]string{
	models.RecommendationStrongYes: "Strong yes",
	models.RecommendationYes:       "Yes",
	models.RecommendationMaybe:     "Maybe",
	models.RecommendationNo:        "No",
}

func (i impl) EvaluationReport(data ReportData) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("EvaluationReport panic recover: %v", r)
		}
	}()
	pdf, family, tr := i.newDocument()
	pdf.AddPage()
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.SetFont(family, "B", 18)
	pdf.CellFormat(0, 12, tr("Candidate evaluation report"), "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 10)
	pdf.CellFormat(0, 6, tr(data.GeneratedAt.Format("02.01.2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeField := func(title, value string) {
		pdf.SetFont(family, "B", 11)
		pdf.CellFormat(50, 7, tr(title), "", 0, "L", false, 0, "")
		pdf.SetFont(family, "", 11)
		pdf.MultiCell(0, 7, tr(value), "", "L", false)
	}
	writeField("Candidate", data.CandidateName)
	writeField("Email", data.Email)
	writeField("Job", data.JobTitle)
	writeField("Stage", string(data.Stage))
	writeField("Overall score", fmt.Sprintf("%d / 100", data.OverallScore))
	writeField("Skills match", fmt.Sprintf("%d%%", data.SkillsMatch))
	writeField("Experience match", fmt.Sprintf("%d%%", data.ExperienceMatch))
	writeField("Recommendation", recommendationTitles[data.Recommendation])
	flags := []string{}
	if data.MissingInfo {
		flags = append(flags, "missing info")
	}
	if data.PossibleDuplicate {
		flags = append(flags, "possible duplicate")
	}
	if len(flags) > 0 {
		writeField("Flags", strings.Join(flags, ", "))
	}
	pdf.Ln(4)

	writeList := func(title string, items []string) {
		pdf.SetFont(family, "B", 13)
		pdf.CellFormat(0, 9, tr(title), "", 1, "L", false, 0, "")
		pdf.SetFont(family, "", 11)
		if len(items) == 0 {
			pdf.CellFormat(0, 7, "-", "", 1, "L", false, 0, "")
		}
		for _, item := range items {
			pdf.MultiCell(0, 7, tr("- "+item), "", "L", false)
		}
		pdf.Ln(2)
	}
	writeList("Strengths", data.Strengths)
	writeList("Gaps", data.Gaps)
	if data.Summary != "" {
		pdf.SetFont(family, "B", 13)
		pdf.CellFormat(0, 9, tr("Summary"), "", 1, "L", false, 0, "")
		pdf.SetFont(family, "", 11)
		pdf.MultiCell(0, 7, tr(data.Summary), "", "L", false)
	}

	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (i impl) newDocument() (pdf *fpdf.Fpdf, family string, tr func(string) string) {
	pdf = fpdf.New("P", "mm", "A4", i.fontDir)
	if i.hasFonts {
		pdf.AddUTF8Font(utf8FontFamily, "", utf8Font)
		pdf.AddUTF8Font(utf8FontFamily, "B", utf8BoldFont)
		return pdf, utf8FontFamily, func(s string) string { return s }
	}
	return pdf, coreFontFamily, pdf.UnicodeTranslatorFromDescriptor("")
}

func fileExists(name string) bool {
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}
