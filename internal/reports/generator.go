package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gustalxpes/foto-nutri/internal/goals"
	"github.com/gustalxpes/foto-nutri/internal/nutrition"
	"github.com/gustalxpes/foto-nutri/internal/storage"
	"github.com/jung-kurt/gofpdf"
)

// Generator renders weekly nutrition reports as PDF or CSV.
type Generator struct {
	mealsStorage storage.MealsStorage
	goalsService *goals.Service
}

// NewGenerator creates a new report generator
func NewGenerator(mealsStorage storage.MealsStorage, goalsService *goals.Service) *Generator {
	return &Generator{
		mealsStorage: mealsStorage,
		goalsService: goalsService,
	}
}

// weekData holds everything a renderer needs for one 7-day window.
type weekData struct {
	From      time.Time
	To        time.Time
	Summaries []nutrition.DailySummary
	Days      []nutrition.WeeklyDay
	Stats     nutrition.WeeklyStats
	Goals     *goals.GoalsDTO
}

// GenerateWeekly builds the report for the seven calendar days ending on
// reference (in loc) and renders it in the requested format.
func (g *Generator) GenerateWeekly(ctx context.Context, userID string, format string, reference time.Time, loc *time.Location) ([]byte, error) {
	week, err := g.collectWeek(ctx, userID, reference, loc)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatPDF:
		return g.generatePDF(week)
	case FormatCSV:
		return g.generateCSV(week)
	default:
		return nil, ErrInvalidFormat
	}
}

func (g *Generator) collectWeek(ctx context.Context, userID string, reference time.Time, loc *time.Location) (*weekData, error) {
	ref := reference.In(loc)
	end := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -7)

	meals, err := g.mealsStorage.ListMeals(ctx, userID, &start, &end, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meals: %w", err)
	}

	goalsDTO, err := g.goalsService.GetOrDefault(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %w", err)
	}

	entries := make([]nutrition.MealEntry, len(meals))
	for i, m := range meals {
		entries[i] = nutrition.MealEntry{
			EatenAt:  m.EatenAt,
			Servings: m.Servings,
			Nutrition: nutrition.NutritionData{
				Calories: m.Calories,
				Carbs:    m.Carbs,
				Protein:  m.Protein,
				Fat:      m.Fat,
				Fiber:    m.Fiber,
			},
		}
	}

	caloriesByDay := make(map[string]float64)
	for _, e := range entries {
		caloriesByDay[nutrition.DayKey(e.EatenAt, loc)] += e.Effective().Calories
	}

	days, stats := nutrition.BuildWeeklyReport(caloriesByDay, goalsDTO.EngineGoals(), goalsDTO.EngineDietDays(), ref, loc)

	summaries := make([]nutrition.DailySummary, len(days))
	for i, d := range days {
		summaries[i] = nutrition.RecomputeDailySummary(entries, d.Date, loc)
	}

	return &weekData{
		From:      days[0].Date,
		To:        days[len(days)-1].Date,
		Summaries: summaries,
		Days:      days,
		Stats:     stats,
		Goals:     goalsDTO,
	}, nil
}

// generateCSV writes one row per day, oldest first.
func (g *Generator) generateCSV(week *weekData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "calories", "carbs_g", "protein_g", "fat_g", "fiber_g", "meals_count", "diet_day"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i, s := range week.Summaries {
		row := []string{
			s.Date.Format("2006-01-02"),
			formatAmount(s.TotalCalories),
			formatAmount(s.TotalCarbs),
			formatAmount(s.TotalProtein),
			formatAmount(s.TotalFat),
			formatAmount(s.TotalFiber),
			strconv.Itoa(s.MealsCount),
			strconv.FormatBool(week.Days[i].IsDietDay),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// generatePDF renders the weekly report in Portuguese. The core fonts cover
// Latin-1, which is enough for the accented labels once they pass through the
// unicode translator.
func (g *Generator) generatePDF(week *weekData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr("Relatório Semanal de Nutrição"))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Período: %s — %s",
		week.From.Format("02/01/2006"), week.To.Format("02/01/2006"))))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, tr("Resumo"))
	pdf.Ln(8)

	onTrack := "Acima da meta"
	if week.Stats.OnTrack {
		onTrack = "Dentro da meta"
	}

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Calorias em dias de dieta: %s kcal", formatAmount(week.Stats.TotalCalories))))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Média por dia de dieta: %s kcal", formatAmount(week.Stats.AvgCalories))))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Meta semanal: %s kcal (%d dias de dieta)", formatAmount(week.Stats.WeeklyTarget), week.Stats.DietDayCount)))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Dias com registros: %d", week.Stats.DaysTracked)))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Situação: %s", onTrack)))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, tr("Dias da semana"))
	pdf.Ln(8)

	g.drawDaysTable(pdf, tr, week)

	pdf.Ln(8)
	pdf.SetFont("Arial", "", 8)
	pdf.Cell(0, 5, tr(fmt.Sprintf("Metas diárias: %s kcal, %s g carboidratos, %s g proteína, %s g gordura, %s g fibra",
		formatAmount(week.Goals.DailyCalories),
		formatAmount(week.Goals.DailyCarbs),
		formatAmount(week.Goals.DailyProtein),
		formatAmount(week.Goals.DailyFat),
		formatAmount(week.Goals.DailyFiber))))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func (g *Generator) drawDaysTable(pdf *gofpdf.Fpdf, tr func(string) string, week *weekData) {
	pdf.SetFont("Arial", "B", 8)
	pdf.CellFormat(25, 6, tr("Data"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(22, 6, tr("Calorias"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(22, 6, tr("Carb. (g)"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(22, 6, tr("Prot. (g)"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(22, 6, tr("Gord. (g)"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(22, 6, tr("Fibra (g)"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(22, 6, tr("Refeições"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(22, 6, tr("Dieta"), "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 8)
	for i, s := range week.Summaries {
		diet := ""
		if week.Days[i].IsDietDay {
			diet = "Sim"
		}

		pdf.CellFormat(25, 6, s.Date.Format("02/01"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, formatAmount(s.TotalCalories), "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, formatAmount(s.TotalCarbs), "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, formatAmount(s.TotalProtein), "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, formatAmount(s.TotalFat), "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, formatAmount(s.TotalFiber), "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, strconv.Itoa(s.MealsCount), "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, tr(diet), "1", 1, "C", false, 0, "")
	}
}

// formatAmount rounds to one decimal and trims trailing zeros so whole
// numbers print without decimals.
func formatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
