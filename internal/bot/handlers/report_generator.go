package handlers

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/budgetmind/budget_bot/internal/parser"
	"github.com/budgetmind/budget_bot/internal/service"
)

type ReportGenerator struct {
	bot *Bot
}

func NewReportGenerator(bot *Bot) *ReportGenerator {
	return &ReportGenerator{bot: bot}
}

// GeneratePDFReport собирает PDF с графиками и детализацией по категориям
// за период [start, end).
func (rg *ReportGenerator) GeneratePDFReport(svc *service.FinanceService, start, end time.Time) ([]byte, error) {
	ops, err := svc.OperationsForPeriod(start, end)
	if err != nil {
		return nil, fmt.Errorf("получение операций: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	fontPath := filepath.Join("fonts", "DejaVuSans.ttf")
	pdf.AddUTF8Font("DejaVuSans", "", fontPath)
	pdf.AddUTF8Font("DejaVuSans", "B", fontPath)
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	pdf.SetFont("DejaVuSans", "B", 20)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(190, 10, "Финансовый отчёт", "", 1, "C", false, 0, "")
	pdf.SetFont("DejaVuSans", "", 12)
	pdf.CellFormat(190, 8, fmt.Sprintf("Период: %s – %s", start.Format("02.01.2006"), end.Format("02.01.2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 8, fmt.Sprintf("Сформировано: %s", time.Now().Format("02.01.2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	var (
		totalIncome, totalExpense float64
		incomeByCat               = make(map[string]float64)
		expenseByCat              = make(map[string]float64)
		incomeByDate              = make(map[string]float64)
		expenseByDate             = make(map[string]float64)
	)

	dates := map[string]bool{}
	for _, o := range ops {
		dateStr := o.CreatedAt.Format("2006-01-02")
		cat := o.Category
		if cat == "" {
			cat = parser.CategoryOther
		}
		if o.Type == parser.TypeIncome {
			val := o.Amount
			totalIncome += val
			incomeByCat[cat] += val
			incomeByDate[dateStr] += val
		} else {
			val := -o.Amount
			totalExpense += val
			expenseByCat[cat] += val
			expenseByDate[dateStr] += val
		}
		dates[dateStr] = true
	}

	var dateList []string
	for date := range dates {
		dateList = append(dateList, date)
	}
	sort.Strings(dateList)

	// Накопительные кривые для линейных графиков.
	var incomeTrend, expenseTrend []chart.Value
	var incomeSum, expenseSum float64
	for _, d := range dateList {
		incomeSum += incomeByDate[d]
		expenseSum += expenseByDate[d]
		incomeTrend = append(incomeTrend, chart.Value{Label: d, Value: incomeSum})
		expenseTrend = append(expenseTrend, chart.Value{Label: d, Value: expenseSum})
	}

	pdf.SetFont("DejaVuSans", "B", 16)
	pdf.CellFormat(190, 10, "Общая статистика", "", 1, "L", false, 0, "")
	pdf.SetFont("DejaVuSans", "", 12)
	pdf.CellFormat(190, 8, fmt.Sprintf("Общий доход: %.2f BYN", totalIncome), "", 1, "L", false, 0, "")
	pdf.CellFormat(190, 8, fmt.Sprintf("Общий расход: %.2f BYN", totalExpense), "", 1, "L", false, 0, "")
	pdf.CellFormat(190, 8, fmt.Sprintf("Баланс: %.2f BYN", totalIncome-totalExpense), "", 1, "L", false, 0, "")
	pdf.Ln(10)

	startY := pdf.GetY()
	incomeLine, _ := rg.lineChart(incomeTrend, "Доходы", drawing.ColorFromHex("5A9BD5"))
	expenseLine, _ := rg.lineChart(expenseTrend, "Расходы", drawing.ColorFromHex("ED7D31"))
	rg.addImage(pdf, incomeLine, "", 10, startY, 90, 50)
	rg.addImage(pdf, expenseLine, "", 110, startY, 90, 50)
	pdf.SetY(startY + 55)
	pdf.Ln(5)

	pdf.SetFont("DejaVuSans", "B", 14)
	pdf.CellFormat(190, 10, "Распределение по категориям", "", 1, "L", false, 0, "")
	pdf.Ln(3)

	if len(incomeByCat) > 0 {
		pie, legend := rg.pieWithLegend(incomeByCat)
		rg.addImage(pdf, pie, "Доходы", 10, pdf.GetY(), 90, 60)
		rg.addLegend(pdf, legend, 10, pdf.GetY()+62)
	}
	if len(expenseByCat) > 0 {
		pie, legend := rg.pieWithLegend(expenseByCat)
		rg.addImage(pdf, pie, "Расходы", 110, pdf.GetY()-62, 90, 60)
		rg.addLegend(pdf, legend, 110, pdf.GetY()+2)
	}
	pdf.Ln(70)

	pdf.SetFont("DejaVuSans", "B", 14)
	pdf.CellFormat(190, 10, "Детализация по категориям", "", 1, "L", false, 0, "")
	pdf.SetFont("DejaVuSans", "", 12)

	if len(incomeByCat) > 0 {
		pdf.CellFormat(190, 8, "Доходы:", "", 1, "L", false, 0, "")
		for _, cat := range sortedCategories(incomeByCat) {
			pdf.CellFormat(190, 6, fmt.Sprintf("- %s: %.2f BYN", cat, incomeByCat[cat]), "", 1, "L", false, 0, "")
		}
		pdf.Ln(5)
	}
	if len(expenseByCat) > 0 {
		pdf.CellFormat(190, 8, "Расходы:", "", 1, "L", false, 0, "")
		for _, cat := range sortedCategories(expenseByCat) {
			pdf.CellFormat(190, 6, fmt.Sprintf("- %s: %.2f BYN", cat, expenseByCat[cat]), "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("генерация PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (rg *ReportGenerator) lineChart(data []chart.Value, title string, lineColor drawing.Color) ([]byte, error) {
	if len(data) < 2 {
		// go-chart не рендерит серию из одной точки.
		return nil, nil
	}
	graph := chart.Chart{
		Width:  600,
		Height: 200,
		XAxis:  chart.XAxis{Style: chart.Style{FontSize: 8}},
		YAxis:  chart.YAxis{Style: chart.Style{FontSize: 8}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    title,
				XValues: indexXs(data),
				YValues: valueYs(data),
				Style: chart.Style{
					StrokeColor: lineColor,
					FillColor:   drawing.ColorTransparent,
				},
			},
		},
	}
	var buf bytes.Buffer
	err := graph.Render(chart.PNG, &buf)
	return buf.Bytes(), err
}

func (rg *ReportGenerator) pieWithLegend(data map[string]float64) ([]byte, []string) {
	var values []chart.Value
	var legend []string
	total := 0.0
	for _, v := range data {
		total += v
	}
	for i, k := range sortedCategories(data) {
		val := data[k]
		percent := val / total * 100
		legend = append(legend, fmt.Sprintf("%s – %.2f BYN (%.0f%%)", k, val, percent))
		values = append(values, chart.Value{
			Value: val,
			Label: "",
			Style: chart.Style{FillColor: chart.GetDefaultColor(i)},
		})
	}
	graph := chart.PieChart{
		Width:  300,
		Height: 200,
		Values: values,
	}
	var buf bytes.Buffer
	graph.Render(chart.PNG, &buf)
	return buf.Bytes(), legend
}

func (rg *ReportGenerator) addLegend(pdf *gofpdf.Fpdf, items []string, x, y float64) {
	pdf.SetXY(x, y)
	pdf.SetFont("DejaVuSans", "", 10)
	for _, item := range items {
		pdf.CellFormat(90, 5, item, "", 1, "L", false, 0, "")
	}
}

func (rg *ReportGenerator) addImage(pdf *gofpdf.Fpdf, img []byte, title string, x, y, w, h float64) {
	if len(img) == 0 {
		return
	}
	tmpfile, err := os.CreateTemp("", "chart*.png")
	if err != nil {
		return
	}
	defer os.Remove(tmpfile.Name())
	tmpfile.Write(img)
	tmpfile.Close()
	if title != "" {
		pdf.SetFont("DejaVuSans", "B", 12)
		pdf.SetXY(x, y-6)
		pdf.CellFormat(w, 6, title, "", 0, "C", false, 0, "")
	}
	options := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptions(tmpfile.Name(), options)
	pdf.ImageOptions(tmpfile.Name(), x, y, w, h, false, options, 0, "")
}

func indexXs(data []chart.Value) []float64 {
	var xs []float64
	for i := range data {
		xs = append(xs, float64(i))
	}
	return xs
}

func valueYs(data []chart.Value) []float64 {
	var ys []float64
	for _, v := range data {
		ys = append(ys, v.Value)
	}
	return ys
}
