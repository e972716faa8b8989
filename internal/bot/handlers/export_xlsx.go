package handlers

import (
	"fmt"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/budgetmind/budget_bot/internal/parser"
	"github.com/budgetmind/budget_bot/internal/repository"
)

// BuildXLSX собирает книгу из двух листов: список операций и сводка по
// категориям.
func BuildXLSX(ops []repository.Operation, start, end time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const opsSheet = "Операции"
	const summarySheet = "Сводка"

	f.SetSheetName("Sheet1", opsSheet)
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("создание листа сводки: %w", err)
	}

	header := []interface{}{"Дата", "Описание", "Категория", "Тип", "Сумма", "Валюта"}
	if err := f.SetSheetRow(opsSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("заголовок: %w", err)
	}

	expByCat := make(map[string]float64)
	incByCat := make(map[string]float64)
	for i, o := range ops {
		typeLabel := "расход"
		if o.Type == parser.TypeIncome {
			typeLabel = "доход"
			incByCat[o.Category] += o.Amount
		} else {
			expByCat[o.Category] += math.Abs(o.Amount)
		}
		row := []interface{}{
			o.CreatedAt.Format("02.01.2006 15:04"),
			parser.CleanName(o.Description, o.Category),
			o.Category,
			typeLabel,
			o.Amount,
			o.Currency,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(opsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("строка %d: %w", i+2, err)
		}
	}

	f.SetColWidth(opsSheet, "A", "A", 18)
	f.SetColWidth(opsSheet, "B", "C", 24)

	sumHeader := []interface{}{fmt.Sprintf("Период: %s – %s", start.Format("02.01.2006"), end.Format("02.01.2006"))}
	f.SetSheetRow(summarySheet, "A1", &sumHeader)

	rowN := 3
	writeBlock := func(title string, byCat map[string]float64) {
		block := []interface{}{title}
		f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", rowN), &block)
		rowN++
		total := 0.0
		for _, cat := range sortedCategories(byCat) {
			line := []interface{}{cat, byCat[cat]}
			f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", rowN), &line)
			total += byCat[cat]
			rowN++
		}
		totalLine := []interface{}{"Итого", total}
		f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", rowN), &totalLine)
		rowN += 2
	}
	if len(expByCat) > 0 {
		writeBlock("Расходы", expByCat)
	}
	if len(incByCat) > 0 {
		writeBlock("Доходы", incByCat)
	}
	f.SetColWidth(summarySheet, "A", "A", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("запись XLSX: %w", err)
	}
	return buf.Bytes(), nil
}
