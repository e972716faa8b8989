package handlers

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/budgetmind/budget_bot/internal/repository"
)

func TestBuildXLSX(t *testing.T) {
	created := time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)
	ops := []repository.Operation{
		{Amount: -4.5, Currency: "BYN", Type: "expense", Category: "Еда и напитки", Description: "кофе 4,50", CreatedAt: created},
		{Amount: 200, Currency: "BYN", Type: "income", Category: "Доход", Description: "+200 партнёрка", CreatedAt: created},
	}

	start := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	data, err := BuildXLSX(ops, start, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), "Операции")
	assert.Contains(t, f.GetSheetList(), "Сводка")

	header, err := f.GetCellValue("Операции", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Дата", header)

	cat, err := f.GetCellValue("Операции", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Еда и напитки", cat)

	typ, err := f.GetCellValue("Операции", "D3")
	require.NoError(t, err)
	assert.Equal(t, "доход", typ)
}

func TestBuildXLSXEmpty(t *testing.T) {
	start := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	data, err := BuildXLSX(nil, start, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
