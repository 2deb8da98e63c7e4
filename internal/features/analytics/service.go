package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

var ErrBadDateRange = errors.New("invalid date range")

// ReportWindow bounds a report. Zero values fall back to the last 30 days.
type ReportWindow struct {
	From time.Time
	To   time.Time
}

func (w ReportWindow) normalize(now time.Time) (time.Time, time.Time, error) {
	from, to := w.From, w.To
	if to.IsZero() {
		to = now
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, ErrBadDateRange
	}
	return from, to, nil
}

// Dashboard is the full admin landing payload.
type Dashboard struct {
	Summary     Summary      `json:"summary"`
	SalesByDay  []DailySales `json:"sales_by_day"`
	TopProducts []TopProduct `json:"top_products"`
}

type AnalyticsService interface {
	Dashboard(ctx context.Context, w ReportWindow) (*Dashboard, error)
	SalesReport(ctx context.Context, w ReportWindow) ([]DailySales, error)
	ExportSalesXLSX(ctx context.Context, w ReportWindow) ([]byte, string, error)
}

type AnalyticsServiceImpl struct {
	repo AnalyticsRepository
}

func NewAnalyticsService(repo AnalyticsRepository) AnalyticsService {
	return &AnalyticsServiceImpl{repo: repo}
}

func (s *AnalyticsServiceImpl) Dashboard(ctx context.Context, w ReportWindow) (*Dashboard, error) {
	from, to, err := w.normalize(time.Now())
	if err != nil {
		return nil, err
	}

	summary, err := s.repo.OrderSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	customers, err := s.repo.CustomerCount(ctx)
	if err != nil {
		return nil, err
	}
	summary.Customers = customers

	sales, err := s.repo.SalesByDay(ctx, from, to)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopProducts(ctx, from, to, 10)
	if err != nil {
		return nil, err
	}

	return &Dashboard{Summary: *summary, SalesByDay: sales, TopProducts: top}, nil
}

func (s *AnalyticsServiceImpl) SalesReport(ctx context.Context, w ReportWindow) ([]DailySales, error) {
	from, to, err := w.normalize(time.Now())
	if err != nil {
		return nil, err
	}
	return s.repo.SalesByDay(ctx, from, to)
}

// ExportSalesXLSX renders the daily sales and top product tables into a
// workbook and returns the file bytes plus a download filename.
func (s *AnalyticsServiceImpl) ExportSalesXLSX(ctx context.Context, w ReportWindow) ([]byte, string, error) {
	from, to, err := w.normalize(time.Now())
	if err != nil {
		return nil, "", err
	}

	sales, err := s.repo.SalesByDay(ctx, from, to)
	if err != nil {
		return nil, "", err
	}
	top, err := s.repo.TopProducts(ctx, from, to, 25)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	salesSheet := "Daily Sales"
	index, err := f.NewSheet(salesSheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, col := range []string{"Date", "Orders", "Revenue"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(salesSheet, cell, col)
		f.SetCellStyle(salesSheet, cell, cell, headerStyle)
	}
	for rowIdx, row := range sales {
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		f.SetCellValue(salesSheet, cell, row.Date)
		cell, _ = excelize.CoordinatesToCellName(2, rowIdx+2)
		f.SetCellValue(salesSheet, cell, row.Orders)
		cell, _ = excelize.CoordinatesToCellName(3, rowIdx+2)
		f.SetCellValue(salesSheet, cell, row.Revenue)
	}

	topSheet := "Top Products"
	if _, err := f.NewSheet(topSheet); err != nil {
		return nil, "", err
	}
	for i, col := range []string{"Product", "Units Sold", "Revenue"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(topSheet, cell, col)
		f.SetCellStyle(topSheet, cell, cell, headerStyle)
	}
	for rowIdx, row := range top {
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		f.SetCellValue(topSheet, cell, row.Name)
		cell, _ = excelize.CoordinatesToCellName(2, rowIdx+2)
		f.SetCellValue(topSheet, cell, row.Units)
		cell, _ = excelize.CoordinatesToCellName(3, rowIdx+2)
		f.SetCellValue(topSheet, cell, row.Revenue)
	}

	for _, sheet := range []string{salesSheet, topSheet} {
		for i := 1; i <= 3; i++ {
			col, _ := excelize.ColumnNumberToName(i)
			f.SetColWidth(sheet, col, col, 18)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("sales-%s-to-%s.xlsx", from.Format("2006-01-02"), to.Format("2006-01-02"))
	return buffer.Bytes(), filename, nil
}
