// Package workbook exports the series behind a plan's charts to an .xlsx
// companion file, one sheet per chart.
package workbook

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/okian/deckgen/internal/domain/layout"
)

// ErrNoCharts is returned when a plan has nothing to export.
var ErrNoCharts = errors.New("plan has no charts")

const (
	categoryHeader = "类别"
	maxSheetName   = 31
	defaultSheet   = "Sheet1"
)

// Write builds the workbook for p and returns its bytes.
func Write(ctx context.Context, p *layout.Plan) ([]byte, error) {
	refs := p.Charts()
	if len(refs) == 0 {
		return nil, ErrNoCharts
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"2E4053"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	used := map[string]bool{}
	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := SheetName(ref, used)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return nil, fmt.Errorf("sheet %s: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
		if err := writeSheet(f, name, ref, header); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   p.Title,
		Creator: p.Author,
		Subject: "chart data",
	}); err != nil {
		return nil, fmt.Errorf("doc props: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, ref layout.ChartRef, header int) error {
	ch := ref.Chart
	row := []interface{}{categoryHeader}
	for _, s := range ch.Series {
		row = append(row, s.Name)
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(row), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, header); err != nil {
		return err
	}

	labels := ch.Series[0].Labels
	for i, label := range labels {
		vals := []interface{}{label}
		for _, s := range ch.Series {
			if i < len(s.Values) {
				vals = append(vals, s.Values[i])
			} else {
				vals = append(vals, nil)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return err
		}
	}

	// Percent formats scale by 100 in Excel; the data holds percentage
	// points already, so only plain number formats are applied.
	if ch.LabelFormat != "" && !strings.HasSuffix(ch.LabelFormat, "%") && len(labels) > 0 {
		format := ch.LabelFormat
		numFmt, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
		if err != nil {
			return err
		}
		end, err := excelize.CoordinatesToCellName(len(ch.Series)+1, len(labels)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "B2", end, numFmt); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "A", 16)
}

// SheetName derives a unique sheet name such as "S3-月度收入趋势".
func SheetName(ref layout.ChartRef, used map[string]bool) string {
	title := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, ref.Chart.Title)
	if title == "" {
		title = fmt.Sprintf("chart%d", ref.Index+1)
	}
	base := truncate(fmt.Sprintf("S%d-%s", ref.Slide, title), maxSheetName)
	name := base
	for n := 2; used[name]; n++ {
		suffix := fmt.Sprintf("~%d", n)
		name = truncate(base, maxSheetName-len([]rune(suffix))) + suffix
	}
	used[name] = true
	return name
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
