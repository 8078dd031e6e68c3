package pretty

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/phpsniff/pkg/analysis"
)

// CodeCount is one row of a per-code breakdown.
type CodeCount struct {
	Code  string
	Count int
}

// SortCodeCounts turns a code histogram into rows, most frequent first
// and alphabetical among ties.
func SortCodeCounts(counts map[string]int) []CodeCount {
	rows := make([]CodeCount, 0, len(counts))
	for code, n := range counts {
		rows = append(rows, CodeCount{Code: code, Count: n})
	}
	slices.SortFunc(rows, func(a, b CodeCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Code, b.Code)
	})
	return rows
}

// FormatCodeTable renders the per-code breakdown as a bordered table with
// a trailing total row. It returns "" when there is nothing to show.
func (s *Styles) FormatCodeTable(counts map[string]int) string {
	rows := SortCodeCounts(counts)
	if len(rows) == 0 {
		return ""
	}

	total := 0
	data := make([][]string, 0, len(rows)+1)
	for _, row := range rows {
		data = append(data, []string{row.Code, strconv.Itoa(row.Count)})
		total += row.Count
	}
	data = append(data, []string{"Total", strconv.Itoa(total)})

	return s.renderTable([]string{"CODE", "COUNT"}, data, true)
}

// FormatFileTable renders per-file counts in the order given.
// It returns "" when files is empty.
func (s *Styles) FormatFileTable(files []analysis.FileAnalysis) string {
	if len(files) == 0 {
		return ""
	}

	data := make([][]string, 0, len(files))
	for _, file := range files {
		data = append(data, []string{
			file.Path,
			strconv.Itoa(file.Issues),
			strconv.Itoa(file.Errors),
			strconv.Itoa(file.Warnings),
		})
	}

	return s.renderTable([]string{"FILE", "ISSUES", "ERRORS", "WARNINGS"}, data, false)
}

// renderTable draws a bordered table whose first column is text and whose
// other columns are right-aligned numbers. With totalRow the last row is bold.
func (s *Styles) renderTable(headers []string, data [][]string, totalRow bool) string {
	cell := lipgloss.NewStyle().Padding(0, 1)
	last := len(data) - 1

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.TableBorder).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			style := cell
			if totalRow && row == last {
				style = style.Inherit(s.Bold)
			}
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	return tbl.Render() + "\n"
}
