// Package output 終端機輸出：推薦結果表格與互動式輸入。
package output

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"recipe-recommender/internal/core/recipe"
	"recipe-recommender/internal/pkg/common"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Printer 終端機輸出
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter 輸出到 stdout/stderr；NO_COLOR 或 TERM=dumb 時停用顏色
func NewPrinter(useColors bool) *Printer {
	if _, ok := os.LookupEnv("NO_COLOR"); ok || os.Getenv("TERM") == "dumb" {
		useColors = false
	}
	return NewPrinterWithWriters(os.Stdout, os.Stderr, useColors)
}

// NewPrinterWithWriters 指定輸出目標
func NewPrinterWithWriters(out, err io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: err, useColors: useColors}
}

// Warning 黃色警告
func (p *Printer) Warning(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgYellow).Fprintf(p.out, "⚠ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.out, "[WARN] "+format+"\n", args...)
	}
}

// Error 紅色錯誤，寫到 stderr
func (p *Printer) Error(format string, args ...interface{}) {
	if p.useColors {
		color.New(color.FgRed).Fprintf(p.err, "✗ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.err, "[ERROR] "+format+"\n", args...)
	}
}

// Header 粗體標題
func (p *Printer) Header(title string) {
	if p.useColors {
		color.New(color.Bold).Fprintf(p.out, "\n%s\n", title)
	} else {
		fmt.Fprintf(p.out, "\n%s\n", title)
	}
}

// Result 輸出推薦結果；沒有結果時只顯示警告
func (p *Printer) Result(result *recipe.Result) {
	if result == nil || result.NoResults || len(result.Recommendations) == 0 {
		msg := recipe.NoResultsMessage
		if result != nil && result.Message != "" {
			msg = result.Message
		}
		p.Warning("%s", msg)
		return
	}

	p.Header("추천 결과")
	table := newTable(p.out)
	table.Header("#", "레시피", "조리시간", "일치율", "임박 재료")
	rows := make([][]string, 0, len(result.Recommendations))
	for _, r := range result.Recommendations {
		rows = append(rows, []string{
			strconv.Itoa(r.Rank),
			r.Name,
			formatMinutes(r.CookTimeMinutes) + "분",
			strconv.Itoa(r.MatchPercent) + "%",
			strconv.Itoa(r.NearExpiryCount),
		})
	}
	_ = table.Bulk(rows)
	_ = table.Render()

	for _, r := range result.Recommendations {
		p.Header(fmt.Sprintf("[%d] %s", r.Rank, r.Name))
		fmt.Fprintf(p.out, "  보유 재료: %s\n", common.StringSliceToString(r.Matched))
		if len(r.Missing) > 0 {
			fmt.Fprintf(p.out, "  부족 재료: %s\n", p.missing(common.StringSliceToString(r.Missing)))
		}
		fmt.Fprintf(p.out, "  유통기한 임박 재료 수: %d\n", r.NearExpiryCount)
		fmt.Fprintf(p.out, "  조리법: %s\n", r.Description)
	}
}

func (p *Printer) missing(text string) string {
	if p.useColors {
		return color.RedString(text)
	}
	return text
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.Off},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
	)
}

func formatMinutes(m float64) string {
	return strconv.FormatFloat(m, 'f', -1, 64)
}
