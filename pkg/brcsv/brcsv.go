// Package brcsv writes the CSV dialect the back-office reports have always
// used: semicolon-delimited, UTF-8 BOM prefixed so Excel opens it
// correctly, dates as DD/MM/YYYY HH:MM:SS and decimals with a comma.
package brcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	bom        = "\uFEFF"
	timeLayout = "02/01/2006 15:04:05"
)

type Writer struct {
	w *csv.Writer
}

// NewWriter writes the BOM immediately so it precedes the header row.
func NewWriter(out io.Writer) (*Writer, error) {
	if _, err := io.WriteString(out, bom); err != nil {
		return nil, err
	}
	w := csv.NewWriter(out)
	w.Comma = ';'
	return &Writer{w: w}, nil
}

func (w *Writer) Write(record []string) error { return w.w.Write(record) }

func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// Money renders a decimal with two places and a comma separator: 120,50.
func Money(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

func Time(t time.Time) string { return t.Format(timeLayout) }

// TimePtr renders an optional timestamp, empty when absent.
func TimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}

func Bool(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

// Filename builds the attachment name the reports have always exported
// under, e.g. relatorio_vendas_20240131_235959.csv.
func Filename(report string, now time.Time) string {
	return fmt.Sprintf("relatorio_%s_%s.csv", report, now.Format("20060102_150405"))
}
