package diagfmt

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table writes rows as columns separated by two spaces, padded by
// display width. The last column is not padded.
func Table(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	measure := func(row []string) {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}

	bw := bufio.NewWriter(w)
	write := func(row []string) {
		var b strings.Builder
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
		}
		bw.WriteString(strings.TrimRight(b.String(), " "))
		bw.WriteByte('\n')
	}
	if len(header) > 0 {
		write(header)
	}
	for _, row := range rows {
		write(row)
	}
	return bw.Flush()
}

// CycleRows renders each cycle as "A -> B -> A" with its length.
func CycleRows(cycles [][]string) [][]string {
	rows := make([][]string, 0, len(cycles))
	for i, c := range cycles {
		if len(c) == 0 {
			continue
		}
		path := strings.Join(c, " -> ") + " -> " + c[0]
		rows = append(rows, []string{strconv.Itoa(i + 1), strconv.Itoa(len(c)), path})
	}
	return rows
}
