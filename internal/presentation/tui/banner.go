package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{" _            _        _             ", "#818cf8"},
	{"| | ___   ___| | _____| |_ ___ _ __  ", "#a78bfa"},
	{"| |/ _ \\ / __| |/ / __| __/ _ \\ '_ \\ ", "#c084fc"},
	{"| | (_) | (__|   <\\__ \\ ||  __/ |_) |", "#e879f9"},
	{"|_|\\___/ \\___|_|\\_\\___/\\__\\___| .__/ ", "#f472b6"},
	{"                              |_|    ", "#fb7185"},
}

// PrintBanner writes the lockstep ASCII banner to w using the color profile
// supported by w. Non-terminal writers get plain text.
func PrintBanner(w io.Writer) {
	p := termenv.NewOutput(w).ColorProfile()

	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
