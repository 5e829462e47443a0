package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"netconnect/internal/netconnectd"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
)

const ansiReset = "\x1b[0m"

var statusStyles = map[statusKind]struct {
	label string
	color string
}{
	statusInfo: {label: "INFO", color: "\x1b[34m"},
	statusOK:   {label: "OK", color: "\x1b[32m"},
	statusWarn: {label: "WARN", color: "\x1b[33m"},
}

// printer renders CLI output to one writer. The color decision is made once
// at construction; JSON emission ignores it entirely.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer) *printer {
	color := false
	if file, ok := w.(*os.File); ok {
		fd := file.Fd()
		color = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return &printer{w: w, color: color}
}

func (p *printer) section(title string) {
	header := "== " + title + " =="
	p.colored(statusInfo, header)
	p.colored(statusInfo, strings.Repeat("-", len(header)))
}

// line prints one status row: an indented padded label, the kind tag, and
// an optional value.
func (p *printer) line(kind statusKind, label, value string) {
	tag := "[" + statusStyles[kind].label + "]"
	if value != "" {
		tag += " " + value
	}
	p.colored(kind, fmt.Sprintf("  %-18s %s", label+":", tag))
}

func (p *printer) colored(kind statusKind, s string) {
	if p.color {
		fmt.Fprintln(p.w, statusStyles[kind].color+s+ansiReset)
		return
	}
	fmt.Fprintln(p.w, s)
}

func (p *printer) blank() {
	fmt.Fprintln(p.w)
}

func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// networkTable prints the visible-network list. Signal quality is the only
// numeric column and the only one that right-aligns.
func (p *printer) networkTable(networks []netconnectd.Network) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"SSID", "BSSID", "QUALITY", "ENCRYPTED"})
	for _, n := range networks {
		tw.AppendRow(table.Row{n.SSID, n.Address, n.SignalQuality, yesNo(n.Encrypted)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	fmt.Fprintln(p.w, tw.Render())
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
