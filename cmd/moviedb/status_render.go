package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusError
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[91m"
	ansiGreen = "\x1b[32m"
	ansiBold  = "\x1b[1m"
)

// printer writes user-facing lines, colouring them only on a terminal.
type printer struct {
	out      io.Writer
	colorize bool
}

func newPrinter(out io.Writer) *printer {
	return &printer{out: out, colorize: shouldColorize(out)}
}

func (p *printer) line(kind statusKind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.colorize {
		if color := statusKindColor(kind); color != "" {
			msg = color + msg + ansiReset
		}
	}
	fmt.Fprintln(p.out, msg)
}

func (p *printer) info(format string, args ...any) { p.line(statusInfo, format, args...) }
func (p *printer) ok(format string, args ...any)   { p.line(statusOK, format, args...) }
func (p *printer) fail(format string, args ...any) { p.line(statusError, format, args...) }

func (p *printer) heading(title string) {
	title = strings.TrimSpace(title)
	if p.colorize {
		title = ansiBold + title + ansiReset
	}
	fmt.Fprintln(p.out, title)
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusError:
		return ansiRed
	default:
		return ""
	}
}

func shouldColorize(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
