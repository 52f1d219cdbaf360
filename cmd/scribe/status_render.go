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
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBlue  = "\x1b[34m"
	ansiBold  = "\x1b[1m"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func renderStatusLine(kind statusKind, message string, colorize bool) string {
	line := fmt.Sprintf("[%s] %s", statusKindLabel(kind), message)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + line + ansiReset
		}
	}
	return line
}

func writeStatus(w io.Writer, kind statusKind, message string) {
	if strings.TrimSpace(message) == "" {
		return
	}
	fmt.Fprintln(w, renderStatusLine(kind, message, isTerminal(w)))
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	if colorize {
		return ansiBold + line + ansiReset
	}
	return line
}
