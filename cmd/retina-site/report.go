package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/microsoft/retina-site/internal/docsite/build"
	siteerrors "github.com/microsoft/retina-site/internal/docsite/errors"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2f6df6"))
	labelStyle   = lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("#6b7280"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#d97706"))
)

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

func warningLines(warnings []*siteerrors.UnresolvedReferenceError) []string {
	if len(warnings) == 0 {
		return []string{successStyle.Render("✓ no link warnings")}
	}
	lines := []string{warnStyle.Render(fmt.Sprintf("! %d link warning(s)", len(warnings)))}
	for _, w := range warnings {
		lines = append(lines, "  - "+w.Error())
	}
	return lines
}

func renderBuildSummary(title string, res *build.Result) string {
	lines := []string{
		titleStyle.Render("Built " + title),
		row("pages", fmt.Sprintf("%d", res.Pages)),
		row("files", fmt.Sprintf("%d", res.Files)),
		row("output", res.OutDir),
		row("build id", res.BuildID),
		row("duration", res.Duration.Round(time.Millisecond).String()),
	}
	lines = append(lines, warningLines(res.Warnings)...)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderCheckReport(site *build.Site) string {
	lines := []string{
		titleStyle.Render("Checked " + site.Descriptor.Title),
		row("docs", fmt.Sprintf("%d", len(site.Docs.All()))),
		row("sidebars", strings.Join(site.Sidebars.IDs(), ", ")),
		row("routes", fmt.Sprintf("%d", len(site.Routes()))),
		row("links", fmt.Sprintf("%d", site.Report.Checked)),
	}
	lines = append(lines, warningLines(site.Report.Warnings)...)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
