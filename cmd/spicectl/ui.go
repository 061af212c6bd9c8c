package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/spiceshop/storefront-go/internal/notify"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("178"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errorBanner = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successBanner = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Bold(true)

	infoBanner = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	tableHeadStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)
)

// money renders a rupee amount.
func money(amount decimal.Decimal) string {
	return "₹" + amount.StringFixed(2)
}

// renderTable prints a fixed-width table: header row, then cell rows padded
// to the widest value per column.
func renderTable(head []string, rows [][]string) string {
	widths := make([]int, len(head))
	for i, h := range head {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range head {
		b.WriteString(tableHeadStyle.Render(pad(h, widths[i])))
		if i < len(head)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		for i, cell := range row {
			b.WriteString(pad(cell, widths[i]))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// pageFooter renders the "Page 2 of 5" line under tables.
func pageFooter(page, total int) string {
	return dimStyle.Render(fmt.Sprintf("Page %d of %d", page, total))
}

// flushBanners prints whatever the services posted during the command.
func flushBanners() {
	if runtime.banners == nil {
		return
	}
	for _, message := range runtime.banners.Active() {
		switch message.Kind {
		case notify.KindError:
			fmt.Println(errorBanner.Render("✗ " + message.Text))
		case notify.KindSuccess:
			fmt.Println(successBanner.Render("✓ " + message.Text))
		default:
			fmt.Println(infoBanner.Render(message.Text))
		}
	}
	runtime.banners.Dismiss()
}
