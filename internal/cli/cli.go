// Package cli holds terminal output helpers.
package cli

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/buger/goterm"
	"github.com/fatih/color"
)

var (
	// Colors for different types of output
	aiOutputColor  = color.New(color.FgCyan)                // Cyan for AI responses
	titleColor     = color.New(color.FgMagenta, color.Bold) // Bold magenta for titles
	separatorColor = color.New(color.FgHiBlack)             // Dark grey for separators
	fileColor      = color.New(color.FgRed)                 // Red for file operations
	costColor      = color.New(color.FgYellow)              // Bright yellow for cost info

	width = terminalWidth()
)

// terminalWidth falls back to 80 columns when there is no tty, as when
// running as a git hook.
func terminalWidth() int {
	if w := goterm.Width(); w > 0 {
		return w
	}
	return 80
}

// Separator printed to cli.
func Separator() {
	separator := strings.Repeat("-", width)
	separatorColor.Println(separator)
}

// Title printed to cli.
func Title(text string, args ...any) {
	titleColor.Println(titleLine(fmt.Sprintf(text, args...), width))
}

// titleLine centers the title within the given width. A title wider than
// the terminal is printed without padding.
func titleLine(text string, width int) string {
	title := "      " + text + "      "
	leftWidth := (width - len(title)) / 2
	if leftWidth < 0 {
		leftWidth = 0
	}
	rightWidth := width - len(title) - leftWidth
	if rightWidth < 0 {
		rightWidth = 0
	}
	return strings.Repeat("-", leftWidth) + title + strings.Repeat("-", rightWidth)
}

// AIOutput printed to cli.
func AIOutput(text string, args ...any) {
	text = strings.ReplaceAll(text, "%", "%%")
	aiOutputColor.Printf(text, args...)
}

// CostInfo printed to cli.
func CostInfo(text string, args ...any) {
	costColor.Printf(text, args...)
}

// FileInfo printed to cli.
func FileInfo(text string, args ...any) {
	fileColor.Printf(text, args...)
}

// QueryUser a yes/no question.
func QueryUser(question string) bool {
	surveyQuestion := &survey.Confirm{
		Message: question,
	}
	confirm := false
	survey.AskOne(surveyQuestion, &confirm)
	return confirm
}
