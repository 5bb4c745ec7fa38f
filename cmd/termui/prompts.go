package termui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Prompter reads answers from a terminal. Reads share one buffered reader so
// piped input is not lost between prompts.
type Prompter struct {
	ui *UI
	in *bufio.Reader
}

func NewPrompter(ui *UI, in io.Reader) *Prompter {
	return &Prompter{ui: ui, in: bufio.NewReader(in)}
}

// Prompt asks for a line of input.
func (p *Prompter) Prompt(message string) (string, error) {
	fmt.Fprintf(p.ui.Out, "%s: ", message)
	input, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// PromptWithDefault returns defaultValue for an empty answer.
func (p *Prompter) PromptWithDefault(message, defaultValue string) (string, error) {
	input, err := p.Prompt(fmt.Sprintf("%s [%s]", message, defaultValue))
	if err != nil {
		return "", err
	}
	if input == "" {
		return defaultValue, nil
	}
	return input, nil
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(message string, defaultValue bool) (bool, error) {
	hint := "y/N"
	if defaultValue {
		hint = "Y/n"
	}
	input, err := p.Prompt(fmt.Sprintf("%s [%s]", message, hint))
	if err != nil {
		return false, err
	}
	switch strings.ToLower(input) {
	case "":
		return defaultValue, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// PromptInt asks until a number within [lo, hi] is entered. An empty answer
// yields def.
func (p *Prompter) PromptInt(message string, def, lo, hi int) (int, error) {
	for {
		input, err := p.PromptWithDefault(message, strconv.Itoa(def))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(input)
		if err == nil && n >= lo && n <= hi {
			return n, nil
		}
		p.ui.Error("Enter a number between %d and %d.", lo, hi)
	}
}

// PromptChoice lists choices and returns the 0-based selection.
func (p *Prompter) PromptChoice(message string, choices []string) (int, error) {
	fmt.Fprintf(p.ui.Out, "%s\n", message)
	for i, c := range choices {
		fmt.Fprintf(p.ui.Out, "  %d. %s\n", i+1, c)
	}
	for {
		input, err := p.Prompt("Enter your choice")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(input)
		if err == nil && n >= 1 && n <= len(choices) {
			return n - 1, nil
		}
		p.ui.Error("Choice must be between 1 and %d.", len(choices))
	}
}

// PromptDir asks for an existing directory, expanding a leading ~.
func (p *Prompter) PromptDir(message string) (string, error) {
	for {
		path, err := p.Prompt(message)
		if err != nil {
			return "", err
		}
		if path == "" {
			p.ui.Error("This field is required.")
			continue
		}
		path = ExpandHome(path)
		if st, err := os.Stat(path); err != nil || !st.IsDir() {
			p.ui.Error("Folder not found: %s", path)
			continue
		}
		return path, nil
	}
}

// ExpandHome replaces a leading ~ with the home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
