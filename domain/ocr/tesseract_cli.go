package ocr

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// CLIEngine drives the tesseract command line tool.
type CLIEngine struct {
	Binary string
	PSM    int
}

func NewCLIEngine() *CLIEngine { return &CLIEngine{Binary: "tesseract", PSM: 6} }

func (e *CLIEngine) Name() string { return "tesseract-cli" }

func (e *CLIEngine) bin() (string, error) {
	b := e.Binary
	if b == "" {
		b = "tesseract"
	}
	path, err := exec.LookPath(b)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	return path, nil
}

// Version returns the first line of tesseract --version.
func (e *CLIEngine) Version() (string, error) {
	bin, err := e.bin()
	if err != nil {
		return "", err
	}
	out, err := exec.Command(bin, "--version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line), nil
}

// Languages parses tesseract --list-langs, skipping the header line.
func (e *CLIEngine) Languages() ([]string, error) {
	bin, err := e.bin()
	if err != nil {
		return nil, err
	}
	out, err := exec.Command(bin, "--list-langs").CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	return parseLanguageList(string(out)), nil
}

func parseLanguageList(out string) []string {
	var langs []string
	for i, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if i == 0 && strings.HasPrefix(strings.ToLower(line), "list of") {
			continue
		}
		if line != "" {
			langs = append(langs, line)
		}
	}
	return langs
}

// Recognize feeds the image on stdin and reads TSV output, which carries both
// the words and their confidences.
func (e *CLIEngine) Recognize(ctx context.Context, image []byte, lang string) (Recognition, error) {
	bin, err := e.bin()
	if err != nil {
		return Recognition{}, err
	}
	if lang == "" {
		lang = DefaultLanguage
	}
	psm := e.PSM
	if psm <= 0 {
		psm = 6
	}
	cmd := exec.CommandContext(ctx, bin, "stdin", "stdout", "-l", lang, "--oem", "3", "--psm", strconv.Itoa(psm), "tsv")
	cmd.Stdin = bytes.NewReader(image)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return Recognition{}, fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return parseTSV(out), nil
}

// parseTSV rebuilds text from word rows (level 5), one line per
// block/paragraph/line key and a blank line between paragraphs.
func parseTSV(out []byte) Recognition {
	var (
		b        strings.Builder
		confs    []float64
		lastLine string
		lastPar  string
		header   = true
	)
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		if header {
			header = false
			continue
		}
		cols := strings.Split(sc.Text(), "\t")
		if len(cols) < 12 || cols[0] != "5" {
			continue
		}
		word := strings.TrimSpace(cols[11])
		if word == "" {
			continue
		}
		par := cols[1] + "." + cols[2] + "." + cols[3]
		line := par + "." + cols[4]
		switch {
		case b.Len() == 0:
		case par != lastPar:
			b.WriteString("\n\n")
		case line != lastLine:
			b.WriteString("\n")
		default:
			b.WriteString(" ")
		}
		b.WriteString(word)
		lastPar, lastLine = par, line
		if c, err := strconv.ParseFloat(cols[10], 64); err == nil {
			confs = append(confs, c)
		}
	}
	mean, _ := meanConfidence(confs)
	return Recognition{Text: b.String(), Confidence: mean, Words: len(confs)}
}
