package termui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func testUI() (*UI, *bytes.Buffer) {
	color.NoColor = true
	var out bytes.Buffer
	return &UI{Out: &out, Err: &out}, &out
}

func TestConfirm(t *testing.T) {
	ui, _ := testUI()
	p := NewPrompter(ui, strings.NewReader("\nyes\nn\n"))
	for i, want := range []bool{true, true, false} {
		got, err := p.Confirm("Continue?", true)
		if err != nil {
			t.Fatalf("confirm %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("confirm %d: got %v want %v", i, got, want)
		}
	}
}

func TestPromptInt_RetriesOutOfRange(t *testing.T) {
	ui, out := testUI()
	p := NewPrompter(ui, strings.NewReader("abc\n0\n7\n"))
	n, err := p.PromptInt("Pages", 10, 1, 999)
	if err != nil {
		t.Fatal(err)
	}
	if n != 7 {
		t.Fatalf("got %d", n)
	}
	if strings.Count(out.String(), "between 1 and 999") != 2 {
		t.Fatalf("expected two retry messages, got %q", out.String())
	}
}

func TestPromptInt_DefaultOnEmpty(t *testing.T) {
	ui, _ := testUI()
	p := NewPrompter(ui, strings.NewReader("\n"))
	n, err := p.PromptInt("Pages", 10, 1, 999)
	if err != nil || n != 10 {
		t.Fatalf("got %d %v", n, err)
	}
}

func TestPromptChoice(t *testing.T) {
	ui, out := testUI()
	p := NewPrompter(ui, strings.NewReader("5\n2\n"))
	idx, err := p.PromptChoice("Pick", []string{"a", "b", "c"})
	if err != nil || idx != 1 {
		t.Fatalf("got %d %v", idx, err)
	}
	if !strings.Contains(out.String(), "  3. c") {
		t.Fatalf("choices not listed: %q", out.String())
	}
}

func TestPrompt_EOFWithoutNewline(t *testing.T) {
	ui, _ := testUI()
	p := NewPrompter(ui, strings.NewReader("last"))
	got, err := p.Prompt("x")
	if err != nil || got != "last" {
		t.Fatalf("got %q %v", got, err)
	}
	if _, err := p.Prompt("x"); err == nil {
		t.Fatal("expected EOF")
	}
}

func TestPromptDir(t *testing.T) {
	ui, _ := testUI()
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	p := NewPrompter(ui, strings.NewReader("\n"+file+"\n"+dir+"\n"))
	got, err := p.PromptDir("Folder")
	if err != nil || got != dir {
		t.Fatalf("got %q %v", got, err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/Desktop"); got != filepath.Join(home, "Desktop") {
		t.Fatalf("got %q", got)
	}
	if got := ExpandHome("/abs"); got != "/abs" {
		t.Fatalf("got %q", got)
	}
}

func TestTable(t *testing.T) {
	ui, out := testUI()
	ui.Table([]string{"Folder", "Images"}, [][]string{{"Book", "12"}})
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[1], "------") || !strings.Contains(lines[2], "Book") {
		t.Fatalf("unexpected table %q", out.String())
	}
}

func TestStatusLines(t *testing.T) {
	ui, out := testUI()
	ui.Success("done %d", 3)
	ui.Error("bad")
	if out.String() != "✓ done 3\n✗ bad\n" {
		t.Fatalf("got %q", out.String())
	}
}
