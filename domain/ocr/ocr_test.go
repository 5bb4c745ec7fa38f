package ocr

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/soocke/pagegrab-go/config"
	"github.com/soocke/pagegrab-go/domain/errs"
	"github.com/soocke/pagegrab-go/domain/progress"
)

type fakeEngine struct {
	langs []string
	texts map[int]string
	calls int
	fail  map[int]bool
	seen  []string
}

func (f *fakeEngine) Name() string                 { return "fake" }
func (f *fakeEngine) Version() (string, error)     { return "fake 1.0", nil }
func (f *fakeEngine) Languages() ([]string, error) { return f.langs, nil }
func (f *fakeEngine) Recognize(_ context.Context, img []byte, lang string) (Recognition, error) {
	f.calls++
	f.seen = append(f.seen, lang)
	if f.fail[f.calls] {
		return Recognition{}, errors.New("engine error")
	}
	if len(img) == 0 {
		return Recognition{}, errors.New("empty image")
	}
	return Recognition{Text: f.texts[f.calls], Confidence: float64(80 + f.calls), Words: 2}, nil
}

func writeImage(t *testing.T, path string) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 20, 10))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestParseTSV_RebuildsLinesAndParagraphs(t *testing.T) {
	tsv := strings.Join([]string{
		"level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext",
		"1\t1\t0\t0\t0\t0\t0\t0\t100\t100\t-1\t",
		"5\t1\t1\t1\t1\t1\t0\t0\t10\t10\t90\tHello",
		"5\t1\t1\t1\t1\t2\t0\t0\t10\t10\t80\tworld",
		"5\t1\t1\t1\t2\t1\t0\t0\t10\t10\t70\tsecond",
		"5\t1\t1\t2\t1\t1\t0\t0\t10\t10\t60\tnext",
		"5\t1\t1\t2\t1\t2\t0\t0\t10\t10\t-1\t ",
	}, "\n")
	rec := parseTSV([]byte(tsv))
	require.Equal(t, "Hello world\nsecond\n\nnext", rec.Text)
	require.Equal(t, 4, rec.Words)
	require.InDelta(t, 75.0, rec.Confidence, 0.001)
}

func TestParseTSV_Empty(t *testing.T) {
	rec := parseTSV(nil)
	require.Empty(t, rec.Text)
	require.Zero(t, rec.Confidence)
}

func TestParseLanguageList(t *testing.T) {
	out := "List of available languages in \"/usr/share/tessdata/\" (3):\neng\nosd\nslk\n"
	require.Equal(t, []string{"eng", "osd", "slk"}, parseLanguageList(out))
	require.Empty(t, parseLanguageList(""))
}

func TestResolveLanguage(t *testing.T) {
	avail := []string{"eng", "slk", "ces"}
	require.Equal(t, "slk", ResolveLanguage(avail, "slk"))
	require.Equal(t, "eng+slk", ResolveLanguage(avail, " ENG+slk "))
	require.Equal(t, DefaultLanguage, ResolveLanguage(avail, "deu"))
	require.Equal(t, DefaultLanguage, ResolveLanguage(avail, "eng+deu"))
	require.Equal(t, DefaultLanguage, ResolveLanguage(avail, ""))
}

func TestLanguages_FallsBackWithoutEngine(t *testing.T) {
	require.Equal(t, []string{DefaultLanguage}, Languages(nil))
	require.Equal(t, []string{DefaultLanguage}, Languages(&fakeEngine{}))
}

func TestPreprocess_DoublesAndBinarizes(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 30, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 30; x++ {
			c := color.RGBA{255, 255, 255, 255}
			if x >= 10 && x < 20 {
				c = color.RGBA{0, 0, 0, 255}
			}
			src.Set(x, y, c)
		}
	}
	out := Preprocess(src)
	require.Equal(t, image.Rect(0, 0, 60, 40), out.Bounds())
	for _, v := range out.Pix {
		require.True(t, v == 0 || v == 255, "pixel %d not binary", v)
	}
	require.Equal(t, uint8(255), out.GrayAt(2, 20).Y, "flat background stays white")
	require.Equal(t, uint8(0), out.GrayAt(21, 20).Y, "edge of dark bar is black")
}

func TestAdaptiveThreshold_UniformImageIsWhite(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 40, 40, 40, 0xff
	}
	out := adaptiveThreshold(src, 11, 2)
	require.Equal(t, image.Rect(0, 0, 8, 8), out.Bounds())
	for _, v := range out.Pix {
		require.Equal(t, uint8(255), v)
	}
}

func TestProcess_RecognizesSortedImagesAndSkipsFailures(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Scans")
	require.NoError(t, os.Mkdir(dir, 0o755))
	writeImage(t, filepath.Join(dir, "b.PNG"))
	writeImage(t, filepath.Join(dir, "a.png"))
	writeImage(t, filepath.Join(dir, "c.png"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	eng := &fakeEngine{langs: []string{"eng"}, texts: map[int]string{1: "first", 3: "third"}, fail: map[int]bool{2: true}}
	var statuses []string
	var last float64
	rep := progress.Reporter{OnStatus: func(s string) { statuses = append(statuses, s) }, OnProgress: func(p float64) { last = p }}

	batch, err := NewProcessor(eng, nil).Process(context.Background(), Options{Dir: dir, Language: "slk", Enhance: true}, rep)
	require.NoError(t, err)
	require.Len(t, batch.Pages, 3)
	require.Equal(t, "a.png", batch.Pages[0].File)
	require.Equal(t, "b.PNG", batch.Pages[1].File)
	require.Error(t, batch.Pages[1].Err)
	require.Len(t, batch.Recognized(), 2)
	require.InDelta(t, 82.0, batch.MeanConfidence(), 0.001)
	require.Equal(t, "eng", batch.Language)
	require.Equal(t, []string{"eng", "eng", "eng"}, eng.seen)
	require.Equal(t, "Recognizing a.png (1/3)", statuses[0])
	require.Equal(t, 100.0, last)
}

func TestProcess_NoImages(t *testing.T) {
	_, err := NewProcessor(&fakeEngine{}, nil).Process(context.Background(), Options{Dir: t.TempDir()}, progress.Reporter{})
	require.ErrorIs(t, err, errs.ErrNoInputFound)
}

func TestProcess_AllFail(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "a.png"))
	eng := &fakeEngine{fail: map[int]bool{1: true}}
	_, err := NewProcessor(eng, nil).Process(context.Background(), Options{Dir: dir}, progress.Reporter{})
	require.ErrorIs(t, err, errs.ErrNoUsableInput)
}

func TestProcess_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "a.png"))
	writeImage(t, filepath.Join(dir, "b.png"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewProcessor(&fakeEngine{}, nil).Process(ctx, Options{Dir: dir}, progress.Reporter{})
	require.ErrorIs(t, err, errs.ErrCancelled)
}

func TestProcess_NoEngine(t *testing.T) {
	_, err := NewProcessor(nil, nil).Process(context.Background(), Options{Dir: t.TempDir()}, progress.Reporter{})
	require.ErrorIs(t, err, ErrEngineUnavailable)
}

func sampleBatch(dir string) Batch {
	return Batch{
		Folder:   dir,
		Language: "eng",
		Started:  time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC),
		Pages: []PageText{
			{File: "page_01.png", Text: "alpha", Confidence: 91.5},
			{File: "page_02.png", Err: errors.New("boom")},
			{File: "page_03.png", Text: "gamma", Confidence: 80},
		},
	}
}

func TestOutputName(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	require.Equal(t, "OCR_Book_20240309_140507.txt", OutputName("/tmp/Book/", at, ".txt"))
}

func TestSave_Text(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Book")
	require.NoError(t, os.Mkdir(dir, 0o755))
	path, err := Save(sampleBatch(dir), config.OCRFormatText)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "OCR_Book_20240309_140507.txt"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(data)
	require.True(t, strings.HasPrefix(s, "OCR results - 2024-03-09 14:05:07\n"))
	require.Contains(t, s, "File: page_01.png\nConfidence: 91.5%")
	require.Contains(t, s, "gamma")
	require.NotContains(t, s, "page_02.png")
}

func TestSave_Separate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Book")
	require.NoError(t, os.Mkdir(dir, 0o755))
	out, err := Save(sampleBatch(dir), config.OCRFormatSeparate)
	require.NoError(t, err)
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	data, err := os.ReadFile(filepath.Join(out, "page_03.txt"))
	require.NoError(t, err)
	require.Contains(t, string(data), "Source file: page_03.png")
	require.True(t, strings.HasSuffix(string(data), "gamma"))
}

func TestSave_YAML(t *testing.T) {
	dir := t.TempDir()
	path, err := Save(sampleBatch(dir), config.OCRFormatYAML)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got yamlReport
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.Equal(t, "eng", got.Language)
	require.Len(t, got.Pages, 2)
	require.Equal(t, []string{"page_02.png"}, got.Failed)
	require.InDelta(t, 85.75, got.MeanConfidence, 0.001)
}

func TestSave_UnknownFormat(t *testing.T) {
	_, err := Save(sampleBatch(t.TempDir()), "docx")
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}
