//go:build !ocr

package ocr

// NewEngine returns the command line engine. Build with -tags ocr to link
// libtesseract instead.
func NewEngine() Engine { return NewCLIEngine() }
