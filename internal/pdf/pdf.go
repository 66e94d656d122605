// Package pdf extracts plain text from PDF documents page by page.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/agentstation/eventmaster/pkg/errors"
)

// TextReader converts a PDF into text.
type TextReader interface {
	Text(ctx context.Context, r io.ReaderAt, size int64) (string, error)
}

// Reader is the default TextReader.
type Reader struct{}

// NewReader creates a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Text returns the text of every page, each introduced by a
// "--- PAGE n ---" line.
func (Reader) Text(ctx context.Context, r io.ReaderAt, size int64) (text string, err error) {
	// the parser panics on some malformed streams
	defer func() {
		if p := recover(); p != nil {
			text, err = "", errors.NewParseError("pdf", "", fmt.Sprintf("malformed document: %v", p), nil)
		}
	}()

	doc, err := pdf.NewReader(r, size)
	if err != nil {
		return "", errors.WrapParse("pdf", "", err)
	}
	return frame(ctx, pages{doc})
}

// Bytes reads a PDF held in memory.
func Bytes(ctx context.Context, tr TextReader, data []byte) (string, error) {
	return tr.Text(ctx, bytes.NewReader(data), int64(len(data)))
}

// File reads the PDF at path.
func File(ctx context.Context, tr TextReader, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", errors.WrapIO("read", path, err)
	}
	return tr.Text(ctx, f, info.Size())
}

// pageSource is a document with numbered pages starting at 1.
type pageSource interface {
	NumPage() int
	PageText(n int) (string, error)
}

// pages adapts a parsed document.
type pages struct {
	doc *pdf.Reader
}

func (p pages) NumPage() int {
	return p.doc.NumPage()
}

func (p pages) PageText(n int) (string, error) {
	page := p.doc.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

func frame(ctx context.Context, src pageSource) (string, error) {
	var b strings.Builder
	for n := 1; n <= src.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := src.PageText(n)
		if err != nil {
			return "", errors.NewParseError("pdf", "", fmt.Sprintf("page %d", n), err)
		}
		fmt.Fprintf(&b, "--- PAGE %d ---\n%s\n", n, text)
	}
	return b.String(), nil
}
