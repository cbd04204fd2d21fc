package preview

// Notes:
// - The Chrome-backed renderer is not exercised here; tests swap in a fake
//   pageRenderer and check what the printer hands it.

import (
	"context"
	"errors"
	"os"
	"testing"
)

type fakeRenderer struct {
	gotPath string
	gotHTML string
	gotSize PageSize
	err     error
	closed  bool
}

func (f *fakeRenderer) RenderFromFile(_ context.Context, path string, size PageSize) ([]byte, error) {
	f.gotPath, f.gotSize = path, size
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f.gotHTML = string(data)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.7"), nil
}

func (f *fakeRenderer) Close() error {
	f.closed = true
	return nil
}

func TestPDFPrinter_ToPDF(t *testing.T) {
	t.Parallel()

	fake := &fakeRenderer{}
	p := &PDFPrinter{renderer: fake}

	data, err := p.ToPDF(context.Background(), "<p>hi</p>", PageSize{Width: 960})
	if err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}
	if string(data) != "%PDF-1.7" {
		t.Errorf("ToPDF() = %q", data)
	}
	if fake.gotHTML != "<p>hi</p>" {
		t.Errorf("renderer saw %q", fake.gotHTML)
	}
	if fake.gotSize != (PageSize{Width: 960, Height: DefaultHeight}) {
		t.Errorf("size = %+v", fake.gotSize)
	}
	if _, err := os.Stat(fake.gotPath); !os.IsNotExist(err) {
		t.Errorf("temp file %s not removed", fake.gotPath)
	}
	if err := p.Close(); err != nil || !fake.closed {
		t.Errorf("Close() = %v, closed %v", err, fake.closed)
	}
}

func TestPDFPrinter_ToPDF_Error(t *testing.T) {
	t.Parallel()

	p := &PDFPrinter{renderer: &fakeRenderer{err: ErrPageLoad}}
	if _, err := p.ToPDF(context.Background(), "<p></p>", PageSize{}); !errors.Is(err, ErrPageLoad) {
		t.Errorf("ToPDF() error = %v, want ErrPageLoad", err)
	}
}

func TestRodRenderer_CloseWithoutBrowser(t *testing.T) {
	t.Parallel()

	if err := (&rodRenderer{}).Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}
