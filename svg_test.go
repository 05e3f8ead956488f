package stringart

import (
	"bytes"
	"encoding/xml"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

type svgLine struct {
	X1 float64 `xml:"x1,attr"`
	Y1 float64 `xml:"y1,attr"`
	X2 float64 `xml:"x2,attr"`
	Y2 float64 `xml:"y2,attr"`
}

type svgGroup struct {
	Style string    `xml:"style,attr"`
	Lines []svgLine `xml:"line"`
}

type svgDoc struct {
	XMLName xml.Name   `xml:"svg"`
	Title   string     `xml:"title"`
	Desc    string     `xml:"desc"`
	Groups  []svgGroup `xml:"g"`
}

func testResult() *Result {
	return &Result{
		Width:  10,
		Height: 10,
		Pins:   []Point{Pt(0, 0), Pt(10, 5), Pt(3, 7.5)},
		Paths: []Path{
			{Color: Black, Pins: []int{0, 1, 2}},
			{Color: testRed, Pins: []int{1}},
		},
	}
}

func decodeSVG(t *testing.T, b []byte) svgDoc {
	t.Helper()
	var doc svgDoc
	if err := xml.Unmarshal(b, &doc); err != nil {
		t.Fatalf("output is not valid XML: %v\n%s", err, b)
	}
	return doc
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultSVGOptions()
	opts.Title = "portrait"
	if err := WriteSVG(&buf, testResult(), opts); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	doc := decodeSVG(t, buf.Bytes())

	if doc.Title != "portrait" {
		t.Errorf("title = %q, want portrait", doc.Title)
	}
	// The single-pin red path is skipped.
	if len(doc.Groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(doc.Groups))
	}
	g := doc.Groups[0]
	if !bytes.Contains([]byte(g.Style), []byte("stroke:#000000")) {
		t.Errorf("group style = %q, want black stroke", g.Style)
	}

	// y is flipped: pin-space (0,0) is the bottom-left corner.
	want := []svgLine{
		{X1: 0, Y1: 10, X2: 10, Y2: 5},
		{X1: 10, Y1: 5, X2: 3, Y2: 2.5},
	}
	if len(g.Lines) != len(want) {
		t.Fatalf("lines = %d, want %d", len(g.Lines), len(want))
	}
	for i, l := range g.Lines {
		w := want[i]
		if !near(l.X1, w.X1) || !near(l.Y1, w.Y1) || !near(l.X2, w.X2) || !near(l.Y2, w.Y2) {
			t.Errorf("line %d = %+v, want %+v", i, l, w)
		}
	}
}

func TestWriteSVG_EmptyResult(t *testing.T) {
	var buf bytes.Buffer
	r := &Result{Width: 4, Height: 4, Paths: []Path{{Color: Black, Pins: []int{0}}}}
	if err := WriteSVG(&buf, r, DefaultSVGOptions()); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	if doc := decodeSVG(t, buf.Bytes()); len(doc.Groups) != 0 {
		t.Errorf("groups = %d, want 0", len(doc.Groups))
	}
}

var errDiskFull = errors.New("disk full")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestWriteSVG_WriteError(t *testing.T) {
	err := WriteSVG(failingWriter{}, testResult(), DefaultSVGOptions())
	if !errors.Is(err, errDiskFull) {
		t.Errorf("WriteSVG error = %v, want %v", err, errDiskFull)
	}
}

func TestSaveSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	if err := SaveSVG(path, testResult(), DefaultSVGOptions()); err != nil {
		t.Fatalf("SaveSVG: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if doc := decodeSVG(t, b); len(doc.Groups) != 1 {
		t.Errorf("groups = %d, want 1", len(doc.Groups))
	}

	if err := SaveSVG(filepath.Join(t.TempDir(), "no", "out.svg"), testResult(), DefaultSVGOptions()); err == nil {
		t.Error("SaveSVG into a missing directory should fail")
	}
}
