package tools_test

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/example/doodle/internal/board"
	"github.com/example/doodle/internal/geom"
	"github.com/example/doodle/internal/item"
	"github.com/example/doodle/internal/style"
	"github.com/example/doodle/internal/tools"
)

func newBoard(t *testing.T, tool string) *board.Board {
	t.Helper()
	b := board.New(board.WithSize(200, 200))
	if err := b.SetActiveTool(tool); err != nil {
		t.Fatalf("SetActiveTool(%q): %v", tool, err)
	}
	return b
}

func click(b *board.Board, x, y float64) {
	b.PointerDown(x, y, tools.Event{})
	b.PointerUp(x, y, tools.Event{})
}

func drag(b *board.Board, x1, y1, x2, y2 float64) {
	b.PointerDown(x1, y1, tools.Event{})
	b.PointerMove((x1+x2)/2, (y1+y2)/2, tools.Event{})
	b.PointerMove(x2, y2, tools.Event{})
	b.PointerUp(x2, y2, tools.Event{})
}

func near(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestRegistry(t *testing.T) {
	if info, ok := tools.ForKey('u'); !ok || info.Name != "cubic" {
		t.Fatalf("u should select cubic, got %+v", info)
	}
	if _, ok := tools.Lookup("image"); ok {
		t.Fatalf("image needs a source and must not be in the registry")
	}
	all := tools.All()
	if len(all) != 12 {
		t.Fatalf("expected 12 registered tools, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Name >= all[i].Name {
			t.Fatalf("All is not sorted: %s before %s", all[i-1].Name, all[i].Name)
		}
	}
}

func TestShapeGeometry(t *testing.T) {
	tests := []struct {
		tool     string
		from, to geom.Point
		want     geom.Rect
		mode     item.Mode
		hit      []geom.Point
		miss     []geom.Point
	}{
		{
			tool: "circle", from: geom.Pt(100, 100), to: geom.Pt(130, 140),
			want: geom.Rect{X: 50, Y: 50, W: 100, H: 100}, mode: item.FillStroke,
			hit:  []geom.Point{geom.Pt(100, 100), geom.Pt(145, 100), geom.Pt(100, 52)},
			miss: []geom.Point{geom.Pt(160, 100), geom.Pt(52, 52)},
		},
		{
			tool: "ellipse", from: geom.Pt(100, 100), to: geom.Pt(140, 120),
			want: geom.Rect{X: 60, Y: 80, W: 80, H: 40}, mode: item.FillStroke,
			hit:  []geom.Point{geom.Pt(100, 100), geom.Pt(135, 100), geom.Pt(100, 118)},
			miss: []geom.Point{geom.Pt(100, 126), geom.Pt(60, 80), geom.Pt(146, 100)},
		},
		{
			tool: "line", from: geom.Pt(20, 50), to: geom.Pt(120, 50),
			want: geom.Rect{X: 20, Y: 50, W: 100, H: 0}, mode: item.Stroke,
			hit:  []geom.Point{geom.Pt(70, 51), geom.Pt(20, 50)},
			miss: []geom.Point{geom.Pt(70, 60), geom.Pt(130, 50)},
		},
	}
	for _, tt := range tests {
		b := newBoard(t, tt.tool)
		drag(b, tt.from.X, tt.from.Y, tt.to.X, tt.to.Y)
		items := b.Items()
		if len(items) != 1 {
			t.Fatalf("%s: expected one item, got %d", tt.tool, len(items))
		}
		it := items[0]
		if it.Rect != tt.want {
			t.Fatalf("%s: rect = %+v, want %+v", tt.tool, it.Rect, tt.want)
		}
		if it.Mode != tt.mode {
			t.Fatalf("%s: mode = %v, want %v", tt.tool, it.Mode, tt.mode)
		}
		for _, p := range tt.hit {
			if !it.HitTest(p) {
				t.Fatalf("%s: %v should hit", tt.tool, p)
			}
		}
		for _, p := range tt.miss {
			if it.HitTest(p) {
				t.Fatalf("%s: %v should miss", tt.tool, p)
			}
		}
	}
}

func TestRegularVertices(t *testing.T) {
	o := geom.Pt(0, 0)
	tests := []struct {
		name  string
		p     geom.Point
		n     int
		first geom.Point
	}{
		{"pointer right", geom.Pt(10, 0), 4, geom.Pt(0, -10)},
		{"pointer above", geom.Pt(0, -10), 4, geom.Pt(-10, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := tools.RegularVertices(o, tt.p, tt.n)
			if len(pts) != tt.n {
				t.Fatalf("got %d vertices", len(pts))
			}
			if !near(pts[tt.n-1], tt.p) {
				t.Fatalf("last vertex %v should sit on the pointer %v", pts[tt.n-1], tt.p)
			}
			if !near(pts[0], tt.first) {
				t.Fatalf("first vertex %v, want %v", pts[0], tt.first)
			}
			for _, pt := range pts {
				if math.Abs(o.Dist(pt)-10) > 1e-9 {
					t.Fatalf("vertex %v not on the circumcircle", pt)
				}
			}
		})
	}
	if tools.RegularVertices(o, o, 5) != nil {
		t.Fatalf("zero radius should give no vertices")
	}
}

func TestPolygonUsesSides(t *testing.T) {
	b := newBoard(t, "polygon")
	if err := b.SetPolygonSides(6); err != nil {
		t.Fatalf("SetPolygonSides: %v", err)
	}
	drag(b, 100, 100, 150, 100)
	items := b.Items()
	if len(items) != 1 {
		t.Fatalf("expected one polygon, got %d", len(items))
	}
	if got := items[0].Path.Len(); got != 7 {
		t.Fatalf("hexagon path should have 6 points and a close, got %d segments", got)
	}
	if items[0].Mode != item.FillStroke {
		t.Fatalf("polygon mode = %v", items[0].Mode)
	}
}

func TestQuadraticDragMode(t *testing.T) {
	b := newBoard(t, "quadratic")
	c := b.ActiveTool().(*tools.Curve)
	drag(b, 10, 10, 100, 10)
	if c.State() != tools.AwaitingControl1 {
		t.Fatalf("state after anchor drag = %v", c.State())
	}
	b.PointerMove(50, 80, tools.Event{})
	click(b, 50, 80)
	if c.State() != tools.AwaitingAnchor {
		t.Fatalf("state after commit = %v", c.State())
	}
	items := b.Items()
	if len(items) != 1 || items[0].Mode != item.Stroke {
		t.Fatalf("expected one stroked curve, got %+v", items)
	}
	r := items[0].Rect
	if r.X != 10 || r.W != 90 || r.Y != 10 || r.H <= 0 || r.H > 35 {
		t.Fatalf("curve rect = %+v", r)
	}
}

func TestQuadraticClickMode(t *testing.T) {
	b := newBoard(t, "quadratic")
	c := b.ActiveTool().(*tools.Curve)
	click(b, 10, 10)
	if c.State() != tools.AwaitingEnd {
		t.Fatalf("click without movement should await the end point, got %v", c.State())
	}
	click(b, 100, 10)
	if c.State() != tools.AwaitingControl1 {
		t.Fatalf("state = %v", c.State())
	}
	click(b, 50, 60)
	if len(b.Items()) != 1 {
		t.Fatalf("expected a committed curve")
	}
}

func TestCubicNeedsTwoControls(t *testing.T) {
	b := newBoard(t, "cubic")
	c := b.ActiveTool().(*tools.Curve)
	drag(b, 10, 100, 190, 100)
	click(b, 50, 10)
	if c.State() != tools.AwaitingControl2 {
		t.Fatalf("state = %v", c.State())
	}
	if len(b.Items()) != 0 {
		t.Fatalf("cubic committed too early")
	}
	click(b, 150, 190)
	if len(b.Items()) != 1 || c.State() != tools.AwaitingAnchor {
		t.Fatalf("cubic not committed, state %v", c.State())
	}
}

func TestCurveSwitchDiscards(t *testing.T) {
	b := newBoard(t, "cubic")
	drag(b, 10, 100, 190, 100)
	click(b, 50, 10)
	b.SetActiveTool("line")
	if b.History().Len() != 1 {
		t.Fatalf("switching tools should drop a partial curve")
	}
}

func TestIrregularPolygon(t *testing.T) {
	b := newBoard(t, "irregular")
	tool := b.ActiveTool().(*tools.Irregular)

	click(b, 10, 10)
	click(b, 15, 15)
	if len(tool.Vertices()) != 1 {
		t.Fatalf("a near click with one vertex should be ignored, have %d", len(tool.Vertices()))
	}
	click(b, 100, 10)
	click(b, 100, 100)
	if len(tool.Vertices()) != 3 {
		t.Fatalf("clicks outside the threshold should append, have %d", len(tool.Vertices()))
	}
	click(b, 10+tools.CloseThreshold, 10)
	if len(tool.Vertices()) != 4 {
		t.Fatalf("a click at the threshold distance should append")
	}
	click(b, 12, 12)
	items := b.Items()
	if len(items) != 1 {
		t.Fatalf("near click should close the polygon")
	}
	if len(tool.Vertices()) != 0 {
		t.Fatalf("vertices not reset after commit")
	}
	if items[0].Rect != (geom.Rect{X: 10, Y: 10, W: 90, H: 90}) {
		t.Fatalf("rect = %+v", items[0].Rect)
	}
}

func TestTextCommitsOutline(t *testing.T) {
	b := newBoard(t, "text")
	txt := b.ActiveTool().(*tools.Text)
	b.PointerDown(20, 100, tools.Event{})
	if !txt.Editing() {
		t.Fatalf("press should open an entry")
	}
	for _, r := range "Hix" {
		txt.Insert(r)
	}
	txt.Backspace()
	if s, anchor, _ := txt.Entry(); s != "Hi" || anchor != geom.Pt(20, 100) {
		t.Fatalf("entry = %q at %v", s, anchor)
	}
	b.PointerDown(150, 150, tools.Event{})
	if txt.Editing() {
		t.Fatalf("press while editing should blur, not reopen")
	}
	items := b.Items()
	if len(items) != 1 || items[0].Mode != item.Fill {
		t.Fatalf("expected one filled text item, got %+v", items)
	}
	r := items[0].Rect
	if r.X < 20 || r.Y+r.H > 101 || r.Y > 100 {
		t.Fatalf("text should sit on the baseline at the anchor, rect %+v", r)
	}
}

func TestTextUsesStyleAtBlur(t *testing.T) {
	b := newBoard(t, "text")
	txt := b.ActiveTool().(*tools.Text)
	b.PointerDown(20, 100, tools.Event{})
	txt.Insert('A')
	blue := color.RGBA{0, 0, 255, 255}
	font := style.Font{Size: 40, Family: "sans"}
	if err := b.SetStyle(style.Partial{FillColor: &blue, Font: &font}); err != nil {
		t.Fatalf("SetStyle: %v", err)
	}
	txt.Blur()
	items := b.Items()
	if len(items) != 1 {
		t.Fatalf("expected one text item, got %d", len(items))
	}
	if st := items[0].Style; st.FillColor != blue || st.Font.Size != 40 {
		t.Fatalf("text committed with the style from when the entry opened: %+v", st)
	}
}

func TestTextBlankDiscarded(t *testing.T) {
	b := newBoard(t, "text")
	txt := b.ActiveTool().(*tools.Text)
	b.PointerDown(20, 100, tools.Event{})
	txt.Insert(' ')
	txt.Blur()
	b.PointerDown(20, 100, tools.Event{})
	txt.Insert('a')
	txt.Cancel()
	if b.History().Len() != 1 {
		t.Fatalf("blank or cancelled text must not write")
	}
}

func TestTextSwitchCommits(t *testing.T) {
	b := newBoard(t, "text")
	txt := b.ActiveTool().(*tools.Text)
	b.PointerDown(20, 100, tools.Event{})
	txt.Insert('W')
	b.SetActiveTool("rect")
	if len(b.Items()) != 1 {
		t.Fatalf("switching tools should commit pending text")
	}
}

func TestEraser(t *testing.T) {
	b := board.New(board.WithSize(100, 100))
	b.SetActiveTool("rect")
	drag(b, 10, 10, 90, 90)
	b.SetActiveTool("eraser")
	if b.Real().StyleState().Composite != style.DestinationOut {
		t.Fatalf("eraser should switch the real surface to destination-out")
	}
	drag(b, 20, 50, 80, 50)
	if a := b.Image().RGBAAt(50, 50).A; a != 0 {
		t.Fatalf("eraser left alpha %d", a)
	}
	items := b.Items()
	if len(items) != 2 || items[1].Style.Composite != style.DestinationOut {
		t.Fatalf("eraser stroke should be a destination-out item: %+v", items)
	}
	b.SetActiveTool("line")
	if b.Real().StyleState().Composite != style.SourceOver {
		t.Fatalf("composite not restored after the eraser")
	}

	b.Resize(200, 200)
	if a := b.Image().RGBAAt(100, 100).A; a != 0 {
		t.Fatalf("erasure lost on resize, alpha %d", a)
	}
	if a := b.Image().RGBAAt(100, 40).A; a == 0 {
		t.Fatalf("rectangle lost on resize")
	}
}

func TestFreehandLeaveCommits(t *testing.T) {
	b := newBoard(t, "freehand")
	b.PointerDown(10, 10, tools.Event{})
	b.PointerMove(50, 50, tools.Event{})
	b.PointerLeave(80, 80, tools.Event{})
	b.PointerMove(120, 120, tools.Event{})
	b.PointerUp(120, 120, tools.Event{})
	items := b.Items()
	if len(items) != 1 {
		t.Fatalf("expected one stroke, got %d", len(items))
	}
	if items[0].Rect != (geom.Rect{X: 10, Y: 10, W: 70, H: 70}) {
		t.Fatalf("stroke rect = %+v", items[0].Rect)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name   string
		iw, ih int
		want   geom.Rect
	}{
		{"downscaled", 400, 200, geom.Rect{X: 0, Y: 50, W: 200, H: 100}},
		{"never upscaled", 20, 10, geom.Rect{X: 90, Y: 95, W: 20, H: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, tt.iw, tt.ih))
			patch, r := tools.Fit(img, 200, 200)
			if r != tt.want {
				t.Fatalf("rect = %+v, want %+v", r, tt.want)
			}
			if patch.Bounds().Dx() != int(tt.want.W) || patch.Bounds().Dy() != int(tt.want.H) {
				t.Fatalf("patch size %v", patch.Bounds())
			}
		})
	}
}
