package sysfont

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/sysfont/markup"
	"github.com/gogpu/sysfont/text"
)

const pangram = "The quick brown fox jumps over the lazy dog"

// testBound is a max width and height no test label reaches.
const testBound = 2048

func newTestRenderer(t *testing.T, pub Publisher, opts ...Option) *Renderer {
	t.Helper()
	lib := text.NewLibrary()
	t.Cleanup(func() {
		_ = lib.Close()
	})
	opts = append([]Option{WithFontLibrary(lib), WithShaper(&text.BuiltinShaper{})}, opts...)
	return NewRenderer(pub, opts...)
}

func checkSizes(t *testing.T, q *Request) {
	t.Helper()
	tw, th := q.TextWidth(), q.TextHeight()
	xw, xh := q.TextureWidth(), q.TextureHeight()
	if tw < 1 || th < 1 {
		t.Errorf("text size %dx%d below 1", tw, th)
	}
	if xw < tw || xh < th {
		t.Errorf("texture %dx%d smaller than text %dx%d", xw, xh, tw, th)
	}
	if xw != NextPowerOfTwo(tw) || xh != NextPowerOfTwo(th) {
		t.Errorf("texture %dx%d is not the power-of-two padding of %dx%d", xw, xh, tw, th)
	}
}

func TestRequestParsesMarkup(t *testing.T) {
	r := newTestRenderer(t, NewMemoryPublisher())
	q := r.NewRequest("[FF0000]Hi[00FF00]!", Style{FontSize: 16}, testBound, testBound, 1)

	if q.Text() != "Hi!" {
		t.Errorf("Text() = %q, want %q", q.Text(), "Hi!")
	}
	want := []markup.Segment{
		{Color: markup.White, Start: 0, End: 0},
		{Color: markup.RGB(0xFF, 0, 0), Start: 0, End: 2},
		{Color: markup.RGB(0, 0xFF, 0), Start: 2, End: 3},
	}
	got := q.Segments()
	if len(got) != len(want) {
		t.Fatalf("Segments() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Segments()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	got[0].Color = 0
	if q.Segments()[0].Color != markup.White {
		t.Error("Segments() exposes internal state")
	}
	if q.Texture() != 1 || q.Style().FontSize != 16 {
		t.Errorf("Texture() = %d, Style() = %+v", q.Texture(), q.Style())
	}
}

func TestRequestWidthClamp(t *testing.T) {
	r := newTestRenderer(t, NewMemoryPublisher())
	style := Style{FontName: "sans", FontSize: 24}

	natural := r.NewRequest(pangram, style, testBound, testBound, 1)
	if natural.TextWidth() <= 300 {
		t.Fatalf("pangram measures %d px, need > 300 for this test", natural.TextWidth())
	}

	q := r.NewRequest(pangram, style, 300, 1000, 1)
	if q.TextWidth() != 300 {
		t.Errorf("TextWidth() = %d, want 300", q.TextWidth())
	}
	if q.TextureWidth() != 512 {
		t.Errorf("TextureWidth() = %d, want 512", q.TextureWidth())
	}
	if len(q.Layout().Lines) < 2 {
		t.Errorf("clamped text should wrap, got %d lines", len(q.Layout().Lines))
	}
	if q.TextHeight() <= natural.TextHeight() {
		t.Errorf("wrapped height %d not above single line height %d", q.TextHeight(), natural.TextHeight())
	}
	checkSizes(t, q)
}

func TestRequestHeightClamp(t *testing.T) {
	r := newTestRenderer(t, NewMemoryPublisher())
	q := r.NewRequest("one\ntwo\nthree\nfour", Style{FontSize: 20}, testBound, 30, 1)
	if q.TextHeight() != 30 {
		t.Errorf("TextHeight() = %d, want 30", q.TextHeight())
	}
	if q.TextureHeight() != 32 {
		t.Errorf("TextureHeight() = %d, want 32", q.TextureHeight())
	}
}

func TestRequestClampProperties(t *testing.T) {
	r := newTestRenderer(t, NewMemoryPublisher())
	texts := []string{"", "a", "W", pangram, "line one\nline two is longer", "[FF00FF]tag only[00FFFF]", "   "}
	bounds := []int{1, 2, 7, 50, 300, 4096}

	for _, s := range texts {
		for _, mw := range bounds {
			for _, mh := range bounds {
				q := r.NewRequest(s, Style{FontSize: 18}, mw, mh, 1)
				if q.TextWidth() < 1 || q.TextWidth() > mw {
					t.Errorf("%q max %d: TextWidth() = %d", s, mw, q.TextWidth())
				}
				if q.TextHeight() < 1 || q.TextHeight() > mh {
					t.Errorf("%q max %d: TextHeight() = %d", s, mh, q.TextHeight())
				}
				checkSizes(t, q)
			}
		}
	}
}

func TestRequestEmptyText(t *testing.T) {
	r := newTestRenderer(t, NewMemoryPublisher())
	q := r.NewRequest("", Style{FontSize: 16}, 256, 256, 1)
	if q.TextWidth() != 1 || q.TextureWidth() != 1 {
		t.Errorf("empty text width = %d, texture %d; want 1, 1", q.TextWidth(), q.TextureWidth())
	}
	checkSizes(t, q)

	q = r.NewRequest("[FF0000]", Style{FontSize: 16}, 256, 256, 1)
	if q.Text() != "" || q.TextWidth() != 1 {
		t.Errorf("tag-only text = %q width %d", q.Text(), q.TextWidth())
	}
}

func TestRequestDefaultFontSize(t *testing.T) {
	r := newTestRenderer(t, NewMemoryPublisher())
	def := r.NewRequest(pangram, Style{}, testBound, testBound, 1)
	explicit := r.NewRequest(pangram, Style{FontSize: DefaultFontSize}, testBound, testBound, 1)
	if def.TextWidth() != explicit.TextWidth() || def.TextHeight() != explicit.TextHeight() {
		t.Errorf("size 0 gives %dx%d, size %d gives %dx%d", def.TextWidth(), def.TextHeight(),
			DefaultFontSize, explicit.TextWidth(), explicit.TextHeight())
	}

	r = newTestRenderer(t, NewMemoryPublisher(), WithDefaultFontSize(24))
	big := r.NewRequest(pangram, Style{FontSize: -3}, testBound, testBound, 1)
	if big.TextWidth() <= def.TextWidth() {
		t.Errorf("WithDefaultFontSize(24) width %d not above 12px width %d", big.TextWidth(), def.TextWidth())
	}
}

func TestRequestUnknownFontFallsBack(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := newTestRenderer(t, NewMemoryPublisher(), WithLogger(logger))

	q := r.NewRequest("fallback", Style{FontName: "No Such Family", FontSize: 16}, testBound, testBound, 1)
	def := r.NewRequest("fallback", Style{FontSize: 16}, testBound, testBound, 1)
	if q.TextWidth() != def.TextWidth() {
		t.Errorf("unknown family width %d, default family width %d", q.TextWidth(), def.TextWidth())
	}
	if !strings.Contains(buf.String(), "No Such Family") {
		t.Errorf("fallback not logged: %s", buf.String())
	}
	if err := q.Render(); err != nil {
		t.Errorf("Render() with fallback font = %v", err)
	}
}

func TestRequestBlankFontNameNotLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := newTestRenderer(t, NewMemoryPublisher(), WithLogger(logger))

	for _, name := range []string{"", "   ", "\t\n"} {
		r.NewRequest("default", Style{FontName: name, FontSize: 16}, testBound, testBound, 1)
	}
	if strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("blank family names logged a fallback warning:\n%s", buf.String())
	}
}

func TestRequestNonPositiveBounds(t *testing.T) {
	r := newTestRenderer(t, NewMemoryPublisher())

	tests := []struct {
		name       string
		maxW, maxH int
		wantW      int
		wantH      int
	}{
		{"zero", 0, 0, 1, 1},
		{"negative", -5, -1, 1, 1},
		{"zero width", 0, testBound, 1, 0},
		{"zero height", testBound, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := r.NewRequest(pangram, Style{FontSize: 24}, tt.maxW, tt.maxH, 1)
			if tt.wantW > 0 && q.TextWidth() != tt.wantW {
				t.Errorf("TextWidth() = %d, want %d", q.TextWidth(), tt.wantW)
			}
			if tt.wantH > 0 && q.TextHeight() != tt.wantH {
				t.Errorf("TextHeight() = %d, want %d", q.TextHeight(), tt.wantH)
			}
			if q.TextureWidth() > testBound || q.TextureHeight() > testBound {
				t.Errorf("texture %dx%d grew past the bounds", q.TextureWidth(), q.TextureHeight())
			}
			checkSizes(t, q)
			if err := q.Render(); err != nil {
				t.Errorf("Render() = %v", err)
			}
		})
	}
}

func TestRequestRTLStartAlignment(t *testing.T) {
	r := newTestRenderer(t, NewMemoryPublisher())
	q := r.NewRequest("שלום עולם רב\nש", Style{FontSize: 16, Alignment: AlignStart}, testBound, testBound, 1)

	lines := q.Layout().Lines
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[1].X <= 0 {
		t.Errorf("short RTL line X = %v, want it pushed to the right", lines[1].X)
	}
	if right := lines[1].X + lines[1].Width; right > float64(q.TextWidth())+0.5 {
		t.Errorf("short RTL line ends at %v, beyond text width %d", right, q.TextWidth())
	}
}

func TestRender(t *testing.T) {
	pub := NewMemoryPublisher()
	r := newTestRenderer(t, pub)
	q := r.NewRequest("[FF0000]Hello", Style{FontSize: 20}, testBound, testBound, 42)

	if q.IsReady() {
		t.Fatal("request ready before Render")
	}
	if err := q.Render(); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if !q.IsReady() {
		t.Fatal("request not ready after Render")
	}

	u, ok := pub.Texture(42)
	if !ok {
		t.Fatal("nothing uploaded to texture 42")
	}
	if u.Width != q.TextureWidth() || u.Height != q.TextureHeight() {
		t.Errorf("upload %dx%d, want %dx%d", u.Width, u.Height, q.TextureWidth(), q.TextureHeight())
	}
	if u.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format = %v", u.Format)
	}
	if u.MinFilter != gputypes.FilterModeLinear || u.MagFilter != gputypes.FilterModeLinear {
		t.Errorf("filters = %v/%v, want linear", u.MinFilter, u.MagFilter)
	}
	if u.AddressModeU != gputypes.AddressModeClampToEdge || u.AddressModeV != gputypes.AddressModeClampToEdge {
		t.Errorf("address modes = %v/%v, want clamp-to-edge", u.AddressModeU, u.AddressModeV)
	}
	if !u.Premultiplied {
		t.Error("upload not premultiplied")
	}

	covered := 0
	for i := 0; i < len(u.Pixels); i += 4 {
		p := u.Pixels[i : i+4]
		if p[3] == 0 {
			continue
		}
		covered++
		if p[1] != 0 || p[2] != 0 {
			t.Fatalf("pixel %v is not red", p)
		}
	}
	if covered == 0 {
		t.Error("upload is fully transparent")
	}
}

func TestRenderOutsideLabelTransparent(t *testing.T) {
	pub := NewMemoryPublisher()
	r := newTestRenderer(t, pub)
	q := r.NewRequest("Wide label text", Style{FontSize: 20}, testBound, testBound, 3)
	if err := q.Render(); err != nil {
		t.Fatal(err)
	}
	bm, _ := pub.Bitmap(3)
	img := bm.Image()
	for y := 0; y < bm.Height(); y++ {
		for x := 0; x < bm.Width(); x++ {
			if x < q.TextWidth() && y < q.TextHeight() {
				continue
			}
			if a := img.RGBAAt(x, y).A; a != 0 {
				t.Fatalf("pixel (%d,%d) outside the label has alpha %d", x, y, a)
			}
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	pub := NewMemoryPublisher()
	r := newTestRenderer(t, pub)
	q := r.NewRequest("[FF8800]Same[0088FF] pixels\nevery time", Style{FontSize: 18, Alignment: AlignCenter}, 120, 100, 7)

	if err := q.Render(); err != nil {
		t.Fatal(err)
	}
	first, _ := pub.Texture(7)
	if err := q.Render(); err != nil {
		t.Fatal(err)
	}
	second, _ := pub.Texture(7)

	if !bytes.Equal(first.Pixels, second.Pixels) {
		t.Error("two renders of the same request differ")
	}
	if pub.Uploads() != 2 {
		t.Errorf("Uploads() = %d, want 2", pub.Uploads())
	}
}

func TestRasterizeFlip(t *testing.T) {
	lib := text.NewLibrary()
	t.Cleanup(func() { _ = lib.Close() })

	flipped := NewRenderer(nil, WithFontLibrary(lib))
	upright := NewRenderer(nil, WithFontLibrary(lib), WithFlipY(false))

	const label = "Ag\nyT"
	a := flipped.NewRequest(label, Style{FontSize: 16}, testBound, testBound, 1).Rasterize()
	q := upright.NewRequest(label, Style{FontSize: 16}, testBound, testBound, 1)
	b := q.Rasterize()

	th := q.TextHeight()
	stride := b.Width() * 4
	for y := 0; y < th; y++ {
		ra := a.Data()[y*stride : (y+1)*stride]
		rb := b.Data()[(th-1-y)*stride : (th-y)*stride]
		if !bytes.Equal(ra, rb) {
			t.Fatalf("flipped row %d differs from upright row %d", y, th-1-y)
		}
	}

	if bytes.Equal(a.Data(), b.Data()) {
		t.Error("WithFlipY(false) produced the same bitmap")
	}
}

func TestRenderErrors(t *testing.T) {
	r := newTestRenderer(t, nil)
	q := r.NewRequest("x", Style{}, testBound, testBound, 1)
	if err := q.Render(); !errors.Is(err, ErrNoPublisher) {
		t.Errorf("Render() without publisher = %v, want ErrNoPublisher", err)
	}

	r = newTestRenderer(t, NewMemoryPublisher())
	q = r.NewRequest("x", Style{}, testBound, testBound, InvalidTexture)
	if err := q.Render(); !errors.Is(err, ErrInvalidTexture) {
		t.Errorf("Render() with invalid texture = %v, want ErrInvalidTexture", err)
	}

	boom := errors.New("device lost")
	r = newTestRenderer(t, PublisherFunc(func(*Upload) error { return boom }))
	q = r.NewRequest("x", Style{}, testBound, testBound, 11)
	err := q.Render()
	if !errors.Is(err, boom) {
		t.Errorf("Render() = %v, want wrapped publisher error", err)
	}
	if err != nil && !strings.Contains(err.Error(), "11") {
		t.Errorf("error %q does not name the texture", err)
	}
	if q.IsReady() {
		t.Error("request ready after a failed upload")
	}
}
