// Command sysfont renders color-tagged labels to PNG files the way they
// would be uploaded to a texture.
//
// Render one label:
//
//	sysfont -text "[FF0000]Game [FFFFFF]Over" -font serif -size 32 -out over.png
//
// Render a YAML manifest:
//
//	sysfont -manifest labels.yaml -out-dir build/labels
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/sysfont"
	"github.com/gogpu/sysfont/text"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("sysfont", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		label     = fs.String("text", "", "label text with [RRGGBB] color tags")
		font      = fs.String("font", "", "font family (sans, serif, monospace or a loaded family)")
		size      = fs.Float64("size", sysfont.DefaultFontSize, "font size in pixels")
		bold      = fs.Bool("bold", false, "bold")
		italic    = fs.Bool("italic", false, "italic")
		align     = fs.String("align", "start", "alignment: start, center, end or 0-2")
		maxWidth  = fs.Int("max-width", DefaultMaxSize, "maximum label width in pixels")
		maxHeight = fs.Int("max-height", DefaultMaxSize, "maximum label height in pixels")
		output    = fs.String("out", "label.png", "output file for -text")
		manifest  = fs.String("manifest", "", "YAML manifest of labels")
		outDir    = fs.String("out-dir", ".", "output directory for -manifest")
		fontDir   = fs.String("font-dir", "", "directory of extra .ttf/.otf fonts")
		shaper    = fs.String("shaper", "builtin", "shaper: builtin or gotext")
		flipY     = fs.Bool("flip", false, "store rows bottom-up as uploaded to GL-style textures")
		workers   = fs.Int("workers", 0, "goroutines rasterizing labels (0 for GOMAXPROCS)")
		verbose   = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *verbose {
		sysfont.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	var labels []LabelConfig
	var fontDirs []string
	shaperName := *shaper
	flip := *flipY
	dir := "."

	switch {
	case *manifest != "":
		m, err := LoadManifest(*manifest)
		if err != nil {
			return err
		}
		labels = m.Resolved()
		fontDirs = m.FontDirs
		if m.Shaper != "" {
			shaperName = m.Shaper
		}
		flip = flip || m.FlipY
		dir = *outDir
	case *label != "":
		labels = []LabelConfig{{
			Name:      "label",
			Text:      *label,
			Font:      *font,
			Size:      *size,
			Bold:      bold,
			Italic:    italic,
			Align:     *align,
			MaxWidth:  *maxWidth,
			MaxHeight: *maxHeight,
			Out:       *output,
		}}
	default:
		fs.Usage()
		return errors.New("sysfont: -text or -manifest is required")
	}
	if *fontDir != "" {
		fontDirs = append(fontDirs, *fontDir)
	}

	sh, ok := text.ShaperByName(shaperName)
	if !ok {
		return fmt.Errorf("sysfont: unknown shaper %q", shaperName)
	}

	lib := text.NewLibrary()
	defer func() {
		_ = lib.Close()
	}()
	for _, d := range fontDirs {
		n, err := lib.LoadDir(d)
		if err != nil {
			log.Printf("some fonts in %s failed to load: %v", d, err)
		}
		log.Printf("loaded %d fonts from %s", n, d)
	}

	pub := sysfont.NewMemoryPublisher()
	r := sysfont.NewRenderer(pub,
		sysfont.WithFontLibrary(lib),
		sysfont.WithShaper(sh),
		sysfont.WithFlipY(flip),
		sysfont.WithWorkers(*workers),
	)
	return renderLabels(r, pub, labels, dir)
}

// renderLabels renders every label and saves its texture as PNG in dir.
func renderLabels(r *sysfont.Renderer, pub *sysfont.MemoryPublisher, labels []LabelConfig, dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("sysfont: create output directory: %w", err)
	}

	reqs := make([]*sysfont.Request, len(labels))
	for i, l := range labels {
		style, err := l.Style()
		if err != nil {
			return err
		}
		reqs[i] = r.NewRequest(l.Text, style, l.MaxWidth, l.MaxHeight, sysfont.TextureID(i+1))
	}
	if err := r.RenderAll(reqs...); err != nil {
		return err
	}

	for i, l := range labels {
		req := reqs[i]
		bm, ok := pub.Bitmap(req.Texture())
		if !ok {
			return fmt.Errorf("label %q: texture %d was not published", l.Name, req.Texture())
		}
		path := l.Out
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if err := bm.SavePNG(path); err != nil {
			return fmt.Errorf("label %q: %w", l.Name, err)
		}
		pub.Release(req.Texture())

		log.Printf("%s: text %dx%d, texture %dx%d -> %s",
			l.Name, req.TextWidth(), req.TextHeight(), req.TextureWidth(), req.TextureHeight(), path)
	}
	return nil
}
