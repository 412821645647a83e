package text

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/go-fonts/latin-modern/lmmono10italic"
	"github.com/go-fonts/latin-modern/lmmono10regular"
	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10bolditalic"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10boldoblique"
	"github.com/go-fonts/latin-modern/lmsans10oblique"
	"github.com/go-fonts/latin-modern/lmsans10regular"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Style is a weight and slant combination within a family.
type Style uint8

const (
	StyleRegular Style = iota
	StyleBold
	StyleItalic
	StyleBoldItalic

	numStyles
)

// StyleOf combines bold and italic flags into a Style.
func StyleOf(bold, italic bool) Style {
	s := StyleRegular
	if bold {
		s |= StyleBold
	}
	if italic {
		s |= StyleItalic
	}
	return s
}

// Bold reports whether s has a bold weight.
func (s Style) Bold() bool { return s&StyleBold != 0 }

// Italic reports whether s is italic or oblique.
func (s Style) Italic() bool { return s&StyleItalic != 0 }

// String returns the string representation of the style.
func (s Style) String() string {
	switch s {
	case StyleRegular:
		return "Regular"
	case StyleBold:
		return "Bold"
	case StyleItalic:
		return "Italic"
	case StyleBoldItalic:
		return "BoldItalic"
	default:
		return unknownStr
	}
}

// fallbackOrder lists the styles tried, in order, when a family lacks the
// requested one.
var fallbackOrder = [numStyles][numStyles]Style{
	StyleRegular:    {StyleRegular, StyleBold, StyleItalic, StyleBoldItalic},
	StyleBold:       {StyleBold, StyleRegular, StyleBoldItalic, StyleItalic},
	StyleItalic:     {StyleItalic, StyleRegular, StyleBoldItalic, StyleBold},
	StyleBoldItalic: {StyleBoldItalic, StyleBold, StyleItalic, StyleRegular},
}

// StyleFromSubfamily guesses the style from a font subfamily name such as
// "Bold Oblique".
func StyleFromSubfamily(sub string) Style {
	sub = strings.ToLower(sub)
	bold := strings.Contains(sub, "bold") || strings.Contains(sub, "black") || strings.Contains(sub, "heavy")
	italic := strings.Contains(sub, "italic") || strings.Contains(sub, "oblique")
	return StyleOf(bold, italic)
}

// Built-in family names.
const (
	FamilyGo               = "Go"
	FamilyGoMono           = "Go Mono"
	FamilyLatinModernRoman = "Latin Modern Roman"
	FamilyLatinModernSans  = "Latin Modern Sans"
	FamilyLatinModernMono  = "Latin Modern Mono"
)

// genericFamilies maps generic family names to built-in families.
var genericFamilies = map[string]string{
	"default":    FamilyGo,
	"sans":       FamilyGo,
	"sans-serif": FamilyGo,
	"serif":      FamilyLatinModernRoman,
	"monospace":  FamilyGoMono,
	"mono":       FamilyGoMono,
}

// libraryEntry is one font of a family, parsed on first use.
type libraryEntry struct {
	data []byte
	path string

	once sync.Once
	src  *FontSource
	err  error
}

func (e *libraryEntry) source(opts []SourceOption) (*FontSource, error) {
	e.once.Do(func() {
		if e.src != nil {
			return
		}
		e.src, e.err = NewFontSource(e.data, opts...)
		if e.err != nil && e.path != "" {
			e.err = &FontLoadError{Path: e.path, Err: e.err}
		}
		e.data = nil
	})
	return e.src, e.err
}

type libraryFamily struct {
	name  string
	faces [numStyles]*libraryEntry
}

// Library resolves a family name and style to a FontSource.
// It starts with the Go and Latin Modern families built in, and can load
// more from font files. Fonts are parsed lazily.
//
// Library is safe for concurrent use.
type Library struct {
	mu            sync.RWMutex
	families      map[string]*libraryFamily
	defaultFamily string
	opts          []SourceOption
}

// NewLibrary creates a Library holding the built-in families.
// The options apply to every FontSource the library creates.
func NewLibrary(opts ...SourceOption) *Library {
	l := &Library{
		families:      make(map[string]*libraryFamily),
		defaultFamily: FamilyGo,
		opts:          opts,
	}
	builtins := []struct {
		family string
		style  Style
		data   []byte
	}{
		{FamilyGo, StyleRegular, goregular.TTF},
		{FamilyGo, StyleBold, gobold.TTF},
		{FamilyGo, StyleItalic, goitalic.TTF},
		{FamilyGo, StyleBoldItalic, gobolditalic.TTF},
		{FamilyGoMono, StyleRegular, gomono.TTF},
		{FamilyGoMono, StyleBold, gomonobold.TTF},
		{FamilyGoMono, StyleItalic, gomonoitalic.TTF},
		{FamilyGoMono, StyleBoldItalic, gomonobolditalic.TTF},
		{FamilyLatinModernRoman, StyleRegular, lmroman10regular.TTF},
		{FamilyLatinModernRoman, StyleBold, lmroman10bold.TTF},
		{FamilyLatinModernRoman, StyleItalic, lmroman10italic.TTF},
		{FamilyLatinModernRoman, StyleBoldItalic, lmroman10bolditalic.TTF},
		{FamilyLatinModernSans, StyleRegular, lmsans10regular.TTF},
		{FamilyLatinModernSans, StyleBold, lmsans10bold.TTF},
		{FamilyLatinModernSans, StyleItalic, lmsans10oblique.TTF},
		{FamilyLatinModernSans, StyleBoldItalic, lmsans10boldoblique.TTF},
		{FamilyLatinModernMono, StyleRegular, lmmono10regular.TTF},
		{FamilyLatinModernMono, StyleItalic, lmmono10italic.TTF},
	}
	for _, b := range builtins {
		l.add(b.family, b.style, &libraryEntry{data: b.data})
	}
	return l
}

func familyKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (l *Library) add(name string, style Style, e *libraryEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := familyKey(name)
	f, ok := l.families[key]
	if !ok {
		f = &libraryFamily{name: strings.TrimSpace(name)}
		l.families[key] = f
	}
	f.faces[style] = e
}

// Register adds font data as the given style of family, replacing any font
// already registered there. The data is parsed on first use.
func (l *Library) Register(family string, style Style, data []byte) error {
	if strings.TrimSpace(family) == "" {
		return ErrEmptyFamily
	}
	if len(data) == 0 {
		return ErrEmptyFontData
	}
	if style >= numStyles {
		return fmt.Errorf("text: invalid style %d", style)
	}
	l.add(family, style, &libraryEntry{data: slices.Clone(data)})
	return nil
}

// RegisterSource adds an already loaded source under its own family name
// and subfamily style.
func (l *Library) RegisterSource(src *FontSource) {
	e := &libraryEntry{src: src}
	l.add(src.Name(), StyleFromSubfamily(src.Subfamily()), e)
}

// RegisterFile loads a TTF or OTF file and registers it under the family
// and style names stored in the font.
func (l *Library) RegisterFile(path string) error {
	src, err := NewFontSourceFromFile(path, l.opts...)
	if err != nil {
		return err
	}
	l.RegisterSource(src)
	return nil
}

// LoadDir registers every .ttf and .otf file under dir.
// It returns the number of fonts registered and the joined errors of the
// files that failed; those files are skipped.
func (l *Library) LoadDir(dir string) (int, error) {
	var errs []error
	n := 0
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, &FontLoadError{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".ttf", ".otf":
		default:
			return nil
		}
		if err := l.RegisterFile(path); err != nil {
			errs = append(errs, err)
			return nil
		}
		n++
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}
	return n, errors.Join(errs...)
}

// Families returns the registered family names, sorted.
func (l *Library) Families() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.families))
	for _, f := range l.families {
		names = append(names, f.name)
	}
	slices.Sort(names)
	return names
}

// HasFamily reports whether name (or a generic alias) is registered.
func (l *Library) HasFamily(name string) bool {
	_, ok := l.family(name)
	return ok
}

// SetDefault sets the family used for unknown names.
func (l *Library) SetDefault(name string) error {
	f, ok := l.family(name)
	if !ok {
		return fmt.Errorf("text: unknown family %q", name)
	}
	l.mu.Lock()
	l.defaultFamily = f.name
	l.mu.Unlock()
	return nil
}

// Default returns the name of the default family.
func (l *Library) Default() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.defaultFamily
}

func (l *Library) family(name string) (*libraryFamily, bool) {
	key := familyKey(name)
	l.mu.RLock()
	defer l.mu.RUnlock()
	if f, ok := l.families[key]; ok {
		return f, true
	}
	if alias, ok := genericFamilies[key]; ok {
		f, ok := l.families[familyKey(alias)]
		return f, ok
	}
	return nil, false
}

// Lookup returns the font of family name closest to style. Within a family
// a missing style falls back to the nearest one (bold before italic for
// bold requests). It reports false if the family is unknown or none of its
// fonts can be parsed.
func (l *Library) Lookup(name string, style Style) (*FontSource, bool) {
	f, ok := l.family(name)
	if !ok || style >= numStyles {
		return nil, false
	}
	for _, s := range fallbackOrder[style] {
		e := f.faces[s]
		if e == nil {
			continue
		}
		if src, err := e.source(l.opts); err == nil {
			return src, true
		}
	}
	return nil, false
}

// Resolve returns the font for family name with the requested weight and
// slant. Unknown or empty names use the default family with the same
// style. The second result reports whether name itself was found.
// Resolve returns nil only if the default family cannot be loaded.
func (l *Library) Resolve(name string, bold, italic bool) (*FontSource, bool) {
	style := StyleOf(bold, italic)
	if strings.TrimSpace(name) != "" {
		if src, ok := l.Lookup(name, style); ok {
			return src, true
		}
	}
	src, _ := l.Lookup(l.Default(), style)
	return src, false
}

// Close closes every font the library has loaded.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var errs []error
	for _, f := range l.families {
		for _, e := range f.faces {
			if e == nil || e.src == nil {
				continue
			}
			if err := e.src.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	clear(l.families)
	return errors.Join(errs...)
}
