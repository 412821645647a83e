package text

import (
	"os"
	"sync"

	"github.com/gogpu/sysfont/internal/cache"
)

// FontSource represents a loaded font file.
// One FontSource can create faces at any number of sizes.
//
// FontSource is safe for concurrent use and must not be copied after
// creation.
type FontSource struct {
	// addr points to the FontSource itself and detects copies.
	addr *FontSource

	data   []byte
	parsed ParsedFont

	name      string
	subfamily string

	mu       sync.RWMutex
	outlines *cache.Cache[outlineKey, *GlyphOutline]

	config sourceConfig
}

type outlineKey struct {
	gid  GlyphID
	size float64
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	parsed, err := getParser(config.parserName).Parse(data)
	if err != nil {
		return nil, err
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	s := &FontSource{
		data:      dataCopy,
		parsed:    parsed,
		subfamily: parsed.Subfamily(),
		outlines:  cache.New[outlineKey, *GlyphOutline](config.cacheLimit),
		config:    config,
	}
	s.addr = s
	s.name = extractFontName(parsed)

	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FontLoadError{Path: path, Err: err}
	}

	s, err := NewFontSource(data, opts...)
	if err != nil {
		return nil, &FontLoadError{Path: path, Err: err}
	}
	return s, nil
}

// Face creates a Face at the specified size in pixels per em.
// Panics if s is nil.
func (s *FontSource) Face(size float64, opts ...FaceOption) Face {
	if s == nil {
		panic("text: FontSource is nil")
	}
	s.copyCheck()

	config := defaultFaceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return &sourceFace{
		source: s,
		size:   size,
		config: config,
	}
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Subfamily returns the style name stored in the font, such as "Bold".
func (s *FontSource) Subfamily() string {
	s.copyCheck()
	return s.subfamily
}

// Parsed returns the parsed font for advanced operations.
func (s *FontSource) Parsed() ParsedFont {
	s.copyCheck()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.parsed
}

// Data returns the raw font bytes. Callers must not modify them.
func (s *FontSource) Data() []byte {
	s.copyCheck()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Outline returns the outline of a glyph at size, loading and caching it on
// first use. The returned outline is shared and must not be modified.
func (s *FontSource) Outline(gid GlyphID, size float64) (*GlyphOutline, error) {
	s.copyCheck()
	key := outlineKey{gid: gid, size: size}

	s.mu.RLock()
	parsed := s.parsed
	s.mu.RUnlock()
	if parsed == nil {
		return nil, ErrEmptyFontData
	}
	if o, ok := s.outlines.Get(key); ok {
		return o, nil
	}

	o, err := parsed.GlyphOutline(uint16(gid), size)
	if err != nil {
		return nil, err
	}
	s.outlines.Set(key, o)
	return o, nil
}

// Close releases resources associated with the FontSource.
// All faces created from this source become invalid after Close.
func (s *FontSource) Close() error {
	s.copyCheck()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = nil
	s.parsed = nil
	s.outlines.Clear()

	return nil
}

// copyCheck panics if FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

// extractFontName extracts the font family name from the parsed font.
func extractFontName(parsed ParsedFont) string {
	if name := parsed.Name(); name != "" {
		return name
	}
	if fullName := parsed.FullName(); fullName != "" {
		return fullName
	}
	return "Unknown Font"
}
