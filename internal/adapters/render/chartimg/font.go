package chartimg

import (
	"fmt"
	"os"
	"strings"

	"github.com/AllenDang/go-findfont"
	"github.com/golang/freetype/truetype"
)

// CJKFonts are TrueType faces with Chinese glyphs, tried in order when no
// font is configured. Collections (.ttc) and CFF outlines cannot be
// parsed by freetype and are not listed.
var CJKFonts = []string{
	"NotoSansSC-Regular.ttf",
	"NotoSansCJKsc-Regular.ttf",
	"SourceHanSansSC-Regular.ttf",
	"DroidSansFallbackFull.ttf",
	"DroidSansFallback.ttf",
	"wqy-microhei.ttf",
	"simhei.ttf",
	"Arial Unicode.ttf",
}

// LoadFont parses a TrueType font file.
func LoadFont(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFont, err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadFont, path, err)
	}
	return f, nil
}

// FindFont loads the first of names installed in the user or system font
// directories and returns it with its path.
func FindFont(names ...string) (*truetype.Font, string, error) {
	for _, name := range names {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		f, err := LoadFont(path)
		if err != nil {
			continue
		}
		return f, path, nil
	}
	return nil, "", fmt.Errorf("%w: none of %s installed", ErrLoadFont, strings.Join(names, ", "))
}
