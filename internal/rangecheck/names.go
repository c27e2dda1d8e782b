package rangecheck

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var pitchClassNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName renders a MIDI note in scientific pitch notation, e.g. 60 -> "C4".
func NoteName(note uint8) string {
	return fmt.Sprintf("%s%d", pitchClassNames[note%12], int(note)/12-1)
}

// Register group message keys.
const (
	groupSubContra = "group.subcontra"
	groupContra    = "group.contra"
	groupGreat     = "group.great"
	groupSmall     = "group.small"
	groupOneLine   = "group.one_line"
	groupTwoLine   = "group.two_line"
	groupThreeLine = "group.three_line"
	groupFourLine  = "group.four_line"
	groupFiveLine  = "group.five_line"
	groupUnknown   = "group.unknown"
)

var supportedLocales = []language.Tag{language.English, language.SimplifiedChinese}

var groupCatalog = func() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	entries := []struct {
		key, en, zh string
	}{
		{groupSubContra, "Sub-contra octave (A₂-B₂)", "大字二组 (A₂-B₂)"},
		{groupContra, "Contra octave (C₁-B₁)", "大字一组 (C₁-B₁)"},
		{groupGreat, "Great octave (C-B)", "大字组 (C-B)"},
		{groupSmall, "Small octave (c-b)", "小字组 (c-b)"},
		{groupOneLine, "One-line octave (c¹-b¹)", "小字一组 (c¹-b¹)"},
		{groupTwoLine, "Two-line octave (c²-b²)", "小字二组 (c²-b²)"},
		{groupThreeLine, "Three-line octave (c³-b³)", "小字三组 (c³-b³)"},
		{groupFourLine, "Four-line octave (c⁴-b⁴)", "小字四组 (c⁴-b⁴)"},
		{groupFiveLine, "Five-line octave (c⁵)", "小字五组 (c⁵)"},
		{groupUnknown, "Unknown", "未知"},
	}
	for _, e := range entries {
		_ = b.SetString(language.English, e.key, e.en)
		_ = b.SetString(language.SimplifiedChinese, e.key, e.zh)
	}
	return b
}()

var localeMatcher = language.NewMatcher(supportedLocales)

// Namer renders localized register group labels.
type Namer struct {
	printer *message.Printer
}

// NewNamer picks the closest supported locale for a BCP 47 tag such as
// "en", "zh-CN" or "zh-Hans". Unknown or empty tags fall back to English.
func NewNamer(locale string) Namer {
	tag := language.English
	if locale != "" {
		if parsed, err := language.Parse(locale); err == nil {
			_, idx, _ := localeMatcher.Match(parsed)
			tag = supportedLocales[idx]
		}
	}
	return Namer{printer: message.NewPrinter(tag, message.Catalog(groupCatalog))}
}

// Group returns the Helmholtz register of note, covering the 88-key piano
// range 21..108.
func (n Namer) Group(note uint8) string {
	if n.printer == nil {
		n = NewNamer("")
	}
	return n.printer.Sprintf(groupKey(note))
}

func groupKey(note uint8) string {
	switch {
	case note >= 21 && note <= 23:
		return groupSubContra
	case note >= 24 && note <= 35:
		return groupContra
	case note >= 36 && note <= 47:
		return groupGreat
	case note >= 48 && note <= 59:
		return groupSmall
	case note >= 60 && note <= 71:
		return groupOneLine
	case note >= 72 && note <= 83:
		return groupTwoLine
	case note >= 84 && note <= 95:
		return groupThreeLine
	case note >= 96 && note <= 107:
		return groupFourLine
	case note == 108:
		return groupFiveLine
	}
	return groupUnknown
}
