package format

import (
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
	"github.com/mgutz/ansi"
)

// ColorStyleName identifies a style slot in a ColorScheme.
type ColorStyleName byte

const (
	None ColorStyleName = iota
	ErrorLevelStyle
	WarnLevelStyle
	InfoLevelStyle
	DebugLevelStyle
	TraceLevelStyle
	TimestampStyle
	FieldStyle
)

var defaultColorScheme = ColorScheme{
	ErrorLevelStyle: "red",
	WarnLevelStyle:  "yellow",
	InfoLevelStyle:  "green",
	DebugLevelStyle: "blue+h",
	TraceLevelStyle: "white",
	TimestampStyle:  "black+h",
	FieldStyle:      "cyan",
}

var levelStyles = map[log.Level]ColorStyleName{
	log.ErrorLevel: ErrorLevelStyle,
	log.WarnLevel:  WarnLevelStyle,
	log.InfoLevel:  InfoLevelStyle,
	log.DebugLevel: DebugLevelStyle,
	log.TraceLevel: TraceLevelStyle,
}

// ColorFunc renders a string in a given style.
type ColorFunc func(string) string

// ColorStyle is an `ansi` style description, e.g. "red", "blue+h".
type ColorStyle string

// ColorFunc compiles the style into a render function.
func (style ColorStyle) ColorFunc() ColorFunc {
	return ansi.ColorFunc(string(style))
}

// ColorScheme maps style slots to `ansi` styles.
type ColorScheme map[ColorStyleName]ColorStyle

// Compile pre-compiles all styles of the scheme.
func (scheme ColorScheme) Compile() compiledColorScheme {
	compiled := make(compiledColorScheme, len(scheme))

	for name, style := range scheme {
		compiled[name] = style.ColorFunc()
	}

	return compiled
}

type compiledColorScheme map[ColorStyleName]ColorFunc

func (scheme compiledColorScheme) LevelColorFunc(level log.Level) ColorFunc {
	if styleName, ok := levelStyles[level]; ok {
		return scheme.ColorFunc(styleName)
	}

	return scheme.ColorFunc(None)
}

func (scheme compiledColorScheme) ColorFunc(styleName ColorStyleName) ColorFunc {
	if colorFunc, ok := scheme[styleName]; ok {
		return colorFunc
	}

	return func(s string) string { return s }
}
