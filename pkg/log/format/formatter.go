// Package format provides the text formatter for the logger.
package format

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
)

const defaultTimestampFormat = "15:04:05.000"

// Formatter renders log entries as `TIME LEVEL message key=value ...` lines.
// It implements the log.Formatter interface.
type Formatter struct {
	colorScheme      compiledColorScheme
	timestampFormat  string
	mu               sync.Mutex
	disableColors    bool
	disableTimestamp bool
}

// NewFormatter returns a new Formatter instance with default values.
func NewFormatter() *Formatter {
	return &Formatter{
		colorScheme:     defaultColorScheme.Compile(),
		timestampFormat: defaultTimestampFormat,
	}
}

// SetDisableColors toggles rendering of ANSI colors.
func (formatter *Formatter) SetDisableColors(val bool) {
	formatter.disableColors = val
}

// DisabledColors returns true if ANSI color rendering is disabled.
func (formatter *Formatter) DisabledColors() bool {
	return formatter.disableColors
}

// SetDisableTimestamp toggles rendering of the timestamp column.
func (formatter *Formatter) SetDisableTimestamp(val bool) {
	formatter.disableTimestamp = val
}

// Format implements the log.Formatter interface.
func (formatter *Formatter) Format(entry *log.Entry) ([]byte, error) {
	buf := entry.Buffer
	if buf == nil {
		buf = new(bytes.Buffer)
	}

	formatter.mu.Lock()
	defer formatter.mu.Unlock()

	if !formatter.disableTimestamp {
		timestamp := entry.Time.Format(formatter.timestampFormat)
		fmt.Fprintf(buf, "%s ", formatter.colorize(TimestampStyle, timestamp))
	}

	levelText := fmt.Sprintf("%-6s", strings.ToUpper(entry.Level.String()))
	fmt.Fprint(buf, formatter.colorizeLevel(entry.Level, levelText))

	fmt.Fprint(buf, strings.TrimSuffix(entry.Message, "\n"))

	for _, key := range entry.Fields.Keys() {
		value := fmt.Sprintf("%v", entry.Fields[key])
		if strings.ContainsAny(value, " \t") {
			value = fmt.Sprintf("%q", value)
		}

		fmt.Fprintf(buf, " %s=%s", formatter.colorize(FieldStyle, key), value)
	}

	if err := buf.WriteByte('\n'); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (formatter *Formatter) colorize(styleName ColorStyleName, str string) string {
	if formatter.disableColors {
		return str
	}

	return formatter.colorScheme.ColorFunc(styleName)(str)
}

func (formatter *Formatter) colorizeLevel(level log.Level, str string) string {
	if formatter.disableColors {
		return str
	}

	return formatter.colorScheme.LevelColorFunc(level)(str)
}
