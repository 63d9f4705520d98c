package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	fcolor "github.com/fatih/color"
	"github.com/gdstools/gdskit/pkg/ui/timer"
)

// MessageType selects the styling (color and symbol) of a message.
type MessageType int

const (
	// ErrorType renders red with a ✗ symbol.
	ErrorType MessageType = iota
	// WarningType renders yellow with a ⚠ symbol.
	WarningType
	// ActivityType renders plain with a ► symbol.
	ActivityType
	// GenerateType renders plain with a ✚ symbol, used for written files.
	GenerateType
	// SuccessType renders green with a ✔ symbol.
	SuccessType
	// InfoType renders blue with an ℹ symbol.
	InfoType
	// TitleType renders bold with a leading emoji instead of a symbol.
	TitleType
)

// Message is a single notification to display to the user.
type Message struct {
	// Type determines the message styling.
	Type MessageType
	// Content is the message text, optionally a format string for Args.
	Content string
	// Args are format arguments applied to Content when present.
	Args []any
	// Timer optionally appends a timing block after SuccessType messages.
	Timer timer.Timer
	// Emoji replaces the default title icon for TitleType messages.
	Emoji string
	// Writer is the destination. Defaults to os.Stdout when nil.
	Writer io.Writer
}

type style struct {
	symbol string
	color  *fcolor.Color
}

//nolint:gochecknoglobals // Style table is immutable package configuration.
var styles = map[MessageType]style{
	ErrorType:    {symbol: "✗ ", color: fcolor.New(fcolor.FgRed)},
	WarningType:  {symbol: "⚠ ", color: fcolor.New(fcolor.FgYellow)},
	ActivityType: {symbol: "► ", color: fcolor.New(fcolor.Reset)},
	GenerateType: {symbol: "✚ ", color: fcolor.New(fcolor.Reset)},
	SuccessType:  {symbol: "✔ ", color: fcolor.New(fcolor.FgGreen)},
	InfoType:     {symbol: "ℹ ", color: fcolor.New(fcolor.FgBlue)},
	TitleType:    {symbol: "", color: fcolor.New(fcolor.Reset, fcolor.Bold)},
}

// defaultTitleEmoji is used for TitleType messages without an explicit emoji.
const defaultTitleEmoji = "ℹ️"

// WriteMessage renders a message according to its type.
//
// Prefer the convenience functions Errorf, Warningf, Activityf, Generatef,
// Successf, SuccessWithTimerf, Infof, and Titlef for the common cases.
func WriteMessage(msg Message) {
	writer := msg.Writer
	if writer == nil {
		writer = os.Stdout
	}

	content := msg.Content
	if len(msg.Args) > 0 {
		content = fmt.Sprintf(msg.Content, msg.Args...)
	}

	msgStyle, ok := styles[msg.Type]
	if !ok {
		msgStyle = style{color: fcolor.New(fcolor.Reset)}
	}

	content = indentContinuationLines(content, msgStyle.symbol)

	if msg.Type == TitleType {
		emoji := msg.Emoji
		if emoji == "" {
			emoji = defaultTitleEmoji
		}

		_, err := msgStyle.color.Fprintf(writer, "%s %s\n", emoji, content)
		reportWriteFailure(err)

		return
	}

	_, err := msgStyle.color.Fprintf(writer, "%s%s\n", msgStyle.symbol, content)
	reportWriteFailure(err)

	// Timing is only meaningful on success lines.
	if msg.Type == SuccessType && msg.Timer != nil {
		total, stage := msg.Timer.GetTiming()

		_, err = msgStyle.color.Fprintf(writer, "⏲ current: %s\n", stage.String())
		reportWriteFailure(err)
		_, err = msgStyle.color.Fprintf(writer, "  total:  %s\n", total.String())
		reportWriteFailure(err)
	}
}

// Errorf writes an error message to the writer.
func Errorf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: ErrorType, Content: format, Args: args, Writer: writer})
}

// Warningf writes a warning message to the writer.
func Warningf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: WarningType, Content: format, Args: args, Writer: writer})
}

// Activityf writes an activity message to the writer.
func Activityf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: ActivityType, Content: format, Args: args, Writer: writer})
}

// Generatef writes a file generation message to the writer.
func Generatef(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: GenerateType, Content: format, Args: args, Writer: writer})
}

// Successf writes a success message to the writer.
func Successf(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: SuccessType, Content: format, Args: args, Writer: writer})
}

// SuccessWithTimerf writes a success message followed by a timing block.
func SuccessWithTimerf(writer io.Writer, tmr timer.Timer, format string, args ...any) {
	WriteMessage(Message{Type: SuccessType, Content: format, Args: args, Timer: tmr, Writer: writer})
}

// Infof writes an informational message to the writer.
func Infof(writer io.Writer, format string, args ...any) {
	WriteMessage(Message{Type: InfoType, Content: format, Args: args, Writer: writer})
}

// Titlef writes a bold title message with a leading emoji to the writer.
func Titlef(writer io.Writer, emoji, format string, args ...any) {
	WriteMessage(Message{
		Type:    TitleType,
		Content: fmt.Sprintf(format, args...),
		Emoji:   emoji,
		Writer:  writer,
	})
}

// reportWriteFailure logs print failures to stderr instead of returning them,
// so a broken pipe never masks the error the message was reporting.
func reportWriteFailure(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "notify: failed to print message: %v\n", err)
	}
}

// indentContinuationLines aligns the continuation lines of multi-line content
// under the first line's text rather than under its symbol.
func indentContinuationLines(content, symbol string) string {
	if symbol == "" || !strings.Contains(content, "\n") {
		return content
	}

	indent := strings.Repeat(" ", len([]rune(symbol)))
	lines := strings.Split(content, "\n")

	for i := 1; i < len(lines); i++ {
		if lines[i] == "" {
			continue
		}

		lines[i] = indent + lines[i]
	}

	return strings.Join(lines, "\n")
}
