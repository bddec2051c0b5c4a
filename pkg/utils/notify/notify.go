package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	fcolor "github.com/fatih/color"
)

// Kind selects the symbol and color of a line.
type Kind int

const (
	// KindError is printed in red behind ✗.
	KindError Kind = iota
	// KindWarning is printed in yellow behind ⚠.
	KindWarning
	// KindActivity marks work in progress with ►.
	KindActivity
	// KindGenerate marks a written file with ✚.
	KindGenerate
	// KindSuccess is printed in green behind ✔.
	KindSuccess
	// KindInfo is printed in blue behind ℹ.
	KindInfo
	// KindTitle is printed bold behind an emoji.
	KindTitle
)

// DefaultTitleEmoji is used by titles that do not name their own emoji.
const DefaultTitleEmoji = "📦"

// Message is one line (or block) of user facing output.
type Message struct {
	Kind   Kind
	Format string
	Args   []any
	// Emoji is only read for KindTitle.
	Emoji string
	// Writer defaults to os.Stdout.
	Writer io.Writer
}

type style struct {
	symbol string
	color  *fcolor.Color
}

var styles = map[Kind]style{
	KindError:    {symbol: "✗ ", color: fcolor.New(fcolor.FgRed)},
	KindWarning:  {symbol: "⚠ ", color: fcolor.New(fcolor.FgYellow)},
	KindActivity: {symbol: "► ", color: fcolor.New(fcolor.Reset)},
	KindGenerate: {symbol: "✚ ", color: fcolor.New(fcolor.Reset)},
	KindSuccess:  {symbol: "✔ ", color: fcolor.New(fcolor.FgGreen)},
	KindInfo:     {symbol: "ℹ ", color: fcolor.New(fcolor.FgBlue)},
	KindTitle:    {color: fcolor.New(fcolor.Reset, fcolor.Bold)},
}

// Errorf writes an error line.
func Errorf(writer io.Writer, format string, args ...any) {
	Write(Message{Kind: KindError, Format: format, Args: args, Writer: writer})
}

// Warningf writes a warning line.
func Warningf(writer io.Writer, format string, args ...any) {
	Write(Message{Kind: KindWarning, Format: format, Args: args, Writer: writer})
}

// Activityf writes an activity line.
func Activityf(writer io.Writer, format string, args ...any) {
	Write(Message{Kind: KindActivity, Format: format, Args: args, Writer: writer})
}

// Generatef writes a line announcing a generated file.
func Generatef(writer io.Writer, format string, args ...any) {
	Write(Message{Kind: KindGenerate, Format: format, Args: args, Writer: writer})
}

// Successf writes a success line.
func Successf(writer io.Writer, format string, args ...any) {
	Write(Message{Kind: KindSuccess, Format: format, Args: args, Writer: writer})
}

// Infof writes an informational line.
func Infof(writer io.Writer, format string, args ...any) {
	Write(Message{Kind: KindInfo, Format: format, Args: args, Writer: writer})
}

// Titlef writes a bold title behind emoji, or DefaultTitleEmoji when emoji is empty.
func Titlef(writer io.Writer, emoji, format string, args ...any) {
	Write(Message{Kind: KindTitle, Format: format, Args: args, Emoji: emoji, Writer: writer})
}

// Write renders msg. Continuation lines of a multi-line message are indented
// to sit under the first line's text. Write failures are reported on stderr
// and otherwise ignored.
func Write(msg Message) {
	writer := msg.Writer
	if writer == nil {
		writer = os.Stdout
	}

	content := msg.Format
	if len(msg.Args) > 0 {
		content = fmt.Sprintf(msg.Format, msg.Args...)
	}

	st, ok := styles[msg.Kind]
	if !ok {
		st = style{color: fcolor.New(fcolor.Reset)}
	}

	prefix := st.symbol
	if msg.Kind == KindTitle {
		emoji := msg.Emoji
		if emoji == "" {
			emoji = DefaultTitleEmoji
		}

		prefix = emoji + " "
	}

	_, err := st.color.Fprintf(writer, "%s%s\n", prefix, indent(content, prefix))
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "notify: failed to print message: %v\n", err)
	}
}

func indent(content, prefix string) string {
	if prefix == "" || !strings.Contains(content, "\n") {
		return content
	}

	pad := strings.Repeat(" ", len([]rune(prefix)))
	lines := strings.Split(content, "\n")

	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}

	return strings.Join(lines, "\n")
}
