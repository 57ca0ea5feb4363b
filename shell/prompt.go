// Package shell provides user prompting and external command execution.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gruntwork-io/azure-bootstrap/internal/errors"
	"github.com/gruntwork-io/azure-bootstrap/options"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// PromptUserForInput prompts the user for text in the CLI. Returns the text entered by the user.
func PromptUserForInput(ctx context.Context, l log.Logger, prompt string, opts *options.Options) (string, error) {
	// We are writing directly to ErrWriter so the prompt is always visible
	// no matter what log level is configured.
	if _, err := fmt.Fprint(opts.ErrWriter, prompt); err != nil {
		return "", errors.WithStackTrace(err)
	}

	if opts.NonInteractive {
		l.Debugf("The non-interactive flag is set, so assuming 'yes' for all prompts")
		fmt.Fprintln(opts.ErrWriter)

		return "yes", nil
	}

	reader := bufio.NewReader(os.Stdin)

	text, err := reader.ReadString('\n')
	if err != nil {
		return "", errors.WithStackTrace(err)
	}

	return strings.TrimSpace(text), nil
}

// PromptUserForYesNo prompts the user for a yes/no response and returns true if they entered yes.
func PromptUserForYesNo(ctx context.Context, l log.Logger, prompt string, opts *options.Options) (bool, error) {
	resp, err := PromptUserForInput(ctx, l, prompt+" (y/n) ", opts)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(resp) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// PressAnyKeyToContinue blocks until the user presses a key and returns true if the
// pressed key confirms continuation. On a terminal a single keystroke is read in raw
// mode; a piped stdin falls back to reading a line and inspecting its first byte.
// ESC, Ctrl-C, 'q' and 'n' decline, everything else confirms. When the
// non-interactive flag is set the prompt is skipped and confirmation is assumed.
func PressAnyKeyToContinue(ctx context.Context, l log.Logger, prompt string, opts *options.Options) (bool, error) {
	if _, err := fmt.Fprint(opts.ErrWriter, prompt); err != nil {
		return false, errors.WithStackTrace(err)
	}

	if opts.NonInteractive {
		l.Debugf("The non-interactive flag is set, so assuming confirmation for all prompts")
		fmt.Fprintln(opts.ErrWriter)

		return true, nil
	}

	key, err := readSingleKey()
	if err != nil {
		return false, err
	}

	fmt.Fprintln(opts.ErrWriter)

	return !isDeclineKey(key), nil
}

func readSingleKey() (byte, error) {
	fd := int(os.Stdin.Fd())

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		reader := bufio.NewReader(os.Stdin)

		text, err := reader.ReadString('\n')
		if err != nil {
			return 0, errors.WithStackTrace(err)
		}

		if text = strings.TrimSpace(text); text != "" {
			return text[0], nil
		}

		// A bare newline counts as a keypress.
		return '\n', nil
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return 0, errors.WithStackTrace(err)
	}

	defer term.Restore(fd, oldState) //nolint:errcheck

	buf := make([]byte, 1)
	if _, err := os.Stdin.Read(buf); err != nil {
		return 0, errors.WithStackTrace(err)
	}

	return buf[0], nil
}

func isDeclineKey(key byte) bool {
	switch key {
	// Ctrl-C, ESC
	case 0x03, 0x1b, 'q', 'Q', 'n', 'N':
		return true
	default:
		return false
	}
}
