package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from
// reader. The trailing newline is trimmed. If EOF occurs after some input
// was read, the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password from the
// user's terminal without echo. A newline is printed after the read to keep
// the UI tidy.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Senha: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// dateTimeLayout matches what the reservation form accepts.
const dateTimeLayout = "2006-01-02 15:04"

// GetDateTime prompts for a local date-time in "YYYY-MM-DD HH:MM" form.
// An empty line yields the zero time; anything unparsable is an error the
// caller reports. No range checks happen here.
func GetDateTime(reader *bufio.Reader, prompt string, w io.Writer) (time.Time, error) {
	text, err := GetSimpleText(reader, prompt+" (AAAA-MM-DD HH:MM)", w)
	if err != nil {
		return time.Time{}, err
	}
	if text == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(dateTimeLayout, text, time.Local)
}
