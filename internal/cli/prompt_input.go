package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// confirm writes question to out and reads one answer from in. Only "y" and
// "yes" confirm; an empty line, EOF or a read error declines.
func confirm(in io.Reader, out io.Writer, question string) bool {
	if out != nil {
		fmt.Fprint(out, question)
	}
	answer, err := readLine(in)
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

// readLine reads one trimmed line from in a byte at a time, so nothing past
// the line is consumed from a shared stdin. CR ends the line as well as LF
// because huh may leave the terminal in raw mode. A final line without a
// terminator is returned with a nil error.
func readLine(in io.Reader) (string, error) {
	if in == nil {
		return "", io.EOF
	}

	var sb strings.Builder
	b := make([]byte, 1)
	for {
		n, err := in.Read(b)
		if n == 1 {
			if b[0] == '\n' || b[0] == '\r' {
				return strings.TrimSpace(sb.String()), nil
			}
			sb.WriteByte(b[0])
		}
		switch {
		case errors.Is(err, io.EOF) && sb.Len() > 0:
			return strings.TrimSpace(sb.String()), nil
		case err != nil:
			return strings.TrimSpace(sb.String()), err
		}
	}
}
