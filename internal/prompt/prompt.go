// Package prompt reads short answers from the terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadLine prints prompt to w and reads one trimmed line from r.
func ReadLine(r io.Reader, w io.Writer, prompt string) (string, error) {
	if prompt != "" {
		_, _ = fmt.Fprint(w, prompt)
	}
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil {
		// Allow EOF with partial line
		if err == io.EOF {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. Only "y" or "yes" (any case) count as yes.
func Confirm(r io.Reader, w io.Writer, question string) (bool, error) {
	answer, err := ReadLine(r, w, question+" [y/n] ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
