package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword and isTerminal are test seams for golang.org/x/term.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

var errPasswordMismatch = errors.New("passwords do not match")

// prompter asks for secrets. On a terminal input is not echoed; otherwise
// one line is read from in, which lets scripts pipe passwords.
type prompter struct {
	in     io.Reader
	reader *bufio.Reader
	w      io.Writer
}

func newPrompter(in io.Reader, w io.Writer) *prompter {
	return &prompter{in: in, reader: bufio.NewReader(in), w: w}
}

func (p *prompter) Password(label string) (string, error) {
	if _, err := fmt.Fprint(p.w, label); err != nil {
		return "", err
	}

	if f, ok := p.in.(*os.File); ok && isTerminal(int(f.Fd())) {
		pw, err := readPassword(int(f.Fd()))
		fmt.Fprintln(p.w)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// NewPassword asks twice and requires both answers to match.
func (p *prompter) NewPassword(label string) (string, error) {
	first, err := p.Password(label)
	if err != nil {
		return "", err
	}
	second, err := p.Password("Repeat " + strings.ToLower(label[:1]) + label[1:])
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errPasswordMismatch
	}
	return first, nil
}
