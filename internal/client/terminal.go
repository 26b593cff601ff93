package client

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// readPassword is a seam over term.ReadPassword.
var readPassword = term.ReadPassword

// terminalPrompter reads secrets from the controlling terminal. When stdin is
// not a terminal it falls back to reading one line, so scripts can pipe the
// master password in.
type terminalPrompter struct {
	in  *os.File
	out io.Writer

	lines *bufio.Reader
}

func newTerminalPrompter(in *os.File, out io.Writer) *terminalPrompter {
	return &terminalPrompter{in: in, out: out}
}

func (p *terminalPrompter) ReadSecret(prompt string) (string, error) {
	fd := int(p.in.Fd())
	if !term.IsTerminal(fd) {
		return p.readLine()
	}

	fmt.Fprint(p.out, prompt)
	secret, err := readPassword(fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return string(secret), nil
}

func (p *terminalPrompter) readLine() (string, error) {
	if p.lines == nil {
		p.lines = bufio.NewReader(p.in)
	}
	line, err := p.lines.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("%w and nothing was piped in", ErrNotATerminal)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// startSpinner shows progress on w while a slow step runs. The spinner
// draws nothing when w is not a terminal.
func startSpinner(w io.Writer, suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = suffix
	s.Start()
	return s
}
