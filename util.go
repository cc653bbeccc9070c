package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// userAgent identifies this tool to the Travis API.
func userAgent() string {
	return fmt.Sprintf("trytravis/%s (https://github.com/sethmlarson/trytravis)", Version)
}

// prompter reads interactive answers from a command's stdin.  One buffered
// reader is shared by all of a command's prompts; the reader buffers ahead,
// so a fresh one per prompt would lose lines that are already piped in.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{
		in:  bufio.NewReader(cmd.InOrStdin()),
		out: cmd.OutOrStdout(),
	}
}

// Line prints a prompt and reads one trimmed line.
func (p *prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
