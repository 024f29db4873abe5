package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"regionorm/internal/diagfmt"
	"regionorm/internal/driver"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Normalize items typed interactively",
	Long: `Repl reads items from the terminal and prints them normalized. An item
spans lines until its braces and parentheses balance. ":explain" toggles
region reports, ":quit" or Ctrl-D leaves.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

const (
	replPrompt     = "» "
	replContPrompt = "… "
)

func runREPL(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd, ".")
	if err != nil {
		return err
	}
	s.opts.Cache = nil

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	session := &replSession{settings: s, out: rl.Stdout(), errOut: rl.Stderr()}
	for {
		chunk, err := readChunk(rl)
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if !session.eval(cmd, chunk) {
			break
		}
	}
	fmt.Fprintln(rl.Stdout())
	return nil
}

// readChunk reads lines until the accumulated text is balanced. Ctrl-C
// drops the partial chunk.
func readChunk(rl *readline.Instance) (string, error) {
	var sb strings.Builder
	rl.SetPrompt(replPrompt)
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
		if balanced(sb.String()) {
			return sb.String(), nil
		}
		rl.SetPrompt(replContPrompt)
	}
}

// balanced reports whether every ( and { in src is closed. Extra closers
// count as balanced so the parser gets to report them.
func balanced(src string) bool {
	depth := 0
	inComment := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		if inComment {
			if c == '\n' {
				inComment = false
			}
			continue
		}
		switch c {
		case '/':
			if i+1 < len(src) && src[i+1] == '/' {
				inComment = true
			}
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		}
	}
	return depth <= 0
}

type replSession struct {
	settings *settings
	out      io.Writer
	errOut   io.Writer
	count    int
}

// eval handles one chunk; false ends the session.
func (r *replSession) eval(cmd *cobra.Command, chunk string) bool {
	text := strings.TrimSpace(chunk)
	switch text {
	case "":
		return true
	case ":quit", ":q":
		return false
	case ":explain":
		r.settings.opts.Explain = !r.settings.opts.Explain
		fmt.Fprintf(r.out, "explain: %v\n", r.settings.opts.Explain)
		return true
	}

	r.count++
	name := fmt.Sprintf("<repl:%d>", r.count)
	res := driver.NormalizeSource(cmd.Context(), name, []byte(chunk), r.settings.opts)
	if res.Bag.Len() > 0 {
		diagfmt.Pretty(r.errOut, res.Bag, res.FileSet, r.settings.pretty)
	}
	if !res.Failed() {
		io.WriteString(r.out, res.Output)
	}
	return true
}
