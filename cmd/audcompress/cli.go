// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ik5/audcompress/profile"
)

const defaultInput = "assets/audio/affirmations-with-music.mp3"

// CLI is the command line accepted by audcompress.
type CLI struct {
	Input   string `arg:"" optional:"" default:"${default_input}" help:"Audio file to compress (wav, mp3, ogg, aiff)."`
	Profile string `arg:"" optional:"" default:"${default_profile}" help:"Compression profile: ${profiles}."`

	Verbose bool `short:"v" help:"Log every pipeline stage to stderr."`
	NoColor bool `help:"Disable colored output."`
}

// ExitError carries the process exit code out of run.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Message
}

// exitRequest is raised through kong.Exit so help can stop parsing without
// killing the process.
type exitRequest int

// parse fills a CLI from args. exit is true when kong already handled the
// request (help), in which case run should return without error.
func parse(args []string, stdout, stderr io.Writer) (cli CLI, exit bool, err error) {
	parser, err := kong.New(&cli,
		kong.Name("audcompress"),
		kong.Description("Shrink audio files to MP3 with a voice, balanced or quality preset."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(exitRequest(code)) }),
		kong.Vars{
			"default_input":   defaultInput,
			"default_profile": profile.Default,
			"profiles":        strings.Join(profile.Names(), ", "),
		},
	)
	if err != nil {
		return cli, false, err
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		code, ok := r.(exitRequest)
		if !ok {
			panic(r)
		}
		exit = true
		if code != 0 {
			err = &ExitError{Code: int(code)}
		}
	}()

	if _, err := parser.Parse(args); err != nil {
		return cli, false, &ExitError{Code: 1, Message: err.Error()}
	}

	return cli, false, nil
}
