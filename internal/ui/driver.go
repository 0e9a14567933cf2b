// Package ui runs the interactive prompt loop in the terminal.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Cyclone1070/sqlagent/internal/agent"
	"github.com/Cyclone1070/sqlagent/internal/tool"
	"github.com/Cyclone1070/sqlagent/internal/ui/services"
	"github.com/Cyclone1070/sqlagent/internal/ui/views"
	"github.com/chzyer/readline"
)

// Prompt is shown before every line of input.
const Prompt = "Enter your prompt (or 'quit' to exit): "

var exitWords = map[string]bool{"quit": true, "exit": true, "q": true}

// Driver reads prompts, hands them to the agent and prints the replies.
type Driver struct {
	in       LineReader
	out      io.Writer
	agent    invoker
	renderer services.MarkdownRenderer
	spinner  SpinnerFactory
	width    int
}

// Option customizes a Driver.
type Option func(*Driver)

// WithRenderer renders prose replies as markdown. Without it prose is
// printed as-is.
func WithRenderer(r services.MarkdownRenderer, width int) Option {
	return func(d *Driver) {
		d.renderer = r
		d.width = width
	}
}

// WithSpinner shows an activity indicator while the agent works.
func WithSpinner(f SpinnerFactory) Option {
	return func(d *Driver) {
		d.spinner = f
	}
}

// NewDriver creates a driver reading from in and writing to out.
func NewDriver(in LineReader, out io.Writer, a invoker, opts ...Option) *Driver {
	d := &Driver{
		in:      in,
		out:     out,
		agent:   a,
		spinner: NoopSpinner,
		width:   80,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ShowTools prints the tools available to the session.
func (d *Driver) ShowTools(specs []tool.Spec) {
	if len(specs) == 0 {
		return
	}
	fmt.Fprintln(d.out, views.RenderToolList(services.FormatToolSpecs(specs)))
}

// Run loops until an exit word, end of input, an interrupt or ctx is
// cancelled. Errors from the agent are printed and the loop continues.
// Only a failure to read input is returned.
func (d *Driver) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			d.exiting()
			return nil
		}

		line, err := d.in.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				d.exiting()
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if isExit(line) {
			return nil
		}

		spin := d.spinner("Thinking")
		reply, err := d.agent.Invoke(ctx, line)
		spin.Stop()

		if err != nil {
			if ctx.Err() != nil {
				d.exiting()
				return nil
			}
			fmt.Fprintln(d.out)
			fmt.Fprintln(d.out, views.RenderError(fmt.Sprintf("Error occurred: %v", err)))
			continue
		}

		fmt.Fprintln(d.out)
		fmt.Fprintln(d.out, views.RenderResponseLabel("Response:"))
		fmt.Fprintln(d.out, d.render(reply))
	}
}

func (d *Driver) render(reply agent.Reply) string {
	if reply.Kind != agent.KindText || d.renderer == nil {
		return reply.Text
	}
	return services.RenderMarkdown(reply.Text, d.width, d.renderer)
}

func (d *Driver) exiting() {
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, "Exiting...")
}

func isExit(line string) bool {
	return exitWords[strings.ToLower(strings.TrimRight(line, "\r\n"))]
}
