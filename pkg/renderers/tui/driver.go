package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig configures the prompt for a single-line field.
type InputConfig struct {
	Message string
	Default string
	Help    string
}

// ConfirmConfig configures a yes/no prompt, such as a section's inclusion.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures a single choice, such as the report language.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
	PageSize     int
}

// TextAreaConfig configures the prompt for a multi-line field. Survey ends
// multi-line input on an empty line.
type TextAreaConfig struct {
	Message string
	Default string
	Help    string
}

// PromptDriver is the terminal a Session talks to.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out  io.Writer
	opts []survey.AskOpt
}

// NewSurveyDriver returns the survey-backed driver. Prompts use the process
// terminal; section headings and the final report go to out (stdout when
// nil).
func NewSurveyDriver(out io.Writer) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	d := &surveyDriver{out: out}
	if f, ok := out.(*os.File); ok {
		d.opts = append(d.opts, survey.WithStdio(os.Stdin, f, os.Stderr))
	}
	return d
}

func (d *surveyDriver) ask(ctx context.Context, prompt survey.Prompt, answer any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := survey.AskOne(prompt, answer, d.opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return ErrAborted
		}
		return err
	}
	return nil
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	var answer string
	err := d.ask(ctx, &survey.Input{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &answer)
	return answer, err
}

func (d *surveyDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	var answer string
	err := d.ask(ctx, &survey.Multiline{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &answer)
	return answer, err
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	answer := cfg.Default
	err := d.ask(ctx, &survey.Confirm{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &answer)
	return answer, err
}

// Select returns the chosen index, or -1 when the answer is not one of the
// options.
func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help, PageSize: cfg.PageSize}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	var answer string
	if err := d.ask(ctx, prompt, &answer); err != nil {
		return -1, err
	}
	return slices.Index(cfg.Options, answer), nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}
