package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/pipeline"
)

// Compile-time interface checks.
var (
	_ md2slides.Prompter = (*surveyPrompter)(nil)
	_ md2slides.Prompter = noInputPrompter{}
)

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newPrompter returns the prompter of a run: the injected one, terminal
// prompts when interactive, and defaults only otherwise.
func newPrompter(env *Environment, noInput bool) md2slides.Prompter {
	switch {
	case env.Prompter != nil:
		return env.Prompter
	case noInput || !env.Interactive:
		return noInputPrompter{}
	default:
		return &surveyPrompter{stdio: survey.WithStdio(os.Stdin, os.Stdout, os.Stderr)}
	}
}

// surveyPrompter asks questions on the terminal. Requests with options
// become a filterable selection, the others a text input.
type surveyPrompter struct {
	stdio survey.AskOpt
}

func (p *surveyPrompter) Prompt(ctx context.Context, req md2slides.PromptRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	message := req.Message
	if message == "" {
		message = req.Field
	}

	var prompt survey.Prompt
	if len(req.Options) > 0 {
		sel := &survey.Select{Message: message + ":", Options: req.Options}
		if req.Default != "" {
			sel.Default = req.Default
		}
		prompt = sel
	} else {
		prompt = &survey.Input{Message: message + ":", Default: req.Default}
	}

	var answer string
	err := survey.AskOne(prompt, &answer, p.stdio)
	switch {
	case errors.Is(err, terminal.InterruptErr):
		return "", pipeline.ErrPromptAborted
	case err != nil:
		return "", fmt.Errorf("prompting for %s: %w", req.Field, err)
	}
	return answer, nil
}

// noInputPrompter answers with the default and cancels questions that have
// none.
type noInputPrompter struct{}

func (noInputPrompter) Prompt(_ context.Context, req md2slides.PromptRequest) (string, error) {
	if req.Default != "" {
		return req.Default, nil
	}
	return "", pipeline.ErrPromptAborted
}
