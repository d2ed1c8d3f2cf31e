package prompt

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/drujensen/toolpanel/internal/panel"
)

// FormPrompter asks for parameters with an interactive huh form.
type FormPrompter struct {
	Accessible bool
}

func NewFormPrompter(accessible bool) *FormPrompter {
	return &FormPrompter{Accessible: accessible}
}

func (p *FormPrompter) Prompt(ctx context.Context, req panel.PromptRequest) (string, bool, error) {
	var text string

	form := huh.NewForm(huh.NewGroup(
		huh.NewNote().
			Title(req.Title).
			Description("Example:\n"+req.Example),
		huh.NewText().
			Title("Parameters").
			Placeholder(req.Example).
			Lines(8).
			Value(&text),
	)).WithAccessible(p.Accessible)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", false, nil
		}
		return "", false, err
	}
	return text, true, nil
}

// StaticPrompter answers with text supplied up front, e.g. from a flag.
type StaticPrompter struct {
	Text string
}

func (p StaticPrompter) Prompt(ctx context.Context, req panel.PromptRequest) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	return p.Text, p.Text != "", nil
}

var (
	_ panel.Prompter = (*FormPrompter)(nil)
	_ panel.Prompter = StaticPrompter{}
)
