package cmd

import (
	"errors"
	"strings"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/screens"

	"github.com/manifoldco/promptui"
)

// terminalPrompter implements screens.Prompter with promptui.
type terminalPrompter struct{}

func (terminalPrompter) Ask(label string, validate func(string) error) (string, error) {
	p := promptui.Prompt{Label: label}
	if validate != nil {
		p.Validate = validate
	}
	return promptResult(p.Run())
}

func (terminalPrompter) Choose(label string, items []string) (int, string, error) {
	s := promptui.Select{
		Label: label,
		Items: items,
		Size:  10,
	}

	i, v, err := s.Run()
	if _, err := promptResult(v, err); err != nil {
		return 0, "", err
	}
	return i, v, nil
}

func askSecret(label string) (string, error) {
	p := promptui.Prompt{
		Label:    label,
		Mask:     '*',
		Validate: nonEmpty,
	}
	return promptResult(p.Run())
}

func nonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("this field is required")
	}
	return nil
}

func promptResult(v string, err error) (string, error) {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return "", screens.ErrAborted
	}
	return v, err
}
