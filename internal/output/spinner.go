package output

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner runs action while a spinner titled title is shown on stderr.
// Without a terminal the action runs directly.
func RunWithSpinner(ctx context.Context, title string, action func() error) error {
	if !IsTTY() {
		return action()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- action()
	}()

	var actionErr error
	s := spinner.New().Title(title).Context(ctx)
	spinnerErr := s.Action(func() {
		actionErr = <-errCh
	}).Run()
	if spinnerErr != nil {
		return fmt.Errorf("spinner error: %w", spinnerErr)
	}

	return actionErr
}
