// ABOUTME: Interactive prompts for missing command input
// ABOUTME: Uses huh forms to ask only for the fields not given as flags

package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/markalston/authctl/internal/tui/loginform"
	"github.com/markalston/authctl/internal/tui/styles"
)

// errPromptDisabled is returned when input is missing and --no-prompt is set
var errPromptDisabled = errors.New("missing required input and prompting is disabled")

// promptField describes one value that may need asking for
type promptField struct {
	title  string
	value  *string
	secret bool
}

// missingFields returns the fields whose value is still empty
func missingFields(fields []promptField) []promptField {
	var missing []promptField
	for _, f := range fields {
		if *f.value == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// promptMissing asks for any empty field, or fails when prompting is disabled
func promptMissing(fields ...promptField) error {
	missing := missingFields(fields)
	if len(missing) == 0 {
		return nil
	}
	if noPrompt || IsJSONOutput() {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = f.title
		}
		return fmt.Errorf("%w: %v", errPromptDisabled, names)
	}

	inputs := make([]huh.Field, 0, len(missing))
	for _, f := range missing {
		input := huh.NewInput().
			Title(f.title).
			Value(f.value).
			Validate(loginform.ValidateRequired(f.title))
		if f.secret {
			input = input.EchoMode(huh.EchoModePassword)
		}
		inputs = append(inputs, input)
	}

	return huh.NewForm(huh.NewGroup(inputs...)).
		WithTheme(styles.FormTheme()).
		Run()
}
