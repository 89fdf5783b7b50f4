// Package forms provides huh-based forms for editing a cutting session.
package forms

import (
	"github.com/charmbracelet/huh"
)

// NewConfirmForm creates a yes/no form bound to value.
func NewConfirmForm(title, description, affirmative, negative string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative(affirmative).
				Negative(negative).
				Value(value),
		),
	).WithTheme(Theme())
}
