// ABOUTME: Interactive credential prompts built on huh forms
// ABOUTME: Used when login or register flags leave fields empty

package cmd

import (
	"errors"

	"github.com/charmbracelet/huh"
)

func notEmpty(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// promptLogin asks for the missing login fields. Tests replace it.
var promptLogin = func(username, password *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(username).
				Validate(notEmpty("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(password).
				Validate(notEmpty("password")),
		),
	).Run()
}

// promptRegister asks for the missing registration fields. Tests replace it.
var promptRegister = func(username, password, confirm *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(username).
				Validate(notEmpty("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(password).
				Validate(notEmpty("password")),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(confirm),
		),
	).Run()
}
