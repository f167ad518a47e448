package main

import (
	"errors"
	"regexp"
)

// Input validation lives in the CLI, not the core: failures here are shown
// to the user for re-entry and never reach the ledger.

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const minPasswordLen = 8

var (
	errEmptyName     = errors.New("Full name cannot be empty. Try again!")
	errBadEmail      = errors.New("Invalid email! Please try again.")
	errShortPassword = errors.New("This password is too short. Please use at least 8 characters.")
)

func validateName(name string) error {
	if name == "" {
		return errEmptyName
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return errBadEmail
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return errShortPassword
	}
	return nil
}
