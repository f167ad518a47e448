package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// runShell is the default interactive loop: choose login or register until
// the user quits. The subcommands run the same flows one-shot.
func runShell(cmd *cobra.Command) error {
	store, led, err := openLedger()
	if err != nil {
		return err
	}

	fmt.Println("Welcome to minibank.")
	sc := bufio.NewScanner(os.Stdin)
	for {
		choice := promptLine(sc, "Do you want to (1)login or (2)register? ")
		switch choice {
		case "1":
			acct, ok := runLogin(sc, store)
			if !ok {
				fmt.Println("Login failed. Please try again.")
				continue
			}
			if err := runMenu(cmd.Context(), sc, led, acct); err != nil {
				return err
			}
		case "2":
			if err := runRegister(cmd.Context(), sc, led); err != nil {
				return err
			}
		default:
			decision := promptLine(sc, "Incorrect input. Do you want to exit? Y/N: ")
			if strings.EqualFold(decision, "y") {
				return nil
			}
		}
	}
}
