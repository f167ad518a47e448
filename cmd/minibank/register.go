package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sapliy/minibank/internal/ledger"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, led, err := openLedger()
		if err != nil {
			return err
		}
		sc := bufio.NewScanner(os.Stdin)
		return runRegister(cmd.Context(), sc, led)
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}

// runRegister walks the interactive registration flow: name, email and a
// confirmed password, each re-prompted until valid, then a durable register
// through the ledger.
func runRegister(ctx context.Context, sc *bufio.Scanner, led *ledger.Ledger) error {
	name := promptValid(sc, "Full Name: ", validateName)

	for {
		email := promptValid(sc, "Email: ", validateEmail)

		var password string
		for {
			fmt.Println("Please use special characters, numbers, and lower and upper case letters!")
			password = promptPassword(sc, "Password: ")
			if err := validatePassword(password); err != nil {
				fmt.Println(err)
				continue
			}
			confirm := promptPassword(sc, "Type the password again: ")
			if password != confirm {
				fmt.Println("Passwords don't match. Try again!")
				continue
			}
			break
		}

		hash, err := auth.Hash(password)
		if err != nil {
			return fmt.Errorf("hash credential: %w", err)
		}

		acct, err := led.Register(ctx, name, email, hash)
		if errors.Is(err, ledger.ErrDuplicateEmail) {
			fmt.Println("This email is already in use. Please try again.")
			continue
		}
		if err != nil {
			return err
		}

		fmt.Printf("Registration successful! Your account number is: %s\n", acct.Number)
		return nil
	}
}
