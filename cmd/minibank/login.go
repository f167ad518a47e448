package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sapliy/minibank/internal/ledger"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and manage your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, led, err := openLedger()
		if err != nil {
			return err
		}
		sc := bufio.NewScanner(os.Stdin)
		acct, ok := runLogin(sc, store)
		if !ok {
			return nil
		}
		return runMenu(cmd.Context(), sc, led, acct)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

// runLogin authenticates an account holder by email and password. The
// plaintext goes straight to the authenticator and nowhere else.
func runLogin(sc *bufio.Scanner, store *ledger.Store) (ledger.Account, bool) {
	email := promptLine(sc, "Email: ")
	password := promptPassword(sc, "Password: ")

	acct, found := store.FindByEmail(email)
	if !found {
		fmt.Println("User not found.")
		return ledger.Account{}, false
	}
	if !auth.Verify(password, acct.CredentialHash) {
		fmt.Println("Invalid password.")
		return ledger.Account{}, false
	}
	fmt.Println("Login successful!")
	return acct, true
}

// runMenu drives the post-login session until the holder exits.
func runMenu(ctx context.Context, sc *bufio.Scanner, led *ledger.Ledger, acct ledger.Account) error {
	for {
		choice := promptLine(sc, "What do you want to do?\n(1) Check balance\n(2) Send money\n(3) Deposit\n(4) Withdraw\n(5) Exit\n")
		switch choice {
		case "1":
			balance, err := led.Balance(ctx, acct.Number)
			if err != nil {
				printLedgerError(err)
				continue
			}
			fmt.Println("Balance:", balance)
		case "2":
			amount, ok := promptAmount(sc)
			if !ok {
				continue
			}
			recipient := promptLine(sc, "Enter the recipient's account number: ")
			if err := led.Transfer(ctx, acct.Number, recipient, amount); err != nil {
				printLedgerError(err)
				continue
			}
			fmt.Println("Transfer successful.")
		case "3":
			amount, ok := promptAmount(sc)
			if !ok {
				continue
			}
			balance, err := led.Deposit(ctx, acct.Number, amount)
			if err != nil {
				printLedgerError(err)
				continue
			}
			fmt.Println("New balance:", balance)
		case "4":
			amount, ok := promptAmount(sc)
			if !ok {
				continue
			}
			balance, err := led.Withdraw(ctx, acct.Number, amount)
			if err != nil {
				printLedgerError(err)
				continue
			}
			fmt.Println("New balance:", balance)
		case "5":
			return nil
		default:
			fmt.Println("Incorrect input.")
		}
	}
}

func promptAmount(sc *bufio.Scanner) (int64, bool) {
	raw := promptLine(sc, "Please enter the amount: ")
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || amount <= 0 {
		fmt.Println("Amount must be a positive whole number.")
		return 0, false
	}
	return amount, true
}

// printLedgerError maps domain errors onto the interactive messages; the
// core itself never prints.
func printLedgerError(err error) {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		fmt.Println("Insufficient funds.")
	case errors.Is(err, ledger.ErrAccountNotFound):
		fmt.Println("Recipient not found.")
	case errors.Is(err, ledger.ErrSameAccount):
		fmt.Println("You cannot send money to your own account.")
	case errors.Is(err, ledger.ErrInvalidAmount):
		fmt.Println("Amount must be greater than zero.")
	case errors.Is(err, ledger.ErrLockTimeout):
		fmt.Println("The account is busy, please try again.")
	default:
		fmt.Println("Operation failed:", err)
	}
}
