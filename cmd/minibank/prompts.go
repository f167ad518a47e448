package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

func promptLine(sc *bufio.Scanner, label string) string {
	fmt.Print(label)
	sc.Scan()
	return strings.TrimSpace(sc.Text())
}

// promptValid re-prompts until validate accepts the input; validation
// failures are shown to the user and never fatal.
func promptValid(sc *bufio.Scanner, label string, validate func(string) error) string {
	for {
		v := promptLine(sc, label)
		if err := validate(v); err != nil {
			fmt.Println(err)
			continue
		}
		return v
	}
}

// promptPassword reads a password without echoing it. When stdin is not a
// terminal (tests, pipes) it falls back to a plain line read.
func promptPassword(sc *bufio.Scanner, label string) string {
	fmt.Print(label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err == nil {
			return strings.TrimSpace(string(b))
		}
	}
	sc.Scan()
	return strings.TrimSpace(sc.Text())
}
