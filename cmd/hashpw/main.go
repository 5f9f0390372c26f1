// Command hashpw prints a bcrypt hash for an accounts.yaml password_hash field.
//
//	hashpw 'secret'
//	echo 'secret' | hashpw
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dwikikusuma/rajah-storefront/internal/identity/app"
	"github.com/spf13/pflag"
)

func main() {
	pflag.Parse()

	if err := run(pflag.Args(), os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "hashpw:", err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	password, err := readPassword(args, in)
	if err != nil {
		return err
	}
	hash, err := app.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}

func readPassword(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		return nonEmpty(args[0])
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return nonEmpty(strings.TrimRight(line, "\r\n"))
}

func nonEmpty(p string) (string, error) {
	if p == "" {
		return "", errors.New("empty password")
	}
	return p, nil
}
