package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"rimmarsa.backend/pkg/crypto"
)

var (
	stdout         io.Writer = os.Stdout
	generateHashFn           = crypto.HashPassword
	fatalfFn                 = log.Fatalf
	osArgs                   = os.Args
)

type options struct {
	password string
	email    string
	name     string
	role     string
}

func parseArgs(args []string) (options, error) {
	fs := flag.NewFlagSet("genhash", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var opts options
	fs.StringVar(&opts.email, "email", "", "admin email; prints an INSERT for the admins table")
	fs.StringVar(&opts.name, "name", "Admin", "admin display name")
	fs.StringVar(&opts.role, "role", "admin", "admin role (admin or super_admin)")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() != 1 || fs.Arg(0) == "" {
		return opts, errors.New("usage: genhash [-email e] [-name n] [-role r] <password>")
	}
	opts.password = fs.Arg(0)
	if opts.role != "admin" && opts.role != "super_admin" {
		return opts, fmt.Errorf("unknown role %q", opts.role)
	}
	return opts, nil
}

func quoteSQL(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func adminInsert(opts options, hash string) string {
	return fmt.Sprintf(
		"INSERT INTO admins (id, email, name, password_hash, role, created_at, updated_at) VALUES (%s, %s, %s, %s, %s, NOW(), NOW());",
		quoteSQL(uuid.NewString()),
		quoteSQL(strings.ToLower(strings.TrimSpace(opts.email))),
		quoteSQL(opts.name),
		quoteSQL(hash),
		quoteSQL(opts.role),
	)
}

func run(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	hash, err := generateHashFn(opts.password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	fmt.Fprintf(stdout, "Bcrypt Hash: %s\n", hash)
	if opts.email != "" {
		fmt.Fprintln(stdout, adminInsert(opts, hash))
	}
	return nil
}

func main() {
	if err := run(osArgs[1:]); err != nil {
		fatalfFn("%v", err)
	}
}
