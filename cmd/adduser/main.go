// Command adduser hires an employee from the terminal: it prompts for a
// credential secret, hashes it, and writes the new roster row through the
// selected store. The employee logs in with the first-login flag set and is
// forced to pick a fresh secret.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/warden/leave-engine/auth"
	"github.com/warden/leave-engine/leave"
	filestore "github.com/warden/leave-engine/store/file"
	"github.com/warden/leave-engine/store/sqlite"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	name := fs.String("name", "", "Employee full name")
	contract := fs.String("contract", "guard", "Contract class: guard or fiduciary")
	exempt := fs.Bool("exempt", false, "Exempt from the daily ceiling")
	secretFlag := fs.String("secret", "", "Credential secret (optional, will prompt if omitted)")
	backend := fs.String("backend", "sqlite", "Storage backend: sqlite or file")
	dbPath := fs.String("db", "leave.db", "SQLite database path")
	dataDir := fs.String("data", "./data", "Data directory for the file backend")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" {
		fmt.Fprintln(stdout, "Usage: adduser -name <full name> [-contract guard|fiduciary] [-exempt] [-secret <secret>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flag: name")
	}
	if !leave.Contract(*contract).Valid() {
		return fmt.Errorf("%w: %q", leave.ErrUnknownContract, *contract)
	}

	secret := *secretFlag
	if secret == "" {
		fmt.Fprint(stdout, "Secret: ")
		var err error
		secret, err = readSecret(stdin)
		if err != nil {
			return fmt.Errorf("failed to read secret: %w", err)
		}
		fmt.Fprintln(stdout)
	}
	if strings.TrimSpace(secret) == "" {
		return fmt.Errorf("secret cannot be empty")
	}

	store, closer, err := openStore(*backend, *dbPath, *dataDir)
	if err != nil {
		return err
	}
	defer closer()

	ctx := context.Background()
	roster, err := store.LoadRoster(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}
	if _, err := leave.FindEmployee(roster, *name); err == nil {
		return fmt.Errorf("employee %q already exists", *name)
	}

	hash, err := auth.HashSecret(secret)
	if err != nil {
		return fmt.Errorf("failed to hash secret: %w", err)
	}

	roster = append(roster, leave.Employee{
		Name:             strings.TrimSpace(*name),
		Contract:         leave.Contract(*contract),
		CredentialSecret: hash,
		FirstLogin:       true,
		Exempt:           *exempt,
	})
	if err := store.SaveRoster(ctx, roster); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}

	fmt.Fprintf(stdout, "Employee %s hired (%s contract)\n", *name, *contract)
	return nil
}

func openStore(backend, dbPath, dataDir string) (leave.Store, func() error, error) {
	switch backend {
	case "sqlite":
		s, err := sqlite.New(dbPath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "file":
		s, err := filestore.New(dataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q (want sqlite or file)", backend)
	}
}

func readSecret(stdin io.Reader) (string, error) {
	// Read without echo when attached to a terminal.
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// Fallback for non-terminal input (tests, pipes).
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
