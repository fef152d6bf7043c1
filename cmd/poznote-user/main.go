package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/term"

	"poznote/internal/auth"
	"poznote/internal/config"
	"poznote/internal/store"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 || args[0] == "list" {
		if err := run(listUsers); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	switch args[0] {
	case "add":
		if len(args) != 2 {
			usage()
			os.Exit(2)
		}
		if err := run(func(ctx context.Context, st *store.Store) error {
			return addUser(ctx, st, args[1])
		}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "remove":
		if len(args) != 2 {
			usage()
			os.Exit(2)
		}
		if err := run(func(ctx context.Context, st *store.Store) error {
			return removeUser(ctx, st, args[1])
		}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: poznote-user [list|add|remove] <username>")
}

func run(fn func(context.Context, *store.Store) error) error {
	cfg := config.Load()
	if cfg.DataPath == "" {
		return errors.New("POZNOTE_DATA_PATH is required")
	}
	st, err := store.OpenWithOptions(filepath.Join(cfg.DataPath, "poznote.sqlite"), store.Options{
		LockTimeout: cfg.LockTimeout,
	})
	if err != nil {
		return err
	}
	defer st.Close()
	ctx := context.Background()
	if err := st.Init(ctx); err != nil {
		return err
	}
	return fn(ctx, st)
}

func listUsers(ctx context.Context, st *store.Store) error {
	users, err := st.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(os.Stdout, "no users")
		return nil
	}
	for _, user := range users {
		fmt.Fprintf(os.Stdout, "%d\t%s\n", user.ID, user.Username)
	}
	return nil
}

func addUser(ctx context.Context, st *store.Store, username string) error {
	password, err := promptPassword()
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	id, err := st.CreateUser(ctx, username, hash)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "user %s added (id %d)\n", username, id)
	return nil
}

func removeUser(ctx context.Context, st *store.Store, username string) error {
	removed, err := st.DeleteUser(ctx, username)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("user %s not found", username)
	}
	fmt.Fprintf(os.Stdout, "user %s removed\n", username)
	return nil
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	fmt.Fprint(os.Stderr, "Repeat password: ")
	second, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	password := strings.TrimSpace(string(first))
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	return password, nil
}
