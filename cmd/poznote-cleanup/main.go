// poznote-cleanup is an operational tool for pruning orphaned rows: it lists
// workspaces, deletes settings keys, bulk-reassigns entries between
// workspaces and removes folder rows by id.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"poznote/internal/config"
	"poznote/internal/store"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	if err := run(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: poznote-cleanup <command>

commands:
  workspaces                      list workspace names
  delete-setting <key>            delete a settings row by exact key
  reassign-entries <from> <to>    move all entries between workspaces
  delete-folder <id>              delete one folder row by id`)
}

func run(args []string) error {
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

	switch args[0] {
	case "workspaces":
		names, err := st.ListWorkspaces(ctx)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(os.Stdout, "no workspaces")
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(os.Stdout, name)
		}
		return nil
	case "delete-setting":
		if len(args) != 2 {
			usage()
			os.Exit(2)
		}
		deleted, err := st.DeleteSetting(ctx, args[1])
		if err != nil {
			return err
		}
		if !deleted {
			fmt.Fprintf(os.Stdout, "setting %q not found\n", args[1])
			return nil
		}
		fmt.Fprintf(os.Stdout, "setting %q deleted\n", args[1])
		return nil
	case "reassign-entries":
		if len(args) != 3 {
			usage()
			os.Exit(2)
		}
		n, err := st.ReassignEntriesWorkspace(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%d entries moved from %q to %q\n", n, args[1], args[2])
		return nil
	case "delete-folder":
		if len(args) != 2 {
			usage()
			os.Exit(2)
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid folder id %q", args[1])
		}
		deleted, err := st.DeleteFolderRow(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			fmt.Fprintf(os.Stdout, "folder %d not found\n", id)
			return nil
		}
		fmt.Fprintf(os.Stdout, "folder %d deleted\n", id)
		return nil
	default:
		usage()
		os.Exit(2)
		return nil
	}
}
