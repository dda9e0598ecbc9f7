// Command mpttool is a small external consumer of the trie library: it
// replays a script of insert/get/delete/root operations against a single
// in-memory trie and prints the results.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"mpt/store"
	"mpt/trie"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mpttool",
		Short: "Drive a Modified Merkle Patricia Trie from the command line",
	}
	root.AddCommand(newRunCmd())
	return root
}

// newRunCmd reads a script of operations from a file (or stdin with "-",
// the default) and replays them against a single trie, printing get
// results and root hashes as their lines are reached. Script lines:
//
//	insert <key> <value>
//	delete <key>
//	get <key>
//	root
//
// Blank lines and lines starting with # are ignored.
func newRunCmd() *cobra.Command {
	var scriptPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay a script of insert/get/delete/root operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := os.Stdin
			if scriptPath != "" && scriptPath != "-" {
				f, err := os.Open(scriptPath)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return runScript(cmd.OutOrStdout(), in)
		},
	}
	cmd.Flags().StringVarP(&scriptPath, "script", "s", "-", "path to a script file, or - for stdin")
	return cmd
}

func runScript(out io.Writer, in io.Reader) error {
	tr := trie.New(store.NewMemStore())

	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := execLine(out, tr, line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

func execLine(out io.Writer, tr *trie.Trie, line string) error {
	fields := strings.Fields(line)
	switch fields[0] {
	case "insert":
		if len(fields) != 3 {
			return fmt.Errorf("insert requires <key> <value>, got %q", line)
		}
		return tr.TryInsert([]byte(fields[1]), []byte(fields[2]))

	case "delete":
		if len(fields) != 2 {
			return fmt.Errorf("delete requires <key>, got %q", line)
		}
		return tr.TryDelete([]byte(fields[1]))

	case "get":
		if len(fields) != 2 {
			return fmt.Errorf("get requires <key>, got %q", line)
		}
		value, err := tr.TryGet([]byte(fields[1]))
		if err != nil {
			return err
		}
		if value == nil {
			fmt.Fprintf(out, "%s -> (absent)\n", fields[1])
		} else {
			fmt.Fprintf(out, "%s -> %s\n", fields[1], value)
		}
		return nil

	case "root":
		root := tr.RootHash()
		fmt.Fprintf(out, "%x\n", root)
		return nil

	default:
		return fmt.Errorf("unknown operation %q", fields[0])
	}
}
