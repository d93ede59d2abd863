// Command ember-client is a one-shot CLI for Ember's network protocol:
// each invocation issues exactly one set/get/rm command and exits.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sagararora86/ember/internal/buildinfo"
	"github.com/sagararora86/ember/internal/client"
	"github.com/sagararora86/ember/internal/protocol"
	"github.com/sagararora86/ember/pkg/kvserrors"
	"github.com/sagararora86/ember/pkg/options"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]

	if cmd == "--version" || cmd == "-version" {
		fmt.Println(buildinfo.Version)
		return
	}

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	addr := fs.String("addr", options.DefaultAddr, "server address")

	switch cmd {
	case "set":
		args := parseArgs(fs, os.Args[2:])
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "usage: ember-client set KEY VALUE [--addr host:port]")
			os.Exit(1)
		}
		runSet(*addr, args[0], args[1])

	case "get":
		args := parseArgs(fs, os.Args[2:])
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "usage: ember-client get KEY [--addr host:port]")
			os.Exit(1)
		}
		runGet(*addr, args[0])

	case "rm":
		args := parseArgs(fs, os.Args[2:])
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "usage: ember-client rm KEY [--addr host:port]")
			os.Exit(1)
		}
		runRemove(*addr, args[0])

	default:
		usage()
		os.Exit(1)
	}
}

// parseArgs parses fs's flags wherever they appear in args, before, between
// or after the positional arguments, and returns the positional ones.
func parseArgs(fs *flag.FlagSet, args []string) []string {
	var positional []string
	for fs.Parse(args); fs.NArg() > 0; fs.Parse(args) {
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
	return positional
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ember-client <set|get|rm> ... [--addr host:port]")
}

func runSet(addr, key, value string) {
	c := client.New(addr)
	if err := c.Set(key, value); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runGet prints "Key not found" and exits zero when the key is absent,
// per the protocol's rationale that an absent key is an expected
// condition for get, not a caller-facing failure.
func runGet(addr, key string) {
	c := client.New(addr)
	value, err := c.Get(key)
	if err != nil {
		if kvserrors.IsKeyNotFound(err) {
			fmt.Println(protocol.KeyNotFoundMessage)
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// runRemove exits non-zero on any failure, including an absent key.
func runRemove(addr, key string) {
	c := client.New(addr)
	if err := c.Remove(key); err != nil {
		if kvserrors.IsKeyNotFound(err) {
			fmt.Fprintln(os.Stderr, protocol.KeyNotFoundMessage)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
