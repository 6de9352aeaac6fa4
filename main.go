package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/illarion/passvault/cmd"
	"github.com/illarion/passvault/internal/crypto"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "register":
		runRegister(ctx, os.Args[2:])
	case "login":
		runLogin(ctx, os.Args[2:])
	case "logout":
		runLogout(ctx, os.Args[2:])
	case "whoami":
		runWhoami(ctx, os.Args[2:])
	case "add":
		runAdd(ctx, os.Args[2:])
	case "update":
		runUpdate(ctx, os.Args[2:])
	case "get":
		runGet(ctx, os.Args[2:])
	case "rm":
		runRm(ctx, os.Args[2:])
	case "ls":
		runLs(ctx, os.Args[2:])
	case "search":
		runSearch(ctx, os.Args[2:])
	case "export":
		runExport(ctx, os.Args[2:])
	case "import":
		runImport(ctx, os.Args[2:])
	case "strength":
		runStrength(ctx, os.Args[2:])
	case "generate":
		runGenerate(ctx, os.Args[2:])
	case "keyring":
		runKeyring(ctx, os.Args[2:])
	case "status":
		runStatus(ctx, os.Args[2:])
	case "compact":
		runCompact(ctx, os.Args[2:])
	case "completion":
		runCompletion(ctx, os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// parse parses flags placed before or after positional arguments
func parse(fs *flag.FlagSet, args []string) []string {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// optionalArg returns the first positional argument, or ""
func optionalArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// requireArg returns the first positional argument or exits with usage
func requireArg(args []string, usage string) string {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s\n", usage)
		os.Exit(1)
	}
	return args[0]
}

func runRegister(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	rest := parse(fs, args)

	cmd.Register(ctx, optionalArg(rest))
}

func runLogin(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	rest := parse(fs, args)

	cmd.Login(ctx, optionalArg(rest))
}

func runLogout(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("logout", flag.ExitOnError)
	parse(fs, args)

	cmd.Logout(ctx)
}

func runWhoami(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("whoami", flag.ExitOnError)
	parse(fs, args)

	cmd.Whoami(ctx)
}

func runAdd(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	user := fs.String("user", "", "Username for the application")
	generate := fs.Int("generate", 0, "Generate a random password of this length")
	rest := parse(fs, args)

	app := requireArg(rest, "passvault add <app> [--user <name>] [--generate <length>]")
	if *generate != 0 && *generate < crypto.MinPasswordLength {
		fmt.Fprintf(os.Stderr, "Error: --generate must be at least %d\n", crypto.MinPasswordLength)
		os.Exit(1)
	}
	cmd.Add(ctx, app, *user, *generate)
}

func runUpdate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	appName := fs.String("app", "", "New application name")
	user := fs.String("user", "", "New username")
	password := fs.Bool("password", false, "Prompt for a new password")
	rest := parse(fs, args)

	ref := requireArg(rest, "passvault update <id|app> [--app <name>] [--user <name>] [--password]")

	// Only flags that were given are applied, so --user "" clears the username
	var appPtr, userPtr *string
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "app":
			appPtr = appName
		case "user":
			userPtr = user
		}
	})
	cmd.Update(ctx, ref, appPtr, userPtr, *password)
}

func runGet(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	show := fs.Bool("show", false, "Print the password")
	rest := parse(fs, args)

	cmd.Get(ctx, requireArg(rest, "passvault get <id|app> [--show]"), *show)
}

func runRm(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	rest := parse(fs, args)

	cmd.Remove(ctx, rest)
}

func runLs(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	parse(fs, args)

	cmd.List(ctx)
}

func runSearch(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	rest := parse(fs, args)

	cmd.Search(ctx, optionalArg(rest))
}

func runExport(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	rest := parse(fs, args)

	cmd.Export(ctx, optionalArg(rest))
}

func runImport(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "Show changes without importing")
	rest := parse(fs, args)

	cmd.Import(ctx, requireArg(rest, "passvault import <file> [--dry-run]"), *dryRun)
}

func runStrength(_ context.Context, args []string) {
	fs := flag.NewFlagSet("strength", flag.ExitOnError)
	user := fs.String("user", "", "Username the password should not resemble")
	parse(fs, args)

	cmd.Strength(*user)
}

func runGenerate(_ context.Context, args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	length := fs.Int("length", crypto.DefaultPasswordLength, "Password length")
	parse(fs, args)

	cmd.Generate(*length)
}

func runKeyring(_ context.Context, args []string) {
	fs := flag.NewFlagSet("keyring", flag.ExitOnError)
	generate := fs.Bool("generate", false, "Generate a new random secret (save only)")
	rest := parse(fs, args)

	switch requireArg(rest, "passvault keyring <save|delete|status>") {
	case "save":
		cmd.KeyringSave(*generate)
	case "delete":
		cmd.KeyringDelete()
	case "status":
		cmd.KeyringStatus()
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring command: %s\n", rest[0])
		os.Exit(1)
	}
}

func runStatus(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	parse(fs, args)

	cmd.Status(ctx)
}

func runCompact(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("compact", flag.ExitOnError)
	parse(fs, args)

	cmd.Compact(ctx)
}

func runCompletion(_ context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: passvault completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}
