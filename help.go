package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Println("passvault - Local multi-user credential vault")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  passvault <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register    Create a vault user")
	fmt.Println("  login       Start a session")
	fmt.Println("  logout      End the session")
	fmt.Println("  whoami      Show the logged-in user")
	fmt.Println("  add         Store a credential")
	fmt.Println("  update      Change a credential")
	fmt.Println("  get         Show a credential")
	fmt.Println("  rm          Remove credentials")
	fmt.Println("  ls          List credentials")
	fmt.Println("  search      Search credentials by app or username")
	fmt.Println("  export      Export credentials to an encrypted file")
	fmt.Println("  import      Import credentials from an encrypted file")
	fmt.Println("  strength    Rate a password")
	fmt.Println("  generate    Generate a random password")
	fmt.Println("  keyring     Manage the encryption secret in the OS keyring")
	fmt.Println("  status      Show vault status")
	fmt.Println("  compact     Compact vault to reclaim disk space")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  passvault keyring save --generate        # Create and store an encryption secret")
	fmt.Println("  passvault register alice                 # Create a user")
	fmt.Println("  passvault login alice                    # Start a session")
	fmt.Println("  passvault add github --user alice        # Store a credential")
	fmt.Println("  passvault get github --show              # Reveal it")
	fmt.Println()
	fmt.Println("Use 'passvault help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "register":
		fmt.Println("passvault register [<username>]")
		fmt.Println()
		fmt.Println("Creates a vault user. Prompts for the username when not given,")
		fmt.Println("and for a password twice unless PASSVAULT_PASSWORD is set.")
		fmt.Println("The password must reach the configured strength score")
		fmt.Println("(PASSVAULT_MIN_SCORE, default 3 of 4). Weak passwords are")
		fmt.Println("rejected with suggestions.")
	case "login":
		fmt.Println("passvault login [<username>]")
		fmt.Println()
		fmt.Println("Verifies the password and starts a session stored in the vault file.")
		fmt.Println("The session lasts until 'passvault logout'.")
	case "logout":
		fmt.Println("passvault logout")
		fmt.Println()
		fmt.Println("Ends the session. Safe to run when nobody is logged in.")
	case "whoami":
		fmt.Println("passvault whoami")
		fmt.Println()
		fmt.Println("Shows the logged-in user.")
	case "add":
		fmt.Println("passvault add <app> [--user <name>] [--generate <length>]")
		fmt.Println()
		fmt.Println("Encrypts and stores a password for an application. An existing")
		fmt.Println("credential for the same app (ignoring case) is replaced.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  --user       Username for the application")
		fmt.Println("  --generate   Generate a random password of this length and print it")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  passvault add github --user alice")
		fmt.Println("  passvault add aws --user root --generate 24")
	case "update":
		fmt.Println("passvault update <id|app> [--app <name>] [--user <name>] [--password]")
		fmt.Println()
		fmt.Println("Changes only the fields given.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  --app        New application name")
		fmt.Println("  --user       New username (an empty value clears it)")
		fmt.Println("  --password   Prompt for a new password")
	case "get":
		fmt.Println("passvault get <id|app> [--show]")
		fmt.Println()
		fmt.Println("Decrypts and shows a credential. The password is masked unless --show is given.")
	case "rm":
		fmt.Println("passvault rm <id|app> [<id|app>...]")
		fmt.Println()
		fmt.Println("Removes credentials.")
	case "ls":
		fmt.Println("passvault ls")
		fmt.Println()
		fmt.Println("Lists credentials without decrypting them.")
	case "search":
		fmt.Println("passvault search <query>")
		fmt.Println()
		fmt.Println("Lists credentials whose app name or username contains the query, ignoring case.")
	case "export":
		fmt.Println("passvault export [<file>]")
		fmt.Println()
		fmt.Println("Writes every credential, encrypted with the vault secret, to a file")
		fmt.Println("in the current directory (mode 0600), or to stdout when no file is given.")
		fmt.Println("Warns when the file is inside a git repository and not ignored.")
	case "import":
		fmt.Println("passvault import <file> [--dry-run]")
		fmt.Println()
		fmt.Println("Stores the credentials from an export file for the logged-in user.")
		fmt.Println("The file must have been exported with the same encryption secret.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  --dry-run    Show which credentials would change, without passwords")
	case "strength":
		fmt.Println("passvault strength [--user <name>]")
		fmt.Println()
		fmt.Println("Rates a password with the strict estimator used at registration")
		fmt.Println("and the quick character-class check.")
	case "generate":
		fmt.Println("passvault generate [--length <n>]")
		fmt.Println()
		fmt.Println("Prints a random password with letters, digits and symbols (default length 16).")
	case "keyring":
		fmt.Println("passvault keyring <save|delete|status> [--generate]")
		fmt.Println()
		fmt.Println("Manages the encryption secret in the OS keyring, keyed by vault ID.")
		fmt.Println("'save' stores PASSVAULT_ENCRYPTION_SECRET, a prompted secret,")
		fmt.Println("or a new random one with --generate.")
	case "status":
		fmt.Println("passvault status")
		fmt.Println()
		fmt.Println("Shows the vault file, user count, session and key source.")
		fmt.Println("Does not require a password.")
	case "compact":
		fmt.Println("passvault compact")
		fmt.Println()
		fmt.Println("Compacts the vault database to reclaim unused disk space.")
		fmt.Println("Does not require a password.")
	case "completion":
		fmt.Println("passvault completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(passvault completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(passvault completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  passvault completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
