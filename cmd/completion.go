package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_passvault() {
    local cur prev words cword
    _init_completion || return

    local commands="register login logout whoami add update get rm ls search export import strength generate keyring status compact help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        add)
            COMPREPLY=($(compgen -W "--user --generate" -- "$cur"))
            ;;
        update)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "--app --user --password" -- "$cur"))
            else
                COMPREPLY=($(compgen -W "$(_passvault_apps)" -- "$cur"))
            fi
            ;;
        get)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "--show" -- "$cur"))
            else
                COMPREPLY=($(compgen -W "$(_passvault_apps)" -- "$cur"))
            fi
            ;;
        rm)
            COMPREPLY=($(compgen -W "$(_passvault_apps)" -- "$cur"))
            ;;
        export)
            _filedir
            ;;
        import)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "--dry-run" -- "$cur"))
            else
                _filedir
            fi
            ;;
        generate)
            COMPREPLY=($(compgen -W "--length" -- "$cur"))
            ;;
        keyring)
            COMPREPLY=($(compgen -W "save delete status --generate" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

_passvault_apps() {
    passvault ls 2>/dev/null | tail -n +2 | awk '{print $1}'
}

complete -F _passvault passvault
`

const zshCompletion = `#compdef passvault

_passvault() {
    local -a commands
    commands=(
        'register:Create a vault user'
        'login:Start a session'
        'logout:End the session'
        'whoami:Show the logged-in user'
        'add:Store a credential'
        'update:Change a credential'
        'get:Show a credential'
        'rm:Remove credentials'
        'ls:List credentials'
        'search:Search credentials'
        'export:Export credentials to an encrypted file'
        'import:Import credentials from an encrypted file'
        'strength:Rate a password'
        'generate:Generate a random password'
        'keyring:Manage the encryption secret in the OS keyring'
        'status:Show vault status'
        'compact:Compact vault to reclaim disk space'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'passvault commands' commands
            ;;
        args)
            case "${words[2]}" in
                add)
                    _arguments \
                        '--user[Username for the application]:username' \
                        '--generate[Generate a password of this length]:length'
                    ;;
                update)
                    _arguments \
                        '--app[New application name]:app' \
                        '--user[New username]:username' \
                        '--password[Prompt for a new password]' \
                        '*:credential:_passvault_apps'
                    ;;
                get)
                    _arguments \
                        '--show[Print the password]' \
                        '*:credential:_passvault_apps'
                    ;;
                rm)
                    _arguments '*:credential:_passvault_apps'
                    ;;
                export)
                    _files
                    ;;
                import)
                    _arguments \
                        '--dry-run[Show changes without importing]' \
                        '*:file:_files'
                    ;;
                generate)
                    _arguments '--length[Password length]:length'
                    ;;
                keyring)
                    _values 'subcommand' save delete status
                    ;;
                help)
                    _describe -t commands 'passvault commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
            esac
            ;;
    esac
}

_passvault_apps() {
    local -a apps
    apps=(${(f)"$(passvault ls 2>/dev/null | tail -n +2 | awk '{print $1}')"})
    _describe -t apps 'credentials' apps
}

_passvault "$@"
`

const fishCompletion = `# passvault fish completions

set -l commands register login logout whoami add update get rm ls search export import strength generate keyring status compact help completion

complete -c passvault -f

# Commands
complete -c passvault -n "not __fish_seen_subcommand_from $commands" -a register -d 'Create a vault user'
complete -c passvault -n "not __fish_seen_subcommand_from $commands" -a login -d 'Start a session'
complete -c passvault -n "not __fish_seen_subcommand_from $commands" -a logout -d 'End the session'
complete -c passvault -n "not __fish_seen_subcommand_from $commands" -a whoami -d 'Show the logged-in user'
complete -c passvault -n "not __fish_seen_subcommand_from $commands" -a add -d 'Store a credential'
complete -c passvault -n "not __fish_seen_subcommand_from $commands" -a update -d 'Change a credential'
complete -c passvault -n "not __fish_seen_subcommand_from $commands" -a get -d 'Show a credential'
complete -c passvault -n "not __fish_seen_subcommand_from $commands" -a rm -d 'Remove credentials'
complete -c passvault -n "not __fish_seen_subcommand_from $commands" -a ls -d 'List credentials'
complete -c passvault -n "not __fish_seen_subcommand_from $commands" -a search -d 'Search credentials'
complete -c passvault -n "not __fish_seen_subcommand_from $commands" -a export -d 'Export credentials'
complete -c passvault -n "not __fish_seen_subcommand_from $commands" -a import -d 'Import credentials'
complete -c passvault -n "not __fish_seen_subcommand_from $commands" -a strength -d 'Rate a password'
complete -c passvault -n "not __fish_seen_subcommand_from $commands" -a generate -d 'Generate a password'
complete -c passvault -n "not __fish_seen_subcommand_from $commands" -a keyring -d 'Manage encryption secret in OS keyring'
complete -c passvault -n "not __fish_seen_subcommand_from $commands" -a status -d 'Show vault status'
complete -c passvault -n "not __fish_seen_subcommand_from $commands" -a compact -d 'Compact vault'
complete -c passvault -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'
complete -c passvault -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'

# credential arguments
complete -c passvault -n "__fish_seen_subcommand_from get update rm" -a "(passvault ls 2>/dev/null | tail -n +2 | awk '{print \$1}')"

# flags
complete -c passvault -n "__fish_seen_subcommand_from add" -l user -d 'Username for the application'
complete -c passvault -n "__fish_seen_subcommand_from add" -l generate -d 'Generate a password of this length'
complete -c passvault -n "__fish_seen_subcommand_from update" -l app -d 'New application name'
complete -c passvault -n "__fish_seen_subcommand_from update" -l user -d 'New username'
complete -c passvault -n "__fish_seen_subcommand_from update" -l password -d 'Prompt for a new password'
complete -c passvault -n "__fish_seen_subcommand_from get" -l show -d 'Print the password'
complete -c passvault -n "__fish_seen_subcommand_from import" -l dry-run -d 'Show changes without importing'
complete -c passvault -n "__fish_seen_subcommand_from import export" -F
complete -c passvault -n "__fish_seen_subcommand_from generate" -l length -d 'Password length'

# keyring subcommands
complete -c passvault -n "__fish_seen_subcommand_from keyring" -a "save delete status"
complete -c passvault -n "__fish_seen_subcommand_from keyring" -l generate -d 'Generate a new secret'

# help completions
complete -c passvault -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c passvault -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
