package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/blogctl/blogctl/internal/meta"
)

const bashCompletionScript = `# bash completion for blogctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_blogctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "login logout register whoami pq uq pub edit rm completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --tldr"

    case "$cmd" in
    login)
      local opts="--email -e --password --host --tldr"
            ;;
        logout)
      local opts="--host --tldr"
            ;;
        register)
      local opts="--username -u --email -e --password --host --tldr"
            ;;
        whoami)
      local opts="$common --schema --host"
            ;;
        pq)
      local opts="$common --schema --host --id --user -u --mine"
            ;;
        uq)
      local opts="$common --schema --host --id"
            ;;
        pub)
      local opts="--title --content --file --host --tldr"
            ;;
        edit)
      local opts="--id --title --content --diff --dry-run --color -c --host --tldr"
            ;;
        rm)
      local opts="--id --host --tldr"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

  if [[ "$prev" == "--file" ]]; then
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
  fi

  COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
  return 0
}

complete -F _blogctl blogctl
`

const zshCompletionScript = `#compdef blogctl

_blogctl() {
  local -a cmds
  cmds=(
    'login:log in and store the access token'
    'logout:discard the stored access token'
    'register:create a new account'
    'whoami:show the logged-in user'
    'pq:post query'
    'uq:user query'
    'pub:publish a new post'
    'edit:edit one of your posts'
    'rm:delete one of your posts'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'blogctl commands' cmds
    return
  fi

  case $words[2] in
    login)
      _arguments -C \
        '(-e --email)'{-e,--email}'[account email]' \
        '--password[account password]' \
        '--host[blog server]'
      ;;
    logout)
      _arguments -C '--host[blog server]'
      ;;
    register)
      _arguments -C \
        '(-u --username)'{-u,--username}'[display name]' \
        '(-e --email)'{-e,--email}'[account email]' \
        '--password[account password]' \
        '--host[blog server]'
      ;;
    whoami)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '--host[blog server]'
      ;;
    pq)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '--id[single post]' \
        '(-u --user)'{-u,--user}'[posts of one user]' \
        '--mine[your posts]' \
        '--host[blog server]'
      ;;
    uq)
      _arguments -C \
        $common \
        '--schema[dump schema]' \
        '--id[user to query]' \
        '--host[blog server]'
      ;;
    pub)
      _arguments -C \
        '--title[post title]' \
        '--content[post body]' \
        '--file[read body from file]:file:_files' \
        '--host[blog server]'
      ;;
    edit)
      _arguments -C \
        '--id[post to edit]' \
        '--title[replacement title]' \
        '--content[replacement body]' \
        '--diff[show what changed]' \
        '--dry-run[show without saving]' \
        '(-c --color)'{-c,--color}'[colored diff]' \
        '--host[blog server]'
      ;;
    rm)
      _arguments -C \
        '--id[post to delete]' \
        '--host[blog server]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _blogctl blogctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(os.Stdout, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(os.Stdout, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: blogctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "blogctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
