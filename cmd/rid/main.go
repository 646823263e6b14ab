// Package main provides the rid CLI entry point.
package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nextonesfaster/retrvid/internal/clipboard"
	"github.com/nextonesfaster/retrvid/internal/config"
	"github.com/nextonesfaster/retrvid/internal/idstore"
	"github.com/nextonesfaster/retrvid/internal/intent"
	"github.com/nextonesfaster/retrvid/internal/resolver"
)

// Version is set at build time via ldflags
var Version = "dev"

const longHelp = `retrvid (rid) lets you store and retrieve ids with a lookup name.

The ids are stored in a toml file in your default data directory. You can
change the location of this file by setting the RETRVID_DATA environment
variable, or data_path in ~/.config/retrvid/config.yml. A .json or .yaml
extension stores the ids in that format instead.

Examples:
  rid --add work 12345     # store an id
  rid work                 # copy it to the clipboard
  rid work --print -C      # print it without copying
  rid --list               # list stored names
  rid --remove work        # forget it`

// app holds the collaborators of one invocation.
type app struct {
	resolvePath func() (string, error)
	lock        func(path string) (func() error, error)
	openStore   func(path string) (resolver.Store, error)
	clipboard   func() clipboard.Copier
	out         io.Writer
}

func defaultApp() *app {
	return &app{
		resolvePath: config.DataPath,
		lock:        idstore.Lock,
		openStore: func(path string) (resolver.Store, error) {
			s, err := idstore.Load(path)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		clipboard: func() clipboard.Copier {
			return clipboard.System{Command: config.GetClipboardCommand()}
		},
		out: os.Stdout,
	}
}

func main() {
	os.Exit(execute(defaultApp(), os.Args[1:], os.Stderr))
}

// execute runs the root command and reports any error as one "error: " line.
func execute(a *app, args []string, errOut io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}
	cmd := newRootCmd(a, errOut)
	cmd.SetArgs(args)
	cmd.SetOut(a.out)
	cmd.SetErr(errOut)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitCode(err)
	}
	return ExitSuccess
}

func newRootCmd(a *app, errOut io.Writer) *cobra.Command {
	var (
		in         intent.Inputs
		verbose    bool
		completion string
	)

	cmd := &cobra.Command{
		Use:           "rid [NAME]",
		Short:         "Store and retrieve ids with a lookup name",
		Long:          longHelp + "\n\n" + completionHelp,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Missing .env is fine
			_ = godotenv.Load()
			initLogger(logLevel(verbose), errOut)
		},
		ValidArgsFunction: a.completeNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			if completion != "" {
				return writeCompletion(cmd, completion, cmd.OutOrStdout())
			}
			// Bare invocation shows help
			if len(args) == 0 && cmd.Flags().NFlag() == 0 {
				return cmd.Help()
			}

			in.Args = args
			in.RemoveSet = cmd.Flags().Changed("remove")
			return a.run(in)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&in.Print, "print", "p", false, "Print the id on the console")
	flags.BoolVarP(&in.NoCopy, "no-copy", "C", false, "Do not copy the id to the system clipboard")
	flags.BoolVarP(&in.List, "list", "l", false, "List all stored id names")
	flags.BoolVarP(&in.Add, "add", "a", false, "Add the NAME and ID given as arguments")
	flags.StringVarP(&in.Remove, "remove", "r", "", "Remove the id stored under `NAME`")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	flags.StringVar(&completion, "completion", "", "Print the completion script for `SHELL` (bash, zsh, fish, powershell)")
	flags.SortFlags = false

	_ = cmd.RegisterFlagCompletionFunc("remove", a.completeNames)
	_ = cmd.RegisterFlagCompletionFunc("completion", cobra.FixedCompletions(completionShells, cobra.ShellCompDirectiveNoFileComp))
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &usageError{err}
	})

	return cmd
}

// run decodes the intent first so usage errors never touch the id file,
// then holds the file lock from load through write-back. Lookups and lists
// release it once the file is read and may run unlocked when the lock file
// can't be created, e.g. in a read-only directory.
func (a *app) run(in intent.Inputs) error {
	it, err := intent.Parse(in)
	if err != nil {
		return err
	}
	readOnly := it.Kind == intent.Lookup || it.Kind == intent.List

	path, err := a.resolvePath()
	if err != nil {
		return err
	}
	log.Debug().Str("path", path).Stringer("intent", it.Kind).Msg("resolved id file")

	unlock, err := a.lock(path)
	if err != nil {
		if !readOnly {
			return err
		}
		log.Debug().Err(err).Msg("reading id file without a lock")
		unlock = func() error { return nil }
	}
	var once sync.Once
	release := func() {
		once.Do(func() {
			if err := unlock(); err != nil {
				log.Warn().Err(err).Msg("releasing id file lock")
			}
		})
	}
	defer release()

	store, err := a.openStore(path)
	if err != nil {
		return err
	}
	if readOnly {
		// Nothing is written back; don't block other invocations on the clipboard
		release()
	}

	var clip resolver.Clipboard
	if it.Kind == intent.Lookup && it.Copy {
		clip = a.clipboard()
	}
	return resolver.New(store, clip, a.out).Resolve(it)
}
