package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"smartshop/internal/app"
)

var (
	// Global flags
	configPath string
	logLevel   string

	// Built by PersistentPreRunE for every subcommand.
	shop       *app.App
	view       *textView
	closeStore = func() {}
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "smartshop",
	Short: "Smart Shopping storefront client",
	Long: `smartshop drives the Smart Shopping storefront from a terminal.

Run without arguments to start the interactive shell: typed lines are search
input, ":"-prefixed lines are commands (:help lists them).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		shop, view, err = buildApp(cmd.Context(), configPath, logLevel, cmd.OutOrStdout())
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd.Context(), shop, view, cmd.InOrStdin())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (default ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logLevel from config (debug, info, warn, error)")

	rootCmd.AddCommand(shellCmd, searchCmd, loginCmd, logoutCmd, whoamiCmd, cartCmd, payCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := execute(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// execute runs the command tree and always releases the app and store,
// including when a command fails.
func execute(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	defer shutdown()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	return rootCmd.ExecuteContext(ctx)
}

func shutdown() {
	if shop != nil {
		shop.Close()
		shop = nil
	}
	closeStore()
	closeStore = func() {}
}
