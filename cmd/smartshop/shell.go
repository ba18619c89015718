package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"smartshop/internal/app"
)

const shellHelp = `Type to search (3+ characters). Commands:
  :add <product-id>        add a search result to the cart
  :remove <index>          remove the cart line at index
  :cart                    show the cart
  :results                 show the current search results
  :login <email> <pass>    log in
  :logout                  log out
  :whoami                  show the auth label
  :pay <amount>            submit a payment and show its QR link
  :help                    show this help
  :quit                    exit
`

var errQuit = errors.New("quit")

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive storefront shell",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd.Context(), shop, view, cmd.InOrStdin())
	},
}

// runShell feeds plain lines to the debounced search and dispatches
// ":"-prefixed lines as commands until EOF, :quit or ctx cancellation.
func runShell(ctx context.Context, shop *app.App, out *textView, in io.Reader) error {
	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-readCtx.Done():
				return
			}
		}
	}()

	out.printf("%s", shellHelp)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if err := handleLine(ctx, shop, out, line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				out.printf("! %v\n", err)
			}
		}
	}
}

func handleLine(ctx context.Context, shop *app.App, out *textView, line string) error {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ":") {
		shop.HandleInput(ctx, line)
		return nil
	}
	fields := strings.Fields(strings.TrimPrefix(trimmed, ":"))
	if len(fields) == 0 {
		return nil
	}
	name, args := fields[0], fields[1:]
	switch name {
	case "add":
		if len(args) != 1 {
			return errors.New("usage: :add <product-id>")
		}
		return shop.AddItem(ctx, args[0])
	case "remove":
		if len(args) != 1 {
			return errors.New("usage: :remove <index>")
		}
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[0])
		}
		return shop.RemoveItem(ctx, index)
	case "cart":
		out.RenderCart(shop.Items())
	case "results":
		out.RenderSuggestions(shop.SearchResults())
	case "login":
		if len(args) != 2 {
			return errors.New("usage: :login <email> <password>")
		}
		shop.Login(ctx, args[0], args[1])
	case "logout":
		shop.Logout(ctx)
	case "whoami":
		out.RenderAuth(shop.AuthLabel())
	case "pay":
		if len(args) != 1 {
			return errors.New("usage: :pay <amount>")
		}
		amount, err := parseAmount(args[0])
		if err != nil {
			return err
		}
		_, err = shop.Checkout(ctx, amount)
		return err
	case "help":
		out.printf("%s", shellHelp)
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (try :help)", name)
	}
	return nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", raw)
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("amount must be positive")
	}
	return amount, nil
}
