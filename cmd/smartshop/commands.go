package main

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
	cartQuery     string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fetch suggestions and price comparisons for a query",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		shop.FetchSuggestions(cmd.Context(), args[0])
		shop.FetchPriceComparisons(cmd.Context(), args[0])
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and remember the user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginEmail == "" || loginPassword == "" {
			return errors.New("--email and --password are required")
		}
		if !shop.Login(cmd.Context(), loginEmail, loginPassword) {
			return errors.New("login failed")
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the remembered user",
	Run: func(cmd *cobra.Command, args []string) {
		shop.Logout(cmd.Context())
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current auth label",
	Run: func(cmd *cobra.Command, args []string) {
		view.RenderAuth(shop.AuthLabel())
	},
}

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the persisted cart",
	Run: func(cmd *cobra.Command, args []string) {
		view.RenderCart(shop.Items())
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Search for --query and add the matching result to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cartQuery == "" {
			return errors.New("--query is required to resolve the product")
		}
		shop.FetchSuggestions(cmd.Context(), cartQuery)
		return shop.AddItem(cmd.Context(), args[0])
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <index>",
	Short: "Remove the cart line at index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.New("index must be an integer")
		}
		return shop.RemoveItem(cmd.Context(), index)
	},
}

var payCmd = &cobra.Command{
	Use:   "pay <amount>",
	Short: "Submit a payment and print its QR link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[0])
		if err != nil {
			return err
		}
		_, err = shop.Checkout(cmd.Context(), amount)
		return err
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")

	cartAddCmd.Flags().StringVar(&cartQuery, "query", "", "search query that yields the product")
	cartCmd.AddCommand(cartAddCmd, cartRemoveCmd)
}
