package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spiceshop/storefront-go/internal/checkout"
	"github.com/spiceshop/storefront-go/pkg/enums"
)

var checkoutFlags struct {
	addressID int64
	method    string
	notes     string
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order from the current cart",
	Long: `Places an order from the current cart. The shipping address comes from the
saved address book (--address, or the first saved address). Razorpay payments
open a local checkout page in the browser; cash on delivery completes
immediately but is unavailable above the configured limit.`,
	RunE: runCheckout,
}

func init() {
	checkoutCmd.Flags().Int64Var(&checkoutFlags.addressID, "address", 0, "saved address id to ship to")
	checkoutCmd.Flags().StringVar(&checkoutFlags.method, "method", "razorpay", "payment method: razorpay or cod")
	checkoutCmd.Flags().StringVar(&checkoutFlags.notes, "notes", "", "order notes for the packers")
}

func runCheckout(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	store, err := loadedCart(ctx)
	if err != nil {
		return err
	}

	svc, err := accountService()
	if err != nil {
		return err
	}
	addresses := svc.Addresses()
	if err := addresses.Load(ctx); err != nil {
		return err
	}
	if checkoutFlags.addressID != 0 {
		if err := addresses.Select(checkoutFlags.addressID); err != nil {
			return err
		}
	}

	var gateway checkout.Gateway
	if runtime.cfg.Razorpay.KeyID != "" {
		gateway, err = checkout.NewCallbackServer(runtime.cfg.Razorpay, runtime.logger)
		if err != nil {
			return err
		}
	}

	flow, err := checkout.NewFlow(
		runtime.client,
		store,
		addresses,
		gateway,
		runtime.cfg.Shop,
		runtime.banners,
		runtime.cfg.Banner.FormTTL,
		runtime.logger,
	)
	if err != nil {
		return err
	}

	method, err := enums.ParsePaymentMethod(checkoutFlags.method)
	if err != nil {
		return err
	}
	if err := flow.SelectMethod(method); err != nil {
		return err
	}

	printCart(store)
	if selected, ok := addresses.Selected(); ok {
		fmt.Println()
		fmt.Println("Shipping to: " + selected.DisplayName())
	}
	if !confirm("Place this order?") {
		fmt.Println(dimStyle.Render("Checkout cancelled."))
		return nil
	}

	placement, err := flow.PlaceOrder(ctx, checkoutFlags.notes)
	if err != nil {
		return err
	}
	fmt.Printf("Order %s placed for %s.\n", placement.OrderNumber, money(placement.TotalAmount))
	return nil
}

// confirm asks a yes/no question on stdin.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

// prompt reads one trimmed line after a label.
func prompt(label string) string {
	fmt.Printf("%s: ", label)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

// promptInt64 reads a numeric id.
func promptInt64(label string) (int64, error) {
	raw := prompt(label)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return value, nil
}
