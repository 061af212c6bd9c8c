package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spiceshop/storefront-go/internal/cart"
	"github.com/spiceshop/storefront-go/pkg/types"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the shopping cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart with its totals",
	RunE:  runCartShow,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <spice-id> <pack-id> <quantity>",
	Short: "Add a pack to the cart",
	Args:  cobra.ExactArgs(3),
	RunE:  runCartAdd,
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <item-id> <quantity>",
	Short: "Change a cart line's quantity",
	Args:  cobra.ExactArgs(2),
	RunE:  runCartUpdate,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Remove a cart line",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE:  runCartClear,
}

func init() {
	cartCmd.AddCommand(cartShowCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartUpdateCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartClearCmd)
}

func loadedCart(ctx context.Context) (*cart.Store, error) {
	store, err := cartStore()
	if err != nil {
		return nil, err
	}
	if err := store.Refresh(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func printCart(store *cart.Store) {
	current := store.Cart()
	if current.IsEmpty() {
		fmt.Println(dimStyle.Render("Your cart is empty."))
		return
	}

	rows := make([][]string, 0, len(current.Items))
	for _, item := range current.Items {
		rows = append(rows, []string{
			strconv.FormatInt(item.ID, 10),
			item.SpiceName,
			item.QualityClass,
			fmt.Sprintf("%dg", item.PackWeightInGrams),
			money(item.Price),
			strconv.Itoa(item.Quantity),
			money(item.LineTotal()),
		})
	}
	fmt.Print(renderTable([]string{"ITEM", "SPICE", "QUALITY", "WEIGHT", "PRICE", "QTY", "TOTAL"}, rows))

	totals := store.Totals()
	fmt.Println()
	fmt.Printf("Subtotal  %s\n", money(totals.Subtotal))
	if totals.ShippingCost.IsZero() {
		fmt.Printf("Shipping  %s\n", successBanner.Render("free"))
	} else {
		fmt.Printf("Shipping  %s\n", money(totals.ShippingCost))
	}
	fmt.Println(headerStyle.Render(fmt.Sprintf("Total     %s", money(totals.Total))))
}

func runCartShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	store, err := loadedCart(ctx)
	if err != nil {
		return err
	}
	printCart(store)
	return nil
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	spiceID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid spice id %q", args[0])
	}
	packID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid pack id %q", args[1])
	}
	quantity, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[2])
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	store, err := loadedCart(ctx)
	if err != nil {
		return err
	}
	if err := store.AddItem(ctx, types.AddToCartRequest{
		SpiceID: spiceID, PackID: packID, Quantity: quantity,
	}); err != nil {
		return err
	}
	printCart(store)
	return nil
}

func runCartUpdate(cmd *cobra.Command, args []string) error {
	itemID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	store, err := loadedCart(ctx)
	if err != nil {
		return err
	}
	if err := store.UpdateQuantity(ctx, itemID, quantity); err != nil {
		return err
	}
	printCart(store)
	return nil
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	itemID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	store, err := loadedCart(ctx)
	if err != nil {
		return err
	}
	if err := store.RemoveItem(ctx, itemID); err != nil {
		return err
	}
	printCart(store)
	return nil
}

func runCartClear(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	store, err := loadedCart(ctx)
	if err != nil {
		return err
	}
	return store.Clear(ctx)
}
