package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/spiceshop/storefront-go/internal/listview"
	"github.com/spiceshop/storefront-go/internal/orders"
	"github.com/spiceshop/storefront-go/pkg/enums"
)

var adminOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Work the order queue",
}

var adminOrdersListFlags struct {
	search    string
	status    string
	minAmount string
	maxAmount string
	page      int
}

var adminOrdersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders with local filters",
	RunE:  runAdminOrdersList,
}

var adminOrdersShowCmd = &cobra.Command{
	Use:   "show <order-id>",
	Short: "Show one order in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminOrdersShow,
}

var adminOrdersStatusCmd = &cobra.Command{
	Use:   "status <order-id> <status>",
	Short: "Move an order's status (PLACED, PROCESSING, SHIPPED, DELIVERED, CANCELLED)",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdminOrdersStatus,
}

func init() {
	adminOrdersListCmd.Flags().StringVar(&adminOrdersListFlags.search, "search", "", "filter by order number, customer name, or email")
	adminOrdersListCmd.Flags().StringVar(&adminOrdersListFlags.status, "status", "", "filter by order status")
	adminOrdersListCmd.Flags().StringVar(&adminOrdersListFlags.minAmount, "min-amount", "", "minimum order total")
	adminOrdersListCmd.Flags().StringVar(&adminOrdersListFlags.maxAmount, "max-amount", "", "maximum order total")
	adminOrdersListCmd.Flags().IntVar(&adminOrdersListFlags.page, "page", 1, "page to show")

	adminOrdersCmd.AddCommand(adminOrdersListCmd)
	adminOrdersCmd.AddCommand(adminOrdersShowCmd)
	adminOrdersCmd.AddCommand(adminOrdersStatusCmd)
}

func loadedOrderDesk(ctx context.Context) (*orders.Desk, error) {
	desk, err := orderDesk()
	if err != nil {
		return nil, err
	}
	if err := desk.Refresh(ctx); err != nil {
		return nil, err
	}
	return desk, nil
}

func runAdminOrdersList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	desk, err := loadedOrderDesk(ctx)
	if err != nil {
		return err
	}

	filters := orders.DeskFilters{Search: adminOrdersListFlags.search}
	if adminOrdersListFlags.status != "" {
		status, err := enums.ParseOrderStatus(adminOrdersListFlags.status)
		if err != nil {
			return err
		}
		filters.Status = &status
	}
	if adminOrdersListFlags.minAmount != "" {
		min, err := decimal.NewFromString(adminOrdersListFlags.minAmount)
		if err != nil {
			return fmt.Errorf("invalid --min-amount: %w", err)
		}
		filters.MinAmount = &min
	}
	if adminOrdersListFlags.maxAmount != "" {
		max, err := decimal.NewFromString(adminOrdersListFlags.maxAmount)
		if err != nil {
			return fmt.Errorf("invalid --max-amount: %w", err)
		}
		filters.MaxAmount = &max
	}
	desk.SetFilters(filters)
	desk.GoTo(adminOrdersListFlags.page)

	switch desk.Verdict() {
	case listview.NoData:
		fmt.Println(dimStyle.Render("No orders yet."))
		return nil
	case listview.NoMatches:
		fmt.Println(dimStyle.Render("No orders match the filters."))
		return nil
	}
	printAdminOrders(desk)
	return nil
}

func runAdminOrdersShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid order id %q", args[0])
	}
	desk, err := orderDesk()
	if err != nil {
		return err
	}
	order, err := desk.Detail(ctx, id)
	if err != nil {
		return err
	}
	printOrder(order)
	return nil
}

func runAdminOrdersStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid order id %q", args[0])
	}
	status, err := enums.ParseOrderStatus(args[1])
	if err != nil {
		return err
	}

	desk, err := loadedOrderDesk(ctx)
	if err != nil {
		return err
	}
	if err := desk.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	fmt.Printf("Order %d is now %s.\n", id, status)
	return nil
}
