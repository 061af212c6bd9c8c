package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spiceshop/storefront-go/pkg/types"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "View your order history",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your past orders",
	RunE:  runOrdersList,
}

var ordersShowCmd = &cobra.Command{
	Use:   "show <order-id>",
	Short: "Show one order in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersShow,
}

func init() {
	ordersCmd.AddCommand(ordersListCmd)
	ordersCmd.AddCommand(ordersShowCmd)
}

func runOrdersList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	history, err := orderHistory()
	if err != nil {
		return err
	}
	list, err := history.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println(dimStyle.Render("No orders yet."))
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, order := range list {
		rows = append(rows, []string{
			strconv.FormatInt(order.ID, 10),
			order.OrderNumber,
			order.OrderDate.Format("02 Jan 2006"),
			string(order.OrderStatus),
			string(order.PaymentStatus),
			money(order.TotalAmount),
		})
	}
	fmt.Print(renderTable([]string{"ID", "NUMBER", "DATE", "STATUS", "PAYMENT", "TOTAL"}, rows))
	return nil
}

func runOrdersShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid order id %q", args[0])
	}

	history, err := orderHistory()
	if err != nil {
		return err
	}
	order, err := history.Get(ctx, id)
	if err != nil {
		return err
	}
	printOrder(order)
	return nil
}

func printOrder(order types.Order) {
	fmt.Println(headerStyle.Render("Order " + order.OrderNumber))
	fmt.Printf("Placed   %s\n", order.OrderDate.Format("02 Jan 2006 15:04"))
	fmt.Printf("Status   %s\n", order.OrderStatus)
	fmt.Printf("Payment  %s via %s\n", order.PaymentStatus, order.PaymentMethod)
	if order.CustomerName != "" {
		fmt.Printf("Customer %s <%s>\n", order.CustomerName, order.CustomerEmail)
	}
	fmt.Printf("Ship to  %s\n", order.ShippingAddr.DisplayName())
	if order.OrderNotes != "" {
		fmt.Printf("Notes    %s\n", order.OrderNotes)
	}
	fmt.Println()

	rows := make([][]string, 0, len(order.Items))
	for _, item := range order.Items {
		rows = append(rows, []string{
			item.SpiceName,
			item.QualityClass,
			fmt.Sprintf("%dg", item.PackWeightInGrams),
			money(item.UnitPrice),
			strconv.Itoa(item.Quantity),
		})
	}
	fmt.Print(renderTable([]string{"SPICE", "QUALITY", "WEIGHT", "PRICE", "QTY"}, rows))

	fmt.Println()
	fmt.Printf("Subtotal  %s\n", money(order.Subtotal))
	fmt.Printf("Shipping  %s\n", money(order.ShippingCost))
	fmt.Println(headerStyle.Render("Total     " + money(order.TotalAmount)))
}
