package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spiceshop/storefront-go/internal/orders"
	"github.com/spiceshop/storefront-go/pkg/types"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Back office: operator session, catalog, orders, customers",
}

var adminLoginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in as an operator; the session persists on disk",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminLogin,
}

var adminLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the persisted operator session",
	RunE:  runAdminLogout,
}

var adminProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the operator profile",
	RunE:  runAdminProfile,
}

var adminProfileFlags struct {
	revealKey bool
}

var adminChangePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change the operator password",
	RunE:  runAdminChangePassword,
}

var adminForgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password <email>",
	Short: "Recover access: request, verify the secret key, set a new password",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminForgotPassword,
}

var adminCustomersCmd = &cobra.Command{
	Use:   "customers",
	Short: "List registered customers",
	RunE:  runAdminCustomers,
}

var adminCustomersFlags struct {
	search string
	page   int
}

func init() {
	adminProfileCmd.Flags().BoolVar(&adminProfileFlags.revealKey, "reveal-key", false, "print the recovery key unmasked")
	adminCustomersCmd.Flags().StringVar(&adminCustomersFlags.search, "search", "", "filter by name or email")
	adminCustomersCmd.Flags().IntVar(&adminCustomersFlags.page, "page", 1, "page to show")

	adminCmd.AddCommand(adminLoginCmd)
	adminCmd.AddCommand(adminLogoutCmd)
	adminCmd.AddCommand(adminProfileCmd)
	adminCmd.AddCommand(adminChangePasswordCmd)
	adminCmd.AddCommand(adminForgotPasswordCmd)
	adminCmd.AddCommand(adminCustomersCmd)
	adminCmd.AddCommand(adminSpicesCmd)
	adminCmd.AddCommand(adminOrdersCmd)
}

func runAdminLogin(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	password, err := promptPassword("Password")
	if err != nil {
		return err
	}
	console, err := adminConsole()
	if err != nil {
		return err
	}
	profile, err := console.Login(ctx, types.Credentials{Email: args[0], Password: password})
	if err != nil {
		return err
	}
	fmt.Println("Signed in as " + profile.Name)
	return nil
}

func runAdminLogout(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	console, err := adminConsole()
	if err != nil {
		return err
	}
	return console.Logout(ctx)
}

func runAdminProfile(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	console, err := adminConsole()
	if err != nil {
		return err
	}
	profile, err := console.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Println(headerStyle.Render(profile.Name))
	fmt.Println("Email       " + profile.Email)
	if profile.Phone != "" {
		fmt.Println("Phone       " + profile.Phone)
	}
	if adminProfileFlags.revealKey {
		fmt.Println("Secret key  " + profile.SecretKey)
	} else {
		fmt.Println("Secret key  " + profile.MaskedSecretKey())
	}
	return nil
}

func runAdminChangePassword(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	current, err := promptPassword("Current password")
	if err != nil {
		return err
	}
	next, err := promptPassword("New password")
	if err != nil {
		return err
	}
	console, err := adminConsole()
	if err != nil {
		return err
	}
	return console.ChangePassword(ctx, types.PasswordChange{
		CurrentPassword: current,
		NewPassword:     next,
	})
}

func runAdminForgotPassword(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	console, err := adminConsole()
	if err != nil {
		return err
	}
	flow := console.StartPasswordReset()

	if err := flow.RequestReset(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("Reset requested. Enter the account's secret key to continue.")

	for {
		key := prompt("Secret key")
		if err := flow.VerifyKey(ctx, key); err != nil {
			fmt.Println(errorBanner.Render("✗ " + flow.InlineError()))
			continue
		}
		break
	}

	for {
		next, err := promptPassword("New password")
		if err != nil {
			return err
		}
		confirmNext, err := promptPassword("Confirm new password")
		if err != nil {
			return err
		}
		if err := flow.SetNewPassword(ctx, next, confirmNext); err != nil {
			fmt.Println(errorBanner.Render("✗ " + flow.InlineError()))
			continue
		}
		break
	}
	fmt.Println(successBanner.Render("✓ Password reset. Sign in with the new password."))
	return nil
}

func runAdminCustomers(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	console, err := adminConsole()
	if err != nil {
		return err
	}
	count, err := console.CustomerCount(ctx)
	if err != nil {
		return err
	}
	roster, err := console.Customers(ctx, runtime.cfg.Shop.AdminOrdersPageSize)
	if err != nil {
		return err
	}
	if adminCustomersFlags.search != "" {
		roster.Search(adminCustomersFlags.search)
	}
	for page := 1; page < adminCustomersFlags.page; page++ {
		roster.Next()
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%d registered customers", count)))
	rows := make([][]string, 0, len(roster.Page()))
	for _, user := range roster.Page() {
		rows = append(rows, []string{
			strconv.FormatInt(user.ID, 10),
			user.FirstName + " " + user.LastName,
			user.Email,
			user.CreatedAt.Format("02 Jan 2006"),
		})
	}
	fmt.Print(renderTable([]string{"ID", "NAME", "EMAIL", "JOINED"}, rows))
	fmt.Println(pageFooter(roster.PageIndex(), roster.TotalPages()))
	return nil
}

// printAdminOrders renders the desk's current page.
func printAdminOrders(desk *orders.Desk) {
	rows := make([][]string, 0, len(desk.Page()))
	for _, order := range desk.Page() {
		rows = append(rows, []string{
			strconv.FormatInt(order.ID, 10),
			order.OrderNumber,
			order.CustomerName,
			string(order.OrderStatus),
			string(order.PaymentStatus),
			money(order.TotalAmount),
		})
	}
	fmt.Print(renderTable([]string{"ID", "NUMBER", "CUSTOMER", "STATUS", "PAYMENT", "TOTAL"}, rows))
	fmt.Println(pageFooter(desk.PageIndex(), desk.TotalPages()))
}
