package main

import (
	"fmt"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/spiceshop/storefront-go/pkg/types"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Customer account: login, registration, profile, addresses",
}

var accountLoginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in as a customer",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountLogin,
}

var accountLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	RunE:  runAccountLogout,
}

var accountSessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Check whether you are signed in",
	RunE:  runAccountSession,
}

var accountRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account: email, OTP, then profile",
	RunE:  runAccountRegister,
}

var accountProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile",
	RunE:  runAccountProfile,
}

var accountAddressesCmd = &cobra.Command{
	Use:   "addresses",
	Short: "List your saved delivery addresses",
	RunE:  runAccountAddresses,
}

func init() {
	accountCmd.AddCommand(accountLoginCmd)
	accountCmd.AddCommand(accountLogoutCmd)
	accountCmd.AddCommand(accountSessionCmd)
	accountCmd.AddCommand(accountRegisterCmd)
	accountCmd.AddCommand(accountProfileCmd)
	accountCmd.AddCommand(accountAddressesCmd)
}

// promptPassword reads a password without echoing it.
func promptPassword(label string) (string, error) {
	fmt.Printf("%s: ", label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}

func runAccountLogin(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	password, err := promptPassword("Password")
	if err != nil {
		return err
	}
	svc, err := accountService()
	if err != nil {
		return err
	}
	if err := svc.Login(ctx, types.Credentials{Email: args[0], Password: password}); err != nil {
		return err
	}
	fmt.Println("Signed in as " + args[0])
	return nil
}

func runAccountLogout(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	svc, err := accountService()
	if err != nil {
		return err
	}
	return svc.Logout(ctx)
}

func runAccountSession(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	svc, err := accountService()
	if err != nil {
		return err
	}
	status, err := svc.Session(ctx)
	if err != nil {
		return err
	}
	if status.Authenticated {
		fmt.Println("Signed in as " + status.Email)
	} else {
		fmt.Println(dimStyle.Render("Not signed in."))
	}
	return nil
}

func runAccountRegister(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	svc, err := accountService()
	if err != nil {
		return err
	}
	flow := svc.StartRegistration()

	email := prompt("Email")
	if err := flow.SubmitEmail(ctx, email); err != nil {
		return err
	}
	fmt.Println("A one-time code was sent to " + email)

	for {
		otp := prompt("One-time code (blank to change email)")
		if otp == "" {
			if err := flow.BackToEmail(); err != nil {
				return err
			}
			email = prompt("Email")
			if err := flow.SubmitEmail(ctx, email); err != nil {
				return err
			}
			continue
		}
		if err := flow.SubmitOTP(ctx, otp); err != nil {
			fmt.Println(errorBanner.Render("✗ " + flow.InlineError()))
			continue
		}
		break
	}

	completion := types.RegistrationCompletion{
		FirstName: prompt("First name"),
		LastName:  prompt("Last name"),
		Phone:     prompt("Phone (optional)"),
	}
	password, err := promptPassword("Password")
	if err != nil {
		return err
	}
	confirmPassword, err := promptPassword("Confirm password")
	if err != nil {
		return err
	}
	completion.Password = password
	if err := flow.Complete(ctx, completion, confirmPassword); err != nil {
		return err
	}
	fmt.Println(successBanner.Render("✓ Account created. You can sign in now."))
	return nil
}

func runAccountProfile(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	svc, err := accountService()
	if err != nil {
		return err
	}
	profile, err := svc.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Println(headerStyle.Render(profile.FirstName + " " + profile.LastName))
	fmt.Println("Email  " + profile.Email)
	if profile.Phone != "" {
		fmt.Println("Phone  " + profile.Phone)
	}
	fmt.Println(dimStyle.Render("Member since " + profile.CreatedAt.Format("Jan 2006")))
	return nil
}

func runAccountAddresses(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	svc, err := accountService()
	if err != nil {
		return err
	}
	addresses := svc.Addresses()
	if err := addresses.Load(ctx); err != nil {
		return err
	}
	saved := addresses.Addresses()
	if len(saved) == 0 {
		fmt.Println(dimStyle.Render("No saved addresses."))
		return nil
	}
	rows := make([][]string, 0, len(saved))
	for _, addr := range saved {
		rows = append(rows, []string{
			strconv.FormatInt(addr.ID, 10),
			addr.DisplayName(),
		})
	}
	fmt.Print(renderTable([]string{"ID", "ADDRESS"}, rows))
	return nil
}
