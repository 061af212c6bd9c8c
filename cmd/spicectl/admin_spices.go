package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spiceshop/storefront-go/internal/catalog"
	"github.com/spiceshop/storefront-go/internal/listview"
	"github.com/spiceshop/storefront-go/pkg/types"
)

var adminSpicesCmd = &cobra.Command{
	Use:   "spices",
	Short: "Manage the catalog",
}

var adminSpicesListFlags struct {
	search    string
	available string
	minStock  int
	maxStock  int
	page      int
}

var adminSpicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog with local filters",
	RunE:  runAdminSpicesList,
}

var adminSpicesToggleCmd = &cobra.Command{
	Use:   "toggle <spice-id>",
	Short: "Flip a spice's storefront availability",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminSpicesToggle,
}

var adminSpicesCreateCmd = &cobra.Command{
	Use:   "create <spice.json>",
	Short: "Create a spice from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminSpicesCreate,
}

var adminSpicesUpdateCmd = &cobra.Command{
	Use:   "update <spice-id> <spice.json>",
	Short: "Replace a spice from a JSON file",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdminSpicesUpdate,
}

var adminSpicesDeleteCmd = &cobra.Command{
	Use:   "delete <spice-id>",
	Short: "Remove a spice from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminSpicesDelete,
}

func init() {
	adminSpicesListCmd.Flags().StringVar(&adminSpicesListFlags.search, "search", "", "filter by name or origin")
	adminSpicesListCmd.Flags().StringVar(&adminSpicesListFlags.available, "available", "", "filter by availability: true or false")
	adminSpicesListCmd.Flags().IntVar(&adminSpicesListFlags.minStock, "min-stock", 0, "minimum total stock")
	adminSpicesListCmd.Flags().IntVar(&adminSpicesListFlags.maxStock, "max-stock", 0, "maximum total stock")
	adminSpicesListCmd.Flags().IntVar(&adminSpicesListFlags.page, "page", 1, "page to show")

	adminSpicesCmd.AddCommand(adminSpicesListCmd)
	adminSpicesCmd.AddCommand(adminSpicesToggleCmd)
	adminSpicesCmd.AddCommand(adminSpicesCreateCmd)
	adminSpicesCmd.AddCommand(adminSpicesUpdateCmd)
	adminSpicesCmd.AddCommand(adminSpicesDeleteCmd)
}

func loadedCatalogManager(ctx context.Context) (*catalog.Manager, error) {
	manager, err := catalogManager()
	if err != nil {
		return nil, err
	}
	if err := manager.Refresh(ctx); err != nil {
		return nil, err
	}
	return manager, nil
}

func runAdminSpicesList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	manager, err := loadedCatalogManager(ctx)
	if err != nil {
		return err
	}

	filters := catalog.Filters{Search: adminSpicesListFlags.search}
	if adminSpicesListFlags.available != "" {
		available, err := strconv.ParseBool(adminSpicesListFlags.available)
		if err != nil {
			return fmt.Errorf("invalid --available: %w", err)
		}
		filters.Available = &available
	}
	if cmd.Flags().Changed("min-stock") {
		filters.MinStock = &adminSpicesListFlags.minStock
	}
	if cmd.Flags().Changed("max-stock") {
		filters.MaxStock = &adminSpicesListFlags.maxStock
	}
	manager.SetFilters(filters)
	manager.GoTo(adminSpicesListFlags.page)

	if manager.Verdict() == listview.NoData {
		fmt.Println(dimStyle.Render("The catalog is empty."))
		return nil
	}

	rows := make([][]string, 0, len(manager.Page()))
	for _, spice := range manager.Page() {
		available := "no"
		if spice.IsAvailable {
			available = "yes"
		}
		rows = append(rows, []string{
			strconv.FormatInt(spice.ID, 10),
			spice.Name,
			spice.Origin,
			available,
			strconv.Itoa(spice.TotalStock()),
			catalog.SpiceStock(spice).Label(),
		})
	}
	fmt.Print(renderTable([]string{"ID", "NAME", "ORIGIN", "LIVE", "STOCK", "TIER"}, rows))
	fmt.Println(pageFooter(manager.PageIndex(), manager.TotalPages()))
	return nil
}

func runAdminSpicesToggle(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid spice id %q", args[0])
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()
	manager, err := loadedCatalogManager(ctx)
	if err != nil {
		return err
	}
	return manager.ToggleAvailability(ctx, id)
}

func spiceRequestFromFile(path string) (types.SpiceRequest, error) {
	var req types.SpiceRequest
	raw, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, fmt.Errorf("parsing %s: %w", path, err)
	}
	return req, nil
}

func runAdminSpicesCreate(cmd *cobra.Command, args []string) error {
	req, err := spiceRequestFromFile(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()
	manager, err := loadedCatalogManager(ctx)
	if err != nil {
		return err
	}
	return manager.Create(ctx, req)
}

func runAdminSpicesUpdate(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid spice id %q", args[0])
	}
	req, err := spiceRequestFromFile(args[1])
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()
	manager, err := loadedCatalogManager(ctx)
	if err != nil {
		return err
	}
	return manager.Update(ctx, id, req)
}

func runAdminSpicesDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid spice id %q", args[0])
	}
	if !confirm(fmt.Sprintf("Delete spice %d from the catalog?", id)) {
		return nil
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()
	manager, err := loadedCatalogManager(ctx)
	if err != nil {
		return err
	}
	return manager.Delete(ctx, id)
}
