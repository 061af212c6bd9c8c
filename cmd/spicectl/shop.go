package main

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/spiceshop/storefront-go/internal/catalog"
	"github.com/spiceshop/storefront-go/pkg/api"
	"github.com/spiceshop/storefront-go/pkg/types"
)

var shopFlags struct {
	page     int
	limit    int
	search   string
	minPrice string
	maxPrice string
	quality  string
	inStock  bool
}

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Browse the spice catalog",
}

var shopListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products, with server-side search and filters",
	RunE:  runShopList,
}

var shopShowCmd = &cobra.Command{
	Use:   "show <spice-id>",
	Short: "Show one product with its variants, packs, and related spices",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopShow,
}

var shopQualitiesCmd = &cobra.Command{
	Use:   "qualities",
	Short: "List the quality classes available for filtering",
	RunE:  runShopQualities,
}

func init() {
	shopListCmd.Flags().IntVar(&shopFlags.page, "page", 1, "page to fetch")
	shopListCmd.Flags().IntVar(&shopFlags.limit, "limit", 12, "products per page")
	shopListCmd.Flags().StringVar(&shopFlags.search, "search", "", "search by name or origin")
	shopListCmd.Flags().StringVar(&shopFlags.minPrice, "min-price", "", "minimum pack price")
	shopListCmd.Flags().StringVar(&shopFlags.maxPrice, "max-price", "", "maximum pack price")
	shopListCmd.Flags().StringVar(&shopFlags.quality, "quality", "", "quality class")
	shopListCmd.Flags().BoolVar(&shopFlags.inStock, "in-stock", false, "only products with stock")

	shopCmd.AddCommand(shopListCmd)
	shopCmd.AddCommand(shopShowCmd)
	shopCmd.AddCommand(shopQualitiesCmd)
}

func runShopList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	shop, err := shopCatalog()
	if err != nil {
		return err
	}

	query := api.ProductQuery{
		Page:         shopFlags.page,
		Limit:        shopFlags.limit,
		Search:       shopFlags.search,
		QualityClass: shopFlags.quality,
	}
	if shopFlags.minPrice != "" {
		min, err := decimal.NewFromString(shopFlags.minPrice)
		if err != nil {
			return fmt.Errorf("invalid --min-price: %w", err)
		}
		query.MinPrice = &min
	}
	if shopFlags.maxPrice != "" {
		max, err := decimal.NewFromString(shopFlags.maxPrice)
		if err != nil {
			return fmt.Errorf("invalid --max-price: %w", err)
		}
		query.MaxPrice = &max
	}
	if cmd.Flags().Changed("in-stock") {
		query.InStock = &shopFlags.inStock
	}

	page, err := shop.Browse(ctx, query)
	if err != nil {
		return err
	}
	if len(page.Products) == 0 {
		fmt.Println(dimStyle.Render("No spices match."))
		return nil
	}

	rows := make([][]string, 0, len(page.Products))
	for _, spice := range page.Products {
		from := cheapestPack(spice)
		rows = append(rows, []string{
			strconv.FormatInt(spice.ID, 10),
			spice.Name,
			spice.Origin,
			from,
			catalog.SpiceStock(spice).Label(),
		})
	}
	fmt.Print(renderTable([]string{"ID", "NAME", "ORIGIN", "FROM", "STOCK"}, rows))
	fmt.Println(pageFooter(page.Page, page.TotalPages))
	return nil
}

// cheapestPack renders the lowest pack price, the shop tile's "from" figure.
func cheapestPack(spice types.Spice) string {
	var lowest *decimal.Decimal
	for _, variant := range spice.Variants {
		for _, pack := range variant.Packs {
			price := pack.Price
			if lowest == nil || price.LessThan(*lowest) {
				lowest = &price
			}
		}
	}
	if lowest == nil {
		return "-"
	}
	return money(*lowest)
}

func runShopShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid spice id %q", args[0])
	}

	shop, err := shopCatalog()
	if err != nil {
		return err
	}
	detail, err := shop.Detail(ctx, id)
	if err != nil {
		return err
	}

	spice := detail.Spice
	fmt.Println(headerStyle.Render(spice.Name) + dimStyle.Render("  ("+spice.Origin+")"))
	if spice.Description != "" {
		fmt.Println(spice.Description)
	}
	fmt.Println()

	var rows [][]string
	for _, variant := range spice.Variants {
		for _, pack := range variant.Packs {
			rows = append(rows, []string{
				strconv.FormatInt(pack.ID, 10),
				variant.QualityClass,
				fmt.Sprintf("%dg", pack.PackWeightInGrams),
				money(pack.Price),
				catalog.PackStock(pack).Label(),
			})
		}
	}
	fmt.Print(renderTable([]string{"PACK", "QUALITY", "WEIGHT", "PRICE", "STOCK"}, rows))

	if len(detail.Related) > 0 {
		fmt.Println()
		fmt.Println(headerStyle.Render("Related"))
		for _, related := range detail.Related {
			fmt.Printf("  %d  %s (%s)\n", related.ID, related.Name, related.Origin)
		}
	}
	return nil
}

func runShopQualities(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	shop, err := shopCatalog()
	if err != nil {
		return err
	}
	classes, err := shop.QualityClasses(ctx)
	if err != nil {
		return err
	}
	for _, class := range classes {
		fmt.Println(class)
	}
	return nil
}
