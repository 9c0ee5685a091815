package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/coursenav/internal/cli/formatter"
	"github.com/alexanderramin/coursenav/internal/domain"
	"github.com/spf13/cobra"
)

func newProductCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage products that bundle course trees",
	}

	cmd.AddCommand(
		newProductAddCmd(app),
		newProductListCmd(app),
		newProductAttachCmd(app),
	)

	return cmd
}

func newProductAddCmd(app *App) *cobra.Command {
	var typ, status string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Product{
				Name:   args[0],
				Type:   domain.ProductType(typ),
				Status: domain.ProductStatus(status),
			}
			if err := app.Products.Create(context.Background(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created product %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "Product type (self-paced|live|membership|cohort)")
	cmd.Flags().StringVar(&status, "status", "", "Product status (active|archived)")
	return cmd
}

func newProductListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := app.Products.List(context.Background(), all)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProductList(products))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived products")
	return cmd
}

func newProductAttachCmd(app *App) *cobra.Command {
	var position int

	cmd := &cobra.Command{
		Use:   "attach PRODUCT RESOURCE",
		Short: "Bundle a root resource into a product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			productID, err := resolveProductID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Products.Attach(ctx, productID, args[1], position); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Attached %s to product %s\n", args[1], formatter.TruncID(productID))
			return nil
		},
	}

	cmd.Flags().IntVar(&position, "position", 0, "Position within the product")
	return cmd
}
