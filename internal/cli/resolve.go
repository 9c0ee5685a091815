package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/coursenav/internal/domain"
)

// resolveProductID resolves a product identifier which can be:
//   - A full product ID
//   - A product name (case-insensitive)
//   - A unique ID prefix, as shown by "product list"
func resolveProductID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("product ID or name is required")
	}
	products, err := app.Products.List(ctx, true)
	if err != nil {
		return "", err
	}

	var prefixed []*domain.Product
	for _, p := range products {
		if p.ID == input || strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
		if strings.HasPrefix(p.ID, input) {
			prefixed = append(prefixed, p)
		}
	}
	switch len(prefixed) {
	case 0:
		return "", fmt.Errorf("no product matches %q", input)
	case 1:
		return prefixed[0].ID, nil
	default:
		return "", fmt.Errorf("product prefix %q is ambiguous (%d matches)", input, len(prefixed))
	}
}
