package domain

import "time"

// Product is a purchasable container that bundles one or more root
// resources. Products reference resources; they are not part of the tree.
type Product struct {
	ID        string
	Name      string
	Type      ProductType
	Status    ProductStatus
	Fields    Fields
	CreatedAt time.Time
	UpdatedAt time.Time
}
