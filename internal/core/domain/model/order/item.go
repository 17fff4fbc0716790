package order

import (
	"fmt"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/errs"
)

// Item is one product line on an order. Items arrive with the OrderCreated
// event from the intake system and feed the dashboard's top-products
// aggregate; the workflow itself never mutates them.
type Item struct {
	productName string
	quantity    int
}

// NewItem creates an order item. Product name must be non-empty and quantity
// positive.
func NewItem(productName string, quantity int) (Item, error) {
	if productName == "" {
		return Item{}, errs.NewValueIsRequiredError("productName")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	return Item{productName: productName, quantity: quantity}, nil
}

// ProductName returns the product this line refers to.
func (i Item) ProductName() string {
	return i.productName
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}
