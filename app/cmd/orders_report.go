package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Rakhulsr/go-ecommerce-api/app/models/other"
	"github.com/Rakhulsr/go-ecommerce-api/app/services"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/format"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

// WriteOrdersReport renders one row per order followed by a grand total.
func WriteOrdersReport(out io.Writer, views []services.OrderView) error {
	table := tablewriter.NewWriter(out)
	table.Header("Order", "Customer", "Status", "Date", "Items", "Total")

	grandTotal := decimal.Zero
	for _, view := range views {
		order := view.Order
		quantity := 0
		for _, item := range order.OrderItems {
			quantity += item.Quantity
		}
		grandTotal = grandTotal.Add(order.Total)

		row := []string{
			order.ID,
			view.CustomerEmail,
			order.Status.String(),
			order.OrderDate.Format(other.OrderDateLayout),
			strconv.Itoa(quantity),
			format.Money(order.Total),
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to add order %s to report: %w", order.ID, err)
		}
	}

	if err := table.Append([]string{"", "", "", "", strconv.Itoa(len(views)) + " orders", format.Money(grandTotal)}); err != nil {
		return fmt.Errorf("failed to add report total: %w", err)
	}
	return table.Render()
}
