package main

import (
	"fmt"
	"time"

	"github.com/willibrandon/mtlog-log4net/core"
)

type customer struct {
	Name  string
	Email string
}

var errPaymentDeclined = fmt.Errorf("payment declined")

// orderEvent builds the seq-th event of a producer. Every fourth event fails.
func orderEvent(producer, seq int) *core.LogEvent {
	orderID := fmt.Sprintf("%d-%04d", producer, seq)
	properties := []*core.LogEventProperty{
		core.NewProperty("OrderId", orderID),
		core.NewProperty("Customer", customer{Name: fmt.Sprintf("customer-%d", producer), Email: "orders@example.com"}),
		core.NewProperty("Items", []string{"apple", "pear"}),
		core.NewProperty("Total", 12.5+float64(seq)),
	}

	if seq%4 == 3 {
		err := fmt.Errorf("order %s: %w", orderID, errPaymentDeclined)
		return core.NewLogEvent(time.Now(), core.ErrorLevel, err, "Order {OrderId} for {Customer} failed", properties...)
	}
	return core.NewLogEvent(time.Now(), core.InformationLevel, nil, "Order {OrderId} for {Customer} totals {Total}", properties...)
}
