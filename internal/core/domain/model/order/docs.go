// Package order holds the service order aggregate and the two status machines
// it drives: the order lifecycle (Received through Delivered, with the Cancelled
// and Returned exits) and the budget lifecycle (Created through Approved or
// Rejected).
//
// Budgets are child entities of Order. Their status can only be changed by
// Order methods, so every workflow step updates the order and its budget
// together and records a single StatusChanged event describing both.
//
// A budget stores no amount: its value is Order.Total, computed from the
// current service and part lines.
package order
