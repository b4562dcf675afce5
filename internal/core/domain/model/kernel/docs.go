// Package kernel provides the value objects shared by every aggregate of the
// workshop domain:
//   - UUID: identifier of orders, budgets, vehicles, customers and catalog items
//   - Money: non-negative decimal amount used for applied values and totals
package kernel
