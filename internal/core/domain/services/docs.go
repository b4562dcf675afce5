// Package services provides domain services that work across aggregates:
//   - OrderIntake opens an order from a customer, a vehicle and catalog items
//   - TurnaroundCalculator computes turnaround statistics over delivered orders
package services
