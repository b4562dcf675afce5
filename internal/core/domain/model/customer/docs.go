// Package customer holds the customer and vehicle entities the engine reads
// when opening a service order. Vehicles unknown to the workshop are
// registered on the fly through Customer.RegisterVehicle.
package customer
