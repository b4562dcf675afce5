// Package catalog holds the services and parts a service order can be composed of.
// Prices are read when an order is opened and copied onto its lines.
package catalog
