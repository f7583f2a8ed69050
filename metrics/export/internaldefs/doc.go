// Package internaldefs holds the shared counter and histogram definitions
// consumed by the prometheus and otel exporters, so both render the same
// metric names from the same snapshot.
package internaldefs
