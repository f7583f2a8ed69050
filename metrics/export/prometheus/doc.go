// Package prometheus renders authfront metric snapshots in Prometheus text
// exposition format without depending on the Prometheus client library.
//
// # Architecture boundaries
//
// This package reads snapshots through a narrow source interface. It does NOT
// mutate metrics or reach into SessionStore internals.
package prometheus
