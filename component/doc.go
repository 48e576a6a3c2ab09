// Package component defines the lifecycle interface shared by httpfacade
// clients and test servers, and a registry that starts them in order and
// stops them in reverse.
//
// # Interfaces
//
//   - Component: Start/Stop lifecycle with health reporting
//   - Describable: one-line summary of what a component is
package component
