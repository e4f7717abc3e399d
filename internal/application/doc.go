// Package application provides application initialization and dependency wiring.
// It resolves the resource directory, loads the scene configuration snapshot,
// publishes it to the process-wide store and creates the router and HTTP
// server, keeping the main package focused on CLI parsing and orchestration.
package application
