// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle that loads flow files,
// builds a graph per flow and reports on it, decoupled from any specific
// entrypoint like a CLI or server.
package app
