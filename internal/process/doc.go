// Package process stops the headless browser started for PDF rendering,
// children included.
package process
