// Package process stops the headless browser started for PDF previews,
// together with the helper processes it spawns.
package process
