// Package designsync pulls design assets (stylesheets and slide templates)
// from an Airtable or NocoDB table into the vault. Each record names a
// file path and its content; records are fetched page by page and written
// atomically, and a failing record never stops the others.
package designsync
