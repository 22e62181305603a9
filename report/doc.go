// Package report holds the dashboard's computed sections and renders them
// as text tables or JSON.
package report
