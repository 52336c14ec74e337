// Package services implements the driving port interfaces.
// Services hold the database lifecycle logic and orchestrate
// calls to driven ports (adapters).
package services
