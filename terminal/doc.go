// @focus: #sys { term }
// Package terminal wraps a tcell screen behind a small cell-grid interface.
//
// Features:
//   - True color (24-bit) and 256-color palette output
//   - Key, resize and interrupt events translated from tcell
//   - Clean terminal restoration on exit/panic via EmergencyReset
//
// Tests drive the same code through tcell's simulation screen.
package terminal
