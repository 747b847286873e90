// Package s25f drives Spansion/Cypress S25FL and S25FS serial NOR
// flash chips: identification, addressed register access, hybrid to
// uniform sector architecture conversion, block erase, and fault
// recovery via software reset.
//
// The driver is synchronous and performs no locking; the caller must
// be the only issuer of commands on a Transport while any call is in
// flight. Erases go through a Session, which converts the chip to the
// uniform sector layout on first use and restores the original
// configuration when the session is closed.
package s25f
