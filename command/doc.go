// Package command exposes go-command compatible command handlers implementing
// the account workflows (create with profile mirroring, delete by email).
// Commands are wired by the service layer and can be driven by any transport;
// the interactive console is the one shipped with this module.
package command
