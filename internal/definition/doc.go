// Package definition holds the top-level entity parsed from a definition
// file: world and output paths, the renderer task list, and the optional
// spreadsheet/remote/webhook extension blocks.
//
// Extensions are resolved through their capability's registry table
// exactly once, at load time, so an unknown `type` tag fails before any
// external process is started. Each resolved extension keeps a non-owning
// back-reference to its Definition, used as the default context when an
// operation is invoked without an explicit one.
package definition
