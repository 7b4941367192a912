// Package registry provides the central "glue" for the extension system.
//
// A Table stores the mapping between the string tags used in definition
// files (the `type` attribute of a spreadsheet/remote/webhook block) and
// the compiled Go factory that constructs the matching variant. Each
// capability owns its own independent Table; variants are registered
// explicitly during application startup, never discovered by reflection.
//
// Resolution of an unknown tag fails with an error listing the registered
// tags, so a typo in a definition file surfaces before any external
// process is started.
package registry
