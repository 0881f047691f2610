// Package settings loads, layers, and clamps the options that control how
// test executables are discovered and run.
//
// A Store holds one baseline built from, lowest first: built-in defaults,
// the user's settings file, the solution's gtadapter.toml (or .yaml), GTA_*
// environment variables, and --set flags. Every [[executables]] section of
// the settings files becomes an override: the baseline with the section's
// options applied on top. Overrides are resolved and clamped once, when the
// Store is built, so looking one up never allocates.
//
// Options values handed out by a Store are shared and must be treated as
// read-only.
package settings
