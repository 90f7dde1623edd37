// Package config handles configuration loading, parsing, and validation
// from environment variables, an optional config.yaml and built-in defaults.
//
// Every setting can be supplied as TERMINAL_<SECTION>_<KEY>, e.g.
// TERMINAL_SERVER_PORT. The unprefixed names used by earlier deployments
// (DB_HOST, EXPECTED_CLIENT_VERSION, ...) are honoured as well; the
// prefixed form wins when both are set.
package config
