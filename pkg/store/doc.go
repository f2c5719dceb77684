/*
Package store persists validated specs with optimistic concurrency.

Each stored spec is wrapped in a versioned record; the version starts at 1
and increases by one per accepted update. Updates replace the spec wholesale
after a compare-and-swap on the expected version, so two racing writers
cannot silently overwrite each other: the loser gets a Conflict and must
re-read. Spec bytes are written verbatim — validation happens before the
write, and nothing on the write path rewrites a field — which keeps the
stored representation exactly what the user submitted, unknown fields
included.
*/
package store
