// Package index maintains the set of registered secret names.
//
// The set is stored as one JSON array in a credential store that is
// separate from the secrets themselves. It mirrors which secret entries
// exist on a best-effort basis and is read only for listing. Updates are
// read-modify-write cycles serialized across local processes by an
// advisory file lock.
package index
