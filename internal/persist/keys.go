// Package persist mirrors the entity store into a key/value backend. Each
// collection is one JSON document under a fixed key.
package persist

const (
	KeyProviders    = "providers"
	KeyProducts     = "products"
	KeyCages        = "cages"
	KeyAppointments = "appointments"
	KeySequences    = "sequences"

	BackupPrefix = "backup/"
)

var collectionKeys = []string{KeyProviders, KeyProducts, KeyCages, KeyAppointments}
