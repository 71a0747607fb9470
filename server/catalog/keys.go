package catalog

import "strings"

// SchemaSuffix is appended to a resource key to form its schema resource.
const SchemaSuffix = "_columnnames"

// ResourceKey derives the stable lookup key for an entry name. The key
// keeps the file extension: "Sales Data.csv" becomes "sales_data.csv".
// The derivation is idempotent, so applying it to a key is a no-op.
func ResourceKey(name string) string {
	key := strings.ToLower(name)
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	return key
}

// SchemaKey returns the schema resource key for a data resource key.
func SchemaKey(key string) string {
	return key + SchemaSuffix
}
