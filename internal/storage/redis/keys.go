package redis

// Key prefix for all client data
const keyPrefix = "qrinvite"

// namespacedKey returns the Redis key for a storage key
func namespacedKey(key string) string {
	return keyPrefix + ":" + key
}
