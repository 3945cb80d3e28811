package cache

import "time"

const (
	DefaultTTL = 10 * time.Minute

	prefixConfiguration = "fleet:bus-configuration:"
	prefixBus           = "fleet:bus:"
)

func ConfigurationKey(id string) string {
	return prefixConfiguration + id
}

func ConfigurationPattern() string {
	return prefixConfiguration + "*"
}

func BusKey(id string) string {
	return prefixBus + id
}

// TTL returns ttl, or DefaultTTL when ttl is not positive.
func TTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}

func BusPattern() string {
	return prefixBus + "*"
}
