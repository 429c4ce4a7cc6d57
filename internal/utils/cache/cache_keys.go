package cache

import (
	"fmt"
)

type EntityType string

const (
	EntityCard EntityType = "card"
)

type KeyType string

const (
	KeyUser KeyType = "user"
)

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entity, keyType, value)
}
