package cache

import (
	"fmt"
)

type EntityType string

const (
	EntityUser    EntityType = "user"
	EntitySummary EntityType = "summary"
)

type KeyType string

const (
	KeyID      KeyType = "id"
	KeyUser    KeyType = "user"
	KeyVersion KeyType = "version"
)

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entity, keyType, value)
}

// UserKey is where a user row is cached for token version checks.
func UserKey(userID uint) string {
	return GenerateKey(EntityUser, KeyID, userID)
}

// SummaryVersionKey holds the token that SummaryKey embeds. Writers replace
// it after every committed mutation, which orphans all older summaries.
func SummaryVersionKey(userID uint) string {
	return GenerateKey(EntitySummary, KeyVersion, userID)
}

// SummaryKey identifies one cached period summary of one user.
func SummaryKey(userID uint, version, start, end string) string {
	return fmt.Sprintf("%s:%s:%s_%s", GenerateKey(EntitySummary, KeyUser, userID), version, start, end)
}

// SummaryPattern matches every cached summary of a user.
func SummaryPattern(userID uint) string {
	return GenerateKey(EntitySummary, KeyUser, userID) + ":*"
}
