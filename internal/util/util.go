package util

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
)

var uidMatcher = regexp.MustCompile("^[a-zA-Z0-9]+$")

// GenUUID generates a full-length unique id string.
func GenUUID() string {
	return uuid.New().String()
}

// GenUID generates a compact unique id suitable for resource names.
func GenUID() string {
	return shortuuid.New()
}

// ValidateUID checks whether a string is a well-formed compact uid.
func ValidateUID(uid string) bool {
	return len(uid) >= 4 && len(uid) <= 32 && uidMatcher.MatchString(uid)
}
