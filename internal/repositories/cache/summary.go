package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// initialSummaryVersion is used until the first mutation issues a token.
const initialSummaryVersion = "0"

type ttlSetter interface {
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// SummaryVersion returns the token current summaries of userID are stored under.
func SummaryVersion(ctx context.Context, c Cache, userID uint) (string, error) {
	var version string
	found, err := c.Get(ctx, SummaryVersionKey(userID), &version)
	if err != nil {
		return "", err
	}
	if !found || version == "" {
		return initialSummaryVersion, nil
	}
	return version, nil
}

// InvalidateSummaries issues a new version token for userID and drops the
// summaries stored under older ones. A summary computed concurrently with the
// mutation can only land under an old token, so it is never served.
func InvalidateSummaries(ctx context.Context, c Cache, userID uint) error {
	key, version := SummaryVersionKey(userID), uuid.NewString()

	// The token must not expire before the summaries stored under the
	// initial version do.
	var err error
	if p, ok := c.(ttlSetter); ok {
		err = p.SetWithTTL(ctx, key, version, 0)
	} else {
		err = c.Set(ctx, key, version)
	}
	if err != nil {
		return err
	}
	return c.DeletePattern(ctx, SummaryPattern(userID))
}
