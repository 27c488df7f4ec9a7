package shortlink

import (
	"fmt"

	"github.com/speps/go-hashids/v2"
)

// Codec maps recipe ids to short shareable tokens and back. The mapping is a
// reversible salted encoding, so the same id always yields the same token and
// no lookup table is needed.
type Codec struct {
	h *hashids.HashID
}

func NewCodec(salt string, minLength int) (*Codec, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = minLength

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, fmt.Errorf("init shortlink codec: %w", err)
	}
	return &Codec{h: h}, nil
}

// Encode returns the short token for a positive recipe id.
func (c *Codec) Encode(id int64) (string, error) {
	if id < 1 {
		return "", fmt.Errorf("encode shortlink: id must be positive, got %d", id)
	}
	token, err := c.h.EncodeInt64([]int64{id})
	if err != nil {
		return "", fmt.Errorf("encode shortlink: %w", err)
	}
	return token, nil
}

// Decode recovers the recipe id from a token. The second return value is
// false for malformed or foreign tokens; Decode never panics on arbitrary
// input.
func (c *Codec) Decode(token string) (int64, bool) {
	ids, err := c.h.DecodeInt64WithError(token)
	if err != nil || len(ids) == 0 || ids[0] < 1 {
		return 0, false
	}
	return ids[0], true
}
