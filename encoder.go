package hxbind

import (
	"fmt"

	"github.com/pthm/hxbind/lib/encoding"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// NewEncoder creates a new state token encoder with the given key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// EncodeState packs the bound values into an opaque token, for example to
// carry a half-filled form through a hidden field. Only the leaves the Set
// binds are included. If sensitive is true the token is encrypted;
// otherwise it is signed.
func (s *Set) EncodeState(enc *Encoder, sensitive bool) (string, error) {
	if s.disposed {
		return "", ErrDisposed
	}
	state := make(Record, len(s.bindings))
	for _, b := range s.bindings {
		state[b.Name()] = b.Value()
	}
	return enc.Encode(state, sensitive)
}

// RestoreState decodes a token made by EncodeState and applies every value
// it holds through the matching binding's SetValue, so change hooks fire
// and controls are re-rendered. Names without a binding are ignored.
func (s *Set) RestoreState(enc *Encoder, token string, sensitive bool) error {
	if s.disposed {
		return ErrDisposed
	}
	state, err := enc.Decode(token, sensitive)
	if err != nil {
		return fmt.Errorf("hxbind: restore state: %w", err)
	}
	for _, b := range s.bindings {
		if v, ok := state[b.Name()]; ok {
			b.SetValue(v)
		}
	}
	return nil
}
