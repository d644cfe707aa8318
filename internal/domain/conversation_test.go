package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewParticipantPair_OrderIndependent(t *testing.T) {
	req := require.New(t)

	a := uuid.New()
	b := uuid.New()

	p1, err := NewParticipantPair(a, b)
	req.NoError(err)
	p2, err := NewParticipantPair(b, a)
	req.NoError(err)

	req.Equal(p1, p2)
	req.Less(p1.Low.String(), p1.High.String())
}

func TestNewParticipantPair_RejectsSelf(t *testing.T) {
	req := require.New(t)

	a := uuid.New()
	_, err := NewParticipantPair(a, a)
	req.ErrorIs(err, ErrInvalidPair)
}

func TestNewParticipantPair_RejectsNil(t *testing.T) {
	req := require.New(t)

	a := uuid.New()
	_, err := NewParticipantPair(a, uuid.Nil)
	req.ErrorIs(err, ErrInvalidPair)

	_, err = NewParticipantPair(uuid.Nil, a)
	req.ErrorIs(err, ErrInvalidPair)
}

func TestParticipantPair_ContainsAndOther(t *testing.T) {
	req := require.New(t)

	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	p, err := NewParticipantPair(a, b)
	req.NoError(err)

	req.True(p.Contains(a))
	req.True(p.Contains(b))
	req.False(p.Contains(c))

	req.Equal(b, p.Other(a))
	req.Equal(a, p.Other(b))
}

func TestParticipantPair_JSONRoundTrip(t *testing.T) {
	req := require.New(t)

	p, err := NewParticipantPair(uuid.New(), uuid.New())
	req.NoError(err)

	raw, err := json.Marshal(p)
	req.NoError(err)

	var decoded ParticipantPair
	req.NoError(json.Unmarshal(raw, &decoded))
	req.Equal(p, decoded)
}
