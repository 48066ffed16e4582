package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	regmodel "iysyatra_backend/internals/features/yatra_registration/model"
)

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name      string
		initiated int64
		paid      int64
		total     int64
		want      string
	}{
		{"nothing initiated", 0, 0, 2, regmodel.RegStatusPending},
		{"one linked none verified", 1, 0, 2, regmodel.RegStatusPartial},
		{"advance verified", 2, 1, 2, regmodel.RegStatusPartial},
		{"all verified", 2, 2, 2, regmodel.RegStatusPaid},
		{"single installment schedule", 1, 1, 1, regmodel.RegStatusPaid},
		{"verification revoked on one", 2, 1, 2, regmodel.RegStatusPartial},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveStatus(tc.initiated, tc.paid, tc.total))
		})
	}
}

// Re-running the derivation on identical input must never change the
// answer, since the reconciler replays it after every transition.
func TestDeriveStatusIsStableUnderReplay(t *testing.T) {
	first := DeriveStatus(2, 1, 2)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, DeriveStatus(2, 1, 2))
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, regmodel.IsTerminal(regmodel.RegStatusPending))
	assert.False(t, regmodel.IsTerminal(regmodel.RegStatusPartial))
	assert.False(t, regmodel.IsTerminal(regmodel.RegStatusPaid))

	assert.True(t, regmodel.IsTerminal(regmodel.RegStatusCancelled))
	assert.True(t, regmodel.IsTerminal(regmodel.RegStatusSubstituted))
	assert.True(t, regmodel.IsTerminal(regmodel.RegStatusRefunded))
	assert.True(t, regmodel.IsTerminal(regmodel.RegStatusAttended))
}
