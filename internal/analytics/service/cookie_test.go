package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsDomain "github.com/allisson/analytics-relay/internal/analytics/domain"
)

func TestExtractVisitorIdentity(t *testing.T) {
	t.Run("valid cookie produces canonical identity", func(t *testing.T) {
		identity, err := ExtractVisitorIdentity("GA1.2.987654321.1609459200")

		require.NoError(t, err)
		require.NotNil(t, identity)
		assert.Equal(t, "987654321", identity.UserID)
		assert.Equal(t, "1609459200", identity.Timestamp)
		assert.Equal(t, "987654321.1609459200", identity.ClientID())
	})

	t.Run("empty cookie returns no identity", func(t *testing.T) {
		identity, err := ExtractVisitorIdentity("")

		assert.NoError(t, err)
		assert.Nil(t, identity)
	})

	t.Run("fewer than four segments returns no identity", func(t *testing.T) {
		for _, value := range []string{"GA1", "GA1.2", "GA1.2.987654321"} {
			identity, err := ExtractVisitorIdentity(value)

			assert.NoError(t, err, value)
			assert.Nil(t, identity, value)
		}
	})

	t.Run("empty user id segment returns no identity", func(t *testing.T) {
		identity, err := ExtractVisitorIdentity("GA1.2..1609459200")

		assert.NoError(t, err)
		assert.Nil(t, identity)
	})

	t.Run("empty timestamp segment returns no identity", func(t *testing.T) {
		identity, err := ExtractVisitorIdentity("GA1.2.987654321.")

		assert.NoError(t, err)
		assert.Nil(t, identity)
	})

	t.Run("version mismatch returns typed error", func(t *testing.T) {
		identity, err := ExtractVisitorIdentity("GA2.2.987654321.1609459200")

		assert.ErrorIs(t, err, analyticsDomain.ErrCookieVersionMismatch)
		assert.Nil(t, identity)
	})

	t.Run("non analytics cookie value returns version mismatch", func(t *testing.T) {
		identity, err := ExtractVisitorIdentity("XX1.2.987654321.1609459200")

		assert.ErrorIs(t, err, analyticsDomain.ErrCookieVersionMismatch)
		assert.Nil(t, identity)
	})
}
