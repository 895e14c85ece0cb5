package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealUnsealRoundTrip(t *testing.T) {
	m := testManager()

	sealed, err := m.SealPassword("Sup3rSecret!")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "Sup3rSecret!")

	password, err := m.UnsealPassword(sealed)
	require.NoError(t, err)
	assert.Equal(t, "Sup3rSecret!", password)
}

func TestSealProducesFreshNonce(t *testing.T) {
	m := testManager()

	first, err := m.SealPassword("same-password")
	require.NoError(t, err)
	second, err := m.SealPassword("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestUnsealRejectsForeignKey(t *testing.T) {
	sealed, err := NewManager(&Config{Secret: "other-secret"}).SealPassword("Sup3rSecret!")
	require.NoError(t, err)

	_, err = testManager().UnsealPassword(sealed)
	assert.Error(t, err)
}

func TestUnsealRejectsGarbage(t *testing.T) {
	m := testManager()

	_, err := m.UnsealPassword("%%%not-base64%%%")
	assert.Error(t, err)

	_, err = m.UnsealPassword("c2hvcnQ")
	assert.Error(t, err)
}
