package utils

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	t.Parallel()

	a, b := GenerateID(), GenerateID()
	require.NotEqual(t, a, b)
	require.True(t, IsID(a))
	require.Len(t, a, IDLength)

	require.False(t, IsID(""))
	require.False(t, IsID("auction1"))
	require.False(t, IsID(a+"-title"))
}

func TestSetLevel(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	require.NoError(t, SetLevel("debug"))
	require.Equal(t, log.DebugLevel, log.GetLevel())

	require.Error(t, SetLevel("loud"))
	require.Equal(t, log.DebugLevel, log.GetLevel())
}
