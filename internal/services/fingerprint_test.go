package services

import (
	"room-matching-service/internal/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	base := mustMatrix(t, [][]int64{{1, 2}, {3, 4}})
	same := mustMatrix(t, [][]int64{{1, 2}, {3, 4}})
	other := mustMatrix(t, [][]int64{{1, 2}, {3, 5}})
	relabeled, err := domain.NewScoreMatrix([]string{"A", "B"}, []string{"R0", "R1"}, [][]int64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	key := Fingerprint(base, domain.Minimize, domain.StrategyHungarian)

	assert.True(t, strings.HasPrefix(key, cacheKeyPrefix))
	assert.Equal(t, key, Fingerprint(same, domain.Minimize, domain.StrategyHungarian))
	assert.NotEqual(t, key, Fingerprint(base, domain.Maximize, domain.StrategyHungarian))
	assert.NotEqual(t, key, Fingerprint(base, domain.Minimize, domain.StrategyLP))
	assert.NotEqual(t, key, Fingerprint(other, domain.Minimize, domain.StrategyHungarian))
	assert.NotEqual(t, key, Fingerprint(relabeled, domain.Minimize, domain.StrategyHungarian))
}
