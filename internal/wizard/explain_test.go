package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUSD(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$100,000", FormatUSD(NewAmount(100000)))
	assert.Equal(t, "$0", FormatUSD(Amount{}))
}

func TestExplain(t *testing.T) {
	t.Parallel()

	a := Answers{Platform: PlatformBCGame, TotalWagered: NewAmount(50000)}
	e := Explain(StatusDisqualifiedWagerLow, a)
	assert.Equal(t, "Eligibility Issue: Low Wager", e.Title)
	assert.Contains(t, e.Body, "Your provided wager of $50,000")
	assert.Contains(t, e.Body, "$100,000")

	a.Platform = PlatformStake
	a.Attestation = Attestation{Status: AttestationSuccess, Wager: NewAmount(75000)}
	assert.Contains(t, Explain(StatusDisqualifiedWagerLow, a).Body, "Your verified wager of $75,000")

	for _, s := range []Status{StatusUserUnavailable, StatusDisqualifiedPlatform, StatusDisqualifiedSelfExcluded} {
		assert.NotEmpty(t, Explain(s, a).Title, s.String())
	}
	assert.Equal(t, Explanation{}, Explain(StatusInProgress, a))
}

func TestDefaultRanks(t *testing.T) {
	t.Parallel()

	ranks := DefaultRanks()
	require.Len(t, ranks, 3)
	assert.Len(t, ranks.Options(PlatformStake), 9)
	assert.Len(t, ranks.Options(PlatformBCGame), 10)
	assert.Len(t, ranks.Options(PlatformShuffle), 5)
	assert.Empty(t, ranks.Options(PlatformOther))
	assert.True(t, ranks.Contains(PlatformStake, "Platinum III"))
	assert.False(t, ranks.Contains(PlatformShuffle, "Platinum III"))
}

func TestParseRankCatalogUnknownPlatform(t *testing.T) {
	t.Parallel()

	_, err := ParseRankCatalog([]byte("Roobet:\n  - value: x\n    label: x\n"))
	assert.Error(t, err)
}
