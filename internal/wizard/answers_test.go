package wizard

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswersSet(t *testing.T) {
	t.Parallel()

	var a Answers
	require.NoError(t, a.Set(FieldUsername, "JungleKing123"))
	require.NoError(t, a.Set(FieldPlatform, PlatformBCGame))
	require.NoError(t, a.Set(FieldTotalWagered, NewAmount(250000)))
	require.NoError(t, a.Set(FieldRecentWager, TriYes))
	require.NoError(t, a.Set(FieldWagerVideo, FileHandle("file-1")))

	expected := Answers{
		Username:     "JungleKing123",
		Platform:     PlatformBCGame,
		TotalWagered: NewAmount(250000),
		RecentWager:  TriYes,
		WagerVideo:   "file-1",
	}
	assert.Equal(t, expected, a)
}

func TestAnswersSetRejects(t *testing.T) {
	t.Parallel()

	a := Answers{Username: "kept"}
	before := a

	err := a.Set(FieldUsername, 42)
	assert.True(t, errors.Is(err, ErrFieldType))

	err = a.Set(FieldRecentWager, true)
	assert.True(t, errors.Is(err, ErrFieldType))

	err = a.Set(Field("nope"), "x")
	assert.True(t, errors.Is(err, ErrUnknownField))

	assert.Equal(t, before, a)
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in       string
		expected Amount
		err      bool
	}{
		{in: "", expected: Amount{}},
		{in: "  ", expected: Amount{}},
		{in: "150000", expected: NewAmount(150000)},
		{in: "$150,000", expected: NewAmount(150000)},
		{in: "99999.5", expected: Amount{Value: decimal.RequireFromString("99999.5"), Valid: true}},
		{in: "lots", err: true},
	}

	for _, tc := range testCases {
		got, err := ParseAmount(tc.in)
		if tc.err {
			assert.True(t, errors.Is(err, ErrAmount), tc.in)
			continue
		}

		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.expected.Valid, got.Valid, tc.in)
		assert.True(t, tc.expected.Value.Equal(got.Value), tc.in)
	}
}

func TestParsePlatform(t *testing.T) {
	t.Parallel()

	p, err := ParsePlatform("stake.com")
	require.NoError(t, err)
	assert.Equal(t, PlatformStake, p)

	_, err = ParsePlatform("Roobet")
	assert.True(t, errors.Is(err, ErrPlatform))

	assert.True(t, PlatformShuffle.Supported())
	assert.False(t, PlatformOther.Supported())
	assert.False(t, PlatformNone.Supported())
}

func TestBonusEligible(t *testing.T) {
	t.Parallel()

	assert.False(t, Answers{}.BonusEligible())
	assert.False(t, Answers{RecentWager: TriNo}.BonusEligible())
	assert.True(t, Answers{RecentWager: TriYes}.BonusEligible())
}
