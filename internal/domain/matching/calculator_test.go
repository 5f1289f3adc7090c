package matching_test

import (
	"math"
	"testing"

	"github.com/ganot/quadfund/internal/domain/matching"
	"github.com/ganot/quadfund/internal/domain/money"
	"github.com/stretchr/testify/require"
)

func grant(id int64, amounts ...int64) matching.Grant {
	var sum int64
	for _, a := range amounts {
		sum += a
	}
	return matching.Grant{ProposalID: id, Collected: sum, Amounts: amounts}
}

func TestCalculate_BroadSupportBeatsConcentration(t *testing.T) {
	// Three donors of 100 against one donor of 900: same totals, but the
	// broadly supported proposal takes the whole budget.
	res, err := matching.Calculate(1000, []matching.Grant{
		grant(1, 100, 100, 100),
		grant(2, 900),
	})
	require.NoError(t, err)

	require.Equal(t, int64(900), res.Allocations[0].RawScore)
	require.Equal(t, int64(600), res.Allocations[0].Excess)
	require.Equal(t, int64(1000), res.Allocations[0].Match)

	require.Equal(t, int64(900), res.Allocations[1].RawScore)
	require.Equal(t, int64(0), res.Allocations[1].Excess)
	require.Equal(t, int64(0), res.Allocations[1].Match)

	require.Equal(t, int64(1000), res.TotalAllocated)
	require.Equal(t, int64(0), res.Leftover)
}

func TestCalculate_NoExcessAnywhere(t *testing.T) {
	// Single-contributor proposals have zero excess; the whole budget stays
	// unallocated.
	res, err := matching.Calculate(5000, []matching.Grant{
		grant(1, 400),
		grant(2, 914),
		grant(3, 10000),
	})
	require.NoError(t, err)

	for _, a := range res.Allocations {
		require.Equal(t, int64(0), a.Match)
	}
	require.Equal(t, int64(0), res.TotalAllocated)
	require.Equal(t, int64(5000), res.Leftover)
}

func TestCalculate_ProportionalSplitWithRemainder(t *testing.T) {
	res, err := matching.Calculate(550000, []matching.Grant{
		grant(1, 1200, 44999, 33),
		grant(2, 30000, 58999),
		grant(3, 230000, 100),
		grant(4, 100000, 5),
	})
	require.NoError(t, err)

	require.Equal(t, int64(63001), res.Allocations[0].RawScore)
	require.Equal(t, int64(16769), res.Allocations[0].Excess)
	require.Equal(t, int64(83742), res.Allocations[0].Match)

	require.Equal(t, int64(172225), res.Allocations[1].RawScore)
	require.Equal(t, int64(83226), res.Allocations[1].Excess)
	require.Equal(t, int64(415619), res.Allocations[1].Match)

	require.Equal(t, int64(239121), res.Allocations[2].RawScore)
	require.Equal(t, int64(9021), res.Allocations[2].Excess)
	require.Equal(t, int64(45049), res.Allocations[2].Match)

	require.Equal(t, int64(101124), res.Allocations[3].RawScore)
	require.Equal(t, int64(1119), res.Allocations[3].Excess)
	require.Equal(t, int64(5588), res.Allocations[3].Match)

	require.Equal(t, int64(549998), res.TotalAllocated)
	require.Equal(t, int64(2), res.Leftover)
}

func TestCalculate_Conservation(t *testing.T) {
	cases := [][]matching.Grant{
		{grant(1, 1, 2, 3), grant(2, 7, 11)},
		{grant(1, 999999, 1), grant(2, 5, 5, 5, 5, 5)},
		{grant(1, 123456789), grant(2, 3, 3, 3), grant(3, 1000000, 1000000)},
	}
	for _, grants := range cases {
		res, err := matching.Calculate(777777, grants)
		require.NoError(t, err)
		require.LessOrEqual(t, res.TotalAllocated, int64(777777))
		require.Equal(t, res.TotalAllocated+res.Leftover, int64(777777))
	}
}

func TestCalculate_ZeroContributionProposal(t *testing.T) {
	res, err := matching.Calculate(1000, []matching.Grant{
		grant(1),
		grant(2, 100, 100),
	})
	require.NoError(t, err)

	require.Equal(t, int64(0), res.Allocations[0].RawScore)
	require.Equal(t, int64(0), res.Allocations[0].Excess)
	require.Equal(t, int64(0), res.Allocations[0].Match)
	require.Equal(t, int64(1000), res.Allocations[1].Match)
}

func TestCalculate_NoProposals(t *testing.T) {
	res, err := matching.Calculate(1000, nil)
	require.NoError(t, err)
	require.Empty(t, res.Allocations)
	require.Equal(t, int64(0), res.TotalAllocated)
	require.Equal(t, int64(1000), res.Leftover)
}

func TestCalculate_RawScoreOverflow(t *testing.T) {
	// Enough huge contributions that the squared root-sum exceeds the
	// representable range.
	big := int64(math.MaxInt64 / 8)
	_, err := matching.Calculate(1000, []matching.Grant{
		grant(1, big, big, big, big, big, big, big),
	})
	require.ErrorIs(t, err, money.ErrOverflow)
}

func TestCalculate_CollectedMismatchRejected(t *testing.T) {
	_, err := matching.Calculate(1000, []matching.Grant{
		{ProposalID: 1, Collected: 500, Amounts: []int64{100, 100}},
	})
	require.Error(t, err)
}

func TestCalculate_NonPositiveContributionRejected(t *testing.T) {
	_, err := matching.Calculate(1000, []matching.Grant{
		{ProposalID: 1, Collected: 0, Amounts: []int64{0}},
	})
	require.Error(t, err)
}

func TestCalculate_DeterministicAcrossRuns(t *testing.T) {
	grants := []matching.Grant{
		grant(1, 1200, 44999, 33),
		grant(2, 30000, 58999),
		grant(3, 230000, 100),
	}
	first, err := matching.Calculate(550000, grants)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := matching.Calculate(550000, grants)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}
