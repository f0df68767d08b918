package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryFor_PartitionsFullRange(t *testing.T) {
	thresholds := DefaultConfig().Thresholds

	cases := []struct {
		score float64
		want  Category
	}{
		{100, StrongBuy},
		{80, StrongBuy},
		{79.9, Buy},
		{65, Buy},
		{64.9, Hold},
		{45, Hold},
		{44.9, Sell},
		{25, Sell},
		{24.9, StrongSell},
		{0, StrongSell},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, categoryFor(thresholds, tc.score), "score %v", tc.score)
	}
}

func TestRecommend_RiskVetoDowngradesOneCategory(t *testing.T) {
	cfg := DefaultConfig()

	composite := CompositeScore{
		Value: 85,
		SubScores: []SubScore{
			{Group: GroupMomentum, Value: 95, Weight: 0.3, Confidence: true},
			{Group: GroupRisk, Value: 10, Weight: 0.15, Confidence: true},
		},
		WeightSum: 0.45,
	}

	rec := Recommend(cfg, composite)

	assert.Equal(t, Buy, rec.Category, "Strong Buy drops exactly one category")
	assert.True(t, rec.Vetoed)
	assert.Contains(t, rec.Rationale, "downgraded one notch")
}

func TestRecommend_VetoNeverUpgrades(t *testing.T) {
	cfg := DefaultConfig()

	composite := CompositeScore{
		Value: 10,
		SubScores: []SubScore{
			{Group: GroupRisk, Value: 5, Weight: 0.15, Confidence: true},
		},
		WeightSum: 0.15,
	}

	rec := Recommend(cfg, composite)

	assert.Equal(t, StrongSell, rec.Category)
	assert.True(t, rec.Vetoed)
}

func TestRecommend_RiskAtFloorNotVetoed(t *testing.T) {
	cfg := DefaultConfig()

	composite := CompositeScore{
		Value: 85,
		SubScores: []SubScore{
			{Group: GroupRisk, Value: 15, Weight: 0.15, Confidence: true},
		},
		WeightSum: 0.15,
	}

	rec := Recommend(cfg, composite)

	assert.Equal(t, StrongBuy, rec.Category, "the veto floor is exclusive")
	assert.False(t, rec.Vetoed)
}

func TestRecommend_RationaleNamesTopTwoContributors(t *testing.T) {
	cfg := DefaultConfig()

	composite := CompositeScore{
		Value: 66.4,
		SubScores: []SubScore{
			{Group: GroupMomentum, Value: 90, Weight: 0.3, Confidence: true},
			{Group: GroupValuation, Value: 70, Weight: 0.3, Confidence: true},
			{Group: GroupSentiment, Value: 30, Weight: 0.25, Confidence: true},
			{Group: GroupRisk, Value: 60, Weight: 0.15, Confidence: true},
		},
		WeightSum: 1.0,
	}

	rec := Recommend(cfg, composite)

	assert.Contains(t, rec.Rationale, "momentum 90.0")
	assert.Contains(t, rec.Rationale, "valuation 70.0")
	assert.NotContains(t, rec.Rationale, "sentiment")
}

func TestRecommend_DeterministicRationale(t *testing.T) {
	cfg := DefaultConfig()
	composite := CompositeScore{
		Value: 55,
		SubScores: []SubScore{
			{Group: GroupValuation, Value: 50, Weight: 0.3, Confidence: true},
			{Group: GroupMomentum, Value: 50, Weight: 0.3, Confidence: true},
		},
		WeightSum: 0.6,
	}

	// Equal contributions break the tie on group name.
	a := Recommend(cfg, composite)
	b := Recommend(cfg, composite)

	assert.Equal(t, a.Rationale, b.Rationale)
	assert.Contains(t, a.Rationale, "momentum")
}
