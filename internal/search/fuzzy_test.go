package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tokosena/tokosena/server/internal/model"
)

var testOpt = matcherOptions{threshold: defaultScoreThreshold, minMatch: defaultMinMatchChars}

func TestFieldScoreExactAndSubstring(t *testing.T) {
	assert.Equal(t, 0.0, fieldScore("shoes", "shoes", testOpt))

	// substring hit, penalized only by location drift
	s := fieldScore("running shoe", "blue running shoes", testOpt)
	assert.Less(t, s, 0.05)
	assert.Greater(t, s, 0.0)
}

func TestFieldScoreRejectsUnrelatedText(t *testing.T) {
	s := fieldScore("running shoe", "red jacket", testOpt)
	assert.Greater(t, s, defaultScoreThreshold)
}

func TestFieldScoreToleratesSmallEdits(t *testing.T) {
	// singular/plural and one-letter typos stay under the threshold
	assert.LessOrEqual(t, fieldScore("shoes", "shoe", testOpt), defaultScoreThreshold)
	assert.LessOrEqual(t, fieldScore("jaket", "jacket", testOpt), defaultScoreThreshold)
}

func TestFieldScoreMinMatchGuard(t *testing.T) {
	assert.Equal(t, 1.0, fieldScore("s", "shoes", testOpt))
	assert.Equal(t, 1.0, fieldScore("ab", "", testOpt))
}

func TestRankOrdersBestFirst(t *testing.T) {
	products := []*model.Product{
		{ProductID: "typo", Name: "Runing Shoe"},
		{ProductID: "exact", Name: "running shoe"},
	}
	got := rank("running shoe", products, nil, testOpt)
	if assert.Len(t, got, 2) {
		assert.Equal(t, "exact", got[0].ProductID)
		assert.Equal(t, "typo", got[1].ProductID)
	}
}

func TestRankStableOnTies(t *testing.T) {
	products := []*model.Product{
		{ProductID: "a", Name: "Shoes"},
		{ProductID: "b", Name: "Shoes"},
	}
	got := rank("shoes", products, nil, testOpt)
	if assert.Len(t, got, 2) {
		assert.Equal(t, "a", got[0].ProductID)
		assert.Equal(t, "b", got[1].ProductID)
	}
}

func TestScoreProductPrefersNameOverDescription(t *testing.T) {
	nameHit := &model.Product{Name: "Shoes", Description: "irrelevant"}
	descHit := &model.Product{Name: "irrelevant", Description: "Shoes"}

	sn := scoreProduct("shoes", nameHit, nil, testOpt)
	sd := scoreProduct("shoes", descHit, nil, testOpt)
	assert.LessOrEqual(t, sn, sd)
}
