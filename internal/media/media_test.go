package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	kind, err := ParseKind(" Movie ")
	require.NoError(t, err)
	assert.Equal(t, KindMovie, kind)

	kind, err = ParseKind("series")
	require.NoError(t, err)
	assert.Equal(t, KindSeries, kind)

	_, err = ParseKind("person")
	assert.Error(t, err)
}

func TestParseKindSet(t *testing.T) {
	set := ParseKindSet("movie")
	assert.True(t, set.Allows(KindMovie))
	assert.False(t, set.Allows(KindSeries))

	set = ParseKindSet("tv, movie")
	assert.Equal(t, AllKinds(), set)

	assert.Equal(t, AllKinds(), ParseKindSet(""))
	assert.Equal(t, AllKinds(), ParseKindSet("person,podcast"))
}

func TestYearFromDate(t *testing.T) {
	year := YearFromDate("2022-02-18")
	require.NotNil(t, year)
	assert.Equal(t, 2022, *year)

	assert.Nil(t, YearFromDate(""))
	assert.Nil(t, YearFromDate("20"))
	assert.Nil(t, YearFromDate("TBA-01-01"))
}

func TestCandidateYearLabel(t *testing.T) {
	year := 1999
	assert.Equal(t, "1999", Candidate{Year: &year}.YearLabel())
	assert.Equal(t, "Unknown", Candidate{}.YearLabel())
}
