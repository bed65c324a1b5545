package gms

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTopicsCoverEveryCategory(t *testing.T) {
	for _, c := range Categories {
		require.NotEmpty(t, Topics(c.Num), "category %s has no topics", c.Num)
	}
}

func TestDefaultTopicFollowsCategory(t *testing.T) {
	// Switching categories must land on the new category's first topic,
	// never keep a topic from the old one.
	require.Equal(t, "Non-payment / Delay / Deduction", DefaultTopic("SAL"))
	require.Equal(t, "Leave Rejection", DefaultTopic("HR"))
	require.NotContains(t, Topics("HR"), DefaultTopic("SAL"))

	require.Equal(t, "", DefaultTopic("NOPE"))
}

func TestCategoryName(t *testing.T) {
	require.Equal(t, "Salary & Wage Issues", CategoryName("SAL"))
	require.Equal(t, "XYZ", CategoryName("XYZ"))
}
