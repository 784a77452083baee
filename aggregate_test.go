package cssjit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	marker := Marker{Namespace: "ui", Name: "MonorailCSS"}
	results := CategoryResults{
		CategoryAttribute: {{"alert alert-secondary mt-4"}, {"btn"}},
		CategoryHelper:    {{"bg-red-200"}, {"bg-red-300"}, {"btn"}},
		CategoryMarkup:    {{"oi oi-plus"}, {}},
		CategoryFile:      {{"btn", "nav  item", "nav item"}},
	}

	set := Aggregate(marker, results)

	assert.Equal(t, []string{
		"alert alert-secondary mt-4",
		"bg-red-200",
		"bg-red-300",
		"btn",
		"nav  item",
		"nav item",
		"oi oi-plus",
	}, set.Classes())
	assert.Equal(t, 7, set.Len())
	assert.Equal(t, "ui", set.Namespace)

	// Every occurrence is present
	for _, seqs := range results {
		for _, seq := range seqs {
			for _, v := range seq {
				assert.True(t, set.Contains(v), v)
			}
		}
	}

	assert.Equal(t, 3, set.Occurrences(CategoryHelper))
	assert.Equal(t, 3, set.Occurrences(CategoryFile))
	assert.Equal(t, 1, set.Occurrences(CategoryMarkup))
	assert.Equal(t, []string{"bg-red-200", "bg-red-300", "btn"}, set.CategoryClasses(CategoryHelper))
}

func TestAggregateWhitespaceAndCaseStayDistinct(t *testing.T) {
	set := Aggregate(Marker{}, CategoryResults{
		CategoryHelper: {{"a b"}, {"a  b"}, {" a b"}, {"A b"}},
	})
	assert.Equal(t, 4, set.Len())
	assert.False(t, set.Contains("a\tb"))
}

func TestAggregateIdempotent(t *testing.T) {
	results := CategoryResults{
		CategoryHelper: {{"x"}, {"y"}},
		CategoryFile:   {{"y", "z"}},
	}
	first := Aggregate(Marker{}, results)

	doubled := CategoryResults{}
	doubled.Merge(results)
	doubled.Merge(results)
	second := Aggregate(Marker{}, doubled)

	assert.Equal(t, first.Classes(), second.Classes())
}

func TestAggregateEmpty(t *testing.T) {
	set := Aggregate(Marker{Name: "MonorailCSS"}, CategoryResults{})
	assert.Equal(t, 0, set.Len())
	assert.Equal(t, []string{}, set.Classes())
	assert.Equal(t, FallbackNamespace, set.Namespace)
}

func TestUnion(t *testing.T) {
	got := Union([][]string{{"b", "a"}}, [][]string{{"a"}, {"c"}}, nil)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, []string{}, Union())
}
