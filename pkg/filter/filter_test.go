package filter

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/devo/pkg/entry"
	"tableflip.dev/devo/pkg/timeutil"
)

var now = time.Date(2024, 6, 15, 20, 0, 0, 0, time.UTC)

func mk(id, title, date string, mood entry.Mood, content string, tags ...string) *entry.Entry {
	d, err := entry.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return &entry.Entry{ID: id, Title: title, Date: d, Mood: mood, Content: content, Tags: tags}
}

func fixtures() []*entry.Entry {
	return []*entry.Entry{
		mk("1", "Storm", "2024-06-14", entry.Anxious, "Worried about work", "work"),
		mk("2", "Sabbath", "2024-06-08", entry.Peaceful, "Rested well", "rest", "Family"),
		mk("3", "Psalms", "2024-05-20", entry.Grateful, "Read Psalm 103"),
		mk("4", "Old joy", "2023-01-01", entry.Joyful, "New year"),
	}
}

func ids(entries []*entry.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestApplyNoCriteria(t *testing.T) {
	got := Apply(fixtures(), Criteria{}, now)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(got))
}

func TestApplySearch(t *testing.T) {
	cases := map[string][]string{
		"STORM":  {"1"},
		"psalm":  {"3"},
		"family": {"2"},
		"  r  ":  {"1", "2", "3", "4"},
		"zzz":    {},
	}
	for search, want := range cases {
		got := Apply(fixtures(), Criteria{Search: search}, now)
		assert.Equal(t, want, ids(got), "search %q", search)
	}
}

func TestApplyMood(t *testing.T) {
	got := Apply(fixtures(), Criteria{Mood: entry.Peaceful}, now)
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestApplyRange(t *testing.T) {
	cases := map[timeutil.Range][]string{
		timeutil.All:   {"1", "2", "3", "4"},
		timeutil.Week:  {"1", "2"},
		timeutil.Month: {"1", "2", "3"},
		timeutil.Year:  {"1", "2", "3"},
	}
	for r, want := range cases {
		got := Apply(fixtures(), Criteria{Range: r}, now)
		assert.Equal(t, want, ids(got), "range %s", r)
	}
}

func TestApplyCutoffIsInclusive(t *testing.T) {
	entries := []*entry.Entry{mk("edge", "Edge", "2024-06-08", entry.Sad, "x")}
	got := Apply(entries, Criteria{Range: timeutil.Week}, now)
	assert.Len(t, got, 1)
}

func TestApplyComposesWithAnd(t *testing.T) {
	all := fixtures()
	c := Criteria{Search: "r", Mood: entry.Peaceful, Range: timeutil.Week}

	combined := ids(Apply(all, c, now))
	stepwise := ids(Apply(Apply(Apply(all, Criteria{Search: c.Search}, now), Criteria{Mood: c.Mood}, now), Criteria{Range: c.Range}, now))
	assert.Equal(t, stepwise, combined)
	assert.Equal(t, []string{"2"}, combined)
}

func TestParseCriteria(t *testing.T) {
	c, err := ParseCriteria("hope", "Grateful", "month")
	require.NoError(t, err)
	assert.Equal(t, entry.Grateful, c.Mood)
	assert.Equal(t, timeutil.Month, c.Range)
	assert.False(t, c.IsZero())

	c, err = ParseCriteria("", "", "")
	require.NoError(t, err)
	assert.True(t, c.IsZero())

	_, err = ParseCriteria("", "furious", "")
	assert.Error(t, err)
	_, err = ParseCriteria("", "", "decade")
	assert.Error(t, err)
}

func TestFromQuery(t *testing.T) {
	c, err := FromQuery(url.Values{"search": {"rest"}, "mood": {"peaceful"}, "date": {"week"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(Apply(fixtures(), c, now)))
}
