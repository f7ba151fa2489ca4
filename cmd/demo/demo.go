// Command demo fills the configured journal with sample entries.
package main

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/devo/pkg/entry"
	"tableflip.dev/devo/pkg/journal"
	"tableflip.dev/devo/pkg/store"
)

func main() {
	ctx := context.Background()

	p, err := store.Load(nil)
	if err != nil {
		panic(err)
	}
	defer p.Close()

	j, err := journal.Open(ctx, p)
	if err != nil {
		panic(err)
	}

	for _, d := range demoDrafts(time.Now()) {
		if _, err := j.Create(ctx, d); err != nil {
			panic(err)
		}
	}

	for _, e := range j.Entries() {
		fmt.Println(e.String())
	}
}

func demoDrafts(now time.Time) []entry.Draft {
	day := func(back int) string {
		return entry.DateOf(now.AddDate(0, 0, -back)).String()
	}
	return []entry.Draft{
		{
			Title:              "The Lord is my shepherd",
			Date:               day(0),
			Mood:               string(entry.Peaceful),
			Content:            "Read Psalm 23 slowly. I shall not want.",
			ScriptureReference: "Psalm 23:1",
			Tags:               "psalms, rest",
		},
		{
			Title:          "Waiting",
			Date:           day(3),
			Mood:           string(entry.Anxious),
			Content:        "Hard to be still today. Prayed through the worry list.",
			PrayerRequests: "Mom's surgery on Friday.",
			Tags:           "prayer",
		},
		{
			Title:              "Thankful",
			Date:               day(12),
			Mood:               string(entry.Grateful),
			Content:            "Counted the small gifts of the week.",
			ScriptureReference: "1 Thessalonians 5:18",
			Tags:               "gratitude",
		},
		{
			Title:              "Why do the righteous suffer",
			Date:               day(40),
			Mood:               string(entry.Confused),
			Content:            "Started Job. More questions than answers.",
			ScriptureReference: "Job 1:21",
			Tags:               "study, job",
		},
	}
}
