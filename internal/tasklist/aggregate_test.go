package tasklist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/twiced-technology-gmbh/todo/internal/date"
	"github.com/twiced-technology-gmbh/todo/internal/task"
)

func TestProjectsSortedUnique(t *testing.T) {
	l := listFrom(
		"one +Work +Errand",
		"two +Work",
		"three @Store",
	)

	assert.Equal(t, []string{"Errand", "Work"}, l.Projects())
	assert.Equal(t, []string{"Store"}, l.Contexts())
}

func TestProjectsEmptyList(t *testing.T) {
	var l List
	assert.Empty(t, l.Projects())
	assert.Empty(t, l.Contexts())
}

func TestSummarize(t *testing.T) {
	l := listFrom(
		"(A) Pay rent +Home due:2023-04-10",
		"Water plants +Home @Garden due:2023-04-15",
		"x 2023-04-01 Done already +Work",
		"(B) Plan trip",
	)
	today := date.New(2023, time.April, 15)

	ov := l.Summarize(today)

	assert.Equal(t, 4, ov.Total)
	assert.Equal(t, 3, ov.Open)
	assert.Equal(t, 1, ov.Completed)
	assert.Equal(t, 2, ov.Prioritized)
	assert.Equal(t, 1, ov.Overdue)
	assert.Equal(t, 1, ov.DueToday)
	assert.Equal(t, []TagCount{{Name: "Home", Count: 2}, {Name: "Work", Count: 1}}, ov.Projects)
	assert.Equal(t, []TagCount{{Name: "Garden", Count: 1}}, ov.Contexts)
}

func TestOverdue(t *testing.T) {
	today := date.New(2023, time.April, 15)

	assert.True(t, Overdue(task.Parse("late due:2023-04-14"), today))
	assert.False(t, Overdue(task.Parse("on time due:2023-04-15"), today))
	assert.False(t, Overdue(task.Parse("future due:2023-04-16"), today))
	assert.False(t, Overdue(task.Parse("no due date"), today))
	assert.False(t, Overdue(task.Parse("junk due:soon"), today))
	assert.False(t, Overdue(task.Parse("x done late due:2023-04-14"), today))
}
