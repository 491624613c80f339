package db

import (
	"fmt"
	"time"

	"github.com/pdxmph/goals-tui/internal/goals"
)

// CreateFixturesDatabase creates a test database with realistic sample goals
func CreateFixturesDatabase(dbPath, key string, format goals.Format) error {
	// Initialize empty database
	if err := Initialize(dbPath); err != nil {
		return fmt.Errorf("initializing fixtures database: %w", err)
	}

	// Open database to add test data
	database, err := Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening fixtures database: %w", err)
	}
	defer database.Close()

	svc := goals.NewService(goals.NewStore(database, key, format))

	y, m, d := time.Now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	at := func(days, hour int) time.Time {
		return today.AddDate(0, 0, days).Add(time.Duration(hour) * time.Hour)
	}

	fixtures := []struct {
		title  string
		target time.Time
		tasks  []goals.Task
		done   []int // indexes of tasks to mark completed
	}{
		{
			title:  "Plan trip",
			target: at(14, 0),
			tasks: []goals.Task{
				goals.NewTask("Book flight", at(5, 10), "Check fares on Tuesday"),
				goals.NewTask("Reserve hotel", at(7, 12), ""),
				goals.NewTask("Renew passport", at(2, 9), "Photo booth at the post office"),
			},
			done: []int{2},
		},
		{
			title:  "Finish quarterly report",
			target: at(0, 0),
			tasks: []goals.Task{
				goals.NewTask("Collect metrics", at(-2, 15), ""),
				goals.NewTask("Draft summary", at(-1, 11), "Keep it to one page"),
				goals.NewTask("Send for review", at(0, 16), ""),
			},
			done: []int{0, 1},
		},
		{
			title:  "Run a 10k",
			target: at(30, 0),
			tasks: []goals.Task{
				goals.NewTask("Buy running shoes", at(1, 18), ""),
				goals.NewTask("Three runs this week", at(6, 7), "Tue/Thu/Sat mornings"),
			},
		},
		{
			title:  "Clean out the garage",
			target: at(-3, 0),
			tasks: []goals.Task{
				goals.NewTask("Donate old bikes", at(-5, 10), ""),
				goals.NewTask("Sweep", at(-3, 14), ""),
			},
			done: []int{0, 1},
		},
	}

	for _, f := range fixtures {
		goal, err := svc.AddGoal(f.title, f.target, f.tasks)
		if err != nil {
			return fmt.Errorf("adding fixture goal %s: %w", f.title, err)
		}
		for _, i := range f.done {
			if _, err := svc.ToggleTaskCompletion(goal.ID, goal.Tasks[i].ID); err != nil {
				return fmt.Errorf("completing fixture task for %s: %w", f.title, err)
			}
		}
	}

	return nil
}
