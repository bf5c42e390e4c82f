// Package seed resets the store and repopulates it with a consistent sample
// dataset: teams, users, random activities, derived leaderboard state, and a
// fixed workout catalog.
package seed

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"octofit-tracker/internal/database"
	"octofit-tracker/internal/leaderboard"
	"octofit-tracker/internal/metrics"
)

// Summary reports how many records a run created
type Summary struct {
	Teams      int
	Users      int
	Activities int
	Entries    int
	Workouts   int
}

var activityTypes = []string{"Running", "Cycling", "Swimming", "Weightlifting", "Yoga", "Combat Training"}

// distanceTypes are the activity types that carry a distance
var distanceTypes = map[string]bool{
	"Running":  true,
	"Cycling":  true,
	"Swimming": true,
}

type hero struct {
	name  string
	email string
}

var marvelHeroes = []hero{
	{"Iron Man", "ironman@avengers.com"},
	{"Captain America", "cap@avengers.com"},
	{"Thor", "thor@asgard.com"},
	{"Black Widow", "natasha@avengers.com"},
	{"Hulk", "hulk@avengers.com"},
	{"Spider-Man", "spidey@avengers.com"},
}

var dcHeroes = []hero{
	{"Superman", "superman@justiceleague.com"},
	{"Batman", "batman@justiceleague.com"},
	{"Wonder Woman", "diana@justiceleague.com"},
	{"The Flash", "flash@justiceleague.com"},
	{"Aquaman", "aquaman@justiceleague.com"},
	{"Green Lantern", "hal@justiceleague.com"},
}

var workouts = []database.Workout{
	{
		Name:            "Super Soldier Cardio",
		Description:     "High-intensity cardio workout inspired by Captain America's training",
		DifficultyLevel: "Advanced",
		Duration:        45,
		Category:        "Cardio",
	},
	{
		Name:            "Asgardian Strength Training",
		Description:     "Build god-like strength with Thor's workout routine",
		DifficultyLevel: "Advanced",
		Duration:        60,
		Category:        "Strength",
	},
	{
		Name:            "Web-Slinger Agility",
		Description:     "Improve flexibility and agility like Spider-Man",
		DifficultyLevel: "Intermediate",
		Duration:        30,
		Category:        "Agility",
	},
	{
		Name:            "Batcave Core Training",
		Description:     "Bruce Wayne's core strengthening routine",
		DifficultyLevel: "Intermediate",
		Duration:        40,
		Category:        "Core",
	},
	{
		Name:            "Flash Speed Training",
		Description:     "Sprint intervals to boost your speed",
		DifficultyLevel: "Advanced",
		Duration:        35,
		Category:        "Speed",
	},
	{
		Name:            "Wonder Woman Combat Basics",
		Description:     "Learn basic combat moves and defensive techniques",
		DifficultyLevel: "Beginner",
		Duration:        50,
		Category:        "Combat",
	},
	{
		Name:            "Aquaman Swimming Mastery",
		Description:     "Advanced swimming techniques for endurance",
		DifficultyLevel: "Advanced",
		Duration:        55,
		Category:        "Swimming",
	},
	{
		Name:            "Stark Industries Recovery Yoga",
		Description:     "Gentle yoga for recovery and flexibility",
		DifficultyLevel: "Beginner",
		Duration:        25,
		Category:        "Yoga",
	},
}

// Run clears all five entity types and repopulates them, recomputing
// leaderboard totals and ranks through the engine. It is safe to run
// repeatedly.
func Run(db *database.DB, engine *leaderboard.Engine) (*Summary, error) {
	logger := slog.Default()
	logger.Info("Starting database population")

	summary, err := run(db, engine, logger)

	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultFailure
	}
	metrics.SeedRunsTotal.WithLabelValues(result).Inc()
	return summary, err
}

func run(db *database.DB, engine *leaderboard.Engine, logger *slog.Logger) (*Summary, error) {
	logger.Info("Clearing existing data")
	for _, clear := range []func() error{
		db.DeleteAllLeaderboardEntries,
		db.DeleteAllActivities,
		db.DeleteAllUsers,
		db.DeleteAllTeams,
		db.DeleteAllWorkouts,
	} {
		if err := clear(); err != nil {
			return nil, fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	logger.Info("Creating teams")
	teamMarvel := &database.Team{
		Name:        "Team Marvel",
		Description: "Earth's Mightiest Heroes fighting for fitness!",
	}
	if err := db.CreateTeam(teamMarvel); err != nil {
		return nil, err
	}
	teamDC := &database.Team{
		Name:        "Team DC",
		Description: "Justice League members dedicated to peak performance!",
	}
	if err := db.CreateTeam(teamDC); err != nil {
		return nil, err
	}

	logger.Info("Creating users")
	var users []*database.User
	for _, h := range marvelHeroes {
		u := &database.User{Name: h.name, Email: h.email, TeamID: teamMarvel.ID}
		if err := db.CreateUser(u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	for _, h := range dcHeroes {
		u := &database.User{Name: h.name, Email: h.email, TeamID: teamDC.ID}
		if err := db.CreateUser(u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	logger.Info("Creating activities")
	summary := &Summary{Teams: 2, Users: len(users)}
	now := time.Now().UTC()
	for _, u := range users {
		numActivities := 5 + rand.Intn(6)
		for i := 0; i < numActivities; i++ {
			activityType := activityTypes[rand.Intn(len(activityTypes))]
			duration := 20 + rand.Intn(101)

			var distance *float64
			if distanceTypes[activityType] {
				d := math.Round((2+rand.Float64()*18)*100) / 100
				distance = &d
			}

			a := &database.Activity{
				UserID:       u.ID,
				ActivityType: activityType,
				Duration:     duration,
				Distance:     distance,
				Calories:     duration * (5 + rand.Intn(11)),
				Date:         now.AddDate(0, 0, -rand.Intn(31)),
			}
			if err := db.CreateActivity(a); err != nil {
				return nil, err
			}
			summary.Activities++
		}
	}

	logger.Info("Creating leaderboard entries")
	for _, u := range users {
		totals, err := engine.Aggregate(u.ID)
		if err != nil {
			return nil, err
		}
		entry := &database.LeaderboardEntry{
			UserID:          u.ID,
			TotalPoints:     totals.Points,
			TotalActivities: totals.Activities,
		}
		if err := db.CreateLeaderboardEntry(entry); err != nil {
			return nil, err
		}
		summary.Entries++
	}

	logger.Info("Assigning ranks")
	if err := engine.RerankAll(); err != nil {
		return nil, err
	}

	logger.Info("Creating workouts")
	for _, w := range workouts {
		workout := w
		if err := db.CreateWorkout(&workout); err != nil {
			return nil, err
		}
		summary.Workouts++
	}

	logger.Info("Database population complete",
		"teams", summary.Teams,
		"users", summary.Users,
		"activities", summary.Activities,
		"leaderboard_entries", summary.Entries,
		"workouts", summary.Workouts)

	return summary, nil
}
