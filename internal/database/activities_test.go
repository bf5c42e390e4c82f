package database

import (
	"errors"
	"testing"
	"time"
)

func testActivity(userID UserID, calories int) *Activity {
	return &Activity{
		UserID:       userID,
		ActivityType: "Running",
		Duration:     30,
		Calories:     calories,
		Date:         time.Now().UTC(),
	}
}

func TestCreateAndGetActivity(t *testing.T) {
	db := openTestDB(t)

	distance := 5.25
	activity := &Activity{
		UserID:       "user-1",
		ActivityType: "Running",
		Duration:     30,
		Distance:     &distance,
		Calories:     300,
		Date:         time.Date(2026, 8, 15, 7, 0, 0, 0, time.UTC),
	}
	if err := db.CreateActivity(activity); err != nil {
		t.Fatalf("Failed to create activity: %v", err)
	}

	retrieved, err := db.GetActivity(activity.ID)
	if err != nil {
		t.Fatalf("Failed to get activity: %v", err)
	}
	if retrieved.ActivityType != "Running" {
		t.Errorf("Expected activity type Running, got %s", retrieved.ActivityType)
	}
	if retrieved.Distance == nil || *retrieved.Distance != distance {
		t.Errorf("Expected distance %v, got %v", distance, retrieved.Distance)
	}
	if !retrieved.Date.Equal(activity.Date) {
		t.Errorf("Expected date %v, got %v", activity.Date, retrieved.Date)
	}
}

func TestCreateActivityWithoutDistance(t *testing.T) {
	db := openTestDB(t)

	activity := &Activity{
		UserID:       "user-1",
		ActivityType: "Weightlifting",
		Duration:     45,
		Calories:     400,
		Date:         time.Now().UTC(),
	}
	if err := db.CreateActivity(activity); err != nil {
		t.Fatalf("Failed to create activity: %v", err)
	}

	retrieved, err := db.GetActivity(activity.ID)
	if err != nil {
		t.Fatalf("Failed to get activity: %v", err)
	}
	if retrieved.Distance != nil {
		t.Errorf("Expected nil distance, got %v", *retrieved.Distance)
	}
}

func TestCreateActivityValidation(t *testing.T) {
	db := openTestDB(t)

	now := time.Now().UTC()
	tests := []struct {
		name     string
		activity *Activity
	}{
		{"missing user", &Activity{ActivityType: "Yoga", Duration: 30, Calories: 100, Date: now}},
		{"missing type", &Activity{UserID: "u", Duration: 30, Calories: 100, Date: now}},
		{"zero duration", &Activity{UserID: "u", ActivityType: "Yoga", Duration: 0, Calories: 100, Date: now}},
		{"negative duration", &Activity{UserID: "u", ActivityType: "Yoga", Duration: -10, Calories: 100, Date: now}},
		{"negative calories", &Activity{UserID: "u", ActivityType: "Yoga", Duration: 30, Calories: -1, Date: now}},
		{"missing date", &Activity{UserID: "u", ActivityType: "Yoga", Duration: 30, Calories: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := db.CreateActivity(tt.activity); !errors.Is(err, ErrValidation) {
				t.Errorf("Expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestListActivitiesByUser(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 3; i++ {
		if err := db.CreateActivity(testActivity("user-a", 100)); err != nil {
			t.Fatalf("Failed to create activity: %v", err)
		}
	}
	if err := db.CreateActivity(testActivity("user-b", 200)); err != nil {
		t.Fatalf("Failed to create activity: %v", err)
	}

	all, err := db.ListActivities(ActivityFilter{})
	if err != nil {
		t.Fatalf("Failed to list activities: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 activities, got %d", len(all))
	}

	forA, err := db.ListActivities(ActivityFilter{UserID: "user-a"})
	if err != nil {
		t.Fatalf("Failed to list activities: %v", err)
	}
	if len(forA) != 3 {
		t.Errorf("Expected 3 activities for user-a, got %d", len(forA))
	}
	for _, a := range forA {
		if a.UserID != "user-a" {
			t.Errorf("Filter returned activity for %s", a.UserID)
		}
	}
}

func TestActivityTotals(t *testing.T) {
	db := openTestDB(t)

	for _, calories := range []int{300, 450, 200} {
		if err := db.CreateActivity(testActivity("user-1", calories)); err != nil {
			t.Fatalf("Failed to create activity: %v", err)
		}
	}

	points, activities, err := db.ActivityTotals("user-1")
	if err != nil {
		t.Fatalf("Failed to total activities: %v", err)
	}
	if points != 950 {
		t.Errorf("Expected 950 points, got %d", points)
	}
	if activities != 3 {
		t.Errorf("Expected 3 activities, got %d", activities)
	}

	t.Run("no activities", func(t *testing.T) {
		points, activities, err := db.ActivityTotals("nobody")
		if err != nil {
			t.Fatalf("Failed to total activities: %v", err)
		}
		if points != 0 || activities != 0 {
			t.Errorf("Expected zero totals, got %d points, %d activities", points, activities)
		}
	})
}

func TestUpdateAndDeleteActivity(t *testing.T) {
	db := openTestDB(t)

	activity := testActivity("user-1", 300)
	if err := db.CreateActivity(activity); err != nil {
		t.Fatalf("Failed to create activity: %v", err)
	}

	activity.Calories = 350
	activity.ActivityType = "Cycling"
	if err := db.UpdateActivity(activity); err != nil {
		t.Fatalf("Failed to update activity: %v", err)
	}

	retrieved, err := db.GetActivity(activity.ID)
	if err != nil {
		t.Fatalf("Failed to get activity: %v", err)
	}
	if retrieved.Calories != 350 || retrieved.ActivityType != "Cycling" {
		t.Errorf("Expected updated activity, got %+v", retrieved)
	}

	if err := db.DeleteActivity(activity.ID); err != nil {
		t.Fatalf("Failed to delete activity: %v", err)
	}
	if _, err := db.GetActivity(activity.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteAllActivities(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 5; i++ {
		if err := db.CreateActivity(testActivity("user-1", 100)); err != nil {
			t.Fatalf("Failed to create activity: %v", err)
		}
	}

	if err := db.DeleteAllActivities(); err != nil {
		t.Fatalf("Failed to delete all activities: %v", err)
	}
	n, err := db.CountActivities()
	if err != nil {
		t.Fatalf("Failed to count activities: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected no activities, got %d", n)
	}
}
