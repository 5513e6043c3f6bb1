//go:build integration

package integration_test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/2beens/fitbase/internal/plans"
	"github.com/2beens/fitbase/internal/progress"
	"github.com/2beens/fitbase/internal/sessions"
	"github.com/2beens/fitbase/internal/users"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullBodyPlanID = "7b1f0c52-3c2e-4d7a-9a51-0c1a3f1e8b01"

func intPtr(i int) *int {
	return &i
}

func completeAll(exercises []sessions.LoggedExercise, weight, reps string) []sessions.LoggedExercise {
	for i := range exercises {
		for j := range exercises[i].Performance {
			exercises[i].Performance[j] = sessions.PerformanceSet{
				Weight:    weight,
				Reps:      reps,
				Completed: true,
			}
		}
	}
	return exercises
}

func cloneExercises(exercises []sessions.LoggedExercise) []sessions.LoggedExercise {
	cloned := make([]sessions.LoggedExercise, len(exercises))
	for i, ex := range exercises {
		cloned[i] = ex
		cloned[i].Performance = append([]sessions.PerformanceSet(nil), ex.Performance...)
	}
	return cloned
}

func (s *IntegrationTestSuite) getSession(ctx context.Context, token, sessionID string) sessions.Session {
	var got sessions.Session
	require.Equal(s.T(), http.StatusOK, s.do(ctx, http.MethodGet, "/sessions/"+sessionID, token, nil, &got))
	return got
}

func (s *IntegrationTestSuite) startSession(ctx context.Context, token, planID string, dayIndex int) *sessions.Session {
	var started sessions.StartResponse
	status := s.do(ctx, http.MethodPost, "/sessions", token, sessions.StartRequest{
		PlanID:   planID,
		DayIndex: intPtr(dayIndex),
	}, &started)
	require.Equal(s.T(), http.StatusCreated, status)
	require.True(s.T(), started.Success)
	require.NotNil(s.T(), started.Session)
	require.Equal(s.T(), started.SessionID, started.Session.ID)
	return started.Session
}

func (s *IntegrationTestSuite) TestWorkoutFlow() {
	ctx := context.Background()
	t := s.T()
	uid, token := s.newLoggedUser(ctx)

	var library plans.Library
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodGet, "/plans", token, nil, &library))
	assert.Len(t, library.CommonWorkouts, 3)
	assert.Empty(t, library.CustomWorkouts)
	assert.Nil(t, library.ActivePlanID)

	var selected plans.SuccessResponse
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodPost, "/plans/"+fullBodyPlanID+"/select", token, nil, &selected))
	assert.True(t, selected.Success)

	session := s.startSession(ctx, token, fullBodyPlanID, 0)
	assert.Equal(t, sessions.StatusInProgress, session.Status)
	assert.Equal(t, "Day A", session.DayName)
	require.Len(t, session.Exercises, 3)
	assert.Equal(t, "0", session.Exercises[0].Performance[0].Weight)

	exercises := completeAll(session.Exercises, "100", "5")

	var updated sessions.UpdateResponse
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodPut, "/sessions/"+session.ID, token, sessions.ExercisesRequest{
		Exercises: exercises,
		Revision:  intPtr(1),
	}, &updated))
	assert.Equal(t, 2, updated.Revision)

	stored := s.getSession(ctx, token, session.ID)
	assert.Equal(t, sessions.StatusInProgress, stored.Status)
	assert.Equal(t, 2, stored.Revision)
	assert.Equal(t, exercises, stored.Exercises)

	// edit weights and reps, add a set to one exercise and drop one from another
	edited := cloneExercises(exercises)
	require.GreaterOrEqual(t, len(edited[1].Performance), 2)
	edited[0].Performance[0] = sessions.PerformanceSet{Weight: "102.5", Reps: "4", Completed: true}
	edited[0].Performance = append(edited[0].Performance, sessions.PerformanceSet{Weight: "90", Reps: "8", Completed: false})
	edited[1].Performance = edited[1].Performance[:len(edited[1].Performance)-1]
	edited[2].Performance[0].Reps = "8-10"

	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodPut, "/sessions/"+session.ID, token, sessions.ExercisesRequest{
		Exercises: edited,
		Revision:  intPtr(2),
	}, &updated))
	assert.Equal(t, 3, updated.Revision)

	stored = s.getSession(ctx, token, session.ID)
	assert.Equal(t, 3, stored.Revision)
	assert.Equal(t, edited, stored.Exercises)
	assert.NotEqual(t, exercises, stored.Exercises)

	// last write wins: putting the first payload back replaces the edit entirely
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodPut, "/sessions/"+session.ID, token, sessions.ExercisesRequest{
		Exercises: exercises,
		Revision:  intPtr(3),
	}, &updated))
	assert.Equal(t, 4, updated.Revision)
	assert.Equal(t, exercises, s.getSession(ctx, token, session.ID).Exercises)

	var stale apiError
	require.Equal(t, http.StatusPreconditionFailed, s.do(ctx, http.MethodPut, "/sessions/"+session.ID, token, sessions.ExercisesRequest{
		Exercises: exercises,
		Revision:  intPtr(1),
	}, &stale))
	assert.Equal(t, "failed-precondition", stale.Error.Code)

	var finished sessions.FinishResponse
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodPost, "/sessions/"+session.ID+"/finish", token, sessions.ExercisesRequest{
		Exercises: exercises,
	}, &finished))
	require.NotNil(t, finished.Stats)
	assert.Equal(t, 1, finished.Stats.CurrentStreak)
	assert.Equal(t, 1, finished.Stats.LongestStreak)

	// a second finish must not count the workout twice
	require.Equal(t, http.StatusPreconditionFailed, s.do(ctx, http.MethodPost, "/sessions/"+session.ID+"/finish", token, sessions.ExercisesRequest{
		Exercises: exercises,
	}, nil))

	var totalWorkouts, lastDayIndex int
	require.NoError(t, s.DB.QueryRowContext(ctx,
		"SELECT total_workouts, last_completed_day_index FROM users WHERE id = $1", uid,
	).Scan(&totalWorkouts, &lastDayIndex))
	assert.Equal(t, 1, totalWorkouts)
	assert.Equal(t, 0, lastDayIndex)

	var dashboard progress.Dashboard
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodGet, "/dashboard", token, nil, &dashboard))
	require.NotNil(t, dashboard.UserData)
	assert.Equal(t, 1, dashboard.UserData.Stats.TotalWorkouts)
	assert.Equal(t, 100.0, dashboard.UserData.Stats.PersonalRecords["Back Squat"])
	require.NotNil(t, dashboard.ActivePlan)
	assert.Equal(t, fullBodyPlanID, dashboard.ActivePlan.ID)
	require.Len(t, dashboard.RecentWorkouts, 1)
	require.NotNil(t, dashboard.NextWorkout)
	assert.Equal(t, 1, dashboard.NextWorkout.DayIndex)

	var history progress.HistoryPage
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodGet, "/history?limit=10", token, nil, &history))
	require.Len(t, history.Sessions, 1)
	assert.False(t, history.HasMore)
	assert.Equal(t, session.ID, history.Sessions[0].ID)

	var records progress.RecordsSummary
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodGet, "/records", token, nil, &records))
	assert.Equal(t, 1, records.TotalWorkouts)
	assert.Equal(t, 100.0, records.PersonalRecords["Bench Press"])
	assert.Equal(t, 1, records.ExerciseFrequency["Barbell Row"])

	// the same day again starts from the weights used last time
	next := s.startSession(ctx, token, fullBodyPlanID, 0)
	assert.Equal(t, "100", next.Exercises[0].Performance[0].Weight)
	assert.Empty(t, next.Exercises[0].Performance[0].Reps)
}

func (s *IntegrationTestSuite) TestCustomPlanQuota() {
	ctx := context.Background()
	t := s.T()
	_, token := s.newLoggedUser(ctx)

	input := plans.PlanInput{
		Description:  gofakeit.Sentence(6),
		NumberOfDays: 1,
		Days: []plans.WorkoutDay{{
			DayName: "Day 1",
			Exercises: []plans.ExerciseTemplate{
				{ExerciseName: "Pull Up", Sets: 3, Reps: "8", RestTime: 90},
			},
		}},
	}

	var created []plans.CreatePlanResponse
	for i := 0; i < plans.DefaultMaxCustomPlans; i++ {
		var resp plans.CreatePlanResponse
		require.Equal(t, http.StatusCreated, s.do(ctx, http.MethodPost, "/plans", token, input, &resp))
		assert.Equal(t, fmt.Sprintf("Custom Workout %d", i+1), resp.PlanName)
		created = append(created, resp)
	}

	var quotaErr apiError
	require.Equal(t, http.StatusPreconditionFailed, s.do(ctx, http.MethodPost, "/plans", token, input, &quotaErr))
	assert.Contains(t, quotaErr.Error.Message, "limit of 5 custom workout plans")

	var deleted plans.SuccessResponse
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodDelete, "/plans/"+created[0].PlanID, token, nil, &deleted))
	assert.True(t, deleted.Success)

	var again plans.CreatePlanResponse
	require.Equal(t, http.StatusCreated, s.do(ctx, http.MethodPost, "/plans", token, input, &again))

	var library plans.Library
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodGet, "/plans", token, nil, &library))
	assert.Len(t, library.CustomWorkouts, plans.DefaultMaxCustomPlans)

	// common plans stay read only
	newName := "Mine now"
	require.Equal(t, http.StatusForbidden, s.do(ctx, http.MethodPut, "/plans/"+fullBodyPlanID, token, plans.PlanUpdate{
		PlanName: &newName,
	}, nil))
}

func (s *IntegrationTestSuite) TestSessionOwnershipAndCancel() {
	ctx := context.Background()
	t := s.T()
	_, ownerToken := s.newLoggedUser(ctx)
	_, otherToken := s.newLoggedUser(ctx)

	session := s.startSession(ctx, ownerToken, fullBodyPlanID, 1)
	assert.Equal(t, "Day B", session.DayName)

	require.Equal(t, http.StatusForbidden, s.do(ctx, http.MethodGet, "/sessions/"+session.ID, otherToken, nil, nil))
	require.Equal(t, http.StatusForbidden, s.do(ctx, http.MethodPost, "/sessions/"+session.ID+"/cancel", otherToken, nil, nil))

	var cancelled sessions.SuccessResponse
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodPost, "/sessions/"+session.ID+"/cancel", ownerToken, nil, &cancelled))
	assert.True(t, cancelled.Success)

	var got sessions.Session
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodGet, "/sessions/"+session.ID, ownerToken, nil, &got))
	assert.Equal(t, sessions.StatusCancelled, got.Status)
	assert.NotNil(t, got.DateCancelled)

	require.Equal(t, http.StatusPreconditionFailed, s.do(ctx, http.MethodPut, "/sessions/"+session.ID, ownerToken, sessions.ExercisesRequest{
		Exercises: got.Exercises,
	}, nil))

	var history progress.HistoryPage
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodGet, "/history", ownerToken, nil, &history))
	assert.Empty(t, history.Sessions)

	require.Equal(t, http.StatusBadRequest, s.do(ctx, http.MethodPost, "/sessions", ownerToken, sessions.StartRequest{
		PlanID:   fullBodyPlanID,
		DayIndex: intPtr(7),
	}, nil))
}

func (s *IntegrationTestSuite) TestProfileAndLogout() {
	ctx := context.Background()
	t := s.T()
	uid, token := s.newLoggedUser(ctx)

	var profile users.User
	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodGet, "/profile", token, nil, &profile))
	assert.Equal(t, uid, profile.ID)
	assert.Equal(t, users.WeightUnitKG, profile.WeightUnit)

	require.Equal(t, http.StatusOK, s.do(ctx, http.MethodGet, "/a/logout", token, nil, nil))
	require.Equal(t, http.StatusUnauthorized, s.do(ctx, http.MethodGet, "/profile", token, nil, nil))
}
