package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/qs3c/travelmart_server/internal/model"
)

var now = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func actionsOf(e Evaluation) []Action {
	out := make([]Action, 0, len(e.Actions))
	for _, a := range e.Actions {
		out = append(out, a.Action)
	}
	return out
}

func TestIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		expiresAt *time.Time
		want      bool
	}{
		{"future expiry", model.AdStatusActive, at(time.Hour), false},
		{"past expiry", model.AdStatusActive, at(-time.Second), true},
		{"paused expiry", model.AdStatusActive, nil, false},
		{"paused expiry with stored expired status", model.AdStatusExpired, nil, false},
		{"published past expiry", model.AdStatusPublished, at(-time.Hour), true},
		{"exactly now", model.AdStatusActive, at(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ad := &model.Advertisement{Status: tt.status, ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, IsExpired(ad, now))
		})
	}
}

func TestEvaluate_ActiveWithExpiry(t *testing.T) {
	ad := &model.Advertisement{Status: model.AdStatusActive, ExpiresAt: at(24 * time.Hour)}

	eval := Evaluate(ad, now)

	assert.Equal(t, PhaseActive, eval.Phase)
	assert.False(t, eval.Expired)
	assert.ElementsMatch(t, []Action{ActionPauseExpiration, ActionPublish}, actionsOf(eval))
	assert.True(t, eval.Allows(ActionPauseExpiration))
	assert.True(t, eval.Allows(ActionPublish))
	assert.False(t, eval.Shows(ActionManage))
	assert.False(t, eval.Shows(ActionView))
	assert.False(t, eval.Shows(ActionRenew))
}

func TestEvaluate_ActivePaused(t *testing.T) {
	ad := &model.Advertisement{Status: model.AdStatusActive}

	eval := Evaluate(ad, now)

	assert.Equal(t, PhaseActivePaused, eval.Phase)
	assert.ElementsMatch(t, []Action{ActionPublish, ActionRenew}, actionsOf(eval))
	assert.True(t, eval.Allows(ActionPublish))
	assert.True(t, eval.Shows(ActionRenew))
	assert.False(t, eval.Allows(ActionRenew))
	assert.False(t, eval.Shows(ActionPauseExpiration))

	for _, a := range eval.Actions {
		if a.Action == ActionRenew {
			assert.Equal(t, ReasonNothingToRenew, a.Reason)
		}
	}
}

func TestEvaluate_Published(t *testing.T) {
	id := "X"
	ad := &model.Advertisement{
		Status:        model.AdStatusPublished,
		ExpiresAt:     at(time.Hour),
		PublishedAdID: &id,
		Category:      "travel_buddys",
	}

	eval := Evaluate(ad, now)

	assert.Equal(t, PhasePublished, eval.Phase)
	assert.ElementsMatch(t, []Action{ActionManage, ActionView, ActionRenew}, actionsOf(eval))
	assert.True(t, eval.Allows(ActionRenew))

	t.Run("renew disabled without expiry", func(t *testing.T) {
		ad.ExpiresAt = nil
		eval := Evaluate(ad, now)
		assert.Equal(t, PhasePublished, eval.Phase)
		assert.True(t, eval.Shows(ActionRenew))
		assert.False(t, eval.Allows(ActionRenew))
		assert.True(t, eval.Allows(ActionManage))
	})
}

func TestEvaluate_ExpiredDominatesStatus(t *testing.T) {
	for _, status := range model.AdStatuses {
		t.Run(status, func(t *testing.T) {
			ad := &model.Advertisement{Status: status, ExpiresAt: at(-time.Minute)}

			eval := Evaluate(ad, now)

			assert.Equal(t, PhaseExpired, eval.Phase)
			assert.True(t, eval.Expired)
			assert.Equal(t, []Action{ActionRenewExpired}, actionsOf(eval))
			assert.True(t, eval.Allows(ActionRenewExpired))
		})
	}
}

func TestEvaluate_StoredExpiredWithFutureExpiry(t *testing.T) {
	ad := &model.Advertisement{Status: model.AdStatusExpired, ExpiresAt: at(time.Hour)}

	eval := Evaluate(ad, now)

	assert.Equal(t, PhaseExpired, eval.Phase)
	assert.Equal(t, []Action{ActionRenewExpired}, actionsOf(eval))
}

func TestEvaluate_Totality(t *testing.T) {
	expiries := []*time.Time{nil, at(time.Hour), at(-time.Hour)}

	for _, status := range model.AdStatuses {
		for _, exp := range expiries {
			ad := &model.Advertisement{Status: status, ExpiresAt: exp}
			eval := Evaluate(ad, now)

			assert.NotEmpty(t, eval.Phase)
			assert.NotEmpty(t, eval.Actions, "status=%s expiresAt=%v", status, exp)

			enabled := 0
			for _, a := range eval.Actions {
				if a.Enabled {
					enabled++
				}
			}
			assert.Positive(t, enabled, "status=%s expiresAt=%v", status, exp)
		}
	}
}

// draft 与 paused 只是未发布的存储状态，阶段由 expiresAt 决定
func TestPhaseOf_UnpublishedStatuses(t *testing.T) {
	tests := []struct {
		status    string
		expiresAt *time.Time
		want      Phase
		actions   []Action
	}{
		{model.AdStatusPaused, at(time.Hour), PhaseActive, []Action{ActionPauseExpiration, ActionPublish}},
		{model.AdStatusDraft, at(time.Hour), PhaseActive, []Action{ActionPauseExpiration, ActionPublish}},
		{model.AdStatusActive, at(time.Hour), PhaseActive, []Action{ActionPauseExpiration, ActionPublish}},
		{model.AdStatusPaused, nil, PhaseActivePaused, []Action{ActionPublish, ActionRenew}},
		{model.AdStatusDraft, nil, PhaseActivePaused, []Action{ActionPublish, ActionRenew}},
		{model.AdStatusPaused, at(-time.Hour), PhaseExpired, []Action{ActionRenewExpired}},
		{model.AdStatusDraft, at(-time.Hour), PhaseExpired, []Action{ActionRenewExpired}},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			ad := &model.Advertisement{Status: tt.status, ExpiresAt: tt.expiresAt}
			eval := Evaluate(ad, now)

			assert.Equal(t, tt.want, eval.Phase)
			assert.ElementsMatch(t, tt.actions, actionsOf(eval))
			assert.True(t, eval.Allows(tt.actions[0]))
		})
	}
}

func TestRenewalType(t *testing.T) {
	assert.Equal(t, "expired", RenewalType(PhaseExpired))
	assert.Equal(t, "renew", RenewalType(PhasePublished))
	assert.Equal(t, "renew", RenewalType(PhaseActive))
}
