// Package lifecycle derives which actions an advertisement slot allows.
//
// Expiry is always recomputed from ExpiresAt against the caller's clock and
// takes precedence over the stored status: the backend sweep that writes
// status=expired runs asynchronously, so a stale "active" or "Published"
// record whose ExpiresAt has passed is still reported as expired.
package lifecycle

import (
	"time"

	"github.com/qs3c/travelmart_server/internal/model"
)

type Phase string

const (
	PhaseActive       Phase = "active"
	PhaseActivePaused Phase = "active_paused"
	PhasePublished    Phase = "published"
	PhaseExpired      Phase = "expired"
)

type Action string

const (
	ActionPauseExpiration Action = "pause_expiration"
	ActionPublish         Action = "publish"
	ActionManage          Action = "manage"
	ActionView            Action = "view"
	ActionRenew           Action = "renew"
	ActionRenewExpired    Action = "renew_expired"
)

// ReasonNothingToRenew 续费需要已有的到期时间可以延长
const ReasonNothingToRenew = "nothing to renew yet"

type ActionState struct {
	Action  Action `json:"action"`
	Enabled bool   `json:"enabled"`
	Reason  string `json:"reason,omitempty"`
}

type Evaluation struct {
	Phase   Phase         `json:"phase"`
	Expired bool          `json:"isExpired"`
	Actions []ActionState `json:"actions"`
}

// IsExpired 只看到期时间；ExpiresAt 为空（暂停计时）永远不算过期
func IsExpired(ad *model.Advertisement, now time.Time) bool {
	return ad.ExpiresAt != nil && ad.ExpiresAt.Before(now)
}

// PhaseOf 每个 (status, expiresAt) 组合恰好落在一个阶段
func PhaseOf(ad *model.Advertisement, now time.Time) Phase {
	if ad.Status == model.AdStatusExpired || IsExpired(ad, now) {
		return PhaseExpired
	}
	if ad.Status == model.AdStatusPublished {
		return PhasePublished
	}
	// draft / active / paused 都视为未发布
	if ad.ExpiresAt == nil {
		return PhaseActivePaused
	}
	return PhaseActive
}

// Evaluate 计算当前可见的操作及其是否可用
func Evaluate(ad *model.Advertisement, now time.Time) Evaluation {
	phase := PhaseOf(ad, now)
	eval := Evaluation{
		Phase:   phase,
		Expired: phase == PhaseExpired,
	}

	switch phase {
	case PhaseExpired:
		eval.Actions = []ActionState{
			{Action: ActionRenewExpired, Enabled: true},
		}
	case PhasePublished:
		eval.Actions = []ActionState{
			{Action: ActionManage, Enabled: true},
			{Action: ActionView, Enabled: true},
			renewState(ad),
		}
	case PhaseActivePaused:
		eval.Actions = []ActionState{
			{Action: ActionPublish, Enabled: true},
			renewState(ad),
		}
	default:
		eval.Actions = []ActionState{
			{Action: ActionPauseExpiration, Enabled: true},
			{Action: ActionPublish, Enabled: true},
		}
	}

	return eval
}

func renewState(ad *model.Advertisement) ActionState {
	if ad.ExpiresAt == nil {
		return ActionState{Action: ActionRenew, Enabled: false, Reason: ReasonNothingToRenew}
	}
	return ActionState{Action: ActionRenew, Enabled: true}
}

// Allows 操作可见且可用
func (e Evaluation) Allows(action Action) bool {
	for _, a := range e.Actions {
		if a.Action == action {
			return a.Enabled
		}
	}
	return false
}

// Shows 操作可见（可能被禁用）
func (e Evaluation) Shows(action Action) bool {
	for _, a := range e.Actions {
		if a.Action == action {
			return true
		}
	}
	return false
}

// RenewalType 续费流程的来源标记
func RenewalType(phase Phase) string {
	if phase == PhaseExpired {
		return "expired"
	}
	return "renew"
}
