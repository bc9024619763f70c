package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentLevelIgnoresResolved(t *testing.T) {
	escs := []Escalation{
		{EscalationLevel: 1},
		{EscalationLevel: 2, IsResolved: true},
		{EscalationLevel: 3, IsResolved: true},
	}
	assert.Equal(t, 1, CurrentLevel(escs))
	assert.Equal(t, 0, CurrentLevel(nil))
}

func TestSeverityOrdering(t *testing.T) {
	assert.True(t, SeverityCritical.AtLeast(SeverityHigh))
	assert.True(t, SeverityMedium.AtLeast(SeverityMedium))
	assert.False(t, SeverityLow.AtLeast(SeverityMedium))
	assert.False(t, Severity("").AtLeast(Severity("")))
	assert.Equal(t, 5, SeverityCatastrophic.Rank())
}

func TestNotificationCanRetry(t *testing.T) {
	tests := []struct {
		name   string
		status NotificationStatus
		count  int
		want   bool
	}{
		{"failed once", NotificationStatusFailed, 1, true},
		{"failed at limit", NotificationStatusFailed, MaxNotificationRetries, false},
		{"sent", NotificationStatusSent, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Notification{Status: tt.status, RetryCount: tt.count}
			assert.Equal(t, tt.want, n.CanRetry())
		})
	}
}

func TestNotificationIsDue(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	later := now.Add(time.Minute)

	assert.True(t, Notification{}.IsDue(now))
	assert.True(t, Notification{ScheduledAt: &now}.IsDue(now))
	assert.False(t, Notification{ScheduledAt: &later}.IsDue(now))
}

func TestScopeCompanyFilter(t *testing.T) {
	assert.Nil(t, Scope{Role: RoleSuperAdmin, CompanyID: "c1"}.CompanyFilter())
	assert.Equal(t, []string{"c1"}, Scope{Role: RoleAdmin, CompanyID: "c1"}.CompanyFilter())
}

func TestContactAddress(t *testing.T) {
	c := Contact{Recipient: UserRecipient("u1"), Email: "a@b.c", Phone: "+1"}
	assert.Equal(t, "a@b.c", c.Address(ChannelEmail))
	assert.Equal(t, "+1", c.Address(ChannelSMS))
	assert.Equal(t, "", c.Address(ChannelPush))
	assert.Equal(t, "u1", c.Address(ChannelInApp))
	assert.False(t, Recipient{Kind: RecipientUser}.IsValid())
}

func TestTenantFilterAllows(t *testing.T) {
	assert.True(t, TenantFilter{}.Allows("any"))
	f := TenantFilterFor(Scope{Role: RoleAdmin, CompanyID: "c1"})
	assert.True(t, f.Allows("c1"))
	assert.False(t, f.Allows("c2"))
	assert.True(t, TenantFilterFor(Scope{Role: RoleSuperAdmin}).Allows("c2"))
}
