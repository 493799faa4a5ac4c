package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDaysToFollowupNumber(t *testing.T) {
	assert.Equal(t, 1, DaysToFollowupNumber[3])
	assert.Equal(t, 2, DaysToFollowupNumber[7])
	assert.Equal(t, 3, DaysToFollowupNumber[10])
	assert.Equal(t, 4, DaysToFollowupNumber[180])
	assert.Len(t, DaysToFollowupNumber, len(FollowupSchedule))
}

func TestFollowupStatus_IsTerminal(t *testing.T) {
	assert.False(t, FollowupStatusScheduled.IsTerminal())
	assert.False(t, FollowupStatusProcessing.IsTerminal())
	assert.True(t, FollowupStatusDone.IsTerminal())
	assert.True(t, FollowupStatusFailed.IsTerminal())
	assert.True(t, FollowupStatusCancelled.IsTerminal())
}

func TestFollowupTask_IsLongTerm(t *testing.T) {
	assert.True(t, (&FollowupTask{BusinessDaysAfter: 180}).IsLongTerm())
	assert.False(t, (&FollowupTask{BusinessDaysAfter: 10}).IsLongTerm())
}
