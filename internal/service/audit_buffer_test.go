package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-interaction/internal/model"
)

func TestAuditBuffer_FlushesOnSize(t *testing.T) {
	repo := &countingLogRepo{}
	buffer := NewAuditBuffer(NewLogIngestService(repo, 1000), 100, 2, time.Hour)
	buffer.Start(1)

	for i := 0; i < 4; i++ {
		require.NoError(t, buffer.Append(context.Background(), &model.LikeLog{LikerID: int64(i), TargetID: 1}))
	}
	buffer.Stop()

	assert.Equal(t, 4, repo.total)
}

func TestAuditBuffer_DrainsOnStop(t *testing.T) {
	repo := &countingLogRepo{}
	buffer := NewAuditBuffer(NewLogIngestService(repo, 1000), 100, 50, time.Hour)
	buffer.Start(2)

	for i := 0; i < 7; i++ {
		require.NoError(t, buffer.Append(context.Background(), &model.LikeLog{LikerID: int64(i), TargetID: 1}))
	}
	buffer.Stop()

	assert.Equal(t, 7, repo.total, "pending entries must land before Stop returns")
}
