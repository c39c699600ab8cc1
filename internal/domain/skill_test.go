package domain_test

import (
	"encoding/json"
	"testing"

	"job-portal-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillIDs(t *testing.T) {
	var refs []domain.SkillRef
	require.NoError(t, json.Unmarshal([]byte(`[3, "1", {"SkillID": 3}, 0, -2, "x", {"id": 7}, 1]`), &refs))

	assert.Equal(t, []int64{3, 1, 7}, domain.SkillIDs(refs))
	assert.Empty(t, domain.SkillIDs(nil))
}
