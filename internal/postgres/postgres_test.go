package postgres

import (
	"testing"

	"github.com/chestno/chestno/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindNamedInExpandsSlices(t *testing.T) {
	query := "SELECT * FROM subscriptions WHERE tenant_id = :tenant_id AND subscription_status IN (:subscription_status)"
	params := map[string]interface{}{
		"tenant_id": "tenant-1",
		"subscription_status": []types.SubscriptionStatus{
			types.SubscriptionStatusActive,
			types.SubscriptionStatusPastDue,
		},
	}

	bound, args, err := bindNamedIn(query, params)
	require.NoError(t, err)

	assert.Equal(t, "SELECT * FROM subscriptions WHERE tenant_id = $1 AND subscription_status IN ($2, $3)", bound)
	require.Len(t, args, 3)
	assert.Equal(t, "tenant-1", args[0])
	assert.Equal(t, types.SubscriptionStatusActive, args[1])
	assert.Equal(t, types.SubscriptionStatusPastDue, args[2])
}

func TestBindNamedInPassesThroughScalars(t *testing.T) {
	query := "SELECT COUNT(*) FROM status_history WHERE organization_id = :organization_id"
	params := map[string]interface{}{
		"organization_id": "org-1",
	}

	bound, args, err := bindNamedIn(query, params)
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM status_history WHERE organization_id = $1", bound)
	require.Len(t, args, 1)
	assert.Equal(t, "org-1", args[0])
}
