package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationKey_Deterministic(t *testing.T) {
	assert.Equal(t, "expiry-ORD-1", NotificationKey(NotificationTypeExpiryWarning, "ORD-1"))
	assert.Equal(t, "new-order-ORD-2", NotificationKey(NotificationTypeNewOrder, "ORD-2"))
	assert.Equal(t, "payment-ORD-3", NotificationKey(NotificationTypePaymentReminder, "ORD-3"))
	assert.Equal(t, "processing-delay-ORD-4", NotificationKey(NotificationTypeProcessingDelay, "ORD-4"))
	assert.Equal(t, "profile-update-ITEM-1", NotificationKey(NotificationTypeProfileNeedsUpdate, "ITEM-1"))
	assert.Equal(t, "new-warranty-WTY-1", NotificationKey(NotificationTypeNewWarranty, "WTY-1"))
}

func TestNotificationKey_SyntheticWhenNoRelatedID(t *testing.T) {
	a := NotificationKey(NotificationTypeExpiryWarning, "")
	b := NotificationKey(NotificationTypeExpiryWarning, "")

	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "expiry-")
}

func TestNotificationTypes_CoversEveryCategory(t *testing.T) {
	assert.Len(t, NotificationTypes, len(keyPrefixes))
	for _, typ := range NotificationTypes {
		_, ok := keyPrefixes[typ]
		assert.True(t, ok, "missing key prefix for %s", typ)
	}
}
