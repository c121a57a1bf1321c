package records

import "github.com/desertthunder/umx/internal/models"

// MergePhones joins auxiliary phone rows into user records by ID.
//
// Returns a new slice with the same length and order as users. A user whose ID
// matches a phone row with a non-empty phone value gets PhoneNumber set to a
// single-element slice containing the phone in string form; everything else on
// the record is untouched. Users without a match pass through unchanged. When
// multiple phone rows share an ID, the first row wins.
func MergePhones(users []models.UserRecord, phones []models.PhoneRecord) []models.UserRecord {
	byID := make(map[string]models.Phone, len(phones))
	for _, p := range phones {
		if _, ok := byID[p.ID]; !ok {
			byID[p.ID] = p.Phone
		}
	}

	merged := make([]models.UserRecord, len(users))
	for i, user := range users {
		if phone, ok := byID[user.UserID]; ok && phone != "" {
			user.PhoneNumber = []string{phone.String()}
		}
		merged[i] = user
	}

	return merged
}
