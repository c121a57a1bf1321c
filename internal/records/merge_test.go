package records

import (
	"reflect"
	"testing"

	"github.com/desertthunder/umx/internal/models"
)

func TestMergePhones(t *testing.T) {
	users := []models.UserRecord{
		{UserID: "user_1", Email: "one@example.com"},
		{UserID: "user_2", Email: "two@example.com", FirstName: "Two"},
		{UserID: "user_3", Email: "three@example.com"},
	}

	t.Run("Preserves Length And Order", func(t *testing.T) {
		merged := MergePhones(users, []models.PhoneRecord{
			{ID: "user_2", Phone: "5551234"},
		})

		if len(merged) != len(users) {
			t.Fatalf("expected %d records, got %d", len(users), len(merged))
		}
		for i := range users {
			if merged[i].UserID != users[i].UserID {
				t.Errorf("order changed at index %d: got %s, want %s", i, merged[i].UserID, users[i].UserID)
			}
		}
	})

	t.Run("No Match Passes Through Unchanged", func(t *testing.T) {
		merged := MergePhones(users, []models.PhoneRecord{
			{ID: "user_2", Phone: "5551234"},
		})

		if !reflect.DeepEqual(merged[0], users[0]) {
			t.Errorf("unmatched record was modified: got %+v, want %+v", merged[0], users[0])
		}
	})

	t.Run("Match Sets Single Element Phone Number", func(t *testing.T) {
		merged := MergePhones(users, []models.PhoneRecord{
			{ID: "user_2", Phone: "5551234"},
		})

		want := []string{"5551234"}
		if !reflect.DeepEqual(merged[1].PhoneNumber, want) {
			t.Errorf("expected phoneNumber %v, got %v", want, merged[1].PhoneNumber)
		}
	})

	t.Run("First Match Wins", func(t *testing.T) {
		merged := MergePhones(users, []models.PhoneRecord{
			{ID: "user_3", Phone: "1110000"},
			{ID: "user_3", Phone: "2220000"},
		})

		want := []string{"1110000"}
		if !reflect.DeepEqual(merged[2].PhoneNumber, want) {
			t.Errorf("expected first match %v, got %v", want, merged[2].PhoneNumber)
		}
	})

	t.Run("Empty Phone Is Ignored", func(t *testing.T) {
		merged := MergePhones(users, []models.PhoneRecord{
			{ID: "user_1", Phone: ""},
		})

		if merged[0].PhoneNumber != nil {
			t.Errorf("expected no phone numbers, got %v", merged[0].PhoneNumber)
		}
	})

	t.Run("Does Not Mutate Input", func(t *testing.T) {
		MergePhones(users, []models.PhoneRecord{
			{ID: "user_1", Phone: "5550000"},
		})

		if users[0].PhoneNumber != nil {
			t.Errorf("input slice was mutated: %v", users[0].PhoneNumber)
		}
	})

	t.Run("Empty Inputs", func(t *testing.T) {
		if got := MergePhones(nil, nil); len(got) != 0 {
			t.Errorf("expected empty output, got %v", got)
		}
	})
}
