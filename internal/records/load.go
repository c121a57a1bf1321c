package records

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/desertthunder/umx/internal/models"
	"github.com/desertthunder/umx/internal/shared"
)

// LoadUsers reads a JSON array of user records from the given path.
func LoadUsers(path string) ([]models.UserRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read users file: %w", err)
	}

	var users []models.UserRecord
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", shared.ErrInvalidInput, path, err)
	}

	return users, nil
}

// LoadPhones reads a JSON array of phone-number records from the given path.
// A missing phones file is not an error; the migration simply runs without the
// phone join.
func LoadPhones(path string) ([]models.PhoneRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read phone numbers file: %w", err)
	}

	var phones []models.PhoneRecord
	if err := json.Unmarshal(data, &phones); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", shared.ErrInvalidInput, path, err)
	}

	return phones, nil
}
