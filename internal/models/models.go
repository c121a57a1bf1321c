// package models defines the data model for the user migration tool
package models

import (
	"encoding/json"
	"time"
)

// Model defines the base interface for all persistent models in the migration tool.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// UserRecord represents one user from the primary export file.
//
// UserID and Email are always present on valid records. An empty Password means
// the user has no password digest and the provider should waive the password
// requirement, not that the password is the empty string.
type UserRecord struct {
	UserID      string   `json:"userId"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstName,omitempty"`
	LastName    string   `json:"lastName,omitempty"`
	Password    string   `json:"password,omitempty"`
	PhoneNumber []string `json:"phoneNumber,omitempty"`
}

// PhoneRecord represents one row of the auxiliary phone-number export,
// joined into UserRecord.PhoneNumber by ID == UserID.
type PhoneRecord struct {
	ID    string `json:"id"`
	Phone Phone  `json:"phone"`
}

// Phone is a phone number that may appear in the export as either a JSON
// string or a bare number. Both decode to the string form.
type Phone string

func (p *Phone) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = Phone(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = Phone(n.String())
	return nil
}

func (p Phone) String() string { return string(p) }
