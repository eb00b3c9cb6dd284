// Package kvstore provides the keyed object store agents expose to their
// tools. One tool inserts a retrievable object under its id; another fetches
// it later in the conversation, so large payloads never travel through the
// model context.
package kvstore

import (
	"fmt"
)

// RetrievableObject is a value stored for later retrieval by id. Summary is
// the short description handed back to the model in place of the payload.
type RetrievableObject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Payload     any    `json:"payload"`
}

// Summary returns the compact representation surfaced to the model.
func (o RetrievableObject) Summary() string {
	return fmt.Sprintf("%s: %s (id: %s)", o.Name, o.Description, o.ID)
}

// ErrNotFound is returned when no object is stored under the requested id.
var ErrNotFound = fmt.Errorf("kvstore: object not found")

// Store persists retrievable objects by id. Short method names align with the
// other *Store interfaces in this module.
type Store interface {
	Put(obj RetrievableObject) error
	Get(id string) (RetrievableObject, error)
	Delete(id string) error
	List() []RetrievableObject
}
