package ast

import "github.com/google/uuid"

// ID returns the collection identifier. Exports without a valid _postman_id
// get a name-based UUID so reports stay stable across runs.
func (i Info) ID() uuid.UUID {
	if id, err := uuid.Parse(i.PostmanID); err == nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(i.Schema+"#"+i.Name))
}
