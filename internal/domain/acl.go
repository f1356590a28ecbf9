package domain

import "encoding/json"

// ACLEntry grants a single user a permission level on a resource.
type ACLEntry struct {
	UserID string      `json:"userId"`
	Level  AccessLevel `json:"level"`
}

// ACL is the access control list stored on items and histogram records.
// Records inherit the ACL of their item at submission time.
type ACL struct {
	Public bool       `json:"public"`
	Users  []ACLEntry `json:"users,omitempty"`
}

// Permits reports whether the user holds at least the given level.
// Admin users pass every check; public resources pass read checks.
func (a ACL) Permits(user *User, level AccessLevel) bool {
	if user != nil && user.Admin {
		return true
	}
	if a.Public && level <= AccessRead {
		return true
	}
	if user == nil {
		return false
	}
	for _, e := range a.Users {
		if e.UserID == user.ID && e.Level >= level {
			return true
		}
	}
	return false
}

// ParseACL decodes a raw ACL document. A nil or empty document yields a
// private ACL with no grants.
func ParseACL(raw []byte) (ACL, error) {
	var acl ACL
	if len(raw) == 0 {
		return acl, nil
	}
	if err := json.Unmarshal(raw, &acl); err != nil {
		return ACL{}, err
	}
	return acl, nil
}
