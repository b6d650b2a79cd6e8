// Package schema defines the data structures shared by the IVR reports tools.
package schema

// User is the identity returned by the login endpoint.
// It lives only in the session slot and in the in-memory auth state.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"usrName"`
	Username    string `json:"usrUserName"`
}

// Valid reports whether u looks like a user the backend issued.
func (u *User) Valid() bool {
	return u != nil && u.ID != ""
}
