package models

// User is an admin account. Accounts are created by the create-admin command only;
// the HTTP API never creates, mutates or deletes them.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

// UserList is the on-disk shape of users.json
type UserList struct {
	Users []User `json:"users"`
}

// Find returns the user with exactly the given username
func (l UserList) Find(username string) (User, bool) {
	for _, u := range l.Users {
		if u.Username == username {
			return u, true
		}
	}
	return User{}, false
}
