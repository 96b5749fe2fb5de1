package store

// Storage key layout: one blob per record, prefixed per logical table.
// Tokens and identities are already normalized/opaque, so plain
// concatenation is collision-free.
const (
	credentialKeyPrefix = "cred/"
	sessionKeyPrefix    = "session/"
	activeKeyPrefix     = "active/"
	playerKeyPrefix     = "player/"

	// usernamesKey holds the whole recent-usernames list as one blob.
	usernamesKey = "usernames"
)

func credentialKey(identity string) string { return credentialKeyPrefix + identity }
func sessionKey(token string) string       { return sessionKeyPrefix + token }
func activeKey(identity string) string     { return activeKeyPrefix + identity }
func playerKey(identity string) string     { return playerKeyPrefix + identity }
