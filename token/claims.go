package token

// Claims is the decoded payload of a signed session token. A Claims
// value is produced only by Decode (or fed to a Signer in tests); the
// widget never builds one by hand from partial data.
type Claims struct {
	ID          string
	Login       string
	NotBefore   int64
	ExpiresAt   int64
	Audience    string
	DisplayName string
}
