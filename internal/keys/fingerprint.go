package keys

import (
	"golang.org/x/crypto/ssh"
)

// Info describes a parsed authorized-key line.
type Info struct {
	Key         string
	Type        string
	Comment     string
	Fingerprint string
	Err         error // Set when the line does not parse; the key is still rendered
}

// Inspect parses an authorized-key line for reporting.
func Inspect(key string) Info {
	info := Info{Key: key}
	pub, comment, _, _, err := ssh.ParseAuthorizedKey([]byte(key))
	if err != nil {
		info.Err = err
		return info
	}
	info.Type = pub.Type()
	info.Comment = comment
	info.Fingerprint = ssh.FingerprintSHA256(pub)
	return info
}

// Fingerprint returns the SHA256 fingerprint of an authorized-key line.
func Fingerprint(key string) (string, error) {
	info := Inspect(key)
	if info.Err != nil {
		return "", info.Err
	}
	return info.Fingerprint, nil
}
