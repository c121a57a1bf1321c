package models

import "fmt"

// PasswordHasher identifies the algorithm a pre-hashed password digest was
// produced with. The set is closed: Clerk rejects digests tagged with anything
// outside this enumeration, so values are validated once at configuration time.
type PasswordHasher string

const (
	HasherArgon2i             PasswordHasher = "argon2i"
	HasherArgon2id            PasswordHasher = "argon2id"
	HasherBcrypt              PasswordHasher = "bcrypt"
	HasherMD5                 PasswordHasher = "md5"
	HasherPBKDF2SHA256        PasswordHasher = "pbkdf2_sha256"
	HasherPBKDF2SHA256Django  PasswordHasher = "pbkdf2_sha256_django"
	HasherPBKDF2SHA1          PasswordHasher = "pbkdf2_sha1"
	HasherScryptFirebase      PasswordHasher = "scrypt_firebase"
	DefaultPasswordHasher                    = HasherBcrypt
)

var validHashers = map[PasswordHasher]bool{
	HasherArgon2i:            true,
	HasherArgon2id:           true,
	HasherBcrypt:             true,
	HasherMD5:                true,
	HasherPBKDF2SHA256:       true,
	HasherPBKDF2SHA256Django: true,
	HasherPBKDF2SHA1:         true,
	HasherScryptFirebase:     true,
}

// ParseHasher validates a hasher identifier and returns the typed value.
// An empty string resolves to [DefaultPasswordHasher].
func ParseHasher(s string) (PasswordHasher, error) {
	if s == "" {
		return DefaultPasswordHasher, nil
	}

	h := PasswordHasher(s)
	if !validHashers[h] {
		return "", fmt.Errorf("unknown password hasher %q", s)
	}
	return h, nil
}

func (h PasswordHasher) String() string { return string(h) }
