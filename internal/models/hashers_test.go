package models

import "testing"

func TestParseHasher(t *testing.T) {
	t.Run("Empty Defaults To Bcrypt", func(t *testing.T) {
		h, err := ParseHasher("")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if h != HasherBcrypt {
			t.Errorf("expected bcrypt, got %s", h)
		}
	})

	t.Run("Accepts Every Known Algorithm", func(t *testing.T) {
		for _, name := range []string{
			"argon2i", "argon2id", "bcrypt", "md5",
			"pbkdf2_sha256", "pbkdf2_sha256_django", "pbkdf2_sha1", "scrypt_firebase",
		} {
			h, err := ParseHasher(name)
			if err != nil {
				t.Errorf("expected %s to parse, got %v", name, err)
			}
			if h.String() != name {
				t.Errorf("expected %s, got %s", name, h)
			}
		}
	})

	t.Run("Rejects Unknown Algorithm", func(t *testing.T) {
		if _, err := ParseHasher("sha1"); err == nil {
			t.Error("expected error for unknown hasher")
		}
	})
}
