package credentials

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// Word lists for generating readable pseudonym tokens
var adjectives = []string{
	"amber", "brisk", "calm", "clever", "crimson", "daring", "dusty", "eager",
	"fuzzy", "gentle", "golden", "hazy", "hidden", "jolly", "lively", "lunar",
	"mellow", "misty", "noble", "polar", "quiet", "rapid", "rusty", "silent",
	"silver", "sly", "solar", "stormy", "swift", "velvet", "vivid", "wild",
}

var nouns = []string{
	"badger", "comet", "condor", "coyote", "falcon", "fjord", "gecko", "glacier",
	"heron", "jackal", "lantern", "lynx", "marmot", "meteor", "otter", "panther",
	"pebble", "raven", "reef", "sparrow", "sphinx", "summit", "thicket", "tundra",
	"viper", "walrus", "willow", "wolf", "wombat", "zephyr",
}

// GeneratePseudonym generates a stable pseudonymous identity token in the
// format "adjective-noun-xxxx". The hex suffix keeps collisions
// improbable; the token is generated once per player and reused for all
// of their anonymous games.
func GeneratePseudonym() (string, error) {
	adjective, err := randomElement(adjectives)
	if err != nil {
		return "", err
	}

	noun, err := randomElement(nouns)
	if err != nil {
		return "", err
	}

	var suffix [2]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return "", err
	}

	return adjective + "-" + noun + "-" + hex.EncodeToString(suffix[:]), nil
}

// HashUnlockSecret hashes the pseudonymous-history unlock secret for
// storage. The plaintext is never persisted.
func HashUnlockSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyUnlockSecret compares a provided secret against the stored hash
func VerifyUnlockSecret(storedHash, secret string) bool {
	if storedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(secret)) == nil
}

// randomElement picks a random element from a string slice
func randomElement(slice []string) (string, error) {
	num, err := rand.Int(rand.Reader, big.NewInt(int64(len(slice))))
	if err != nil {
		return "", err
	}
	return slice[num.Int64()], nil
}
