package configs

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
}

// KeyPairs returns the keys in the order gorilla/sessions expects.
func (k *SessionKeys) KeyPairs() [][]byte {
	return [][]byte{k.AuthKey, k.EncKey}
}

func LoadSessionKeys(env ENV) (*SessionKeys, error) {
	if env.AppAuthKey == "" {
		return nil, fmt.Errorf("APP_AUTH_KEY environment variable not set")
	}
	if env.AppEncKey == "" {
		return nil, fmt.Errorf("APP_ENC_KEY environment variable not set")
	}

	authKey, err := base64.URLEncoding.DecodeString(env.AppAuthKey)
	if err != nil {
		return nil, fmt.Errorf("decode APP_AUTH_KEY from base64: %w", err)
	}
	encKey, err := base64.URLEncoding.DecodeString(env.AppEncKey)
	if err != nil {
		return nil, fmt.Errorf("decode APP_ENC_KEY from base64: %w", err)
	}

	if len(encKey) != 16 && len(encKey) != 24 && len(encKey) != 32 {
		return nil, fmt.Errorf("APP_ENC_KEY has invalid length %d after decoding, must be 16, 24 or 32 bytes", len(encKey))
	}

	zap.S().Info("LoadSessionKeys: session keys loaded")
	return &SessionKeys{AuthKey: authKey, EncKey: encKey}, nil
}

// EphemeralSessionKeys is used outside production when no keys are
// configured. Sessions do not survive a restart.
func EphemeralSessionKeys() *SessionKeys {
	return &SessionKeys{
		AuthKey: securecookie.GenerateRandomKey(64),
		EncKey:  securecookie.GenerateRandomKey(32),
	}
}

type GeneratedKeys struct {
	AuthKey string
	EncKey  string
}

func GenerateSessionKeys() (*GeneratedKeys, error) {
	authKey := securecookie.GenerateRandomKey(64)
	if authKey == nil {
		return nil, fmt.Errorf("could not generate authentication key")
	}
	encKey := securecookie.GenerateRandomKey(32)
	if encKey == nil {
		return nil, fmt.Errorf("could not generate encryption key")
	}
	return &GeneratedKeys{
		AuthKey: base64.URLEncoding.EncodeToString(authKey),
		EncKey:  base64.URLEncoding.EncodeToString(encKey),
	}, nil
}

// WriteSessionKeys writes freshly generated keys to path in .env format.
func WriteSessionKeys(path string) (*GeneratedKeys, error) {
	keys, err := GenerateSessionKeys()
	if err != nil {
		return nil, err
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if _, err := fmt.Fprintf(file, "APP_AUTH_KEY=%s\nAPP_ENC_KEY=%s\n", keys.AuthKey, keys.EncKey); err != nil {
		return nil, fmt.Errorf("write keys to %s: %w", path, err)
	}
	return keys, nil
}
