package configs

import (
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gorilla/securecookie"
)

const newKeysFile = ".env.new_keys"

type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
}

// LoadSessionKeys decodes APP_AUTH_KEY and APP_ENC_KEY. The same pair signs
// and encrypts both bearer tokens and the session cookie.
func LoadSessionKeys(env ENV) (*SessionKeys, error) {
	if env.AppAuthKey == "" {
		return nil, fmt.Errorf("APP_AUTH_KEY environment variable not set")
	}
	if env.AppEncKey == "" {
		return nil, fmt.Errorf("APP_ENC_KEY environment variable not set")
	}

	authKey, err := base64.URLEncoding.DecodeString(env.AppAuthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_AUTH_KEY from Base64: %w", err)
	}
	encKey, err := base64.URLEncoding.DecodeString(env.AppEncKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_ENC_KEY from Base64: %w", err)
	}

	if len(authKey) < 32 {
		return nil, fmt.Errorf("APP_AUTH_KEY has invalid length %d after decoding, need at least 32 bytes", len(authKey))
	}
	if len(encKey) != 16 && len(encKey) != 24 && len(encKey) != 32 {
		return nil, fmt.Errorf("APP_ENC_KEY has invalid length %d after decoding. Must be 16, 24, or 32 bytes for AES encryption", len(encKey))
	}

	log.Println("LoadSessionKeys: session keys loaded")
	return &SessionKeys{
		AuthKey: authKey,
		EncKey:  encKey,
	}, nil
}

// GenerateSessionKeys returns a fresh base64 (URL) encoded key pair.
func GenerateSessionKeys() (authKey, encKey string, err error) {
	auth := securecookie.GenerateRandomKey(64)
	if auth == nil {
		return "", "", fmt.Errorf("could not generate authentication key")
	}
	enc := securecookie.GenerateRandomKey(32)
	if enc == nil {
		return "", "", fmt.Errorf("could not generate encryption key")
	}
	return base64.URLEncoding.EncodeToString(auth), base64.URLEncoding.EncodeToString(enc), nil
}

func GenerateAndPrintSessionKeys(out io.Writer) error {
	authKey, encKey, err := GenerateSessionKeys()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "================================================")
	fmt.Fprintf(out, "APP_AUTH_KEY=%s\n", authKey)
	fmt.Fprintf(out, "APP_ENC_KEY=%s\n", encKey)
	fmt.Fprintln(out, "================================================")

	file, err := os.Create(newKeysFile)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", newKeysFile, err)
	}
	defer file.Close()

	if _, err := fmt.Fprintf(file, "APP_AUTH_KEY=%s\nAPP_ENC_KEY=%s\n", authKey, encKey); err != nil {
		return fmt.Errorf("failed to write keys to file %s: %w", newKeysFile, err)
	}

	fmt.Fprintf(out, "Keys written to %s. Copy them into .env; regenerating invalidates every issued token and session.\n", newKeysFile)
	return nil
}
