package util

import (
	"encoding/base64"
	"testing"
)

func TestEncryptDecrypt(t *testing.T) {

	key := []byte("0123456789abcdef") // AES-128

	enc, err := Encrypt(key, "bonding curve secret")
	if err != nil {
		t.Fatal(err)
	}

	dec, err := Decrypt(key, enc)
	if err != nil {
		t.Fatal(err)
	}

	if dec != "bonding curve secret" {
		t.Errorf("round trip mismatch: %s", dec)
	}
}

func TestDecode(t *testing.T) {

	v := base64.StdEncoding.EncodeToString([]byte("plain"))
	Decode(&v)
	if v != "plain" {
		t.Errorf("expected plain, got %s", v)
	}

	empty := ""
	Decode(&empty)
	if empty != "" {
		t.Error("empty value must stay empty")
	}
}
