package gateway

import "testing"

func TestUUIDKeyIssuerMintsFreshKeys(t *testing.T) {
	issuer := NewUUIDKeyIssuer()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key := issuer.NewKey()
		if key == "" {
			t.Fatal("NewKey returned an empty key")
		}
		if seen[key] {
			t.Fatalf("NewKey returned a duplicate: %s", key)
		}
		seen[key] = true
	}
}
