package password

import (
	"strings"
	"testing"
)

// Small parameters keep the suite fast; the format is identical.
var testConfig = Config{MemoryKiB: 8 * 1024, Iterations: 1, Parallelism: 1}

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher(testConfig)
	if err != nil {
		t.Fatalf("NewHasher() error = %v", err)
	}
	return h
}

func TestHash(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash("correcthorsebatterystaple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$v=") {
		t.Errorf("Hash() format invalid, got %s", hash)
	}
	if !strings.Contains(hash, "m=8192,t=1,p=1") {
		t.Errorf("Hash() params not encoded, got %s", hash)
	}
	if parts := strings.Split(hash, "$"); len(parts) != 6 {
		t.Errorf("Hash() expected 6 parts, got %d", len(parts))
	}
}

func TestVerify(t *testing.T) {
	h := newTestHasher(t)
	password := "mysecretpassword"

	hash, err := h.Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	tests := []struct {
		name     string
		hash     string
		password string
		wantErr  error
	}{
		{"correct password", hash, password, nil},
		{"wrong password", hash, "wrongpassword", ErrMismatch},
		{"empty password", hash, "", ErrMismatch},
		{"empty hash", "", password, ErrInvalidHash},
		{"random string", "notahash", password, ErrInvalidHash},
		{"wrong algorithm", "$argon2i$v=19$m=65536,t=3,p=2$c29tZXNhbHQ$c29tZWhhc2g", password, ErrInvalidHash},
		{"malformed params", "$argon2id$v=19$invalid$c29tZXNhbHQ$c29tZWhhc2g", password, ErrInvalidHash},
		{"future version", "$argon2id$v=20$m=65536,t=3,p=2$c29tZXNhbHQ$c29tZWhhc2g", password, ErrIncompatibleVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Verify(tt.hash, tt.password); err != tt.wantErr {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHashUniqueness(t *testing.T) {
	h := newTestHasher(t)

	hash1, _ := h.Hash("samepassword")
	hash2, _ := h.Hash("samepassword")

	if hash1 == hash2 {
		t.Error("Hash() should produce unique hashes for same password (different salts)")
	}
}

func TestNeedsRehash(t *testing.T) {
	h := newTestHasher(t)

	hash, _ := h.Hash("testpassword")
	if h.NeedsRehash(hash) {
		t.Error("NeedsRehash() should return false for current params")
	}

	stronger, err := NewHasher(Config{MemoryKiB: 16 * 1024, Iterations: 1, Parallelism: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !stronger.NeedsRehash(hash) {
		t.Error("NeedsRehash() should return true after params change")
	}
	if !h.NeedsRehash("garbage") {
		t.Error("NeedsRehash() should return true for invalid hash")
	}
}

func TestVerifyDummy(t *testing.T) {
	h := newTestHasher(t)
	if err := h.VerifyDummy("anything"); err != ErrMismatch {
		t.Errorf("VerifyDummy() error = %v, want ErrMismatch", err)
	}
}

func TestCheckStrength(t *testing.T) {
	if err := CheckStrength("short"); err != ErrTooShort {
		t.Errorf("CheckStrength(short) = %v", err)
	}
	if err := CheckStrength("long enough"); err != nil {
		t.Errorf("CheckStrength(long enough) = %v", err)
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name   string
		length int
		want   int
	}{
		{"default length (0)", 0, 16},
		{"custom length 8", 8, 8},
		{"custom length 32", 32, 32},
		{"negative length", -5, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.length); len(got) != tt.want {
				t.Errorf("Generate(%d) length = %d, want %d", tt.length, len(got), tt.want)
			}
		})
	}
}

func TestLowMemoryMode(t *testing.T) {
	p := Config{LowMemoryMode: true}.ToParams()
	if p.Memory != 32*1024 || p.Iterations < 4 {
		t.Errorf("ToParams() low memory = %+v", p)
	}
}
