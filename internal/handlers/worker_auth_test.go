package handlers

import (
	"testing"
	"time"
)

func TestGenerateOTP(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		otp, err := generateOTP()
		if err != nil {
			t.Fatalf("failed to generate OTP: %v", err)
		}
		if len(otp) != 6 {
			t.Fatalf("expected a 6-digit code, got %q", otp)
		}
		for _, r := range otp {
			if r < '0' || r > '9' {
				t.Fatalf("expected digits only, got %q", otp)
			}
		}
		if otp[0] == '0' {
			t.Fatalf("expected no leading zero, got %q", otp)
		}
		seen[otp] = true
	}
	// 100 draws from 900000 values collapsing to one would mean a broken RNG
	if len(seen) < 2 {
		t.Fatal("expected varying codes across draws")
	}
}

func TestOTPExpired(t *testing.T) {
	now := time.Now()

	future := now.Add(5 * time.Minute)
	if otpExpired(&future, now) {
		t.Fatal("code with a future expiry should be valid")
	}

	past := now.Add(-time.Second)
	if !otpExpired(&past, now) {
		t.Fatal("code past its expiry should be expired")
	}

	if !otpExpired(nil, now) {
		t.Fatal("code with no expiry on record should be treated as expired")
	}
}

func TestVoiceNoteFilename(t *testing.T) {
	name := voiceNoteFilename("recording.webm")
	if len(name) < len("voice-") || name[:6] != "voice-" {
		t.Fatalf("expected voice- prefix, got %q", name)
	}
	if name[len(name)-5:] != ".webm" {
		t.Fatalf("expected original extension to be kept, got %q", name)
	}

	other := voiceNoteFilename("recording.webm")
	if name == other {
		t.Fatal("expected distinct names across uploads")
	}

	bare := voiceNoteFilename("noextension")
	for _, r := range bare {
		if r == '.' {
			t.Fatalf("expected no extension on %q", bare)
		}
	}
}
