package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Drona-Balasara/ALUMNET/config"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-passw0rd")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-passw0rd" {
		t.Fatal("hash must not equal the plain password")
	}
	if err := CheckPassword(hash, "s3cret-passw0rd"); err != nil {
		t.Errorf("CheckPassword with the right password: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Error("CheckPassword should fail for the wrong password")
	}
}

func TestGenerateJWT(t *testing.T) {
	config.App.JWTSecret = "test-secret"
	config.App.JWTExpiry = time.Hour

	signed, err := GenerateJWT("64f000000000000000000001", "alumni")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("parse token: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["sub"] != "64f000000000000000000001" {
		t.Errorf("sub = %v", claims["sub"])
	}
	if claims["role"] != "alumni" {
		t.Errorf("role = %v", claims["role"])
	}
	if claims["iss"] != "alumnet-server" {
		t.Errorf("iss = %v", claims["iss"])
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("exp claim: %v", err)
	}
	want := time.Now().Add(time.Hour)
	if diff := exp.Time.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Errorf("exp = %v, want about %v", exp.Time, want)
	}
}

func TestGenerateJWTWithoutSecret(t *testing.T) {
	config.App.JWTSecret = ""
	if _, err := GenerateJWT("64f000000000000000000001", "student"); err == nil {
		t.Error("expected an error without a configured secret")
	}
	config.App.JWTSecret = "test-secret"
}

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP(6)
	if len(otp) != 6 {
		t.Fatalf("len = %d, want 6", len(otp))
	}
	if strings.Trim(otp, "0123456789") != "" {
		t.Errorf("otp %q contains non-digits", otp)
	}

	// Two draws colliding is possible but vanishingly unlikely across a few
	// attempts; all-equal draws indicate a broken source.
	same := 0
	for i := 0; i < 5; i++ {
		if GenerateOTP(6) == otp {
			same++
		}
	}
	if same == 5 {
		t.Error("OTP generator returned the same value repeatedly")
	}
}
