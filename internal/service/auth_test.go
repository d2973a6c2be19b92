package service

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingEmailSender struct {
	toEmail string
	name    string
	link    string
	sends   int
}

func (s *capturingEmailSender) SendMagicLink(toEmail, name, link string) error {
	s.toEmail = toEmail
	s.name = name
	s.link = link
	s.sends++
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "test-secret", nil)

	token, err := auth.Register("Alice Smith", "alice@example.com", "alice", "Str0ng!pass")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)

	loginToken, err := auth.Login("alice@example.com", "Str0ng!pass")
	require.NoError(t, err)

	loginClaims, err := auth.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, loginClaims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "test-secret", nil)

	_, err := auth.Register("Alice Smith", "alice@example.com", "alice", "Str0ng!pass")
	require.NoError(t, err)

	_, err = auth.Login("alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login("nobody@example.com", "Str0ng!pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "test-secret", nil)

	_, err := auth.Register("Alice Smith", "alice@example.com", "alice", "Str0ng!pass")
	require.NoError(t, err)

	_, err = auth.Register("Other Alice", "alice@example.com", "alice2", "Str0ng!pass")
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestRegisterWeakPassword(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "test-secret", nil)

	for _, password := range []string{
		"short1!",     // too short
		"alllower1!",  // no uppercase
		"NoNumbers!",  // no digit
		"NoSpecial12", // no special character
	} {
		_, err := auth.Register("Alice Smith", "alice@example.com", "alice", password)
		assert.ErrorIs(t, err, ErrWeakPassword, "password %q should be rejected", password)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Str0ng!pass"))
	assert.NoError(t, ValidatePassword(`Qu"ote4you`))
	assert.ErrorIs(t, ValidatePassword("weak"), ErrWeakPassword)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "test-secret", nil)

	_, err := auth.ValidateToken("not-a-token")
	assert.Error(t, err)

	// A token signed with a different secret must not validate.
	other := NewAuthService(db, "other-secret", nil)
	user := createTestUser(t, db, "Alice Smith", "alice@example.com", "alice")
	token, err := other.GenerateToken(user.ID)
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.Error(t, err)
}

func TestMagicLinkFlow(t *testing.T) {
	db := setupTestDB(t)
	sender := &capturingEmailSender{}
	auth := NewAuthService(db, "test-secret", sender)

	user := createTestUser(t, db, "Alice Smith", "alice@example.com", "alice")

	require.NoError(t, auth.RequestMagicLink("alice@example.com", "https://dishly.example/"))
	require.Equal(t, 1, sender.sends)
	assert.Equal(t, "alice@example.com", sender.toEmail)
	assert.True(t, strings.HasPrefix(sender.link, "https://dishly.example/auth/magic-link/verify?token="), sender.link)

	parsed, err := url.Parse(sender.link)
	require.NoError(t, err)
	magicToken := parsed.Query().Get("token")
	require.NotEmpty(t, magicToken)

	// The magic-link token is not a session token.
	_, err = auth.ValidateToken(magicToken)
	assert.Error(t, err)

	sessionToken, err := auth.VerifyMagicLink(magicToken)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(sessionToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	// And a session token cannot be replayed as a magic link.
	_, err = auth.VerifyMagicLink(sessionToken)
	assert.Error(t, err)
}

func TestMagicLinkUnknownAddressIsSilent(t *testing.T) {
	db := setupTestDB(t)
	sender := &capturingEmailSender{}
	auth := NewAuthService(db, "test-secret", sender)

	require.NoError(t, auth.RequestMagicLink("nobody@example.com", "https://dishly.example"))
	assert.Equal(t, 0, sender.sends)
}

func TestMagicLinkWithoutSender(t *testing.T) {
	db := setupTestDB(t)
	auth := NewAuthService(db, "test-secret", nil)

	err := auth.RequestMagicLink("alice@example.com", "https://dishly.example")
	assert.Error(t, err)
}
