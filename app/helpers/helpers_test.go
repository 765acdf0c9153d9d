package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed := HashPassword("s3cret")
	require.NotEmpty(t, hashed)
	assert.NotEqual(t, "s3cret", hashed)

	assert.True(t, PasswordCompare(hashed, []byte("s3cret")))
	assert.False(t, PasswordCompare(hashed, []byte("wrong")))
}

func TestRedirectWithMessageEscapesMessage(t *testing.T) {
	req := httptest.NewRequest("GET", "/carts", nil)
	rec := httptest.NewRecorder()

	RedirectWithMessage(rec, req, "/carts", "error", "'Mug' has 3 in stock, 5 requested")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	location := rec.Header().Get("Location")
	assert.Contains(t, location, "/carts?status=error&message=")
	assert.NotContains(t, location, " ")
}
