package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "customercore/pkg/domain-errors"
	"customercore/pkg/requestcontext"
)

type AuthMiddlewareSuite struct {
	suite.Suite
	tokens  *TokenService
	handler http.Handler
	seen    string
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

func (s *AuthMiddlewareSuite) SetupTest() {
	s.tokens = NewTokenService("test-signing-key", "customercore")
	s.seen = ""
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.handler = RequireActor(s.tokens, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.seen = requestcontext.Actor(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
}

func (s *AuthMiddlewareSuite) serve(header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

// TestValidToken verifies the subject becomes the request actor.
func (s *AuthMiddlewareSuite) TestValidToken() {
	token, err := s.tokens.Issue("maker", time.Minute)
	s.Require().NoError(err)

	rr := s.serve("Bearer " + token)

	s.Equal(http.StatusNoContent, rr.Code)
	s.Equal("maker", s.seen)
}

// TestRejections verifies missing, malformed, foreign and expired tokens return 401.
func (s *AuthMiddlewareSuite) TestRejections() {
	s.Run("missing header", func() {
		rr := s.serve("")
		s.Equal(http.StatusUnauthorized, rr.Code)
		s.Contains(rr.Body.String(), `"error":"unauthorized"`)
	})

	s.Run("not a bearer token", func() {
		rr := s.serve("Basic abc")
		s.Equal(http.StatusUnauthorized, rr.Code)
	})

	s.Run("signed with another key", func() {
		other := NewTokenService("other-key", "customercore")
		token, err := other.Issue("maker", time.Minute)
		s.Require().NoError(err)
		rr := s.serve("Bearer " + token)
		s.Equal(http.StatusUnauthorized, rr.Code)
		s.Empty(s.seen)
	})

	s.Run("expired", func() {
		token, err := s.tokens.Issue("maker", -time.Minute)
		s.Require().NoError(err)
		rr := s.serve("Bearer " + token)
		s.Equal(http.StatusUnauthorized, rr.Code)
	})
}

// TestValidateTokenCodes verifies validation failures carry the unauthorized code.
func (s *AuthMiddlewareSuite) TestValidateTokenCodes() {
	_, err := s.tokens.ValidateToken("garbage")
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	wrongIssuer := NewTokenService("test-signing-key", "someone-else")
	token, err := wrongIssuer.Issue("maker", time.Minute)
	s.Require().NoError(err)
	_, err = s.tokens.ValidateToken(token)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
