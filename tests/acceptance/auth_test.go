package acceptance

import (
	"net/http"
	"sync"

	"github.com/CoolVinz/village-shop-sub001/internal/dto"
)

func (s *Suite) TestRegister_Success() {
	resp := s.postJSON("/api/v1/auth/register", dto.RegisterRequest{
		Name:        "Somchai",
		Username:    "12/3",
		Password:    "secret1",
		HouseNumber: "12/3",
		Phone:       "0812345678",
	}, nil)

	// Success is 200, not 201: the endpoint both creates the account
	// and opens the session.
	s.Equal(http.StatusOK, resp.StatusCode)

	cookie := s.sessionCookie(resp)
	s.Require().NotNil(cookie, "should set the session cookie")
	s.True(cookie.HttpOnly)
	s.Equal("/", cookie.Path)

	var authResp dto.AuthResponse
	s.decode(resp, &authResp)

	s.NotEmpty(authResp.Token)
	s.NotZero(authResp.ExpiresIn)
	s.Equal("Somchai", authResp.User.Name)
	s.Require().NotNil(authResp.User.Username)
	s.Equal("12/3", *authResp.User.Username)
	s.Equal("CUSTOMER", authResp.User.Role)
	s.True(authResp.User.ProfileComplete)
}

func (s *Suite) TestRegister_UsernameMustEqualHouseNumber() {
	resp := s.postJSON("/api/v1/auth/register", dto.RegisterRequest{
		Name:        "Somchai",
		Username:    "99/1",
		Password:    "secret1",
		HouseNumber: "12/3",
	}, nil)
	defer s.drain(resp)

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestRegister_WeakPassword() {
	resp := s.postJSON("/api/v1/auth/register", dto.RegisterRequest{
		Name:        "Somchai",
		Username:    "12/3",
		Password:    "secrets",
		HouseNumber: "12/3",
	}, nil)
	defer s.drain(resp)

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestRegister_AdminRoleRejected() {
	resp := s.postJSON("/api/v1/auth/register", dto.RegisterRequest{
		Name:        "Somchai",
		Username:    "12/3",
		Password:    "secret1",
		HouseNumber: "12/3",
		Role:        "ADMIN",
	}, nil)
	defer s.drain(resp)

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestRegister_DuplicateHouseNumber() {
	s.register("Somchai", "12/3", "secret1", "")

	resp := s.postJSON("/api/v1/auth/register", dto.RegisterRequest{
		Name:        "Malee",
		Username:    "12/3",
		Password:    "other42",
		HouseNumber: "12/3",
	}, nil)

	s.Equal(http.StatusConflict, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal("Conflict", errResp.Error)
}

// Two concurrent registrations for the same house number race at the
// INSERT; exactly one wins.
func (s *Suite) TestRegister_ConcurrentSameHouseNumber() {
	req := dto.RegisterRequest{
		Name:        "Somchai",
		Username:    "12/3",
		Password:    "secret1",
		HouseNumber: "12/3",
	}

	var wg sync.WaitGroup
	statuses := make([]int, 2)
	for i := range statuses {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := s.postJSON("/api/v1/auth/register", req, nil)
			s.drain(resp)
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	succeeded := 0
	conflicts := 0
	for _, status := range statuses {
		switch status {
		case http.StatusOK:
			succeeded++
		case http.StatusConflict:
			conflicts++
		}
	}
	s.Equal(1, succeeded, "exactly one registration should win")
	s.Equal(1, conflicts, "the loser should get a conflict")
}

func (s *Suite) TestLogin_Success() {
	_, user := s.register("Somchai", "12/3", "secret1", "")

	resp := s.postJSON("/api/v1/auth/login", dto.LoginRequest{
		Username: "12/3",
		Password: "secret1",
	}, nil)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.NotNil(s.sessionCookie(resp))

	var authResp dto.AuthResponse
	s.decode(resp, &authResp)
	s.Equal(user.ID, authResp.User.ID)
	s.NotEmpty(authResp.Token)
}

func (s *Suite) TestLogin_WrongPassword() {
	s.register("Somchai", "12/3", "secret1", "")

	resp := s.postJSON("/api/v1/auth/login", dto.LoginRequest{
		Username: "12/3",
		Password: "wrong9x",
	}, nil)
	defer s.drain(resp)

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestLogin_UnknownUsername() {
	resp := s.postJSON("/api/v1/auth/login", dto.LoginRequest{
		Username: "99/9",
		Password: "secret1",
	}, nil)
	defer s.drain(resp)

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestMe_WithCookie() {
	cookie, user := s.register("Somchai", "12/3", "secret1", "")

	resp := s.do(http.MethodGet, "/api/v1/auth/me", cookie)

	s.Equal(http.StatusOK, resp.StatusCode)

	var meResp dto.MeResponse
	s.decode(resp, &meResp)
	s.Equal(user.ID, meResp.User.ID)
	s.Equal("Somchai", meResp.User.Name)
}

func (s *Suite) TestMe_WithoutCookie() {
	resp := s.do(http.MethodGet, "/api/v1/auth/me", nil)

	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal("Unauthorized", errResp.Error)
}

func (s *Suite) TestMe_WithBearerToken() {
	resp := s.postJSON("/api/v1/auth/register", dto.RegisterRequest{
		Name:        "Somchai",
		Username:    "12/3",
		Password:    "secret1",
		HouseNumber: "12/3",
	}, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var authResp dto.AuthResponse
	s.decode(resp, &authResp)

	req, err := http.NewRequest(http.MethodGet, s.BaseURL+"/api/v1/auth/me", nil)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+authResp.Token)

	meResp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer s.drain(meResp)

	s.Equal(http.StatusOK, meResp.StatusCode)
}

func (s *Suite) TestLogout_ClearsCookie() {
	cookie, _ := s.register("Somchai", "12/3", "secret1", "")

	resp := s.postJSON("/api/v1/auth/logout", struct{}{}, cookie)
	defer s.drain(resp)

	s.Equal(http.StatusOK, resp.StatusCode)

	cleared := s.sessionCookie(resp)
	s.Require().NotNil(cleared)
	s.Empty(cleared.Value)
	s.Negative(cleared.MaxAge)
}

func (s *Suite) TestLogin_RateLimited() {
	req := dto.LoginRequest{Username: "99/9", Password: "wrong9x"}

	for i := 0; i < rateLimitRequests; i++ {
		resp := s.postJSON("/api/v1/auth/login", req, nil)
		s.Require().Equal(http.StatusUnauthorized, resp.StatusCode)
		s.drain(resp)
	}

	resp := s.postJSON("/api/v1/auth/login", req, nil)
	defer s.drain(resp)

	s.Equal(http.StatusTooManyRequests, resp.StatusCode)
	s.Equal("0", resp.Header.Get("X-RateLimit-Remaining"))
}

func (s *Suite) TestDeactivatedUser_SessionStopsWorking() {
	cookie, user := s.register("Somchai", "12/3", "secret1", "")

	_, err := s.Postgres.DB.Exec(`UPDATE users SET is_active = FALSE WHERE id = $1`, user.ID)
	s.Require().NoError(err)

	// The cookie is still cryptographically valid but the account is
	// re-checked on every request.
	resp := s.do(http.MethodGet, "/api/v1/auth/me", cookie)
	defer s.drain(resp)

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
