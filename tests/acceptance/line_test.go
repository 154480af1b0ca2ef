package acceptance

import (
	"net/http"
	"net/url"

	"github.com/CoolVinz/village-shop-sub001/internal/domain"
	"github.com/CoolVinz/village-shop-sub001/internal/dto"
)

// startLineLogin follows the authorize redirect far enough to capture
// the issued state nonce.
func (s *Suite) startLineLogin() string {
	resp, err := noRedirect.Get(s.BaseURL + "/api/v1/auth/line/login")
	s.Require().NoError(err)
	defer s.drain(resp)

	s.Require().Equal(http.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	s.Require().NoError(err)
	s.Require().Contains(location.String(), s.lineStub.URL, "should redirect to the authorize endpoint")

	state := location.Query().Get("state")
	s.Require().NotEmpty(state, "authorize redirect should carry a state nonce")
	return state
}

func (s *Suite) lineCallback(code, state string) *http.Response {
	resp, err := noRedirect.Get(s.BaseURL + "/api/v1/auth/line/callback?code=" + url.QueryEscape(code) + "&state=" + url.QueryEscape(state))
	s.Require().NoError(err)
	return resp
}

func (s *Suite) TestLineLogin_CreatesCustomerProfileIncomplete() {
	s.lineProfile = domain.LineProfile{
		UserID:      "U1234",
		DisplayName: "Somchai",
		PictureURL:  "https://profile.example/somchai.jpg",
	}

	state := s.startLineLogin()
	resp := s.lineCallback("auth-code", state)
	defer s.drain(resp)

	s.Equal(http.StatusFound, resp.StatusCode)
	// A fresh account has no house number yet.
	s.Equal(frontendURL+"/auth/complete-profile", resp.Header.Get("Location"))

	cookie := s.sessionCookie(resp)
	s.Require().NotNil(cookie, "callback should set the session cookie")

	meResp := s.do(http.MethodGet, "/api/v1/auth/me", cookie)
	s.Equal(http.StatusOK, meResp.StatusCode)

	var me dto.MeResponse
	s.decode(meResp, &me)
	s.Equal("Somchai", me.User.Name)
	s.Equal("CUSTOMER", me.User.Role)
	s.False(me.User.ProfileComplete)
	s.Nil(me.User.Username)
}

func (s *Suite) TestLineLogin_SecondLoginReusesAccount() {
	s.lineProfile = domain.LineProfile{UserID: "U1234", DisplayName: "Somchai"}

	state := s.startLineLogin()
	first := s.lineCallback("auth-code", state)
	s.drain(first)
	firstCookie := s.sessionCookie(first)
	s.Require().NotNil(firstCookie)

	s.lineProfile.DisplayName = "Somchai Updated"

	state = s.startLineLogin()
	second := s.lineCallback("auth-code", state)
	defer s.drain(second)
	secondCookie := s.sessionCookie(second)
	s.Require().NotNil(secondCookie)

	var count int
	err := s.Postgres.DB.QueryRow(`SELECT count(*) FROM users WHERE line_id = 'U1234'`).Scan(&count)
	s.Require().NoError(err)
	s.Equal(1, count, "the same LINE account maps to one user")

	meResp := s.do(http.MethodGet, "/api/v1/auth/me", secondCookie)
	var me dto.MeResponse
	s.decode(meResp, &me)
	s.Equal("Somchai Updated", me.User.Name)
}

func (s *Suite) TestLineLogin_CompleteProfile() {
	s.lineProfile = domain.LineProfile{UserID: "U1234", DisplayName: "Somchai"}

	state := s.startLineLogin()
	resp := s.lineCallback("auth-code", state)
	s.drain(resp)
	cookie := s.sessionCookie(resp)
	s.Require().NotNil(cookie)

	completeResp := s.postJSON("/api/v1/auth/complete-profile", dto.CompleteProfileRequest{
		HouseNumber: "45/6",
		Phone:       "0898765432",
		Role:        "VENDOR",
	}, cookie)

	s.Equal(http.StatusOK, completeResp.StatusCode)
	s.NotNil(s.sessionCookie(completeResp), "profile completion should reissue the cookie")

	var authResp dto.AuthResponse
	s.decode(completeResp, &authResp)
	s.True(authResp.User.ProfileComplete)
	s.Require().NotNil(authResp.User.Username)
	s.Equal("45/6", *authResp.User.Username)
	s.Equal("VENDOR", authResp.User.Role)

	// Once completed, password login is still unavailable for this
	// account (it has no password) but the session works.
	meResp := s.do(http.MethodGet, "/api/v1/auth/me", s.sessionCookie(completeResp))
	defer s.drain(meResp)
	s.Equal(http.StatusOK, meResp.StatusCode)
}

func (s *Suite) TestLineLogin_RedirectHomeWhenComplete() {
	s.lineProfile = domain.LineProfile{UserID: "U1234", DisplayName: "Somchai"}

	state := s.startLineLogin()
	resp := s.lineCallback("auth-code", state)
	s.drain(resp)

	completeResp := s.postJSON("/api/v1/auth/complete-profile", dto.CompleteProfileRequest{
		HouseNumber: "45/6",
	}, s.sessionCookie(resp))
	s.Require().Equal(http.StatusOK, completeResp.StatusCode)
	s.drain(completeResp)

	state = s.startLineLogin()
	again := s.lineCallback("auth-code", state)
	defer s.drain(again)

	s.Equal(frontendURL+"/", again.Header.Get("Location"))
}

func (s *Suite) TestLineCallback_MissingCode() {
	state := s.startLineLogin()

	resp := s.lineCallback("", state)
	defer s.drain(resp)

	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal(frontendURL+"/auth/error?error=no_code", resp.Header.Get("Location"))
	s.Nil(s.sessionCookie(resp))
}

func (s *Suite) TestLineCallback_UnknownState() {
	resp := s.lineCallback("auth-code", "forged-state")
	defer s.drain(resp)

	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal(frontendURL+"/auth/error?error=state_mismatch", resp.Header.Get("Location"))
}

func (s *Suite) TestLineCallback_StateReplayRejected() {
	s.lineProfile = domain.LineProfile{UserID: "U1234", DisplayName: "Somchai"}

	state := s.startLineLogin()

	first := s.lineCallback("auth-code", state)
	s.drain(first)
	s.Require().NotNil(s.sessionCookie(first))

	replay := s.lineCallback("auth-code", state)
	defer s.drain(replay)

	s.Equal(frontendURL+"/auth/error?error=state_mismatch", replay.Header.Get("Location"))
}
