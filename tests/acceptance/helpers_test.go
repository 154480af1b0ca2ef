package acceptance

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/CoolVinz/village-shop-sub001/internal/dto"
)

const cookieName = "auth-token"

// noRedirect stops the client at the first 3xx so redirect targets can
// be asserted.
var noRedirect = &http.Client{
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

func (s *Suite) postJSON(path string, payload any, cookie *http.Cookie) *http.Response {
	body, err := json.Marshal(payload)
	s.Require().NoError(err)

	req, err := http.NewRequest(http.MethodPost, s.BaseURL+path, bytes.NewBuffer(body))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *Suite) putJSON(path string, payload any, cookie *http.Cookie) *http.Response {
	body, err := json.Marshal(payload)
	s.Require().NoError(err)

	req, err := http.NewRequest(http.MethodPut, s.BaseURL+path, bytes.NewBuffer(body))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *Suite) do(method, path string, cookie *http.Cookie) *http.Response {
	req, err := http.NewRequest(method, s.BaseURL+path, nil)
	s.Require().NoError(err)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *Suite) decode(resp *http.Response, out any) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
}

func (s *Suite) drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// sessionCookie pulls the auth-token cookie out of a response.
func (s *Suite) sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	return nil
}

// register creates a password account and returns its session cookie
// and user payload.
func (s *Suite) register(name, houseNumber, password, role string) (*http.Cookie, dto.UserResponse) {
	resp := s.postJSON("/api/v1/auth/register", dto.RegisterRequest{
		Name:        name,
		Username:    houseNumber,
		Password:    password,
		HouseNumber: houseNumber,
		Role:        role,
	}, nil)

	s.Require().Equal(http.StatusOK, resp.StatusCode, "registration should succeed")

	cookie := s.sessionCookie(resp)
	s.Require().NotNil(cookie, "registration should set the session cookie")

	var authResp dto.AuthResponse
	s.decode(resp, &authResp)

	return cookie, authResp.User
}

// promoteToAdmin flips a user's role directly in the database; there is
// no API path that can mint the first admin.
func (s *Suite) promoteToAdmin(userID string) {
	_, err := s.Postgres.DB.Exec(`UPDATE users SET role = 'ADMIN' WHERE id = $1`, userID)
	s.Require().NoError(err)
}

// registerAdmin registers a user, promotes it, and logs in again so the
// cookie snapshot carries the ADMIN role.
func (s *Suite) registerAdmin(houseNumber, password string) *http.Cookie {
	_, user := s.register("Admin", houseNumber, password, "")
	s.promoteToAdmin(user.ID)

	resp := s.postJSON("/api/v1/auth/login", dto.LoginRequest{
		Username: houseNumber,
		Password: password,
	}, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	defer s.drain(resp)

	cookie := s.sessionCookie(resp)
	s.Require().NotNil(cookie)
	return cookie
}
