package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/internal/contentapi"
	"storefront/internal/domain"
)

// ErrInvalidPhone is a validation failure surfaced inline; nothing is sent
// and no state is touched.
var ErrInvalidPhone = errors.New("phone must be 11 digits starting with 09")

// Service is the client for the remote OTP provider. It holds no session
// state itself; a successful Verify hands identity and token to the caller.
type Service struct {
	base   string
	http   *http.Client
	logger *log.Logger
}

func New(baseURL string, timeout time.Duration, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{
		base:   strings.TrimRight(baseURL, "/"),
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// VerifyResult mirrors the provider contract: success plus the identity and
// bearer token to cache locally.
type VerifyResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
}

// Send asks the provider to text a code to the given phone number.
func (s *Service) Send(ctx context.Context, phone string) (string, error) {
	mobile, err := normalizePhone(phone)
	if err != nil {
		return "", err
	}

	var resp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := s.post(ctx, "/wp-json/digits/v1/send_otp", url.Values{
		"countrycode": {"+98"},
		"mobileNo":    {strings.TrimPrefix(mobile, "0")},
		"type":        {"login"},
	}, &resp); err != nil {
		return "", err
	}
	if resp.Code != 1 {
		return "", fmt.Errorf("otp provider: %s", orDefault(resp.Message, "send rejected"))
	}
	return resp.Message, nil
}

// Verify checks the code. On success the returned user carries a single
// primary role collapsed from the provider's role list.
func (s *Service) Verify(ctx context.Context, phone, code string) (VerifyResult, error) {
	mobile, err := normalizePhone(phone)
	if err != nil {
		return VerifyResult{}, err
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Token   string `json:"token"`
		User    *struct {
			ID        int      `json:"user_id"`
			FirstName string   `json:"first_name"`
			LastName  string   `json:"last_name"`
			Roles     []string `json:"roles"`
		} `json:"user"`
	}
	if err := s.post(ctx, "/wp-json/digits/v1/verify_otp", url.Values{
		"countrycode": {"+98"},
		"mobileNo":    {strings.TrimPrefix(mobile, "0")},
		"otp":         {contentapi.NormalizeDigits(code)},
		"type":        {"login"},
	}, &resp); err != nil {
		return VerifyResult{}, err
	}

	if !resp.Success || resp.Token == "" || resp.User == nil {
		return VerifyResult{Success: false, Message: orDefault(resp.Message, "verification failed")}, nil
	}
	return VerifyResult{
		Success: true,
		Message: resp.Message,
		Token:   resp.Token,
		User: &domain.User{
			ID:        strconv.Itoa(resp.User.ID),
			FirstName: resp.User.FirstName,
			LastName:  resp.User.LastName,
			Phone:     mobile,
			Role:      PrimaryRole(resp.User.Roles),
		},
	}, nil
}

func (s *Service) post(ctx context.Context, path string, form url.Values, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.base+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("otp provider: %w", err)
	}
	defer res.Body.Close()

	// The provider answers 4xx with a JSON body describing the failure, so
	// decode regardless of status.
	if err := json.NewDecoder(res.Body).Decode(dest); err != nil {
		return fmt.Errorf("otp provider: decode response: %w", err)
	}
	return nil
}

// PrimaryRole collapses the provider's role list into the one the
// storefront routes on. Staff roles win over the customer default.
func PrimaryRole(roles []string) string {
	role := domain.RoleCustomer
	for _, r := range roles {
		switch r {
		case domain.RoleAdministrator:
			return domain.RoleAdministrator
		case domain.RoleTechnician:
			role = domain.RoleTechnician
		}
	}
	return role
}

// normalizePhone maps localized digits to ASCII and validates the national
// mobile format (11 digits, 09 prefix).
func normalizePhone(phone string) (string, error) {
	p := contentapi.NormalizeDigits(strings.TrimSpace(phone))
	if len(p) != 11 || !strings.HasPrefix(p, "09") {
		return "", ErrInvalidPhone
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return "", ErrInvalidPhone
		}
	}
	return p, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
