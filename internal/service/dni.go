package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cloverpass/internal/config"
	"cloverpass/pkg/util"

	"go.uber.org/zap"
)

// ErrDNINotFound means the upstream registry had no usable record for the
// queried document number.
var ErrDNINotFound = errors.New("dni not found or incomplete upstream data")

// ErrDNINotConfigured means the server has no upstream URL/token configured.
var ErrDNINotConfigured = errors.New("dni lookup is not configured")

// DNIService proxies national-id lookups to a third-party registry and
// normalizes its response shapes into a single full-name string.
type DNIService struct {
	cfg    config.DNIConfig
	client *http.Client
	log    *zap.SugaredLogger
}

func NewDNIService(cfg config.DNIConfig, log *zap.SugaredLogger) *DNIService {
	return &DNIService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log,
	}
}

// DNIResult is the normalized lookup response.
type DNIResult struct {
	DNI            string `json:"dni"`
	NombreCompleto string `json:"nombreCompleto"`
}

// upstream response shape; error variants carry success=false or message.
type dniUpstreamResponse struct {
	Success         *bool  `json:"success,omitempty"`
	Message         string `json:"message,omitempty"`
	Nombres         string `json:"nombres"`
	ApellidoPaterno string `json:"apellido_paterno"`
	ApellidoMaterno string `json:"apellido_materno"`
}

// Lookup validates the document number, queries the upstream registry with
// the server-configured bearer token, and combines the name parts. No
// upstream call is made for malformed input.
func (s *DNIService) Lookup(ctx context.Context, dni string) (*DNIResult, error) {
	if err := util.ValidateDNI(dni); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	if s.cfg.APIURL == "" || s.cfg.APIToken == "" {
		return nil, ErrDNINotConfigured
	}

	url := fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.APIURL, "/"), dni)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIToken)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrDNINotFound
	}
	if resp.StatusCode != http.StatusOK {
		s.log.Warnw("dni upstream returned non-200", "status", resp.StatusCode, "dni", dni)
		return nil, fmt.Errorf("%w: upstream status %d", ErrUpstream, resp.StatusCode)
	}

	var body dniUpstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode upstream response: %v", ErrUpstream, err)
	}
	if body.Success != nil && !*body.Success {
		return nil, ErrDNINotFound
	}

	full := joinNameParts(body.Nombres, body.ApellidoPaterno, body.ApellidoMaterno)
	if body.Nombres == "" || full == "" {
		return nil, ErrDNINotFound
	}
	return &DNIResult{DNI: dni, NombreCompleto: full}, nil
}

func joinNameParts(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
