package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/mysanvi/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Call descreve uma chamada JSON a um backend
type Call struct {
	Op         string // nome da operação usado em erros e logs, ex: "sager.list_sales"
	Method     string
	Path       string // relativo à base, ex: "api/sales/"
	Query      url.Values
	AuthHeader string
	Body       any
	Out        any // destino da resposta; nil descarta o corpo
}

// Requester executa chamadas JSON contra uma base fixa e traduz falhas
// para NetworkError, HTTPError e DecodeError
type Requester struct {
	httpClient *http.Client
	baseURL    *url.URL
}

func NewRequester(httpClient *http.Client, baseURL string) (*Requester, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base url %q", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Requester{httpClient: httpClient, baseURL: base}, nil
}

// URL resolve um caminho relativo à base
func (r *Requester) URL(path string, query url.Values) string {
	endpoint := r.baseURL.ResolveReference(&url.URL{Path: strings.TrimPrefix(path, "/")})
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}
	return endpoint.String()
}

func (r *Requester) Do(ctx context.Context, call Call) error {
	endpoint := r.URL(call.Path, call.Query)

	var body io.Reader
	if call.Body != nil {
		payload, err := json.Marshal(call.Body)
		if err != nil {
			return errors.Wrapf(err, "%s: encoding request", call.Op)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, endpoint, body)
	if err != nil {
		return errors.Wrapf(err, "%s: building request", call.Op)
	}
	req.Header.Set("Accept", "application/json")
	if call.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if call.AuthHeader != "" {
		req.Header.Set("Authorization", call.AuthHeader)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return &apiErrors.NetworkError{Op: call.Op, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apiErrors.NetworkError{Op: call.Op, URL: endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apiErrors.HTTPError{
			Op:         call.Op,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, raw),
		}
	}

	if call.Out == nil || len(bytes.TrimSpace(raw)) == 0 {
		if call.Out != nil {
			return &apiErrors.DecodeError{Op: call.Op, Target: targetName(call.Out), Err: errors.New("empty response body")}
		}
		return nil
	}

	if err := json.Unmarshal(raw, call.Out); err != nil {
		return &apiErrors.DecodeError{Op: call.Op, Target: targetName(call.Out), Err: err}
	}

	return nil
}

// errorMessage extrai a mensagem de erro do corpo nos formatos comuns dos backends
func errorMessage(status int, raw []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		for _, msg := range []string{payload.Detail, payload.Message, payload.Error} {
			if msg != "" {
				return msg
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "unexpected status"
}

func targetName(v any) string {
	name := strings.TrimLeft(fmt.Sprintf("%T", v), "*[]")
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
