package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Tomlord1122/portfolio-backend/internal/domain"
	"github.com/Tomlord1122/portfolio-backend/internal/service"
	"github.com/Tomlord1122/portfolio-backend/internal/validate"
)

// Client calls procedures over HTTP. Failed calls return *Error.
type Client struct {
	baseURL string
	http    *http.Client

	Guestbook *EntityClient[domain.GuestbookEntry, service.CreateGuestbookEntryRequest, service.UpdateGuestbookEntryRequest]
	Todos     *EntityClient[domain.Todo, service.CreateTodoRequest, service.UpdateTodoRequest]
}

// NewClient returns a client for the procedures mounted at baseURL, for
// example "http://localhost:8080/rpc". A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
	c.Guestbook = &EntityClient[domain.GuestbookEntry, service.CreateGuestbookEntryRequest, service.UpdateGuestbookEntryRequest]{c: c, prefix: "guestbook"}
	c.Todos = &EntityClient[domain.Todo, service.CreateTodoRequest, service.UpdateTodoRequest]{c: c, prefix: "todos"}
	return c
}

// Call invokes the named procedure with in and decodes its data into out.
func (c *Client) Call(ctx context.Context, kind Kind, name string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s input: %w", name, err)
	}

	endpoint := c.baseURL + "/" + url.PathEscape(name)
	var req *http.Request
	if kind == KindQuery {
		q := url.Values{"input": {string(payload)}}
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err == nil {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	if err != nil {
		return fmt.Errorf("build %s request: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", name, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var failed errorResponse
		if err := json.Unmarshal(body, &failed); err != nil || failed.Error == nil {
			return &Error{Code: CodeInternal, Message: fmt.Sprintf("%s: unexpected status %s", name, resp.Status)}
		}
		return failed.Error
	}

	envelope := struct {
		Result struct {
			Data json.RawMessage `json:"data"`
		} `json:"result"`
	}{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decode %s response: %w", name, err)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Result.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", name, err)
	}
	return nil
}

// EntityClient is the typed view of one entity's procedures.
type EntityClient[T any, C any, U any] struct {
	c      *Client
	prefix string
}

func (e *EntityClient[T, C, U]) List(ctx context.Context, limit, offset int) (*service.ListResult[T], error) {
	var out service.ListResult[T]
	in := ListInput{Limit: validate.LooseInt(limit), Offset: validate.LooseInt(offset)}
	if err := e.c.Call(ctx, KindQuery, e.prefix+".list", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (e *EntityClient[T, C, U]) Get(ctx context.Context, id string) (*T, error) {
	return call[T](ctx, e.c, KindQuery, e.prefix+".get", IDInput{ID: id})
}

func (e *EntityClient[T, C, U]) Create(ctx context.Context, in C) (*T, error) {
	return call[T](ctx, e.c, KindMutation, e.prefix+".create", in)
}

func (e *EntityClient[T, C, U]) Update(ctx context.Context, id string, data U) (*T, error) {
	return call[T](ctx, e.c, KindMutation, e.prefix+".update", UpdateInput[U]{ID: id, Data: data})
}

func (e *EntityClient[T, C, U]) Remove(ctx context.Context, id string) (*T, error) {
	return call[T](ctx, e.c, KindMutation, e.prefix+".remove", IDInput{ID: id})
}

func call[T any](ctx context.Context, c *Client, kind Kind, name string, in any) (*T, error) {
	var out T
	if err := c.Call(ctx, kind, name, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
