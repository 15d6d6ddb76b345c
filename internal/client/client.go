// Package client is the Go SDK for the laundry admin API. It feeds the
// list query engine and the order builder with real HTTP data and guards
// every call with a circuit breaker.
package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"laundry-admin/internal/domain/models"
	"laundry-admin/internal/orderbuilder"
	"laundry-admin/internal/query"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

const defaultTimeout = 10 * time.Second

type APIClient struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
}

func New(baseURL string) *APIClient {
	return &APIClient{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultTimeout).
			SetRetryCount(0),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "laundry-api",
			MaxRequests: 3,
			Interval:    15 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
		}),
	}
}

// SetToken installs the session token for authenticated endpoints.
func (c *APIClient) SetToken(token string) {
	c.http.SetAuthToken(token)
}

type apiError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Err     string `json:"error"`
}

func (e apiError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Err
	}
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("api: %s (status %d)", msg, e.Status)
}

func (c *APIClient) do(ctx context.Context, build func(*resty.Request) (*resty.Response, error)) error {
	_, err := c.breaker.Execute(func() (any, error) {
		resp, err := build(c.http.R().SetContext(ctx))
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			apiErr := apiError{Status: resp.StatusCode()}
			if v, ok := resp.Error().(*apiError); ok && v != nil {
				apiErr.Message = v.Message
				apiErr.Err = v.Err
			}
			return nil, apiErr
		}
		return nil, nil
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return fmt.Errorf("máy chủ tạm thời không phản hồi: %w", err)
	}
	return err
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login authenticates and installs the returned token on the client.
func (c *APIClient) Login(ctx context.Context, email, password string) (models.User, error) {
	var out loginResponse
	err := c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetBody(map[string]string{"email": email, "password": password}).
			SetResult(&out).
			SetError(&apiError{}).
			Post("/api/auth/login")
	})
	if err != nil {
		return models.User{}, err
	}
	c.SetToken(out.Token)
	return out.User, nil
}

// FetchList builds a query fetcher for one list endpoint, e.g.
// FetchList[models.Order](c, "/api/order").
func FetchList[T any](c *APIClient, path string) query.FetchFunc[T] {
	return func(ctx context.Context, d query.Descriptor) (query.Result[T], error) {
		var out query.Result[T]
		err := c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
			return r.
				SetQueryParamsFromValues(d.Params()).
				SetResult(&out).
				SetError(&apiError{}).
				Get(path)
		})
		return out, err
	}
}

type productListResponse struct {
	Data []models.Product `json:"data"`
}

// FetchCatalog loads active products for the order builder.
func (c *APIClient) FetchCatalog(ctx context.Context) ([]orderbuilder.CatalogItem, error) {
	var out productListResponse
	err := c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetResult(&out).
			SetError(&apiError{}).
			Get("/api/product/active")
	})
	if err != nil {
		return nil, err
	}
	items := make([]orderbuilder.CatalogItem, 0, len(out.Data))
	for _, p := range out.Data {
		items = append(items, orderbuilder.CatalogItem{
			ProductID: p.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Pinned:    p.Pinned,
		})
	}
	return items, nil
}

// SubmitOrder posts the finalized draft.
func (c *APIClient) SubmitOrder(ctx context.Context, d orderbuilder.Draft) error {
	return c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetBody(d).
			SetError(&apiError{}).
			Post("/api/order")
	})
}

type importResponse struct {
	Imported int `json:"imported"`
}

// ImportProducts uploads an Excel sheet of products.
func (c *APIClient) ImportProducts(ctx context.Context, filename string, data []byte) (int, error) {
	var out importResponse
	err := c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetFileReader("file", filename, bytes.NewReader(data)).
			SetResult(&out).
			SetError(&apiError{}).
			Post("/api/product/import")
	})
	return out.Imported, err
}

// UpdatePin persists a pin toggle by product code.
func (c *APIClient) UpdatePin(ctx context.Context, productID string, pinned bool) error {
	return c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetBody(map[string]bool{"pinned": pinned}).
			SetError(&apiError{}).
			Put("/api/product/" + productID + "/pin")
	})
}

// UpdateOrderStatus moves an order to the next status.
func (c *APIClient) UpdateOrderStatus(ctx context.Context, id int64, status string) (models.Order, error) {
	var out models.Order
	err := c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetBody(map[string]string{"status": status}).
			SetResult(&out).
			SetError(&apiError{}).
			Put(fmt.Sprintf("/api/order/%d/status", id))
	})
	return out, err
}

// Dashboard loads the aggregated dashboard payload.
func (c *APIClient) Dashboard(ctx context.Context, timeRange string) (models.Dashboard, error) {
	var out models.Dashboard
	err := c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		req := r.SetResult(&out).SetError(&apiError{})
		if timeRange != "" {
			req.SetQueryParam("timeRange", timeRange)
		}
		return req.Get("/api/dashboard")
	})
	return out, err
}
