// Package client is the consumer side of the suggestion store. It keeps the
// current list in memory and mirrors it into a device-local snapshot so a cold
// start without network still shows the last known data.
//
// Snapshot mirroring is best-effort: after Save and Delete the snapshot holds
// the optimistic outcome (pre-call state plus the candidate change) whether or
// not the store acknowledged it. The in-memory list only reflects
// acknowledged changes. The two converge on the next successful Load.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"stylesuggest/internal/suggestion/model"
	"stylesuggest/pkg/logger"
	"stylesuggest/store"

	"github.com/google/uuid"
)

type Mode string

const (
	ModeRemote Mode = "remote" // store-backed with snapshot fallback
	ModeLocal  Mode = "local"  // snapshot only, never touches the network
)

// ErrEmptyFields is returned before any I/O when name or description is empty.
// Its text is meant to be shown to the user as is.
var ErrEmptyFields = errors.New("please fill in all fields")

type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
	token      string
	newID      func() string
}

// WithBaseURL sets the store address, e.g. http://localhost:3000.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithHTTPClient overrides the HTTP client. The default has no timeout.
func WithHTTPClient(h *http.Client) Option {
	return func(o *options) {
		if h != nil {
			o.httpClient = h
		}
	}
}

// WithToken sends a bearer token with every store request.
func WithToken(token string) Option {
	return func(o *options) { o.token = token }
}

// WithIDGenerator overrides how candidate ids are generated for new records.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

type Client struct {
	mode   Mode
	kv     store.KV
	remote *remote
	newID  func() string

	mu      sync.Mutex
	items   []model.Suggestion
	offline bool
}

func New(mode Mode, kv store.KV, opts ...Option) (*Client, error) {
	if kv == nil {
		return nil, errors.New("client: a local store is required")
	}
	o := options{newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Client{mode: mode, kv: kv, newID: o.newID, items: []model.Suggestion{}}
	switch mode {
	case ModeRemote:
		r, err := newRemote(o.baseURL, o.httpClient, o.token)
		if err != nil {
			return nil, err
		}
		c.remote = r
	case ModeLocal:
	default:
		return nil, fmt.Errorf("client: unsupported mode %q", mode)
	}
	return c, nil
}

func (c *Client) Mode() Mode { return c.mode }

// Offline reports whether the last Load fell back to the snapshot.
func (c *Client) Offline() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offline
}

// Suggestions returns a copy of the current list.
func (c *Client) Suggestions() []model.Suggestion {
	c.mu.Lock()
	defer c.mu.Unlock()
	return clone(c.items)
}

// Load fetches the list from the store once. On any failure it adopts the
// local snapshot instead (empty if none was ever saved). The returned error is
// non-nil only when that snapshot cannot be read.
func (c *Client) Load(ctx context.Context) ([]model.Suggestion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == ModeRemote {
		items, err := c.remote.list(ctx)
		if err == nil {
			c.items = items
			c.offline = false
			if err := writeSnapshot(ctx, c.kv, items); err != nil {
				logger.Sugar.Errorf("Failed to save suggestions snapshot: %v", err)
			}
			return clone(c.items), nil
		}
		logger.Sugar.Warnf("Failed to load suggestions from server, using local snapshot: %v", err)
		c.offline = true
	}

	items, err := readSnapshot(ctx, c.kv)
	if err != nil {
		logger.Sugar.Errorf("Failed to load suggestions snapshot: %v", err)
		c.items = []model.Suggestion{}
		return clone(c.items), err
	}
	c.items = items
	return clone(c.items), nil
}

// Save creates a suggestion when editingID is empty and updates editingID
// otherwise. It returns the record as acknowledged by the store, or the
// local candidate when there was no acknowledgment. Remote failures are
// logged, not returned; the error is non-nil for ErrEmptyFields or when the
// snapshot cannot be written.
func (c *Client) Save(ctx context.Context, editingID, name, description string) (model.Suggestion, error) {
	if name == "" || description == "" {
		return model.Suggestion{}, ErrEmptyFields
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := editingID
	if id == "" {
		id = c.newID()
	}
	candidate := model.Suggestion{ID: id, Name: name, Description: description}
	before := c.items
	result := candidate

	if c.mode == ModeLocal {
		c.items = merge(c.items, candidate)
	} else {
		req := model.SuggestionRequest{Name: name, Description: description}
		var ack model.Suggestion
		var err error
		if editingID == "" {
			ack, err = c.remote.create(ctx, req)
		} else {
			ack, err = c.remote.update(ctx, editingID, req)
		}
		if err != nil {
			logger.Sugar.Errorf("Failed to save suggestion %s: %v", id, err)
		} else {
			c.items = merge(c.items, ack)
			result = ack
		}
	}

	if err := writeSnapshot(ctx, c.kv, merge(before, candidate)); err != nil {
		logger.Sugar.Errorf("Failed to save suggestions snapshot: %v", err)
		return result, err
	}
	return result, nil
}

// Delete removes id from the store. Any HTTP response, including an error
// status, drops id from the current list; a transport failure leaves the list
// alone. The snapshot always loses id.
func (c *Client) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.items
	if c.mode == ModeLocal {
		c.items = without(c.items, id)
	} else {
		err := c.remote.delete(ctx, id)
		var remoteErr *RemoteError
		switch {
		case err == nil:
			c.items = without(c.items, id)
		case errors.As(err, &remoteErr):
			logger.Sugar.Warnf("Store rejected delete of %s: %v", id, err)
			c.items = without(c.items, id)
		default:
			logger.Sugar.Errorf("Failed to delete suggestion %s: %v", id, err)
		}
	}

	if err := writeSnapshot(ctx, c.kv, without(before, id)); err != nil {
		logger.Sugar.Errorf("Failed to save suggestions snapshot: %v", err)
		return err
	}
	return nil
}

func clone(items []model.Suggestion) []model.Suggestion {
	out := make([]model.Suggestion, len(items))
	copy(out, items)
	return out
}
