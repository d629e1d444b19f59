// Package console holds the Items Console behaviour shared by the TUI and the
// CLI: which request each action sends, what the status line says afterwards,
// and whether the list must be refetched.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/idilsaglam/items/internal/api"
	"github.com/idilsaglam/items/internal/model"
)

const (
	MsgItemsLoaded = "Items loaded"
	MsgItemAdded   = "Item added"
	MsgItemUpdated = "Item updated"
	MsgItemDeleted = "Item deleted"
	MsgRequired    = "Name and quantity are required"

	EmptyState = "No items yet."
)

// ErrRequired is returned by ParseInput for a blank name or a non-numeric
// quantity.
var ErrRequired = errors.New(MsgRequired)

var validate = validator.New()

// Status is the single-line feedback shown after every action.
type Status struct {
	Message string
	IsError bool
}

// Result is what one action produced.
type Result struct {
	Status Status
	// Exchange is nil when the action was rejected before any request.
	Exchange *api.Exchange

	// Listed is true when Items replaces the rendered list.
	Listed   bool
	Items    []model.Item
	Examples map[string]any

	// Refresh asks the caller to refetch the list (successful mutation).
	Refresh bool
	// ResetForm asks the caller to clear the add form.
	ResetForm bool
}

type Console struct {
	client *api.Client
	logger *log.Logger
}

func New(client *api.Client, logger *log.Logger) *Console {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Console{client: client, logger: logger}
}

// ParseInput trims name and parses quantity as an integer.
func ParseInput(name, quantity string) (model.ItemInput, error) {
	in := model.ItemInput{Name: strings.TrimSpace(name)}
	q, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil {
		return in, ErrRequired
	}
	in.Quantity = q
	if err := validate.Struct(in); err != nil {
		return in, ErrRequired
	}
	return in, nil
}

// List fetches the collection and replaces the list on success.
func (c *Console) List(ctx context.Context) Result {
	list, ex, err := c.client.List(ctx)
	if err != nil {
		return c.failed("list", ex, err, fmt.Sprintf("Failed to load items (%d)", ex.Status))
	}
	c.logger.Debug("action", "op", "list", "items", len(list.Items))
	return Result{
		Status:   Status{Message: MsgItemsLoaded},
		Exchange: ex,
		Listed:   true,
		Items:    list.Items,
		Examples: list.RequestExamples,
	}
}

// Refresh is the list refetch that follows a mutation. It leaves the status
// line alone unless the refetch fails.
func (c *Console) Refresh(ctx context.Context) Result {
	r := c.List(ctx)
	if !r.Status.IsError {
		r.Status = Status{}
	}
	r.Exchange = nil
	return r
}

// Add validates locally and posts a new item.
func (c *Console) Add(ctx context.Context, name, quantity string) Result {
	in, err := ParseInput(name, quantity)
	if err != nil {
		return Result{Status: Status{Message: MsgRequired, IsError: true}}
	}
	_, ex, err := c.client.Create(ctx, in)
	if err != nil {
		return c.failed("add", ex, err, "Failed to add item")
	}
	c.logger.Debug("action", "op", "add", "name", in.Name)
	return Result{
		Status:    Status{Message: MsgItemAdded},
		Exchange:  ex,
		Refresh:   true,
		ResetForm: true,
	}
}

// Update sends the edited name and quantity of item id.
func (c *Console) Update(ctx context.Context, id int, name, quantity string) Result {
	in, err := ParseInput(name, quantity)
	if err != nil {
		return Result{Status: Status{Message: MsgRequired, IsError: true}}
	}
	_, ex, err := c.client.Update(ctx, id, in)
	if err != nil {
		return c.failed("update", ex, err, "Failed to update item")
	}
	c.logger.Debug("action", "op", "update", "id", id)
	return Result{Status: Status{Message: MsgItemUpdated}, Exchange: ex, Refresh: true}
}

// Delete removes item id.
func (c *Console) Delete(ctx context.Context, id int) Result {
	ex, err := c.client.Delete(ctx, id)
	if err != nil {
		return c.failed("delete", ex, err, "Failed to delete item")
	}
	c.logger.Debug("action", "op", "delete", "id", id)
	return Result{Status: Status{Message: MsgItemDeleted}, Exchange: ex, Refresh: true}
}

// Diagnose runs a trigger that is expected to fail. A 2xx answer is reported
// as an unexpected success, not as an error.
func (c *Console) Diagnose(ctx context.Context, t api.Trigger) Result {
	ex, err := c.client.Diagnose(ctx, t)
	var us *api.UnexpectedSuccessError
	if errors.As(err, &us) {
		c.logger.Debug("action", "op", "diagnose", "trigger", t.Name, "unexpected", us.Status)
		return Result{
			Status:   Status{Message: fmt.Sprintf("Unexpected success: expected %d, got %d", us.Expected, us.Status)},
			Exchange: ex,
		}
	}
	return c.failed("diagnose "+t.Name, ex, err, fmt.Sprintf("Request failed (%d)", ex.Status))
}

// failed turns any action error into a status line. fallback is used when
// the server gave no message.
func (c *Console) failed(op string, ex *api.Exchange, err error, fallback string) Result {
	c.logger.Debug("action failed", "op", op, "err", err)
	return Result{
		Status:   Status{Message: failureMessage(err, fallback), IsError: true},
		Exchange: ex,
	}
}

func failureMessage(err error, fallback string) string {
	var nerr *api.NetworkError
	if errors.As(err, &nerr) {
		return "Network error: " + nerr.Err.Error()
	}
	var herr *api.HTTPError
	if errors.As(err, &herr) {
		if herr.Message != "" {
			return herr.Message
		}
		return fallback
	}
	// anything else (an unreadable 2xx body) is logged by failed
	return fallback
}
