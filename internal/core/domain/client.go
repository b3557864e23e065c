package domain

import (
	"errors"
	"time"
)

var ErrClientNotFound = errors.New("client not found")

// Client is a customer of the studio. CreatedBy references the manager who
// owns the relationship; ownership drives the access policy.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedBy string    `json:"created_by"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) OwnerID() string            { return c.CreatedBy }
func (c *Client) OwnerClientID() string      { return c.ID }
func (c *Client) VisibleToClient() bool      { return c.IsActive }
func (c *Client) AssignedDesignerID() string { return "" }
