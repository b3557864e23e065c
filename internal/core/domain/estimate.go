package domain

import (
	"errors"
	"time"
)

// Estimate lifecycle states.
const (
	EstimateDraft    = "draft"
	EstimateSent     = "sent"
	EstimateApproved = "approved"
	EstimateRejected = "rejected"
)

var (
	ErrEstimateNotFound = errors.New("estimate not found")
	ErrActNotFound      = errors.New("act not found")
)

// WorkItem is a single line of an estimate or act.
type WorkItem struct {
	Name     string  `json:"name" bson:"name"`
	Unit     string  `json:"unit" bson:"unit"`
	Quantity float64 `json:"quantity" bson:"quantity"`
	Price    float64 `json:"price" bson:"price"`
}

// Total returns quantity × price for the line.
func (w WorkItem) Total() float64 { return w.Quantity * w.Price }

// Estimate is an estimate or a completion act: both live in the same
// collection and are told apart by IsAct. Every reader filters on that flag.
type Estimate struct {
	ID         string     `json:"id" bson:"_id,omitempty"`
	ClientID   string     `json:"client_id" bson:"client_id"`
	CreatedBy  string     `json:"created_by" bson:"created_by"`
	DesignerID string     `json:"designer_id,omitempty" bson:"designer_id,omitempty"`
	Title      string     `json:"title" bson:"title"`
	Status     string     `json:"status" bson:"status"`
	IsAct      bool       `json:"is_act" bson:"is_act"`
	Visible    bool       `json:"visible_to_client" bson:"visible_to_client"`
	Items      []WorkItem `json:"items" bson:"items"`
	Total      float64    `json:"total" bson:"total"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" bson:"updated_at"`
}

// RecalculateTotal recomputes Total from the work items.
func (e *Estimate) RecalculateTotal() {
	var sum float64
	for _, it := range e.Items {
		sum += it.Total()
	}
	e.Total = sum
}

func (e *Estimate) OwnerID() string            { return e.CreatedBy }
func (e *Estimate) OwnerClientID() string      { return e.ClientID }
func (e *Estimate) VisibleToClient() bool      { return e.Visible }
func (e *Estimate) AssignedDesignerID() string { return e.DesignerID }
