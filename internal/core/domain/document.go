package domain

import (
	"errors"
	"time"
)

var ErrDocumentNotFound = errors.New("document not found")

// Document is a file attached to a client: contract, plan, invoice scan.
// The file body lives in external storage; only the URL is kept here.
type Document struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	ClientID   string    `json:"client_id" bson:"client_id"`
	CreatedBy  string    `json:"created_by" bson:"created_by"`
	Name       string    `json:"name" bson:"name"`
	FileURL    string    `json:"file_url" bson:"file_url"`
	Visible    bool      `json:"visible_to_client" bson:"visible_to_client"`
	UploadedAt time.Time `json:"uploaded_at" bson:"uploaded_at"`
}

func (d *Document) OwnerID() string            { return d.CreatedBy }
func (d *Document) OwnerClientID() string      { return d.ClientID }
func (d *Document) VisibleToClient() bool      { return d.Visible }
func (d *Document) AssignedDesignerID() string { return "" }
