package api

import (
	"github.com/ssargent/yad/pkg/document"
	"github.com/ssargent/yad/pkg/store"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PutResponse is returned after storing a document
type PutResponse struct {
	Name     string `json:"name"`
	Revision string `json:"revision"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port    int
	APIKey  string
	DataDir string
}

// DocumentStore defines the store operations the API depends on
type DocumentStore interface {
	Put(name string, d *document.Document) (string, error)
	Get(name string) (*document.Document, error)
	GetRevision(name, id string) (*document.Document, error)
	Delete(name string) error
	List() ([]string, error)
	History(name string) ([]store.Revision, error)
	Stats() (store.Stats, error)
}
