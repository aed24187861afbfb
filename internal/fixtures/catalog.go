// Package fixtures builds the dashboard's seed data: royalty and payout
// transactions synthesized from a seeded generator, and the ideas,
// conversations and support cases listed in a YAML catalog.
package fixtures

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Design is a licensed design that earns royalties.
type Design struct {
	ID   string  `yaml:"id"`
	Name string  `yaml:"name"`
	Rate float64 `yaml:"rate"`
}

// MessageSeed is one message of a seeded conversation.
type MessageSeed struct {
	Sender      string   `yaml:"sender"`
	Content     string   `yaml:"content"`
	HoursAgo    int      `yaml:"hours_ago"`
	Attachments []string `yaml:"attachments"`
}

// ConversationSeed describes an inbox thread.
type ConversationSeed struct {
	ID            string               `yaml:"id"`
	Type          string               `yaml:"type"`
	Priority      string               `yaml:"priority"`
	Subject       string               `yaml:"subject"`
	RequestID     string               `yaml:"request_id"`
	RequestStatus string               `yaml:"request_status"`
	Unread        int                  `yaml:"unread"`
	Participants  []domain.Participant `yaml:"participants"`
	Messages      []MessageSeed        `yaml:"messages"`
}

// CaseMessageSeed is one entry of a seeded case thread.
type CaseMessageSeed struct {
	Author   string `yaml:"author"`
	Message  string `yaml:"message"`
	Internal bool   `yaml:"internal"`
}

// CaseSeed describes a support case. Cases are numbered in catalog order.
type CaseSeed struct {
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Type        string            `yaml:"type"`
	Status      string            `yaml:"status"`
	Priority    string            `yaml:"priority"`
	LinkedTo    string            `yaml:"linked_to"`
	AssignedTo  string            `yaml:"assigned_to"`
	CreatedBy   string            `yaml:"created_by"`
	DaysAgo     int               `yaml:"days_ago"`
	Messages    []CaseMessageSeed `yaml:"messages"`
}

// Catalog is the parsed seed file.
type Catalog struct {
	PayoutMethod  string               `yaml:"payout_method"`
	Designs       []Design             `yaml:"designs"`
	Sources       []string             `yaml:"sources"`
	Ideas         []domain.ProductIdea `yaml:"ideas"`
	Conversations []ConversationSeed   `yaml:"conversations"`
	Cases         []CaseSeed           `yaml:"cases"`
}

// LoadCatalog reads the catalog at path, or the embedded one when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return ParseCatalog(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a catalog. Enum fields must hold known
// values so the query engine never meets an unranked label.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("fixtures: parse catalog: %w", err)
	}
	if err := cat.validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Catalog) validate() error {
	if len(c.Designs) == 0 || len(c.Sources) == 0 {
		return fmt.Errorf("fixtures: catalog needs at least one design and one source")
	}
	for _, d := range c.Designs {
		if d.ID == "" || d.Rate <= 0 {
			return fmt.Errorf("fixtures: design %q needs an id and a positive rate", d.Name)
		}
	}
	for _, idea := range c.Ideas {
		if !idea.Competition.Valid() {
			return fmt.Errorf("fixtures: idea %s: %w: competition %q", idea.ID, domain.ErrInvalidEnum, idea.Competition)
		}
	}
	for _, cv := range c.Conversations {
		if !domain.ConversationType(cv.Type).Valid() {
			return fmt.Errorf("fixtures: conversation %s: %w: type %q", cv.ID, domain.ErrInvalidEnum, cv.Type)
		}
		if !domain.Priority(cv.Priority).Valid() {
			return fmt.Errorf("fixtures: conversation %s: %w: priority %q", cv.ID, domain.ErrInvalidEnum, cv.Priority)
		}
	}
	for i, cs := range c.Cases {
		if !domain.CaseType(cs.Type).Valid() {
			return fmt.Errorf("fixtures: case %d: %w: type %q", i+1, domain.ErrInvalidEnum, cs.Type)
		}
		if !domain.CaseStatus(cs.Status).Valid() {
			return fmt.Errorf("fixtures: case %d: %w: status %q", i+1, domain.ErrInvalidEnum, cs.Status)
		}
		if !domain.Priority(cs.Priority).Valid() {
			return fmt.Errorf("fixtures: case %d: %w: priority %q", i+1, domain.ErrInvalidEnum, cs.Priority)
		}
	}
	return nil
}
