// Package elastic keeps a full-text copy of events in Elasticsearch.
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/clubevents/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// EventIndex implements application.EventIndex.
type EventIndex struct {
	ES    *elasticsearch.Client
	index string
}

// NewEventIndex returns nil when es is nil so callers can assign the
// result straight to an optional dependency.
func NewEventIndex(es *elasticsearch.Client, index string) *EventIndex {
	if es == nil || index == "" {
		return nil
	}
	return &EventIndex{ES: es, index: index}
}

type eventDoc struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Organizer   string    `json:"organizer"`
	ClubID      string    `json:"club_id"`
	Status      string    `json:"status"`
	Date        time.Time `json:"date"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (x *EventIndex) Index(ctx context.Context, e *entity.Event) error {
	b, err := json.Marshal(eventDoc{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
		Location:    e.Location,
		Organizer:   e.Organizer,
		ClubID:      e.ClubID,
		Status:      string(e.Status),
		Date:        e.Date,
		UpdatedAt:   e.UpdatedAt,
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: e.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index event %s: %s", e.ID, res.Status())
	}
	return nil
}

// Remove deletes the event document. A missing document is not an error.
func (x *EventIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("remove event %s: %s", id, res.Status())
	}
	return nil
}

// Search runs a multi_match over the text fields and returns matching ids.
func (x *EventIndex) Search(ctx context.Context, q string, limit int) ([]string, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^3", "category^2", "description", "location", "organizer"},
			},
		},
		"size":    limit,
		"_source": false,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.index),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search events: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
