package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/olivere/elastic/v7"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
)

// StaffIndexName is the Elasticsearch index holding the staff directory.
const StaffIndexName = "staff_members"

const staffMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "keyword"},
      "name":        {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "department":  {"type": "keyword"},
      "hourly_rate": {"type": "double"},
      "avatar":      {"type": "keyword"}
    }
  }
}`

// StaffDoc is the search document for a staff member.
type StaffDoc struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	HourlyRate float64 `json:"hourly_rate"`
	Avatar     string  `json:"avatar"`
}

func toStaffDoc(s domain.StaffMember) StaffDoc {
	return StaffDoc{
		ID:         s.ID,
		Name:       s.Name,
		Department: string(s.Department),
		HourlyRate: s.HourlyRate,
		Avatar:     s.Avatar,
	}
}

func (d StaffDoc) member() domain.StaffMember {
	return domain.StaffMember{
		ID:         d.ID,
		Name:       d.Name,
		Department: domain.Department(d.Department),
		HourlyRate: d.HourlyRate,
		Avatar:     d.Avatar,
	}
}

// ElasticSearchClient wraps olivere/elastic client.
type ElasticSearchClient struct {
	client *elastic.Client
	index  string
}

// NewElasticSearchClient creates a new client for Elasticsearch 7.x.
func NewElasticSearchClient(url string) (*ElasticSearchClient, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false), // Essential when using Docker or cloud
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return &ElasticSearchClient{client: client, index: StaffIndexName}, nil
}

// EnsureIndex creates the staff index with its mapping if it is missing.
func (es *ElasticSearchClient) EnsureIndex(ctx context.Context) error {
	exists, err := es.client.IndexExists(es.index).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check index %s: %w", es.index, err)
	}
	if exists {
		return nil
	}
	if _, err := es.client.CreateIndex(es.index).BodyString(staffMapping).Do(ctx); err != nil {
		return fmt.Errorf("failed to create index %s: %w", es.index, err)
	}
	return nil
}

// IndexStaff indexes a staff member using its id as document id.
func (es *ElasticSearchClient) IndexStaff(ctx context.Context, s domain.StaffMember) error {
	_, err := es.client.Index().
		Index(es.index).
		Id(s.ID).
		BodyJson(toStaffDoc(s)).
		Refresh("true"). // Make changes immediately searchable
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to index staff member %s: %w", s.ID, err)
	}
	return nil
}

// SearchStaffByName performs a full-text match on the name.
func (es *ElasticSearchClient) SearchStaffByName(ctx context.Context, name string) ([]domain.StaffMember, error) {
	query := elastic.NewMultiMatchQuery(name, "name", "name.raw").
		Type("best_fields").
		Fuzziness("AUTO")

	searchResult, err := es.client.Search().
		Index(es.index).
		Query(query).
		Size(100).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	var staff []domain.StaffMember
	for _, item := range searchResult.Hits.Hits {
		var doc StaffDoc
		if err := json.Unmarshal(item.Source, &doc); err != nil {
			continue
		}
		staff = append(staff, doc.member())
	}

	return staff, nil
}

// BulkIndexStaff efficiently indexes multiple staff members.
func (es *ElasticSearchClient) BulkIndexStaff(ctx context.Context, staff []domain.StaffMember) error {
	bulkRequest := es.client.Bulk()

	for _, s := range staff {
		req := elastic.NewBulkIndexRequest().
			Index(es.index).
			Id(s.ID).
			Doc(toStaffDoc(s))
		bulkRequest = bulkRequest.Add(req)
	}

	if bulkRequest.NumberOfActions() == 0 {
		return nil
	}

	bulkResponse, err := bulkRequest.Refresh("true").Do(ctx)
	if err != nil {
		return fmt.Errorf("bulk index failed: %w", err)
	}

	if bulkResponse.Errors {
		for _, item := range bulkResponse.Items {
			for _, op := range item {
				if op.Error != nil {
					return fmt.Errorf("bulk item failed: %s", op.Error.Reason)
				}
			}
		}
	}

	return nil
}

// DeleteIndex drops the staff index. Missing indices are ignored.
func (es *ElasticSearchClient) DeleteIndex(ctx context.Context) error {
	_, err := es.client.DeleteIndex(es.index).Do(ctx)
	if err != nil && !elastic.IsNotFound(err) {
		return fmt.Errorf("failed to delete index %s: %w", es.index, err)
	}
	return nil
}
