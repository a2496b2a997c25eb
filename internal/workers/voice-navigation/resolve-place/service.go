// internal/workers/voice-navigation/resolve-place/service.go
package resolveplace

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// poiResolver looks place names up in the POI index and returns the
// canonical address of the best hit. A miss is not an error.
type poiResolver struct {
	client *elasticsearch.Client
	index  string
}

func newPOIResolver(client *elasticsearch.Client, index string) *poiResolver {
	return &poiResolver{client: client, index: index}
}

// lookup returns (canonical, found, err). err is reserved for
// transport-level failures; query-level errors from the cluster are
// treated as a miss so a degraded index never blocks navigation.
func (r *poiResolver) lookup(ctx context.Context, name string) (string, bool, error) {
	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  name,
				"fields": []string{"name^3", "aliases^2", "address"},
				"type":   "best_fields",
			},
		},
	}
	body, _ := json.Marshal(queryBody)

	size := 1
	req := esapi.SearchRequest{
		Index: []string{r.index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return "", false, fmt.Errorf("poi search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return "", false, nil
	}

	var r2 struct {
		Hits struct {
			Hits []struct {
				Source struct {
					Name    string `json:"name"`
					Address string `json:"address"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r2); err != nil {
		return "", false, nil
	}

	if len(r2.Hits.Hits) == 0 {
		return "", false, nil
	}

	src := r2.Hits.Hits[0].Source
	if src.Address != "" {
		return src.Address, true, nil
	}
	if src.Name != "" {
		return src.Name, true, nil
	}
	return "", false, nil
}
