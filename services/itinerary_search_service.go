package services

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"wanderlink_server/models"
	"wanderlink_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ItinerarySearchService is the remote store side of the matching engine:
// one page request in, one {success, data} response out. Coarse, indexable
// criteria (destination, preference equality, date window) go into the scan
// filter expression; exclusion and block lists are applied while walking the
// returned items.
type ItinerarySearchService struct {
	Dynamo *DynamoService
}

// Search fetches one page of raw candidates for the request
func (s *ItinerarySearchService) Search(ctx context.Context, req models.SearchRequest) (models.SearchResponse, error) {
	log.Printf("🔍 Searching itineraries: destination=%q pageSize=%d excluded=%d blocked=%d",
		req.Destination, req.PageSize, len(req.ExcludedIDs), len(req.BlockedUserIDs))

	var expressions []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}

	addEquality := func(field, value string) {
		if value == "" {
			return
		}
		names["#"+field] = field
		values[":"+field] = &types.AttributeValueMemberS{Value: value}
		expressions = append(expressions, fmt.Sprintf("#%s = :%s", field, field))
	}
	addEquality("destination", req.Destination)
	addEquality("gender", req.Gender)
	addEquality("status", req.Status)
	addEquality("sexualOrientation", req.SexualOrientation)

	if req.MinStartDay > 0 {
		names["#endDay"] = "endDay"
		values[":minStartDay"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(req.MinStartDay, 10)}
		expressions = append(expressions, "#endDay >= :minStartDay")
	}
	if req.MaxEndDay > 0 {
		names["#startDay"] = "startDay"
		values[":maxEndDay"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(req.MaxEndDay, 10)}
		expressions = append(expressions, "#startDay <= :maxEndDay")
	}

	filterExpression := ""
	for i, expr := range expressions {
		if i > 0 {
			filterExpression += " AND "
		}
		filterExpression += expr
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = models.MatchPageSize
	}

	items, err := s.Dynamo.ScanItems(ctx, models.ItinerariesTable, filterExpression, names, values, pageSize)
	if err != nil {
		log.Printf("❌ Itinerary search failed: %v", err)
		return models.SearchResponse{Success: false, Error: err.Error()}, err
	}

	excluded := make(map[string]struct{}, len(req.ExcludedIDs))
	for _, id := range req.ExcludedIDs {
		excluded[id] = struct{}{}
	}
	blocked := make(map[string]struct{}, len(req.BlockedUserIDs))
	for _, uid := range req.BlockedUserIDs {
		blocked[uid] = struct{}{}
	}

	data := make([]models.Itinerary, 0, len(items))
	for _, item := range items {
		id := utils.ExtractString(item, "id")
		if _, skip := excluded[id]; skip {
			continue
		}

		ownerUID := utils.ExtractNestedString(item, "userInfo", "uid")
		if _, skip := blocked[ownerUID]; skip {
			continue
		}

		// Bidirectional block awareness: skip owners who blocked the searcher
		if req.CurrentUserID != "" {
			skipped := false
			for _, uid := range utils.ExtractNestedStringList(item, "userInfo", "blocked") {
				if uid == req.CurrentUserID {
					skipped = true
					break
				}
			}
			if skipped {
				continue
			}
		}

		var itinerary models.Itinerary
		if err := attributevalue.UnmarshalMap(item, &itinerary); err != nil {
			log.Printf("⚠️ Skipping malformed itinerary record %q: %v", id, err)
			continue
		}
		data = append(data, itinerary)
	}

	log.Printf("✅ Search returned %d of %d scanned itineraries", len(data), len(items))
	return models.SearchResponse{Success: true, Data: data}, nil
}
