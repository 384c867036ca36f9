package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"wanderlink_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	socketio "github.com/googollee/go-socket.io"
)

// InteractionService records like/dislike actions against itineraries and
// forms a connection when two users like each other
type InteractionService struct {
	Dynamo *DynamoService
	Socket *socketio.Server
}

// GetItinerary retrieves an itinerary by ID
func (s *InteractionService) GetItinerary(ctx context.Context, itineraryID string) (models.Itinerary, error) {
	key := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: itineraryID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.ItinerariesTable, key)
	if err != nil {
		return models.Itinerary{}, fmt.Errorf("itinerary not found for id: %s", itineraryID)
	}

	var itinerary models.Itinerary
	if err := attributevalue.UnmarshalMap(item, &itinerary); err != nil {
		return models.Itinerary{}, fmt.Errorf("failed to unmarshal itinerary: %w", err)
	}
	return itinerary, nil
}

// ProcessAction processes "like" or "dislike" actions against an itinerary
func (s *InteractionService) ProcessAction(ctx context.Context, senderID, itineraryID, action string) (map[string]string, error) {
	itinerary, err := s.GetItinerary(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	if itinerary.UserInfo == nil || itinerary.UserInfo.UID == "" {
		return nil, errors.New("itinerary has no owner")
	}
	receiverID := itinerary.UserInfo.UID

	switch action {
	case models.InteractionTypeLike:
		return s.handleLiked(ctx, senderID, receiverID, itineraryID)
	case models.InteractionTypeDislike:
		if err := s.SaveInteraction(ctx, senderID, receiverID, itineraryID, models.InteractionTypeDislike); err != nil {
			return nil, err
		}
		return map[string]string{"message": "Itinerary passed"}, nil
	default:
		return nil, errors.New("invalid action")
	}
}

func (s *InteractionService) handleLiked(ctx context.Context, senderID, receiverID, itineraryID string) (map[string]string, error) {
	if err := s.SaveInteraction(ctx, senderID, receiverID, itineraryID, models.InteractionTypeLike); err != nil {
		return nil, err
	}

	// Record the like on the itinerary itself
	if err := s.AddToLikedBy(ctx, itineraryID, senderID); err != nil {
		return nil, fmt.Errorf("failed to update likedBy list: %w", err)
	}

	// Check if the itinerary owner has already liked this user back
	mutual, err := s.HasUserLiked(ctx, receiverID, senderID)
	if err != nil {
		return nil, err
	}
	if mutual {
		connectionID, err := s.CreateConnection(ctx, senderID, receiverID, itineraryID)
		if err != nil {
			return nil, err
		}
		return map[string]string{"message": "It's a match!", "connectionId": connectionID}, nil
	}

	return map[string]string{"message": "Itinerary liked successfully"}, nil
}

// SaveInteraction stores one like/dislike interaction
func (s *InteractionService) SaveInteraction(ctx context.Context, senderID, receiverID, itineraryID, interactionType string) error {
	interaction := models.Interaction{
		SenderID:    senderID,
		ReceiverID:  receiverID,
		ItineraryID: itineraryID,
		Type:        interactionType,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.Dynamo.PutItem(ctx, models.InteractionsTable, interaction); err != nil {
		log.Printf("❌ Failed to save interaction: %v", err)
		return fmt.Errorf("failed to save interaction: %w", err)
	}

	log.Printf("✅ Interaction saved: %s -> %s (%s)", senderID, receiverID, interactionType)
	return nil
}

// HasUserLiked reports whether senderID has liked any of receiverID's itineraries
func (s *InteractionService) HasUserLiked(ctx context.Context, senderID, receiverID string) (bool, error) {
	keyCondition := "senderId = :sender"
	expressionValues := map[string]types.AttributeValue{
		":sender": &types.AttributeValueMemberS{Value: senderID},
	}

	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.InteractionsTable, "senderId-index", keyCondition, expressionValues, nil, 100)
	if err != nil {
		return false, fmt.Errorf("failed to fetch interactions: %w", err)
	}

	for _, item := range items {
		var interaction models.Interaction
		if err := attributevalue.UnmarshalMap(item, &interaction); err != nil {
			log.Printf("⚠️ Skipping malformed interaction: %v", err)
			continue
		}
		if interaction.ReceiverID == receiverID && interaction.Type == models.InteractionTypeLike {
			return true, nil
		}
	}
	return false, nil
}

// AddToLikedBy appends a user id to an itinerary's likedBy list
func (s *InteractionService) AddToLikedBy(ctx context.Context, itineraryID, userID string) error {
	updateExpression := "SET likedBy = list_append(if_not_exists(likedBy, :empty), :newItem)"

	_, err := s.Dynamo.UpdateItem(ctx, models.ItinerariesTable, updateExpression,
		map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: itineraryID}},
		map[string]types.AttributeValue{
			":empty":   &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":newItem": &types.AttributeValueMemberL{Value: []types.AttributeValue{&types.AttributeValueMemberS{Value: userID}}},
		}, nil,
	)
	return err
}

// CreateConnection creates a mutual-match record and notifies both users
func (s *InteractionService) CreateConnection(ctx context.Context, user1, user2, itineraryID string) (string, error) {
	connection := models.Connection{
		ConnectionID: uuid.NewString(),
		Users:        []string{user1, user2},
		ItineraryIDs: []string{itineraryID},
		Status:       models.ConnectionStatusActive,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.Dynamo.PutItem(ctx, models.ConnectionsTable, connection); err != nil {
		return "", fmt.Errorf("failed to create connection: %w", err)
	}

	log.Printf("🎉 Connection created: %s ❤️ %s", user1, user2)

	if s.Socket != nil {
		payload := map[string]interface{}{
			"connectionId": connection.ConnectionID,
			"users":        connection.Users,
		}
		s.Socket.BroadcastToRoom("/", user1, "newConnection", payload)
		s.Socket.BroadcastToRoom("/", user2, "newConnection", payload)
	}

	return connection.ConnectionID, nil
}

// GetConnections retrieves all connections for a user
func (s *InteractionService) GetConnections(ctx context.Context, userID string) ([]models.Connection, error) {
	filterExpression := "contains(#users, :user)"
	names := map[string]string{"#users": "users"}
	values := map[string]types.AttributeValue{
		":user": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := s.Dynamo.ScanItems(ctx, models.ConnectionsTable, filterExpression, names, values, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch connections: %w", err)
	}

	connections := make([]models.Connection, 0, len(items))
	for _, item := range items {
		var connection models.Connection
		if err := attributevalue.UnmarshalMap(item, &connection); err != nil {
			log.Printf("⚠️ Skipping malformed connection: %v", err)
			continue
		}
		connections = append(connections, connection)
	}
	return connections, nil
}
