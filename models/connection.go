package models

// Connection is a mutual match between two itinerary owners
type Connection struct {
	ConnectionID string   `json:"connectionId" dynamodbav:"connectionId"`
	Users        []string `json:"users" dynamodbav:"users"`
	ItineraryIDs []string `json:"itineraryIds,omitempty" dynamodbav:"itineraryIds,omitempty"`
	Status       string   `json:"status" dynamodbav:"status"`
	CreatedAt    string   `json:"createdAt" dynamodbav:"createdAt"`
}

// Interaction records a single like/dislike from one user against an itinerary
type Interaction struct {
	SenderID    string `json:"senderId" dynamodbav:"senderId"`
	ReceiverID  string `json:"receiverId" dynamodbav:"receiverId"`
	ItineraryID string `json:"itineraryId" dynamodbav:"itineraryId"`
	Type        string `json:"type" dynamodbav:"type"`
	CreatedAt   string `json:"createdAt" dynamodbav:"createdAt"`
}

// ConnectionsTable is the DynamoDB table name for mutual matches
const ConnectionsTable = "Connections"

// InteractionsTable is the DynamoDB table name for like/dislike interactions
const InteractionsTable = "Interactions"
