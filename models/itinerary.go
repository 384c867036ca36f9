package models

// UserInfo is the owner snapshot embedded in every itinerary
type UserInfo struct {
	UID               string   `json:"uid" dynamodbav:"uid"`
	Name              string   `json:"name,omitempty" dynamodbav:"name,omitempty"`
	DOB               string   `json:"dob,omitempty" dynamodbav:"dob,omitempty"`
	Gender            string   `json:"gender,omitempty" dynamodbav:"gender,omitempty"`
	Status            string   `json:"status,omitempty" dynamodbav:"status,omitempty"`
	SexualOrientation string   `json:"sexualOrientation,omitempty" dynamodbav:"sexualOrientation,omitempty"`
	Blocked           []string `json:"blocked,omitempty" dynamodbav:"blocked,omitempty"`
}

// Itinerary defines the structure for a published trip proposal
type Itinerary struct {
	ID                string    `json:"id" dynamodbav:"id"`
	Destination       string    `json:"destination,omitempty" dynamodbav:"destination,omitempty"`
	StartDate         string    `json:"startDate,omitempty" dynamodbav:"startDate,omitempty"`
	EndDate           string    `json:"endDate,omitempty" dynamodbav:"endDate,omitempty"`
	StartDay          int64     `json:"startDay,omitempty" dynamodbav:"startDay,omitempty"`
	EndDay            int64     `json:"endDay,omitempty" dynamodbav:"endDay,omitempty"`
	LowerRange        int       `json:"lowerRange,omitempty" dynamodbav:"lowerRange,omitempty"`
	UpperRange        int       `json:"upperRange,omitempty" dynamodbav:"upperRange,omitempty"`
	Gender            string    `json:"gender,omitempty" dynamodbav:"gender,omitempty"`
	Status            string    `json:"status,omitempty" dynamodbav:"status,omitempty"`
	SexualOrientation string    `json:"sexualOrientation,omitempty" dynamodbav:"sexualOrientation,omitempty"`
	Photos            []string  `json:"photos,omitempty" dynamodbav:"photos,omitempty"`
	LikedBy           []string  `json:"likedBy,omitempty" dynamodbav:"likedBy,omitempty"`
	UserInfo          *UserInfo `json:"userInfo,omitempty" dynamodbav:"userInfo,omitempty"`
}

// ItinerariesTable is the DynamoDB table name for published itineraries
const ItinerariesTable = "Itineraries"
