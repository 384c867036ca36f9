package utils

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ExtractString safely extracts a string from a DynamoDB attribute map
func ExtractString(item map[string]types.AttributeValue, field string) string {
	if attr, ok := item[field]; ok {
		if v, ok := attr.(*types.AttributeValueMemberS); ok {
			return v.Value
		}
	}
	return ""
}

// ExtractStringList extracts a list of strings from a DynamoDB attribute map,
// skipping non-string members
func ExtractStringList(item map[string]types.AttributeValue, field string) []string {
	var values []string
	if attr, ok := item[field]; ok {
		if list, ok := attr.(*types.AttributeValueMemberL); ok {
			for _, member := range list.Value {
				if v, ok := member.(*types.AttributeValueMemberS); ok {
					values = append(values, v.Value)
				}
			}
		}
	}
	return values
}

// ExtractNestedString extracts a string field from a nested map attribute
// (e.g. the owner snapshot embedded in an itinerary)
func ExtractNestedString(item map[string]types.AttributeValue, parent, field string) string {
	if attr, ok := item[parent]; ok {
		if nested, ok := attr.(*types.AttributeValueMemberM); ok {
			return ExtractString(nested.Value, field)
		}
	}
	return ""
}

// ExtractNestedStringList extracts a string list from a nested map attribute
func ExtractNestedStringList(item map[string]types.AttributeValue, parent, field string) []string {
	if attr, ok := item[parent]; ok {
		if nested, ok := attr.(*types.AttributeValueMemberM); ok {
			return ExtractStringList(nested.Value, field)
		}
	}
	return nil
}
