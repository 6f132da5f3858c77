package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// searchPattern builds a case-insensitive regex matching term as a literal
// substring. The term is quoted so regex metacharacters in user input never
// reach the server as a broken expression.
func searchPattern(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}
