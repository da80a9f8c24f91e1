package arn

import (
	"regexp"
	"strings"

	awsarn "github.com/aws/aws-sdk-go-v2/aws/arn"
)

// Expander turns one identifier into the ordered resource patterns that
// cover it and everything nested under it. It must never fail; input it
// does not recognise is returned unchanged as a single pattern.
type Expander func(identifier string) []string

// NoExpansion returns the identifier unchanged
func NoExpansion(identifier string) []string {
	return []string{identifier}
}

var expanders = map[string]Expander{
	"s3":         expandS3,
	"dynamodb":   expandDynamoDB,
	"cloudwatch": expandLogGroup,
	"lambda":     expandLambda,
	"ec2":        NoExpansion,
	"sns":        NoExpansion,
	"sqs":        NoExpansion,
}

// ExpanderFor returns the expansion rule for a resource id.
// Unknown ids get NoExpansion.
func ExpanderFor(resourceID string) Expander {
	if e, ok := expanders[resourceID]; ok {
		return e
	}
	return NoExpansion
}

// Expand returns the resource patterns for identifier under resourceID's
// addressing rules
func Expand(resourceID, identifier string) []string {
	return ExpanderFor(resourceID)(identifier)
}

var (
	s3LegacyRegex = regexp.MustCompile(`^arn:[^:]+:s3:[^:]*:[^:]*:[^/]+$`)
	s3BucketRegex = regexp.MustCompile(`^arn:[^:]+:s3:::[^/]+$`)
	s3ObjectRegex = regexp.MustCompile(`^arn:[^:]+:s3:::[^/]+/.*$`)

	dynamoTableRegex = regexp.MustCompile(`^arn:[^:]+:dynamodb:[^:]+:[^:]+:table/[^/]+$`)
	logGroupRegex    = regexp.MustCompile(`^arn:[^:]+:logs:[^:]+:[^:]+:log-group:[^:]+$`)
	lambdaFuncRegex  = regexp.MustCompile(`^arn:[^:]+:lambda:[^:]+:[^:]+:function:[^:]+$`)
)

// NormalizeS3 rewrites the common region/account qualified bucket form
// (arn:aws:s3:us-east-1:123456789012:bucket) to the real S3 form
// (arn:aws:s3:::bucket). Anything else is returned unchanged.
func NormalizeS3(identifier string) string {
	if !s3LegacyRegex.MatchString(identifier) {
		return identifier
	}
	parsed, err := awsarn.Parse(identifier)
	if err != nil {
		return identifier
	}
	return awsarn.ARN{
		Partition: parsed.Partition,
		Service:   parsed.Service,
		Resource:  parsed.Resource,
	}.String()
}

func expandS3(identifier string) []string {
	corrected := NormalizeS3(identifier)

	switch {
	case s3BucketRegex.MatchString(corrected):
		return []string{corrected, corrected + "/*"}
	case s3ObjectRegex.MatchString(corrected):
		// keep the bucket itself so ListBucket style permissions still apply
		bucket, _, _ := strings.Cut(corrected, "/")
		return []string{corrected, bucket}
	default:
		return []string{corrected}
	}
}

func expandDynamoDB(identifier string) []string {
	if dynamoTableRegex.MatchString(identifier) {
		// table/* covers secondary indexes and streams
		return []string{identifier, identifier + "/*"}
	}
	return []string{identifier}
}

func expandLogGroup(identifier string) []string {
	if logGroupRegex.MatchString(identifier) {
		return []string{identifier, identifier + ":*"}
	}
	return []string{identifier}
}

func expandLambda(identifier string) []string {
	if lambdaFuncRegex.MatchString(identifier) {
		// function:* covers versions and aliases
		return []string{identifier, identifier + ":*"}
	}
	return []string{identifier}
}
